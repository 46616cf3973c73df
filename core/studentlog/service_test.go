package studentlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/studentlog"
	inmemdb "github.com/trezcool/studentlogs/storage/database/inmem"
	"github.com/trezcool/studentlogs/tests"
)

var fixedNow = time.Date(2024, time.September, 3, 14, 5, 9, 0, time.UTC)

func setup(t *testing.T) (studentlog.Service, studentlog.Repository) {
	db, _ := inmemdb.Open()
	repo := inmemdb.NewLogRepository(db)
	svc := studentlog.NewServiceMock(repo, testutil.NewValidator(), func() time.Time { return fixedNow })
	return svc, repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	tests := []struct {
		name      string
		nl        studentlog.NewLog
		wantField string
		wantMsg   string
	}{
		{name: "valid", nl: studentlog.NewLog{CourseID: "CS100", UvuID: "10203040", Text: "met with student"}},
		{name: "no course", nl: studentlog.NewLog{UvuID: "10203040", Text: "t"}, wantField: "courseId", wantMsg: "this field is required"},
		{name: "no student", nl: studentlog.NewLog{CourseID: "CS100", Text: "t"}, wantField: "uvuId", wantMsg: "this field is required"},
		{name: "7 digits", nl: studentlog.NewLog{CourseID: "CS100", UvuID: "1020304", Text: "t"}, wantField: "uvuId", wantMsg: "uvuId must be exactly 8 digits"},
		{name: "letters", nl: studentlog.NewLog{CourseID: "CS100", UvuID: "1020304a", Text: "t"}, wantField: "uvuId", wantMsg: "uvuId must be exactly 8 digits"},
		{name: "blank text", nl: studentlog.NewLog{CourseID: "CS100", UvuID: "10203040", Text: "  "}, wantField: "text", wantMsg: "text must not be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, err := svc.Create(ctx, tt.nl)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, lg.ID)
				assert.Equal(t, "9/3/2024, 2:05:09 PM", lg.Date)
				assert.Equal(t, tt.nl.CourseID, lg.CourseID)
				assert.Equal(t, tt.nl.UvuID, lg.UvuID)
				assert.Equal(t, tt.nl.Text, lg.Text)
				return
			}
			flds, ok := core.FieldErrors(err, core.NewTranslator())
			require.True(t, ok, "expected a validation error, got %v", err)
			require.Len(t, flds, 1)
			assert.Equal(t, core.FieldError{Field: tt.wantField, Error: tt.wantMsg}, flds[0])
		})
	}
}

func TestService_Create_distinctIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	nl := studentlog.NewLog{CourseID: "CS100", UvuID: "10203040", Text: "same input"}

	lg1, err := svc.Create(ctx, nl)
	require.NoError(t, err)
	lg2, err := svc.Create(ctx, nl)
	require.NoError(t, err)
	assert.NotEqual(t, lg1.ID, lg2.ID)

	logs, err := svc.Filter(ctx, studentlog.QueryFilter{CourseID: "CS100", UvuID: "10203040"})
	require.NoError(t, err)
	assert.Equal(t, []studentlog.Log{lg1, lg2}, logs)
}

func TestService_Filter(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	logs, err := svc.Filter(ctx, studentlog.QueryFilter{CourseID: "NOPE"})
	require.NoError(t, err)
	assert.NotNil(t, logs, "an empty listing must encode as []")
	assert.Empty(t, logs)

	lg := testutil.CreateLog(t, repo, "CS100", "10203040", "met with student")
	testutil.CreateLog(t, repo, "CS200", "10203040", "other course")

	logs, err = svc.Filter(ctx, studentlog.QueryFilter{CourseID: "CS100", UvuID: "10203040"})
	require.NoError(t, err)
	assert.Equal(t, []studentlog.Log{lg}, logs)

	// values are compared as sent
	logs, err = svc.Filter(ctx, studentlog.QueryFilter{CourseID: " CS100", UvuID: "10203040 "})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestService_Create_keepsText(t *testing.T) {
	svc, _ := setup(t)
	text := "  met with student\n\tfollow up next week\n"

	lg, err := svc.Create(context.Background(), studentlog.NewLog{CourseID: " CS100 ", UvuID: "10203040", Text: text})
	require.NoError(t, err)
	assert.Equal(t, text, lg.Text)
	assert.Equal(t, "CS100", lg.CourseID)
}

func TestNewService_dateStamp(t *testing.T) {
	db, _ := inmemdb.Open()
	conf := &core.Config{Logs: core.LogsConfig{DateLayout: time.RFC3339, TimeZone: "UTC"}}
	svc := studentlog.NewService(inmemdb.NewLogRepository(db), testutil.NewValidator(), conf)

	lg, err := svc.Create(context.Background(), studentlog.NewLog{CourseID: "CS100", UvuID: "10203040", Text: "t"})
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, lg.Date)
	assert.NoError(t, err)
}

func TestQueryFilter_Match(t *testing.T) {
	lg := studentlog.Log{CourseID: "CS100", UvuID: "10203040"}

	assert.True(t, studentlog.QueryFilter{}.Match(lg))
	assert.True(t, studentlog.QueryFilter{CourseID: "CS100"}.Match(lg))
	assert.True(t, studentlog.QueryFilter{CourseID: "CS100", UvuID: "10203040"}.Match(lg))
	assert.False(t, studentlog.QueryFilter{CourseID: "cs100"}.Match(lg))
	assert.False(t, studentlog.QueryFilter{UvuID: "1020304"}.Match(lg))
}
