package course_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	inmemdb "github.com/trezcool/studentlogs/storage/database/inmem"
	"github.com/trezcool/studentlogs/tests"
)

func setup(t *testing.T) (course.Service, course.Repository) {
	db, _ := inmemdb.Open()
	repo := inmemdb.NewCourseRepository(db)
	return course.NewService(repo, testutil.NewValidator()), repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	tests := []struct {
		name      string
		nc        course.NewCourse
		want      course.Course
		wantField string
	}{
		{name: "valid", nc: course.NewCourse{ID: "CS4690", Display: "DevOps"}, want: course.Course{ID: "CS4690", Display: "DevOps"}},
		{name: "cleaned", nc: course.NewCourse{ID: "  CS3380 ", Display: " Databases\n"}, want: course.Course{ID: "CS3380", Display: "Databases"}},
		{name: "duplicate", nc: course.NewCourse{ID: "CS4690", Display: "Again"}, wantField: "id"},
		{name: "no id", nc: course.NewCourse{Display: "DevOps"}, wantField: "id"},
		{name: "blank id", nc: course.NewCourse{ID: "   ", Display: "DevOps"}, wantField: "id"},
		{name: "id with space", nc: course.NewCourse{ID: "CS 4690", Display: "DevOps"}, wantField: "id"},
		{name: "no display", nc: course.NewCourse{ID: "CS1400"}, wantField: "display"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Create(ctx, tt.nc)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			flds, ok := core.FieldErrors(errors.Cause(err), core.NewTranslator())
			require.True(t, ok, "expected a validation error, got %v", err)
			require.NotEmpty(t, flds)
			assert.Equal(t, tt.wantField, flds[0].Field)
		})
	}
}

func TestService_Create_duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Create(ctx, course.NewCourse{ID: "CS4690", Display: "DevOps"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, course.NewCourse{ID: "CS4690", Display: "DevOps"})
	assert.ErrorIs(t, err, course.ErrExists)

	courses, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestService_QueryAll(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	courses, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, courses, "an empty listing must encode as []")
	assert.Empty(t, courses)

	cs := testutil.CreateCourse(t, repo, "CS4690", "DevOps")
	math := testutil.CreateCourse(t, repo, "MATH1210", "Calculus I")

	courses, err = svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []course.Course{cs, math}, courses)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	cs := testutil.CreateCourse(t, repo, "CS4690", "DevOps")

	got, err := svc.GetByID(ctx, " CS4690 ")
	require.NoError(t, err)
	assert.Equal(t, cs, got)

	_, err = svc.GetByID(ctx, "NOPE")
	assert.ErrorIs(t, err, course.ErrNotFound)
}
