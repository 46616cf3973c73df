package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
)

// Repositories is one storage engine under test.
type Repositories struct {
	Courses course.Repository
	Logs    studentlog.Repository
}

// RunRepositorySuite checks the behaviour every storage engine must share.
// newRepos must return repositories over an empty storage.
func RunRepositorySuite(t *testing.T, newRepos func(t *testing.T) Repositories) {
	ctx := context.Background()

	t.Run("courses: empty", func(t *testing.T) {
		repos := newRepos(t)
		courses, err := repos.Courses.QueryAllCourses(ctx)
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	t.Run("courses: create then list", func(t *testing.T) {
		repos := newRepos(t)
		cs := CreateCourse(t, repos.Courses, "CS4690", "DevOps")
		math := CreateCourse(t, repos.Courses, "MATH1210", "Calculus I")

		courses, err := repos.Courses.QueryAllCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []course.Course{cs, math}, courses)
	})

	t.Run("courses: duplicate id", func(t *testing.T) {
		repos := newRepos(t)
		CreateCourse(t, repos.Courses, "CS4690", "DevOps")

		_, err := repos.Courses.CreateCourse(ctx, course.Course{ID: "CS4690", Display: "Other"})
		assert.ErrorIs(t, err, course.ErrExists)

		courses, err := repos.Courses.QueryAllCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []course.Course{{ID: "CS4690", Display: "DevOps"}}, courses)
	})

	t.Run("courses: get by id", func(t *testing.T) {
		repos := newRepos(t)
		cs := CreateCourse(t, repos.Courses, "CS4690", "DevOps")

		got, err := repos.Courses.GetCourseByID(ctx, "CS4690")
		require.NoError(t, err)
		assert.Equal(t, cs, got)

		_, err = repos.Courses.GetCourseByID(ctx, "NOPE")
		assert.ErrorIs(t, err, course.ErrNotFound)
	})

	t.Run("logs: filter", func(t *testing.T) {
		repos := newRepos(t)
		lg1 := CreateLog(t, repos.Logs, "CS100", "10203040", "met with student")
		lg2 := CreateLog(t, repos.Logs, "CS100", "11111111", "missed class")
		lg3 := CreateLog(t, repos.Logs, "MATH1210", "10203040", "asked about limits")

		tests := []struct {
			name   string
			filter studentlog.QueryFilter
			want   []studentlog.Log
		}{
			{name: "no filter", want: []studentlog.Log{lg1, lg2, lg3}},
			{name: "course", filter: studentlog.QueryFilter{CourseID: "CS100"}, want: []studentlog.Log{lg1, lg2}},
			{name: "student", filter: studentlog.QueryFilter{UvuID: "10203040"}, want: []studentlog.Log{lg1, lg3}},
			{name: "course & student", filter: studentlog.QueryFilter{CourseID: "CS100", UvuID: "10203040"}, want: []studentlog.Log{lg1}},
			{name: "unknown course", filter: studentlog.QueryFilter{CourseID: "NOPE"}},
			{name: "no partial match", filter: studentlog.QueryFilter{CourseID: "CS10"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				logs, err := repos.Logs.FilterLogs(ctx, tt.filter)
				require.NoError(t, err)
				if len(tt.want) == 0 {
					assert.Empty(t, logs)
					return
				}
				assert.Equal(t, tt.want, logs)
			})
		}
	})

	t.Run("logs: duplicate id", func(t *testing.T) {
		repos := newRepos(t)
		lg := CreateLog(t, repos.Logs, "CS100", "10203040", "met with student")

		dup := lg
		dup.Text = "overwritten?"
		_, err := repos.Logs.CreateLog(ctx, dup)
		assert.ErrorIs(t, err, studentlog.ErrExists)

		logs, err := repos.Logs.FilterLogs(ctx, studentlog.QueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, []studentlog.Log{lg}, logs)
	})

	t.Run("logs: concurrent creates", func(t *testing.T) {
		repos := newRepos(t)

		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repos.Logs.CreateLog(ctx, studentlog.Log{
					ID:       fmt.Sprintf("log-%02d", i),
					CourseID: "CS100",
					UvuID:    "10203040",
					Date:     "1/2/2024, 3:04:05 PM",
					Text:     fmt.Sprintf("note %d", i),
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		logs, err := repos.Logs.FilterLogs(ctx, studentlog.QueryFilter{CourseID: "CS100"})
		require.NoError(t, err)
		assert.Len(t, logs, n)
	})
}
