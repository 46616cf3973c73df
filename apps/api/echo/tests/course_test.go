package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/tests"
)

func Test_courseApi_query(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{name: "empty", path: "/api/v1/courses", wantData: marchallList(t)},
	})

	cs := testutil.CreateCourse(t, app.stores.Courses, "CS4690", "DevOps")
	math := testutil.CreateCourse(t, app.stores.Courses, "MATH1210", "Calculus I")

	runHTTPTests(t, app, []httpTest{
		{name: "all", path: "/api/v1/courses", wantData: marchallList(t, cs, math)},
		{name: "trailing slash", path: "/api/v1/courses/", wantData: marchallList(t, cs, math)},
	})
}

func Test_courseApi_create(t *testing.T) {
	app := setup(t)

	cs := course.Course{ID: "CS4690", Display: "DevOps"}

	runHTTPTests(t, app, []httpTest{
		{
			name: "created", method: http.MethodPost, path: "/api/v1/courses",
			body: marchallObj(t, cs), wantCode: http.StatusCreated, wantData: marchallObj(t, cs),
		},
		{
			name: "trimmed", method: http.MethodPost, path: "/api/v1/courses",
			body:     []byte(`{"id": " MATH1210 ", "display": " Calculus I "}`),
			wantCode: http.StatusCreated, wantData: []byte(`{"id": "MATH1210", "display": "Calculus I"}`),
		},
		{
			name: "duplicate id", method: http.MethodPost, path: "/api/v1/courses", body: marchallObj(t, cs),
			wantMessage: "id: a course with this id already exists",
		},
		{
			name: "missing display", method: http.MethodPost, path: "/api/v1/courses", body: []byte(`{"id": "CS1400"}`),
			wantMessage: "display: this field is required",
		},
		{
			name: "missing everything", method: http.MethodPost, path: "/api/v1/courses", body: []byte(`{}`),
			wantMessage: "id: this field is required; display: this field is required",
		},
		{
			name: "id with whitespace", method: http.MethodPost, path: "/api/v1/courses",
			body:        []byte(`{"id": "CS 1400", "display": "Fundamentals"}`),
			wantMessage: "id: id must not contain whitespace",
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/api/v1/courses", body: []byte(`{"id": `),
			wantMessage: "Error creating course",
		},
	})

	// created exactly once
	courses, err := app.stores.Courses.QueryAllCourses(context.Background())
	if err != nil {
		t.Fatalf("QueryAllCourses(): %v", err)
	}
	if len(courses) != 2 || courses[0] != cs {
		t.Errorf("failed! courses = %v", courses)
	}
}
