package testutil

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
)

// NewValidator returns a validator set up the way the apps set it up.
func NewValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	studentlog.InitValidators(validate, translator)
	return validate
}

func CreateCourse(t *testing.T, repo course.Repository, id, display string) course.Course {
	t.Helper()
	crs, err := repo.CreateCourse(context.Background(), course.Course{ID: id, Display: display})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateLog(t *testing.T, repo studentlog.Repository, courseID, uvuID, text string, date ...string) studentlog.Log {
	t.Helper()
	lg := studentlog.Log{
		ID:       uuid.NewString(),
		CourseID: courseID,
		UvuID:    uvuID,
		Date:     "1/2/2024, 3:04:05 PM",
		Text:     text,
	}
	if len(date) > 0 {
		lg.Date = date[0]
	}
	lg, err := repo.CreateLog(context.Background(), lg)
	if err != nil {
		t.Fatalf("CreateLog() failed: %v", err)
	}
	return lg
}
