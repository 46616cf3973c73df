package course

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
	ErrExists   = errors.New("a course with this id already exists")
)

type (
	Repository interface {
		// CreateCourse stores a new Course. It returns ErrExists if the ID is taken.
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryAllCourses returns every Course in storage order.
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		QueryAll(ctx context.Context) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate) Service {
	return &service{repo: repo, validate: validate}
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	crs, err := svc.repo.CreateCourse(ctx, Course{ID: nc.ID, Display: nc.Display})
	if err != nil {
		if errors.Is(err, ErrExists) {
			return Course{}, core.NewValidationError(err, core.FieldError{Field: "id", Error: err.Error()})
		}
		return Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []Course{}
	}
	return courses, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, core.CleanString(id))
}
