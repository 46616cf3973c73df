package studentlog

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NewServiceMock returns a Service stamping dates from `now` with the default layout in UTC.
func NewServiceMock(repo Repository, validate *validator.Validate, now func() time.Time) Service {
	return &service{
		repo:       repo,
		validate:   validate,
		dateLayout: DefaultDateLayout,
		location:   time.UTC,
		now:        now,
		newID:      uuid.NewString,
	}
}
