package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studentlogs/core"
)

// Course is a named category student logs are filed under.
type Course struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	ID      string `json:"id" validate:"required,nospace,max=64"`
	Display string `json:"display" validate:"required,max=255"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.ID = core.CleanString(nc.ID)
	nc.Display = core.CleanString(nc.Display)
	return validate.Struct(nc)
}
