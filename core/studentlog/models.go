package studentlog

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studentlogs/core"
)

// DefaultDateLayout matches what browsers render for `new Date().toLocaleString()` in en-US.
const DefaultDateLayout = "1/2/2006, 3:04:05 PM"

// Log is a timestamped free-text note tied to a course and a student.
type Log struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	UvuID    string `json:"uvuId"`
	Date     string `json:"date"`
	Text     string `json:"text"`
}

// NewLog contains information needed to create a new Log.
// ID and Date are always set by the server.
type NewLog struct {
	CourseID string `json:"courseId" validate:"required,nospace,max=64"`
	UvuID    string `json:"uvuId" validate:"required,uvuid"`
	Text     string `json:"text" validate:"required,notblank"`
}

func (nl *NewLog) Validate(validate *validator.Validate) error {
	nl.CourseID = core.CleanString(nl.CourseID)
	nl.UvuID = core.CleanString(nl.UvuID)
	return validate.Struct(nl)
}

// QueryFilter narrows a log listing. Empty fields match everything; values are compared as sent.
type QueryFilter struct {
	CourseID string `query:"courseId"`
	UvuID    string `query:"uvuId"`
}

// Match reports whether lg satisfies every set field of the filter (exact match).
func (qf QueryFilter) Match(lg Log) bool {
	if qf.CourseID != "" && lg.CourseID != qf.CourseID {
		return false
	}
	if qf.UvuID != "" && lg.UvuID != qf.UvuID {
		return false
	}
	return true
}
