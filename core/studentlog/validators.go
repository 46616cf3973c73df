package studentlog

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studentlogs/core"
)

var (
	uvuIDTag   = "uvuid"
	uvuIDText  = "{0} must be exactly 8 digits"
	uvuIDRegex = regexp.MustCompile(`^[0-9]{8}$`)
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(uvuIDTag, uvuIDValidation)
	core.RegisterCustomTranslation(validate, translator, uvuIDTag, uvuIDText)
}

// uvuIDValidation only allows student identifiers made of exactly 8 digits.
func uvuIDValidation(fl validator.FieldLevel) bool {
	return uvuIDRegex.MatchString(fl.Field().String())
}
