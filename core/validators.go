package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	requiredTag  = "required"
	requiredText = "this field is required"

	noSpaceTag  = "nospace"
	noSpaceText = "{0} must not contain whitespace"

	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
)

// NewTranslator returns the english translator used to render validation errors.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(noSpaceTag, noSpaceValidation)
	RegisterCustomTranslation(validate, translator, noSpaceTag, noSpaceText)
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// `{0}` in text is replaced by the field name.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors flattens validation errors into FieldErrors, in struct field order.
func FieldErrors(err error, translator ut.Translator) ([]FieldError, bool) {
	switch vErr := err.(type) {
	case validator.ValidationErrors:
		flds := make([]FieldError, 0, len(vErr))
		for _, fe := range vErr {
			flds = append(flds, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
		}
		return flds, true
	case *ValidationError:
		return vErr.Fields, true
	}
	return nil, false
}

// Custom Global Validators

// noSpaceValidation rejects values holding any whitespace.
func noSpaceValidation(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
}

// notBlankValidation rejects values made of whitespace only. The value itself is kept untouched.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
