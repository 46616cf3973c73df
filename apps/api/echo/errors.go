package echoapi

import (
	"net/http"
	"net/url"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
)

const (
	errorPagePath       = "/error"
	msgPageNotFound     = "Page not found"
	msgSomethingWrong   = "Something went wrong!"
	msgUnknownPageError = "An unknown error occurred"
)

// apiError attaches the message shown on the error page to an error.
type apiError struct {
	message string
	err     error
}

func withMessage(err error, message string) error {
	return &apiError{message: message, err: err}
}

func (e *apiError) Error() string {
	if e.err == nil {
		return e.message
	}
	return e.message + ": " + e.err.Error()
}

func (e *apiError) Unwrap() error { return e.err }

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler sending every failure to the error page.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		message, serverErr := resolveError(err, translator)
		if serverErr {
			logger.Error(message, errors.Wrap(err, message), ctx.Request())

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		var rErr error
		if ctx.Request().URL.Path == errorPagePath {
			// the error page itself failed: redirecting would loop
			rErr = ctx.String(http.StatusInternalServerError, message)
		} else {
			q := url.Values{"message": {message}}
			rErr = ctx.Redirect(http.StatusFound, errorPagePath+"?"+q.Encode())
		}
		if rErr != nil {
			ctx.Echo().Logger.Error(rErr)
		}
	}
}

// resolveError picks the message shown to the user and reports whether err is a server error.
func resolveError(err error, translator ut.Translator) (string, bool) {
	if msg, ok := validationMessage(err, translator); ok {
		return msg, false
	}

	var httpErr *echo.HTTPError
	isHTTPErr := errors.As(err, &httpErr)
	serverErr := !isHTTPErr || httpErr.Code >= http.StatusInternalServerError

	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.message, serverErr
	}

	if isHTTPErr {
		switch httpErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return msgPageNotFound, false
		}
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			return msg, serverErr
		}
	}
	return msgSomethingWrong, serverErr
}

// validationMessage joins translated field errors as "field: error; field: error".
func validationMessage(err error, translator ut.Translator) (string, bool) {
	var flds []core.FieldError

	var vErrs validator.ValidationErrors
	var appErr *core.ValidationError
	switch {
	case errors.As(err, &vErrs):
		flds, _ = core.FieldErrors(vErrs, translator)
	case errors.As(err, &appErr):
		if len(appErr.Fields) == 0 {
			return appErr.Error(), true
		}
		flds = appErr.Fields
	default:
		return "", false
	}

	msgs := make([]string, 0, len(flds))
	for _, fe := range flds {
		msgs = append(msgs, fe.Field+": "+fe.Error)
	}
	return strings.Join(msgs, "; "), true
}
