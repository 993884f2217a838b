package types

import (
	"net/http"

	"github.com/doc-studio/engine/pkg/errors"
)

// HTTPStatus maps an application error code to its HTTP status.
func HTTPStatus(code errors.Code) int {
	switch code {
	case errors.CodeInvalid:
		return http.StatusBadRequest
	case errors.CodeUnauthorized:
		return http.StatusUnauthorized
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeConflict:
		return http.StatusConflict
	case errors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromAppError converts any error into a status code and response envelope.
// Non-application errors collapse into an opaque internal error so driver
// details never leak to clients.
func FromAppError(err error) (int, APIResponse) {
	code := errors.CodeOf(err)
	msg := "internal server error"
	if code != errors.CodeUnknown && code != errors.CodeInternal {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
	}
	if code == errors.CodeUnknown {
		code = errors.CodeInternal
	}
	return HTTPStatus(code), Fail(string(code), msg)
}
