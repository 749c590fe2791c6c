package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into the shape written by response.Error.
// Non AppError values become a generic 500.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		out := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if out.Status == 0 {
			out.Status = http.StatusInternalServerError
		}
		if exposeDetails && appErr.Err != nil {
			out.Details = appErr.Err.Error()
		}
		return out
	}

	out := HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
	if exposeDetails {
		out.Details = err.Error()
	}
	return out
}
