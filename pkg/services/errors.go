package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotOwner = errors.New("caller does not own this resource")
	// ErrShareNotFound covers absent, expired and consumed tokens alike so
	// the three cases are externally indistinguishable.
	ErrShareNotFound = errors.New("share link not found")
	ErrShareUsed     = errors.New("share already used")
)

// ApiError carries the HTTP status a failure maps to. Storage failures are
// wrapped with code 500 and never folded into not-found.
type ApiError struct {
	Err  error
	Code int
}

func (e *ApiError) Error() string {
	return e.Err.Error()
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func internalError(err error) *ApiError {
	return &ApiError{Err: err, Code: http.StatusInternalServerError}
}

func notFound(resource string) *ApiError {
	return &ApiError{Err: fmt.Errorf("%s not found", resource), Code: http.StatusNotFound}
}

func shareNotFound() *ApiError {
	return &ApiError{Err: ErrShareNotFound, Code: http.StatusNotFound}
}

func permissionDenied() *ApiError {
	return &ApiError{Err: ErrNotOwner, Code: http.StatusForbidden}
}

func validation(msg string) *ApiError {
	return &ApiError{Err: errors.New(msg), Code: http.StatusBadRequest}
}
