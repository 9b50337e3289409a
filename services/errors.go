package services

import (
	"errors"
	"net/http"

	"github.com/prepwise/prepwise_api/models"
)

// Error is a failure the HTTP layer reports to the client verbatim.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(msg string) *Error   { return &Error{Code: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Code: http.StatusUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Code: http.StatusForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Code: http.StatusNotFound, Message: msg} }

// StatusOf returns the HTTP status carried by err, or 0 when err is not a client error.
func StatusOf(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return 0
}
