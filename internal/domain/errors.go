package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("resource conflict")
)

// RequestError is a client input failure carried with the exact message the
// API returns in the 400 response body.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// BadRequest builds a RequestError with the given response message.
func BadRequest(message string) error {
	return &RequestError{Message: message}
}

// ConflictError is a unique-field collision carried with the message naming
// which field collided. It matches ErrConflict under errors.Is.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Conflict builds a ConflictError with the given response message.
func Conflict(message string) error {
	return &ConflictError{Message: message}
}
