// Package apperror defines the domain errors shared by every layer.
//
// The service and repository layers return these values; only the HTTP
// handler knows how they map to status codes. Callers match them with
// errors.Is (against the sentinels) or errors.As (to read Message/Field).
package apperror

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// Validation reasons. They tell a client WHY a field was rejected without
// it having to parse the human-readable message.
const (
	ReasonMissingField = "missing_field"
	ReasonInvalidType  = "invalid_type"
	ReasonInvalidValue = "invalid_value"
)

type AppError struct {
	Err     error  // sentinel, one of the Err* values above
	Message string // human-readable error message
	Field   string // optional: field causing the error
	Reason  string // optional: machine-readable validation reason
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, strconv.Itoa(id)),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
		Reason:  ReasonInvalidValue,
	}
}

// MissingField reports a required field that was absent (or blank).
func MissingField(field string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("missing required field: %s", field),
		Field:   field,
		Reason:  ReasonMissingField,
	}
}

// InvalidType reports a field whose JSON type doesn't match the schema,
// e.g. {"name": 42}.
func InvalidType(field, want string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("field %s must be a %s", field, want),
		Field:   field,
		Reason:  ReasonInvalidType,
	}
}
