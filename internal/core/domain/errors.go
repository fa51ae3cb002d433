package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownMethod = errors.New("method not allowed")
)

// ValidationError carries field-keyed messages for input that failed a
// declared constraint.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (ve *ValidationError) Add(field, message string) {
	if ve.Fields == nil {
		ve.Fields = map[string][]string{}
	}

	ve.Fields[field] = append(ve.Fields[field], message)
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Fields) > 0
}

func (ve *ValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation error"
	}

	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(ve.Fields[k], ", ")))
	}

	return "validation error: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
