package record

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid record ID format")
	ErrEmptyBody      = errors.New("request body is required")
	ErrMissingFields  = errors.New("missing required fields")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrMissingQuery   = errors.New("search query is required")
	ErrInvalidData    = errors.New("invalid record data")
)

// MissingFieldsError lists required keys absent from a create request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

// ValidationError carries the per-field messages of a rejected record.
type ValidationError struct {
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range Fields {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+" "+msg)
		}
	}
	return fmt.Sprintf("%s: %s", ErrInvalidData, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidData
}

// StoreError wraps a failure of the underlying document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
