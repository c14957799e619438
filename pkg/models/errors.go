package models

import "fmt"

// MissingFieldError is returned when a required key is absent while decoding a record
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

// InvalidEnumValueError is returned when a value falls outside a closed vocabulary
type InvalidEnumValueError struct {
	Type  string
	Field string
	Value string
}

func (e *InvalidEnumValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s value %q", e.Type, e.Value)
	}
	return fmt.Sprintf("%s: invalid %s value %q", e.Field, e.Type, e.Value)
}

// ValidationError represents a record invariant violation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
