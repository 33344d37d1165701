// Package validate checks inbound payloads before they reach a store and
// reports problems as field-level records suitable for surfacing verbatim to
// clients.
package validate

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Error codes attached to FieldError records.
const (
	CodeRequired    = "required"
	CodeInvalidUUID = "invalid_uuid"
	CodeInvalidBool = "invalid_bool"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Result accumulates field errors for one payload.
type Result struct {
	errs []FieldError
}

func (r *Result) Valid() bool {
	return len(r.errs) == 0
}

func (r *Result) Errors() []FieldError {
	return r.errs
}

func (r *Result) Add(field, message, code string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: message, Code: code})
}

// RequireUUID records an error when value is missing or not a UUID. The
// parsed id is only meaningful when the result is still valid.
func (r *Result) RequireUUID(field, value string) uuid.UUID {
	if value == "" {
		r.Add(field, fmt.Sprintf("%s is required", field), CodeRequired)
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		r.Add(field, fmt.Sprintf("%s is not a valid id", field), CodeInvalidUUID)
		return uuid.Nil
	}
	return id
}

// OptionalUUID parses value when present; empty means absent, not invalid.
func (r *Result) OptionalUUID(field, value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		r.Add(field, fmt.Sprintf("%s is not a valid id", field), CodeInvalidUUID)
		return nil
	}
	return &id
}

// OptionalBool coerces value into a bool when present. Booleans pass through;
// strings are parsed so clients sending "true"/"false" are accepted. Anything
// else is an error.
func (r *Result) OptionalBool(field string, value any) *bool {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case bool:
		return &v
	case string:
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.Add(field, fmt.Sprintf("%s is not a valid boolean", field), CodeInvalidBool)
			return nil
		}
		return &b
	default:
		r.Add(field, fmt.Sprintf("%s is not a valid boolean", field), CodeInvalidBool)
		return nil
	}
}
