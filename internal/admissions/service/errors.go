package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden covers both tenant mismatches and policy denials. The
	// target exists, but the caller's tenant/role/ownership does not
	// satisfy policy.
	ErrForbidden = errors.New("service: forbidden")

	// ErrLeadNotFound, ErrApplicationNotFound and ErrTaskNotFound report an
	// absent or soft-deleted target. The two cases are deliberately
	// indistinguishable to callers.
	ErrLeadNotFound        = errors.New("service: lead not found")
	ErrApplicationNotFound = errors.New("service: application not found")
	ErrTaskNotFound        = errors.New("service: task not found")

	// ErrInvalidTransition reports a task status change the state machine
	// forbids.
	ErrInvalidTransition = errors.New("service: invalid status transition")
)

// FieldError names a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field failure found in a request, so callers
// get one round trip instead of one error per retry.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("service: validation failed")
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s: %s", f.Field, f.Message)
	}
	return b.String()
}

// validationCollector accumulates field errors during request validation.
type validationCollector struct {
	fields []FieldError
}

func (v *validationCollector) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// err returns the collected ValidationError, or nil if everything passed.
func (v *validationCollector) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
