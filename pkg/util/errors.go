// Package util provides logging, error types and the small arithmetic helpers
// shared by the fabric builders.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to one of these so callers
// can classify failures with errors.Is.
var (
	ErrCapacity           = errors.New("no free identifiers left")
	ErrLookup             = errors.New("referenced resource not defined")
	ErrMalformed          = errors.New("malformed input")
	ErrAmbiguousPolicy    = errors.New("ambiguous policy")
	ErrPreconditionFailed = errors.New("precondition not met")
	ErrValidationFailed   = errors.New("validation failed")
)

// CapacityError is returned when more objects need an identifier than the
// reserved range has free values left.
type CapacityError struct {
	Device    string
	Class     string
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: not enough free %s identifiers (need %d, %d free)",
		e.Device, e.Class, e.Requested, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}

// NewCapacityError creates a capacity error for one allocation domain
func NewCapacityError(device, class string, requested, available int) *CapacityError {
	return &CapacityError{
		Device:    device,
		Class:     class,
		Requested: requested,
		Available: available,
	}
}

// LookupError lists every identifier of one kind that is referenced but not
// defined within a scope (usually a device).
type LookupError struct {
	Kind    string
	Scope   string
	Missing []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s not defined: %s", e.Scope, e.Kind, strings.Join(e.Missing, ", "))
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// NewLookupError creates a lookup error
func NewLookupError(kind, scope string, missing ...string) *LookupError {
	return &LookupError{
		Kind:    kind,
		Scope:   scope,
		Missing: missing,
	}
}

// MalformedError marks input that cannot be interpreted at all. A build that
// hits one stops without emitting output.
type MalformedError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", e.Field, e.Value, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// NewMalformedError creates a malformed input error
func NewMalformedError(field, value, reason string) *MalformedError {
	return &MalformedError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// AmbiguousPolicyError is reported when one filter direction combines an
// explicit prefix list with the "any" or "default" keywords.
type AmbiguousPolicyError struct {
	Policy    string
	Direction string
	Combined  []string
}

func (e *AmbiguousPolicyError) Error() string {
	return fmt.Sprintf("%s %s: allow combines %s, only one may be used",
		e.Policy, e.Direction, strings.Join(e.Combined, " and "))
}

func (e *AmbiguousPolicyError) Unwrap() error {
	return ErrAmbiguousPolicy
}

// PreconditionError represents a failed precondition check with context
type PreconditionError struct {
	Operation    string
	Resource     string
	Precondition string
	Details      string
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("precondition failed for %s on %s: %s", e.Operation, e.Resource, e.Precondition)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(operation, resource, precondition, details string) *PreconditionError {
	return &PreconditionError{
		Operation:    operation,
		Resource:     resource,
		Precondition: precondition,
		Details:      details,
	}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder accumulates findings so a check can report every problem
// instead of stopping at the first.
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Messages returns a copy of the accumulated messages
func (v *ValidationBuilder) Messages() []string {
	return append([]string(nil), v.errors...)
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
