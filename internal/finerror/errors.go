// Package finerror defines the error types surfaced by the assistant and the
// front-ends. Heuristic extraction never produces errors (it degrades to
// defaults); these types cover record validation and classification failures.
package finerror

import "fmt"

// ValidationError reports a rejected record field (negative amount, empty
// name, out-of-range percentage).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ClassificationError reports a failure inside a category predictor. Callers
// downgrade to the keyword-only path when they see one.
type ClassificationError struct {
	Predictor string
	Err       error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed using %s: %v", e.Predictor, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed value in structured input, such as a CSV row
// or a console command segment.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s=%q: %v", e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
