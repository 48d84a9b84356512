package api

import (
	"fmt"

	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
)

// ValidationError describes the first field of a payload that does not match
// its schema. Path uses JSON field names, e.g. "modules[0].functions[2].signature";
// an empty path refers to the payload itself.
type ValidationError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func newValidationError(path, reason string) *ValidationError {
	return &ValidationError{Path: path, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid payload: %s", e.Reason)
	}
	return fmt.Sprintf("invalid payload: %s: %s", e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return wberrors.ErrInvalidPayload
}

// Result is the outcome of validating a payload: either a typed value or the
// violation that rejected it.
type Result[T any] struct {
	Value T
	Err   *ValidationError
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap converts the result to the usual value/error pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err *ValidationError) Result[T] {
	return Result[T]{Err: err}
}
