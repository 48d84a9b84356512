package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")

	ErrInvalidSignature = errors.New("invalid function signature")
	ErrUnsupportedType  = errors.New("unsupported wasm value type")

	ErrInvalidModule      = errors.New("invalid wasm module")
	ErrFunctionNotFound   = errors.New("function not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrWrongParameterType = errors.New("wrong parameter type")
	ErrExecution          = errors.New("function execution failed")

	ErrInvalidManifest = errors.New("invalid workspace manifest")
	ErrSessionNotFound = errors.New("session entry not found")
)

func WithDetails(err error, details string) error {
	return fmt.Errorf("%s: %w", details, err)
}

func IsInvalidPayload(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrFunctionNotFound) || errors.Is(err, ErrModuleNotFound) || errors.Is(err, ErrSessionNotFound)
}
