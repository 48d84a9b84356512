package errors

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// Code identifies a server-side failure reported through the error envelope.
type Code string

const (
	CodeUnknown              Code = "unknown"
	CodeServerError          Code = "server_error"
	CodeInvalidCredentials   Code = "invalid_credentials"
	CodeDuplicateUsername    Code = "duplicate_username"
	CodeUnauthorized         Code = "unauthorized"
	CodeNotFound             Code = "not_found"
	CodeDuplicateDeployment  Code = "duplicate_deployment"
	CodeInvalidWasmBase64    Code = "invalid_wasm_base64"
	CodeUnimplementedType    Code = "unimplemented_wasm_type"
	CodeEndpointNotFound     Code = "endpoint_not_found"
	CodeFunctionNotFound     Code = "function_not_found"
	CodeTypeConversion       Code = "type_conversion"
	CodeWrongParameterType   Code = "wrong_parameter_type"
	CodeInvalidSignature     Code = "invalid_signature"
	CodeInvalidWasmModule    Code = "invalid_wasm_module"
	CodeInsufficientCredits  Code = "insufficient_credits"
	CodePasswordTooShort     Code = "password_too_short"
	CodePasswordTooWeak      Code = "password_too_weak"
	CodeJwtSignatureFailure  Code = "jwt_signature_failure"
	CodeWasmInstanceCreation Code = "wasm_instance"
)

// APIError is a classified `{"error": "..."}` envelope returned by the API.
type APIError struct {
	Code    Code
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s:%d] %s", e.Code, e.Status, e.Message)
}

// Is maps API codes onto the local sentinels so callers can share one check.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrFunctionNotFound:
		return e.Code == CodeFunctionNotFound
	case ErrModuleNotFound:
		return e.Code == CodeEndpointNotFound
	case ErrInvalidSignature:
		return e.Code == CodeInvalidSignature
	case ErrUnsupportedType:
		return e.Code == CodeUnimplementedType
	case ErrWrongParameterType:
		return e.Code == CodeWrongParameterType || e.Code == CodeTypeConversion
	case ErrInvalidModule:
		return e.Code == CodeInvalidWasmModule
	}
	return false
}

type apiErrorRule struct {
	code    Code
	status  int
	pattern *regexp.Regexp
}

// Order matters: the generic "<uri> not found" rule must come last among 404s.
var apiErrorRules = []apiErrorRule{
	{CodeInvalidCredentials, http.StatusBadRequest, regexp.MustCompile(`^invalid credentials$`)},
	{CodeDuplicateUsername, http.StatusBadRequest, regexp.MustCompile(`^duplicate username$`)},
	{CodeUnauthorized, http.StatusUnauthorized, regexp.MustCompile(`^unauthorized$`)},
	{CodeServerError, http.StatusInternalServerError, regexp.MustCompile(`^server error$`)},
	{CodeDuplicateDeployment, http.StatusBadRequest, regexp.MustCompile(`^duplicate deployment$`)},
	{CodeInvalidWasmBase64, http.StatusBadRequest, regexp.MustCompile(`^invalid wasm code base64$`)},
	{CodeUnimplementedType, http.StatusBadRequest, regexp.MustCompile(`^unimplemented wasm type$`)},
	{CodeTypeConversion, http.StatusBadRequest, regexp.MustCompile(`^type conversion failed on parameters$`)},
	{CodeWrongParameterType, http.StatusBadRequest, regexp.MustCompile(`^expected type \S+ but got type \S+$`)},
	{CodeInvalidSignature, http.StatusBadRequest, regexp.MustCompile(`^signature .* is invalid$`)},
	{CodeInvalidWasmModule, http.StatusBadRequest, regexp.MustCompile(`^invalid wasm module$`)},
	{CodeInsufficientCredits, http.StatusPaymentRequired, regexp.MustCompile(`^insufficient credits$`)},
	{CodePasswordTooShort, http.StatusBadRequest, regexp.MustCompile(`^password too short$`)},
	{CodePasswordTooWeak, http.StatusBadRequest, regexp.MustCompile(`^password too weak$`)},
	{CodeJwtSignatureFailure, http.StatusInternalServerError, regexp.MustCompile(`^failed to sign token$`)},
	{CodeEndpointNotFound, http.StatusNotFound, regexp.MustCompile(`^endpoint -?\d+ not found$`)},
	{CodeFunctionNotFound, http.StatusNotFound, regexp.MustCompile(`^function .+ not found$`)},
	{CodeNotFound, http.StatusNotFound, regexp.MustCompile(`not found$`)},
}

// NewAPIError classifies an error envelope message received with the given
// HTTP status. Unrecognised messages keep the status and get CodeUnknown,
// except bad requests, which the server uses for wasm instantiation failures.
func NewAPIError(status int, message string) *APIError {
	for _, rule := range apiErrorRules {
		if rule.status == status && rule.pattern.MatchString(message) {
			return &APIError{Code: rule.code, Status: status, Message: message}
		}
	}

	code := CodeUnknown
	if status == http.StatusBadRequest {
		code = CodeWasmInstanceCreation
	}
	return &APIError{Code: code, Status: status, Message: message}
}

// IsAPICode reports whether err carries an APIError with the given code.
func IsAPICode(err error, code Code) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
