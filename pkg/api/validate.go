package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation walks fields in declaration order, depth first, and stops at the
// first violation. Unknown fields are ignored.

// ValidateFunction checks raw against the Function shape.
func ValidateFunction(raw any) Result[Function] {
	fn, err := defaultDecoder.function(raw, "")
	if err != nil {
		return fail[Function](err)
	}
	return ok(fn)
}

// ValidateModule checks raw against the Module shape.
func ValidateModule(raw any) Result[Module] {
	m, err := defaultDecoder.module(raw, "")
	if err != nil {
		return fail[Module](err)
	}
	return ok(m)
}

// ValidateFunctionResult checks raw against the FunctionResult shape.
func ValidateFunctionResult(raw any) Result[FunctionResult] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[FunctionResult](err)
	}
	values, err := numberArray(obj, "", "return_value")
	if err != nil {
		return fail[FunctionResult](err)
	}
	return ok(FunctionResult{ReturnValue: values})
}

// ValidateModulesResponse checks raw against the module listing envelope.
// Module ids must be unique within the listing.
func ValidateModulesResponse(raw any) Result[ModulesResponse] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[ModulesResponse](err)
	}
	items, err := array(obj, "", "modules")
	if err != nil {
		return fail[ModulesResponse](err)
	}

	modules := make([]Module, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for i, item := range items {
		p := path("modules").index(i)
		m, err := defaultDecoder.module(item, p)
		if err != nil {
			return fail[ModulesResponse](err)
		}
		if seen[m.ID] {
			return fail[ModulesResponse](newValidationError(string(p.field("id")), "duplicate id"))
		}
		seen[m.ID] = true
		modules = append(modules, m)
	}
	return ok(ModulesResponse{Modules: modules})
}

// ValidateLoginResponse checks raw against the LoginResponse shape.
func ValidateLoginResponse(raw any) Result[LoginResponse] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[LoginResponse](err)
	}
	var resp LoginResponse
	if resp.JWT, err = str(obj, "", "jwt"); err != nil {
		return fail[LoginResponse](err)
	}
	if err := defaultDecoder.constrain(&resp, "", "JWT", "jwt"); err != nil {
		return fail[LoginResponse](err)
	}
	return ok(resp)
}

// ValidateCreditsResponse checks raw against the CreditsResponse shape.
func ValidateCreditsResponse(raw any) Result[CreditsResponse] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[CreditsResponse](err)
	}
	credits, err := integer(obj, "", "credits")
	if err != nil {
		return fail[CreditsResponse](err)
	}
	return ok(CreditsResponse{Credits: credits})
}

// ValidateDeployModuleResponse checks raw against the DeployModuleResponse shape.
func ValidateDeployModuleResponse(raw any) Result[DeployModuleResponse] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[DeployModuleResponse](err)
	}
	var resp DeployModuleResponse
	if resp.ModHash, err = str(obj, "", "mod_hash"); err != nil {
		return fail[DeployModuleResponse](err)
	}
	if err := defaultDecoder.constrain(&resp, "", "ModHash", "mod_hash"); err != nil {
		return fail[DeployModuleResponse](err)
	}
	return ok(resp)
}

// ValidateErrorResponse checks raw against the error envelope.
func ValidateErrorResponse(raw any) Result[ErrorResponse] {
	obj, err := object(raw, "")
	if err != nil {
		return fail[ErrorResponse](err)
	}
	var resp ErrorResponse
	if resp.Error, err = str(obj, "", "error"); err != nil {
		return fail[ErrorResponse](err)
	}
	if err := defaultDecoder.constrain(&resp, "", "Error", "error"); err != nil {
		return fail[ErrorResponse](err)
	}
	return ok(resp)
}

// Parse decodes a JSON document, keeping numbers exact, and validates it.
// Malformed JSON is reported as a violation of the root path.
func Parse[T any](data []byte, validate func(raw any) Result[T]) Result[T] {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fail[T](newValidationError("", fmt.Sprintf("invalid JSON: %v", err)))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fail[T](newValidationError("", "invalid JSON: unexpected data after document"))
	}

	return validate(raw)
}

type decoder struct {
	validate *validator.Validate
}

var defaultDecoder = newDecoder()

func newDecoder() *decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &decoder{validate: v}
}

func (d *decoder) function(raw any, p path) (Function, *ValidationError) {
	obj, err := object(raw, p)
	if err != nil {
		return Function{}, err
	}

	var fn Function
	if fn.Function, err = str(obj, p, "function"); err != nil {
		return Function{}, err
	}
	if err := d.constrain(&fn, p, "Function", "function"); err != nil {
		return Function{}, err
	}
	if fn.Signature, err = str(obj, p, "signature"); err != nil {
		return Function{}, err
	}
	if err := d.constrain(&fn, p, "Signature", "signature"); err != nil {
		return Function{}, err
	}
	return fn, nil
}

func (d *decoder) module(raw any, p path) (Module, *ValidationError) {
	obj, err := object(raw, p)
	if err != nil {
		return Module{}, err
	}

	var m Module
	if m.ID, err = integer(obj, p, "id"); err != nil {
		return Module{}, err
	}
	if m.ModuleHash, err = str(obj, p, "module_hash"); err != nil {
		return Module{}, err
	}

	items, err := array(obj, p, "functions")
	if err != nil {
		return Module{}, err
	}
	m.Functions = make([]Function, 0, len(items))
	for i, item := range items {
		fn, err := d.function(item, p.field("functions").index(i))
		if err != nil {
			return Module{}, err
		}
		m.Functions = append(m.Functions, fn)
	}
	return m, nil
}

// constrain runs the struct tag rules of a single, already decoded field.
func (d *decoder) constrain(obj any, p path, field, name string) *ValidationError {
	err := d.validate.StructPartial(obj, field)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return newValidationError(string(p.field(name)), constraintReason(fieldErrs[0]))
	}
	return newValidationError(string(p.field(name)), err.Error())
}

func constraintReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		if fe.Kind() == reflect.String {
			return "expected non-empty string"
		}
		return "required"
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

type path string

func (p path) field(name string) path {
	if p == "" {
		return path(name)
	}
	return p + "." + path(name)
}

func (p path) index(i int) path {
	return path(fmt.Sprintf("%s[%d]", p, i))
}

func object(raw any, p path) (map[string]any, *ValidationError) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, newValidationError(string(p), "expected object")
	}
	return obj, nil
}

func lookup(obj map[string]any, p path, key string) (any, *ValidationError) {
	v, ok := obj[key]
	if !ok {
		return nil, newValidationError(string(p.field(key)), "required")
	}
	return v, nil
}

func str(obj map[string]any, p path, key string) (string, *ValidationError) {
	v, err := lookup(obj, p, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", newValidationError(string(p.field(key)), "expected string")
	}
	return s, nil
}

func integer(obj map[string]any, p path, key string) (int64, *ValidationError) {
	v, err := lookup(obj, p, key)
	if err != nil {
		return 0, err
	}
	i, ok := toInt64(v)
	if !ok {
		return 0, newValidationError(string(p.field(key)), "expected integer")
	}
	return i, nil
}

func array(obj map[string]any, p path, key string) ([]any, *ValidationError) {
	v, err := lookup(obj, p, key)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, newValidationError(string(p.field(key)), "expected array")
	}
	return items, nil
}

func numberArray(obj map[string]any, p path, key string) ([]float64, *ValidationError) {
	items, err := array(obj, p, key)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(items))
	for i, item := range items {
		f, ok := toFloat64(item)
		if !ok {
			return nil, newValidationError(string(p.field(key).index(i)), "expected number")
		}
		values = append(values, f)
	}
	return values, nil
}

// toInt64 accepts integral numbers only; strings are never coerced.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func toFloat64(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
