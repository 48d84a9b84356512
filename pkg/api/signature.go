package api

import (
	"fmt"
	"strings"

	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
)

// ValueType is a WebAssembly numeric value type as written in signatures.
type ValueType string

const (
	I32 ValueType = "i32"
	I64 ValueType = "i64"
	F32 ValueType = "f32"
	F64 ValueType = "f64"
)

func (t ValueType) String() string {
	return string(t)
}

// IsInteger reports whether values of t must be integral.
func (t ValueType) IsInteger() bool {
	return t == I32 || t == I64
}

// ParseValueType validates a single type name.
func ParseValueType(s string) (ValueType, error) {
	switch t := ValueType(s); t {
	case I32, I64, F32, F64:
		return t, nil
	}
	return "", wberrors.WithDetails(wberrors.ErrUnsupportedType, fmt.Sprintf("type %q", s))
}

// Signature is the parsed form of a function signature such as "i32,f32->i32".
type Signature struct {
	Params  []ValueType
	Results []ValueType
}

// ParseSignature parses "<params>-><results>" where each side is a comma
// separated, possibly empty, list of value types.
func ParseSignature(s string) (Signature, error) {
	params, results, found := strings.Cut(s, "->")
	if !found {
		return Signature{}, wberrors.WithDetails(wberrors.ErrInvalidSignature, fmt.Sprintf("signature %q", s))
	}

	var sig Signature
	var err error
	if sig.Params, err = parseTypeList(params); err != nil {
		return Signature{}, err
	}
	if sig.Results, err = parseTypeList(results); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

func parseTypeList(s string) ([]ValueType, error) {
	types := []ValueType{}
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		t, err := ParseValueType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (s Signature) String() string {
	return joinTypes(s.Params) + "->" + joinTypes(s.Results)
}

func joinTypes(types []ValueType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// ParsedSignature parses the function's textual signature.
func (f Function) ParsedSignature() (Signature, error) {
	return ParseSignature(f.Signature)
}
