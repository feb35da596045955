package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a decode failure.
type Kind int

const (
	// MissingField means a required field is absent.
	MissingField Kind = iota + 1
	// TypeMismatch means a field is present but holds the wrong kind of value, null included.
	TypeMismatch
	// EnumViolation means a value is not one of the permitted literals of a closed enumeration.
	EnumViolation
	// LiteralViolation means a fixed-value field differs from its mandated constant.
	LiteralViolation
	// UnknownField means an object carries a key the schema does not declare.
	// It is only reported with UnknownFieldsReject.
	UnknownField
	// VectorMismatch means a CVSS metric disagrees with the vectorString of the same block.
	// It is only reported with Options.VerifyVectors.
	VectorMismatch
)

var kindNames = map[Kind]string{
	MissingField:     "MissingField",
	TypeMismatch:     "TypeMismatch",
	EnumViolation:    "EnumViolation",
	LiteralViolation: "LiteralViolation",
	UnknownField:     "UnknownField",
	VectorMismatch:   "VectorMismatch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error reports the first violation found while decoding.
type Error struct {
	Kind Kind
	// Path locates the offending field, e.g. CVE_Items[3].impact.baseMetricV3.cvssV3.attackVector.
	// It is empty when the input root itself is at fault.
	Path string
	// Expected describes the constraint: a type name, a literal or a vector metric.
	Expected string
	// Allowed lists the permitted values of an EnumViolation or the declared keys of an UnknownField.
	Allowed []string
	// Actual is the observed value; nil for MissingField.
	Actual any
}

func (e *Error) Error() string {
	p := e.Path
	if p == "" {
		p = "<root>"
	}

	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s at %s: required field is absent", e.Kind, p)
	case EnumViolation:
		return fmt.Sprintf("%s at %s: expected one of [%s], got %s",
			e.Kind, p, strings.Join(e.Allowed, " "), describe(e.Actual))
	case UnknownField:
		return fmt.Sprintf("%s at %s: field is not declared by the schema", e.Kind, p)
	}
	return fmt.Sprintf("%s at %s: expected %s, got %s", e.Kind, p, e.Expected, describe(e.Actual))
}

// IsKind reports whether err, or any error it wraps, is a decode error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func missingField(p path) *Error {
	return &Error{Kind: MissingField, Path: p.String()}
}

func typeMismatch(p path, expected string, actual any) *Error {
	return &Error{Kind: TypeMismatch, Path: p.String(), Expected: expected, Actual: actual}
}

// describe renders an observed value for error messages.
func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return "boolean " + strconv.FormatBool(v)
	case map[string]any, map[any]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := number(v); ok {
		return fmt.Sprintf("number %v", v)
	}
	return fmt.Sprintf("%T", v)
}
