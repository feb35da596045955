package decode

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// path is a field locator such as CVE_Items[3].impact.baseMetricV3.
type path string

func (p path) field(name string) path {
	if p == "" {
		return path(name)
	}
	return p + "." + path(name)
}

func (p path) index(i int) path {
	return p + path("["+strconv.Itoa(i)+"]")
}

func (p path) String() string {
	return string(p)
}

// object reads the fields of one JSON object. The first failure sticks:
// once err is set, every later read is a no-op returning the zero value.
type object struct {
	fields map[string]any
	path   path
	err    error
}

// object opens v as a JSON object declaring the given keys.
func (d *Decoder) object(v any, p path, keys []string) *object {
	o := &object{path: p}

	switch m := v.(type) {
	case map[string]any:
		o.fields = m
	case map[any]any:
		// yaml.v2 trees
		o.fields = make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				o.err = typeMismatch(p, "object", v)
				return o
			}
			o.fields[key] = val
		}
	default:
		o.err = typeMismatch(p, "object", v)
		return o
	}

	if d.opts.UnknownFields == UnknownFieldsReject {
		names := lo.Keys(o.fields)
		sort.Strings(names)
		for _, name := range names {
			if !lo.Contains(keys, name) {
				o.err = &Error{
					Kind:    UnknownField,
					Path:    p.field(name).String(),
					Allowed: keys,
					Actual:  o.fields[name],
				}
				return o
			}
		}
	}
	return o
}

// field decodes a required key with fn.
func field[T any](o *object, key string, fn func(any, path) (T, error)) T {
	var zero T
	if o.err != nil {
		return zero
	}

	p := o.path.field(key)
	v, ok := o.fields[key]
	if !ok {
		o.err = missingField(p)
		return zero
	}

	t, err := fn(v, p)
	if err != nil {
		o.err = err
		return zero
	}
	return t
}

// optional decodes a key that may be absent. A present null is still a TypeMismatch.
func optional[T any](o *object, key string, fn func(any, path) (T, error)) *T {
	if o.err != nil {
		return nil
	}
	if _, ok := o.fields[key]; !ok {
		return nil
	}

	t := field(o, key, fn)
	if o.err != nil {
		return nil
	}
	return &t
}

// enum decodes a string restricted to a closed set of values.
func enum[T ~string](o *object, key string, allowed []T) T {
	return field(o, key, func(v any, p path) (T, error) {
		s, err := asString(v, p)
		if err != nil {
			return "", err
		}
		if !lo.Contains(allowed, T(s)) {
			return "", &Error{
				Kind:    EnumViolation,
				Path:    p.String(),
				Allowed: lo.Map(allowed, func(a T, _ int) string { return string(a) }),
				Actual:  s,
			}
		}
		return T(s), nil
	})
}

// literal decodes a string that must equal want exactly.
func literal[T ~string](o *object, key string, want T) T {
	return field(o, key, func(v any, p path) (T, error) {
		s, err := asString(v, p)
		if err != nil {
			return "", err
		}
		if s != string(want) {
			return "", &Error{
				Kind:     LiteralViolation,
				Path:     p.String(),
				Expected: strconv.Quote(string(want)),
				Actual:   s,
			}
		}
		return want, nil
	})
}

// listOf lifts an element decoder to a JSON array decoder. The result is never nil.
func listOf[T any](fn func(any, path) (T, error)) func(any, path) ([]T, error) {
	return func(v any, p path) ([]T, error) {
		items, err := asArray(v, p)
		if err != nil {
			return nil, err
		}

		decoded := make([]T, 0, len(items))
		for i, item := range items {
			t, err := fn(item, p.index(i))
			if err != nil {
				return nil, err
			}
			decoded = append(decoded, t)
		}
		return decoded, nil
	}
}

// oneOrMany accepts either a single element or an array of them and always yields a slice.
func oneOrMany[T any](fn func(any, path) (T, error)) func(any, path) ([]T, error) {
	return func(v any, p path) ([]T, error) {
		if _, ok := v.([]any); ok {
			return listOf(fn)(v, p)
		}
		t, err := fn(v, p)
		if err != nil {
			return nil, err
		}
		return []T{t}, nil
	}
}

func asString(v any, p path) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(p, "string", v)
	}
	return s, nil
}

func asBool(v any, p path) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeMismatch(p, "boolean", v)
	}
	return b, nil
}

func asNumber(v any, p path) (float64, error) {
	n, ok := number(v)
	if !ok {
		return 0, typeMismatch(p, "number", v)
	}
	return n, nil
}

func asArray(v any, p path) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, typeMismatch(p, "array", v)
	}
	return items, nil
}

// asNumeric accepts a number or a string holding a decimal number.
// The 1.x feed headers carry their version and count as strings, e.g. "4.0".
func asNumeric(v any, p path) (float64, error) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, typeMismatch(p, "number", v)
		}
		return n, nil
	}
	return asNumber(v, p)
}

func asCount(v any, p path) (int, error) {
	n, err := asNumeric(v, p)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt) rounds up to 2^63 on 64-bit platforms, so the bound is exclusive
	if n != math.Trunc(n) || n < 0 || n >= math.MaxInt {
		return 0, typeMismatch(p, "non-negative integer", v)
	}
	return int(n), nil
}

// number normalizes the numeric kinds produced by encoding/json, jstream and the YAML decoders.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
