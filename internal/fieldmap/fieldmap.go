// Package fieldmap extracts logical fields from loosely structured invoice
// objects. The remote API guarantees no fixed schema: the same attribute has
// appeared under several key spellings across revisions, may be nested, and
// may be absent or empty. Callers give an ordered list of candidate paths and
// a fallback; absence is expected, never an error.
package fieldmap

import (
	"fmt"
	"math"
	"strings"
)

// Pick returns the first candidate path whose resolved value is present,
// non-nil and non-blank after string conversion, or fallback otherwise.
// Paths are dot-separated for nested object access ("buyer.name").
func Pick(obj map[string]any, paths []string, fallback string) string {
	for _, path := range paths {
		value, ok := resolve(obj, path)
		if !ok || value == nil {
			continue
		}
		s := Stringify(value)
		if strings.TrimSpace(s) == "" {
			continue
		}
		return s
	}
	return fallback
}

// PickRaw returns the first candidate path that resolves to a non-nil value,
// without string conversion. Used for structured values such as line items.
func PickRaw(obj map[string]any, paths []string) (any, bool) {
	for _, path := range paths {
		value, ok := resolve(obj, path)
		if ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// Unwrap tolerates the historical container shapes an invoice payload has
// arrived in: a bare object, a one-element array, or an {invoice: ...}
// wrapper. Anything else yields an empty object.
func Unwrap(parsed any) map[string]any {
	switch v := parsed.(type) {
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return obj
			}
		}
		return map[string]any{}
	case map[string]any:
		if inner, ok := v["invoice"].(map[string]any); ok {
			return inner
		}
		return v
	default:
		return map[string]any{}
	}
}

// Stringify converts a JSON-decoded scalar to its display string. Floats
// with no fractional part print as integers, since encoding/json decodes
// every JSON number to float64.
func Stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func resolve(obj map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = obj
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
