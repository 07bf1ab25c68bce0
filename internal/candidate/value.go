package candidate

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// Kind tags the dynamic type of a payload field.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single field probed out of an untrusted payload.
// The zero Value is absent.
type Value struct {
	kind Kind
	raw  any
}

// ValueOf classifies v. Slices and string-keyed maps of any element type are
// widened to []any and map[string]any so callers only deal with one form.
func ValueOf(v any) Value {
	switch typed := v.(type) {
	case nil:
		return Value{kind: KindNull}
	case string:
		return Value{kind: KindString, raw: typed}
	case bool:
		return Value{kind: KindBool, raw: typed}
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return Value{kind: KindNumber, raw: typed}
	case []any:
		return Value{kind: KindList, raw: typed}
	case map[string]any:
		return Value{kind: KindMap, raw: typed}
	case Record:
		return Value{kind: KindMap, raw: map[string]any(typed)}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return Value{kind: KindList, raw: items}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{kind: KindUnknown, raw: v}
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return Value{kind: KindMap, raw: m}
	case reflect.Pointer:
		if rv.IsNil() {
			return Value{kind: KindNull}
		}
		return ValueOf(rv.Elem().Interface())
	default:
		return Value{kind: KindUnknown, raw: v}
	}
}

func lookup(m map[string]any, key string) Value {
	if m == nil {
		return Value{}
	}
	v, ok := m[key]
	if !ok {
		return Value{}
	}
	return ValueOf(v)
}

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the underlying value.
func (v Value) Raw() any { return v.raw }

// Present reports whether the field exists with a non-null value.
func (v Value) Present() bool {
	return v.kind != KindAbsent && v.kind != KindNull
}

// Truthy mirrors how the upstream UI tested optional fields: empty strings,
// zero numbers and false count as missing.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return false
	case KindString:
		return v.raw.(string) != ""
	case KindNumber:
		f, ok := v.Number()
		return ok && f != 0
	case KindBool:
		return v.raw.(bool)
	case KindList, KindMap, KindUnknown:
		return true
	default:
		return false
	}
}

// List returns the elements of a list value, nil otherwise.
func (v Value) List() []any {
	if v.kind != KindList {
		return nil
	}
	return v.raw.([]any)
}

// Map returns the entries of a map value, nil otherwise.
func (v Value) Map() map[string]any {
	if v.kind != KindMap {
		return nil
	}
	return v.raw.(map[string]any)
}

// Number returns a numeric reading of number and numeric-string values.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber && v.kind != KindString {
		return 0, false
	}
	f := coerceFloat(v.raw)
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Text returns a trimmed string form of scalar values.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber, KindBool:
		return strings.TrimSpace(coerceString(v.raw))
	default:
		return ""
	}
}
