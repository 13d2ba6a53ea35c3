package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strings"
)

// ValueKind classifies a Go value as one of the JSON value kinds.
type ValueKind int

const (
	ValueInvalid ValueKind = iota // Not representable as JSON (structs, NaN, non-string map keys...).
	ValueNull
	ValueBoolean
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBoolean:
		return "boolean"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOfValue reports the JSON kind of v. Containers are classified by their
// top-level shape only; use IsJSON to validate a whole tree.
func KindOfValue(v any) ValueKind {
	switch t := v.(type) {
	case nil:
		return ValueNull
	case bool:
		return ValueBoolean
	case string:
		return ValueString
	case json.Number:
		if IsNumberText(string(t)) {
			return ValueNumber
		}
		return ValueInvalid
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ValueInvalid
		}
		return ValueNumber
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ValueInvalid
		}
		return ValueNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ValueNumber
	case []any:
		return ValueArray
	case map[string]any:
		return ValueObject
	case map[any]any:
		for k := range t {
			if _, ok := k.(string); !ok {
				return ValueInvalid
			}
		}
		return ValueObject
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ValueArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ValueObject
		}
	case reflect.Pointer:
		if rv.IsNil() {
			return ValueNull
		}
	}
	return ValueInvalid
}

// IsJSON reports whether v and everything reachable from it is a JSON value.
func IsJSON(v any) bool {
	switch KindOfValue(v) {
	case ValueInvalid:
		return false
	case ValueArray:
		for _, e := range Elements(v) {
			if !IsJSON(e) {
				return false
			}
		}
	case ValueObject:
		for _, e := range Members(v) {
			if !IsJSON(e) {
				return false
			}
		}
	}
	return true
}

// Elements returns the items of an array value as []any. It returns nil for
// non-arrays.
func Elements(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Members returns the entries of an object value as map[string]any. It
// returns nil for non-objects.
func Members(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil
			}
			out[ks] = vv
		}
		return out
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize returns a copy of v in canonical JSON form: numbers become
// json.Number, containers become []any and map[string]any. The boolean result
// is false when v is not a JSON value.
func Normalize(v any) (any, bool) {
	switch KindOfValue(v) {
	case ValueNull:
		return nil, true
	case ValueBoolean:
		return v.(bool), true
	case ValueString:
		return v.(string), true
	case ValueNumber:
		text, _ := numberText(v)
		return json.Number(text), true
	case ValueArray:
		elems := Elements(v)
		out := make([]any, len(elems))
		for i, e := range elems {
			n, ok := Normalize(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	case ValueObject:
		members := Members(v)
		out := make(map[string]any, len(members))
		for k, e := range members {
			n, ok := Normalize(e)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
		return out, true
	}
	return nil, false
}

// copyValue deep-copies a value in canonical form.
func copyValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	}
	return v
}

// EqualValues reports whether a and b are the same JSON value. Numbers are
// compared by value, so 1, 1.0 and json.Number("1e0") are equal.
func EqualValues(a, b any) bool {
	return CompareValues(a, b) == 0
}

// CompareValues orders JSON values: null < boolean < number < string < array
// < object, then by content. Invalid values sort first.
func CompareValues(a, b any) int {
	ka, kb := KindOfValue(a), KindOfValue(b)
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch ka {
	case ValueBoolean:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case ValueNumber:
		x, _ := numberDecimal(a)
		y, _ := numberDecimal(b)
		return x.cmp(y)
	case ValueString:
		return strings.Compare(a.(string), b.(string))
	case ValueArray:
		xs, ys := Elements(a), Elements(b)
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if c := CompareValues(xs[i], ys[i]); c != 0 {
				return c
			}
		}
		return compareInts(len(xs), len(ys))
	case ValueObject:
		xm, ym := Members(a), Members(b)
		xk, yk := SortedKeys(xm), SortedKeys(ym)
		for i := 0; i < len(xk) && i < len(yk); i++ {
			if c := strings.Compare(xk[i], yk[i]); c != 0 {
				return c
			}
			if c := CompareValues(xm[xk[i]], ym[yk[i]]); c != 0 {
				return c
			}
		}
		return compareInts(len(xk), len(yk))
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
