// Package jsonschema holds the Schema Description record: a recursive,
// presence-aware representation of a JSON Schema (draft-07 vocabulary) that
// can be built from generic JSON/YAML trees and emitted back.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/typeschema/internal/jsonvalue"
)

// Value wraps a JSON value whose presence matters: a nil *Value means the
// keyword is absent, while &Value{V: nil} is an explicit null.
type Value struct {
	V any
}

// Items is the `items` keyword: either one schema for every element or a
// tuple of positional schemas.
type Items struct {
	Schema *Schema
	Tuple  []*Schema
}

// IsTuple reports whether items was given as a list.
func (it *Items) IsTuple() bool { return it != nil && it.Schema == nil }

// Schema is a JSON Schema. A schema with Bool set is a boolean schema and all
// other fields are ignored. Slices and maps distinguish absent (nil) from
// empty: an `enum: []` decodes to a non-nil empty Enum.
type Schema struct {
	Bool *bool

	SchemaURI   string
	ID          string
	Ref         string
	Defs        map[string]*Schema
	Definitions map[string]*Schema
	Title       string
	Description string
	Default     *Value

	Type     string
	TypeList []string

	Const *Value
	Enum  []any

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Items           *Items
	AdditionalItems *Schema
	Contains        *Schema
	MinItems        *int
	MaxItems        *int
	UniqueItems     *bool

	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties *Schema
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	Dependencies         map[string]any
	PropertyNames        *Schema

	Format           string
	MinLength        *int
	MaxLength        *int
	Pattern          string
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Extra keeps unknown keywords, and known keywords whose value had the
	// wrong shape, verbatim.
	Extra map[string]any
}

// True returns the boolean schema that admits everything.
func True() *Schema { b := true; return &Schema{Bool: &b} }

// False returns the boolean schema that admits nothing.
func False() *Schema { b := false; return &Schema{Bool: &b} }

// IsBool reports whether s is a boolean schema and its value.
func (s *Schema) IsBool() (value, ok bool) {
	if s == nil || s.Bool == nil {
		return false, false
	}
	return *s.Bool, true
}

// Malformed returns the structural keywords that were present with a value of
// the wrong shape, sorted.
func (s *Schema) Malformed() []string {
	var out []string
	for k := range s.Extra {
		if structural[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// structural lists the keywords that drive derivation.
var structural = map[string]bool{
	"type": true, "const": true, "enum": true, "allOf": true, "anyOf": true,
	"oneOf": true, "not": true, "items": true, "additionalItems": true,
	"properties": true, "patternProperties": true, "additionalProperties": true,
	"required": true,
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c, err := FromValue(s.ToValue())
	if err != nil {
		panic(fmt.Sprintf("jsonschema: clone: %v", err))
	}
	return c
}

// FromValue builds a Schema from a decoded JSON tree: a bool or an object
// (map[string]any, or map[any]any with string keys). Numbers may be
// json.Number or any Go numeric kind.
func FromValue(v any) (*Schema, error) {
	s, ok := schemaOf(v)
	if !ok {
		return nil, fmt.Errorf("jsonschema: schema must be an object or a boolean, got %T", v)
	}
	return s, nil
}

// Unmarshal decodes JSON text into a Schema.
func Unmarshal(data []byte) (*Schema, error) {
	v, _, err := jsonvalue.Decode(data, jsonvalue.Options{})
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return FromValue(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	parsed, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Object keys are emitted in sorted
// order so equal schemas encode to equal bytes.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(s.ToValue())
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = vv
		}
		return out, true
	}
	return nil, false
}

func schemaOf(v any) (*Schema, bool) {
	if b, ok := v.(bool); ok {
		return &Schema{Bool: &b}, true
	}
	m, ok := asObject(v)
	if !ok {
		return nil, false
	}
	s := &Schema{}
	for k, raw := range m {
		if !s.set(k, raw) {
			if s.Extra == nil {
				s.Extra = map[string]any{}
			}
			s.Extra[k] = raw
		}
	}
	return s, true
}

// set assigns one keyword. It returns false when the keyword is unknown or
// its value has the wrong shape.
func (s *Schema) set(k string, raw any) bool {
	ok := true
	switch k {
	case "$schema":
		s.SchemaURI, ok = raw.(string)
	case "$id":
		s.ID, ok = raw.(string)
	case "$ref":
		s.Ref, ok = raw.(string)
	case "$defs":
		s.Defs, ok = schemaMap(raw)
	case "definitions":
		s.Definitions, ok = schemaMap(raw)
	case "title":
		s.Title, ok = raw.(string)
	case "description":
		s.Description, ok = raw.(string)
	case "default":
		s.Default = &Value{V: raw}
	case "type":
		switch t := raw.(type) {
		case string:
			s.Type = t
		case []any:
			s.TypeList, ok = stringList(t)
		default:
			ok = false
		}
	case "const":
		s.Const = &Value{V: raw}
	case "enum":
		var list []any
		if list, ok = raw.([]any); ok {
			s.Enum = append([]any{}, list...)
		}
	case "allOf":
		s.AllOf, ok = schemaList(raw)
	case "anyOf":
		s.AnyOf, ok = schemaList(raw)
	case "oneOf":
		s.OneOf, ok = schemaList(raw)
	case "not":
		s.Not, ok = schemaOf(raw)
	case "items":
		if list, isList := raw.([]any); isList {
			var tuple []*Schema
			if tuple, ok = schemaList(list); ok {
				s.Items = &Items{Tuple: tuple}
			}
		} else {
			var one *Schema
			if one, ok = schemaOf(raw); ok {
				s.Items = &Items{Schema: one}
			}
		}
	case "additionalItems":
		s.AdditionalItems, ok = schemaOf(raw)
	case "contains":
		s.Contains, ok = schemaOf(raw)
	case "minItems":
		s.MinItems, ok = intOf(raw)
	case "maxItems":
		s.MaxItems, ok = intOf(raw)
	case "uniqueItems":
		var b bool
		if b, ok = raw.(bool); ok {
			s.UniqueItems = &b
		}
	case "properties":
		s.Properties, ok = schemaMap(raw)
	case "patternProperties":
		s.PatternProperties, ok = schemaMap(raw)
	case "additionalProperties":
		s.AdditionalProperties, ok = schemaOf(raw)
	case "required":
		var list []any
		if list, ok = raw.([]any); ok {
			s.Required, ok = stringList(list)
		}
	case "minProperties":
		s.MinProperties, ok = intOf(raw)
	case "maxProperties":
		s.MaxProperties, ok = intOf(raw)
	case "dependencies":
		s.Dependencies, ok = asObject(raw)
	case "propertyNames":
		s.PropertyNames, ok = schemaOf(raw)
	case "format":
		s.Format, ok = raw.(string)
	case "minLength":
		s.MinLength, ok = intOf(raw)
	case "maxLength":
		s.MaxLength, ok = intOf(raw)
	case "pattern":
		s.Pattern, ok = raw.(string)
	case "minimum":
		s.Minimum, ok = floatOf(raw)
	case "maximum":
		s.Maximum, ok = floatOf(raw)
	case "exclusiveMinimum":
		s.ExclusiveMinimum, ok = floatOf(raw)
	case "exclusiveMaximum":
		s.ExclusiveMaximum, ok = floatOf(raw)
	case "multipleOf":
		s.MultipleOf, ok = floatOf(raw)
	default:
		return false
	}
	return ok
}

func schemaList(raw any) ([]*Schema, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]*Schema, 0, len(list))
	for _, item := range list {
		s, ok := schemaOf(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func schemaMap(raw any) (map[string]*Schema, bool) {
	m, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	out := make(map[string]*Schema, len(m))
	for k, v := range m {
		s, ok := schemaOf(v)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

func stringList(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		str, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, str)
	}
	return out, true
}

func floatOf(raw any) (*float64, bool) {
	var f float64
	switch t := raw.(type) {
	case json.Number:
		var err error
		if f, err = t.Float64(); err != nil {
			return nil, false
		}
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case uint:
		f = float64(t)
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

func intOf(raw any) (*int, bool) {
	f, ok := floatOf(raw)
	if !ok || *f != math.Trunc(*f) || *f < 0 {
		return nil, false
	}
	n := int(*f)
	return &n, true
}

// ToValue renders s as a generic JSON tree (bool or map[string]any).
func (s *Schema) ToValue() any {
	if s == nil {
		return nil
	}
	if s.Bool != nil {
		return *s.Bool
	}
	out := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		out[k] = v
	}
	putString(out, "$schema", s.SchemaURI)
	putString(out, "$id", s.ID)
	putString(out, "$ref", s.Ref)
	putSchemaMap(out, "$defs", s.Defs)
	putSchemaMap(out, "definitions", s.Definitions)
	putString(out, "title", s.Title)
	putString(out, "description", s.Description)
	if s.Default != nil {
		out["default"] = s.Default.V
	}
	if s.Type != "" {
		out["type"] = s.Type
	} else if s.TypeList != nil {
		list := make([]any, len(s.TypeList))
		for i, t := range s.TypeList {
			list[i] = t
		}
		out["type"] = list
	}
	if s.Const != nil {
		out["const"] = s.Const.V
	}
	if s.Enum != nil {
		out["enum"] = append([]any{}, s.Enum...)
	}
	putSchemaList(out, "allOf", s.AllOf)
	putSchemaList(out, "anyOf", s.AnyOf)
	putSchemaList(out, "oneOf", s.OneOf)
	putSchema(out, "not", s.Not)
	if s.Items != nil {
		if s.Items.IsTuple() {
			putSchemaList(out, "items", append([]*Schema{}, s.Items.Tuple...))
		} else {
			putSchema(out, "items", s.Items.Schema)
		}
	}
	putSchema(out, "additionalItems", s.AdditionalItems)
	putSchema(out, "contains", s.Contains)
	putInt(out, "minItems", s.MinItems)
	putInt(out, "maxItems", s.MaxItems)
	if s.UniqueItems != nil {
		out["uniqueItems"] = *s.UniqueItems
	}
	putSchemaMap(out, "properties", s.Properties)
	putSchemaMap(out, "patternProperties", s.PatternProperties)
	putSchema(out, "additionalProperties", s.AdditionalProperties)
	if s.Required != nil {
		list := make([]any, len(s.Required))
		for i, r := range s.Required {
			list[i] = r
		}
		out["required"] = list
	}
	putInt(out, "minProperties", s.MinProperties)
	putInt(out, "maxProperties", s.MaxProperties)
	if s.Dependencies != nil {
		out["dependencies"] = s.Dependencies
	}
	putSchema(out, "propertyNames", s.PropertyNames)
	putString(out, "format", s.Format)
	putInt(out, "minLength", s.MinLength)
	putInt(out, "maxLength", s.MaxLength)
	putString(out, "pattern", s.Pattern)
	putFloat(out, "minimum", s.Minimum)
	putFloat(out, "maximum", s.Maximum)
	putFloat(out, "exclusiveMinimum", s.ExclusiveMinimum)
	putFloat(out, "exclusiveMaximum", s.ExclusiveMaximum)
	putFloat(out, "multipleOf", s.MultipleOf)
	return out
}

func putString(out map[string]any, k, v string) {
	if v != "" {
		out[k] = v
	}
}

func putInt(out map[string]any, k string, v *int) {
	if v != nil {
		out[k] = json.Number(strconv.Itoa(*v))
	}
}

func putFloat(out map[string]any, k string, v *float64) {
	if v != nil {
		out[k] = json.Number(strconv.FormatFloat(*v, 'g', -1, 64))
	}
}

func putSchema(out map[string]any, k string, v *Schema) {
	if v != nil {
		out[k] = v.ToValue()
	}
}

func putSchemaList(out map[string]any, k string, list []*Schema) {
	if list == nil {
		return
	}
	vals := make([]any, len(list))
	for i, s := range list {
		vals[i] = s.ToValue()
	}
	out[k] = vals
}

func putSchemaMap(out map[string]any, k string, m map[string]*Schema) {
	if m == nil {
		return
	}
	vals := make(map[string]any, len(m))
	for name, s := range m {
		vals[name] = s.ToValue()
	}
	out[k] = vals
}
