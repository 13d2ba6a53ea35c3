package dsl

import (
	"github.com/reoring/typeschema/jsonschema"
)

// NumberType is the `type` tag of a numeric schema.
type NumberType string

const (
	TypeNumber  NumberType = "number"
	TypeInteger NumberType = "integer"
)

func (t NumberType) orDefault() string {
	if t == "" {
		return string(TypeNumber)
	}
	return string(t)
}

// Ptr returns a pointer to v. It is handy for the optional numeric fields of
// the parameter structs.
func Ptr[T any](v T) *T { return &v }

// Schema returns s unchanged.
func Schema(s *jsonschema.Schema) *jsonschema.Schema { return s }

// AllOf returns {allOf: schemas}.
func AllOf(schemas ...*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{AllOf: list(schemas)}
}

// AnyOf returns {anyOf: schemas}.
func AnyOf(schemas ...*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: list(schemas)}
}

// OneOf returns {oneOf: schemas}.
func OneOf(schemas ...*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: list(schemas)}
}

// OrNull returns {anyOf: [s, {type: null}]}.
func OrNull(s *jsonschema.Schema) *jsonschema.Schema {
	return AnyOf(s, Null())
}

func list(schemas []*jsonschema.Schema) []*jsonschema.Schema {
	return append(make([]*jsonschema.Schema, 0, len(schemas)), schemas...)
}

// Const returns {const: v}.
func Const(v any) *jsonschema.Schema {
	return &jsonschema.Schema{Const: &jsonschema.Value{V: v}}
}

// Enum returns {enum: values}. Enum() with no values is the empty enum.
func Enum(values ...any) *jsonschema.Schema {
	return &jsonschema.Schema{Enum: append(make([]any, 0, len(values)), values...)}
}

// ArrayParams are the keywords accepted by Array. Items and Tuple are
// exclusive; Tuple wins when both are set.
type ArrayParams struct {
	Items           *jsonschema.Schema
	Tuple           []*jsonschema.Schema
	AdditionalItems *jsonschema.Schema
	MinItems        *int
	MaxItems        *int
	UniqueItems     *bool
	Contains        *jsonschema.Schema
}

// Array returns p with type array.
func Array(p ArrayParams) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:            "array",
		AdditionalItems: p.AdditionalItems,
		MinItems:        p.MinItems,
		MaxItems:        p.MaxItems,
		UniqueItems:     p.UniqueItems,
		Contains:        p.Contains,
	}
	switch {
	case p.Tuple != nil:
		s.Items = &jsonschema.Items{Tuple: list(p.Tuple)}
	case p.Items != nil:
		s.Items = &jsonschema.Items{Schema: p.Items}
	}
	return s
}

// ObjectParams are the keywords accepted by Object.
type ObjectParams struct {
	Properties           map[string]*jsonschema.Schema
	PatternProperties    map[string]*jsonschema.Schema
	AdditionalProperties *jsonschema.Schema
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	Dependencies         map[string]any
	PropertyNames        *jsonschema.Schema
}

// Object returns p with type object.
func Object(p ObjectParams) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Properties:           copyMap(p.Properties),
		PatternProperties:    copyMap(p.PatternProperties),
		AdditionalProperties: p.AdditionalProperties,
		MinProperties:        p.MinProperties,
		MaxProperties:        p.MaxProperties,
		Dependencies:         p.Dependencies,
		PropertyNames:        p.PropertyNames,
	}
	if p.Required != nil {
		s.Required = append([]string{}, p.Required...)
	}
	return s
}

func copyMap(m map[string]*jsonschema.Schema) map[string]*jsonschema.Schema {
	if m == nil {
		return nil
	}
	out := make(map[string]*jsonschema.Schema, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NumberMultipleOf returns {multipleOf: m, type: t}. An empty t means number.
func NumberMultipleOf(m float64, t NumberType) *jsonschema.Schema {
	return &jsonschema.Schema{Type: t.orDefault(), MultipleOf: &m}
}

// RangeParams are the bounds accepted by NumberRange.
type RangeParams struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
}

// NumberRange returns p with the numeric type t. An empty t means number.
func NumberRange(p RangeParams, t NumberType) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:             t.orDefault(),
		Minimum:          p.Minimum,
		Maximum:          p.Maximum,
		ExclusiveMinimum: p.ExclusiveMinimum,
		ExclusiveMaximum: p.ExclusiveMaximum,
	}
}

// StringFormat returns {format: f, type: string}.
func StringFormat(f string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Format: f}
}

// LengthParams are the bounds accepted by StringLength and StringPattern.
type LengthParams struct {
	MinLength *int
	MaxLength *int
}

// StringLength returns p with type string.
func StringLength(p LengthParams) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", MinLength: p.MinLength, MaxLength: p.MaxLength}
}

// StringPattern returns {pattern, type: string} plus the optional length
// bounds.
func StringPattern(pattern string, length LengthParams) *jsonschema.Schema {
	s := StringLength(length)
	s.Pattern = pattern
	return s
}
