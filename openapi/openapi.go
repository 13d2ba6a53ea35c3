// Package openapi converts OpenAPI 3.0 schema objects, as parsed by
// kin-openapi, into *jsonschema.Schema values.
package openapi

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/reoring/typeschema/jsonschema"
)

// ErrComponentNotFound is returned when components.schemas has no entry with
// the requested name.
var ErrComponentNotFound = errors.New("openapi: component schema not found")

// ImportComponent loads an OpenAPI document (JSON or YAML), resolves its
// internal references and converts components.schemas[name].
func ImportComponent(data []byte, name string) (*jsonschema.Schema, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	return FromKin(ref.Value), nil
}

// FromKin converts s. `nullable: true` becomes `anyOf: [S, {type: null}]`.
// A reference cycle is cut by emitting the original `$ref` at the point where
// the cycle closes.
func FromKin(s *openapi3.Schema) *jsonschema.Schema {
	c := &converter{visiting: map[*openapi3.Schema]bool{}}
	return c.schema(s)
}

type converter struct {
	visiting map[*openapi3.Schema]bool
}

func (c *converter) ref(r *openapi3.SchemaRef) *jsonschema.Schema {
	if r == nil {
		return nil
	}
	if r.Value == nil || c.visiting[r.Value] {
		if r.Ref == "" {
			return jsonschema.True()
		}
		return &jsonschema.Schema{Ref: r.Ref}
	}
	return c.schema(r.Value)
}

func (c *converter) refs(list openapi3.SchemaRefs) []*jsonschema.Schema {
	if list == nil {
		return nil
	}
	out := make([]*jsonschema.Schema, 0, len(list))
	for _, r := range list {
		out = append(out, c.ref(r))
	}
	return out
}

func (c *converter) schema(s *openapi3.Schema) *jsonschema.Schema {
	if s == nil {
		return jsonschema.True()
	}
	c.visiting[s] = true
	defer delete(c.visiting, s)

	out := &jsonschema.Schema{
		Title:       s.Title,
		Description: s.Description,
		Type:        s.Type,
		Format:      s.Format,
		Pattern:     s.Pattern,
		Required:    append([]string(nil), s.Required...),
		AllOf:       c.refs(s.AllOf),
		AnyOf:       c.refs(s.AnyOf),
		OneOf:       c.refs(s.OneOf),
		Not:         c.ref(s.Not),
		MultipleOf:  s.MultipleOf,
	}
	if s.Enum != nil {
		out.Enum = append([]any{}, s.Enum...)
	}
	if s.Default != nil {
		out.Default = &jsonschema.Value{V: s.Default}
	}
	if s.Items != nil {
		out.Items = &jsonschema.Items{Schema: c.ref(s.Items)}
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*jsonschema.Schema, len(s.Properties))
		for k, r := range s.Properties {
			out.Properties[k] = c.ref(r)
		}
	}
	switch ap := s.AdditionalProperties; {
	case ap.Schema != nil:
		out.AdditionalProperties = c.ref(ap.Schema)
	case ap.Has != nil && *ap.Has:
		out.AdditionalProperties = jsonschema.True()
	case ap.Has != nil:
		out.AdditionalProperties = jsonschema.False()
	}
	bounds(out, s)

	if s.Nullable {
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{out, {Type: "null"}}}
	}
	return out
}

// bounds copies value-level constraints. OpenAPI 3.0 boolean exclusive
// bounds become draft-07 numeric ones.
func bounds(out *jsonschema.Schema, s *openapi3.Schema) {
	if s.Min != nil {
		if s.ExclusiveMin {
			out.ExclusiveMinimum = s.Min
		} else {
			out.Minimum = s.Min
		}
	}
	if s.Max != nil {
		if s.ExclusiveMax {
			out.ExclusiveMaximum = s.Max
		} else {
			out.Maximum = s.Max
		}
	}
	out.MinLength = positive(s.MinLength)
	out.MaxLength = optional(s.MaxLength)
	out.MinItems = positive(s.MinItems)
	out.MaxItems = optional(s.MaxItems)
	out.MinProperties = positive(s.MinProps)
	out.MaxProperties = optional(s.MaxProps)
	if s.UniqueItems {
		b := true
		out.UniqueItems = &b
	}
}

func positive(n uint64) *int {
	if n == 0 {
		return nil
	}
	v := int(n)
	return &v
}

func optional(n *uint64) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
