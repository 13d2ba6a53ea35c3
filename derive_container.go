package typeschema

import (
	"sort"

	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

// deriveContainer handles `type: array` and `type: object`.
func (d *deriver) deriveContainer(s *jsonschema.Schema, at PathRef) (domain.Domain, bool) {
	switch s.Type {
	case "array":
		return d.deriveArray(s, at), true
	case "object":
		return d.deriveObject(s, at), true
	}
	return nil, false
}

func (d *deriver) deriveArray(s *jsonschema.Schema, at PathRef) domain.Domain {
	if s.AdditionalItems != nil {
		d.diag.warnf(at.Field("additionalItems"), "additionalItems is not interpreted")
	}
	switch {
	case s.Items == nil:
		return domain.NewArray(domain.Any)
	case s.Items.IsTuple():
		items := make([]domain.Domain, len(s.Items.Tuple))
		for i, item := range s.Items.Tuple {
			items[i] = d.derive(item, at.Field("items").Index(i))
		}
		return domain.NewTuple(items...)
	}
	return domain.NewArray(d.derive(s.Items.Schema, at.Field("items")))
}

func (d *deriver) deriveObject(s *jsonschema.Schema, at PathRef) domain.Domain {
	switch {
	case s.Properties != nil:
		if s.PatternProperties != nil {
			d.diag.warnf(at.Field("patternProperties"), "patternProperties is ignored when properties are declared")
		}
		return d.deriveProperties(s, at)
	case s.PatternProperties != nil:
		return d.derivePatternProperties(s, at)
	}
	ap, isSchema := d.additional(s, at)
	if isSchema && d.mode == AdditionalPropertiesWidened {
		return domain.NewMap(domain.Any)
	}
	return domain.NewObject(nil, ap)
}

// additional derives additionalProperties. It returns nil for `false` (and
// for schemas admitting nothing), Top when absent or `true`, and reports
// whether the keyword was a non-boolean schema.
func (d *deriver) additional(s *jsonschema.Schema, at PathRef) (domain.Domain, bool) {
	ap := s.AdditionalProperties
	if ap == nil {
		return domain.Any, false
	}
	if b, ok := ap.IsBool(); ok {
		if b {
			return domain.Any, false
		}
		return nil, false
	}
	out := d.derive(ap, at.Field("additionalProperties"))
	if out.Kind() == domain.KindNever {
		return nil, true
	}
	return out, true
}

func (d *deriver) deriveProperties(s *jsonschema.Schema, at PathRef) domain.Domain {
	required := make(map[string]bool, len(s.Required))
	for i, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			d.diag.warnf(at.Field("required").Index(i), "required property %q is not declared in properties and is ignored", name)
			continue
		}
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]domain.Property, 0, len(names))
	for _, name := range names {
		props = append(props, domain.Property{
			Key:      name,
			Value:    d.derive(s.Properties[name], at.Field("properties").Field(name)),
			Required: required[name],
		})
	}

	ap, isSchema := d.additional(s, at)
	if isSchema && d.mode == AdditionalPropertiesWidened {
		values := make([]domain.Domain, 0, len(props)+1)
		for _, p := range props {
			values = append(values, p.Value)
		}
		if ap != nil {
			values = append(values, ap)
		}
		return domain.NewMap(domain.NewUnion(values...))
	}
	return domain.NewObject(props, ap)
}

// derivePatternProperties yields an open map over the union of the pattern
// domains. Patterns are not matched against keys.
func (d *deriver) derivePatternProperties(s *jsonschema.Schema, at PathRef) domain.Domain {
	patterns := make([]string, 0, len(s.PatternProperties))
	for p := range s.PatternProperties {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	values := make([]domain.Domain, 0, len(patterns)+1)
	for _, p := range patterns {
		values = append(values, d.derive(s.PatternProperties[p], at.Field("patternProperties").Field(p)))
	}
	if ap, isSchema := d.additional(s, at); isSchema && ap != nil {
		values = append(values, ap)
	}
	return domain.NewMap(domain.NewUnion(values...))
}
