package typeschema

import (
	"strings"

	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

// deriver walks one schema. It is not shared between goroutines.
type deriver struct {
	mode AdditionalPropertiesMode
	diag *simpleDiag
}

func newDeriver(mode AdditionalPropertiesMode) *deriver {
	return &deriver{mode: mode, diag: &simpleDiag{}}
}

// derive dispatches on the first recognized shape: defined value (const, then
// enum), scalar type, combination (allOf, anyOf, not, oneOf), container
// (array, then object). Anything else is the universal domain.
func (d *deriver) derive(s *jsonschema.Schema, at PathRef) domain.Domain {
	if s == nil {
		return domain.Any
	}
	if b, ok := s.IsBool(); ok {
		if b {
			return domain.Any
		}
		return domain.None
	}
	d.lint(s, at)

	if out, ok := d.deriveDefined(s, at); ok {
		return out
	}
	if out, ok := d.deriveScalar(s); ok {
		return out
	}
	if out, ok := d.deriveCombination(s, at); ok {
		return out
	}
	if out, ok := d.deriveContainer(s, at); ok {
		return out
	}
	return domain.Any
}

// lint reports shapes that silently fall back to the universal domain.
func (d *deriver) lint(s *jsonschema.Schema, at PathRef) {
	for _, k := range s.Malformed() {
		d.diag.warnf(at, "keyword %q has an unexpected shape and is ignored", k)
	}
	if s.Ref != "" {
		d.diag.warnf(at, "$ref %q is not resolved; load the document with reference resolution to inline it", s.Ref)
	}
	if s.TypeList != nil && s.Type == "" {
		d.diag.warnf(at, "type list [%s] is not supported; treated as any", strings.Join(s.TypeList, ", "))
	}
	if s.Type != "" && !isScalarType(s.Type) && s.Type != "array" && s.Type != "object" {
		if hint := closestStrings(2, s.Type, knownTypes); len(hint) > 0 {
			d.diag.warnf(at, "unknown type %q (did you mean %q?); treated as any", s.Type, hint[0])
		} else {
			d.diag.warnf(at, "unknown type %q; treated as any", s.Type)
		}
	}
	if s.Type == "" && s.Const == nil && s.Enum == nil && !hasCombination(s) {
		if s.Items != nil || s.Properties != nil || s.PatternProperties != nil || s.AdditionalProperties != nil {
			d.diag.warnf(at, "container keywords without a container type are ignored")
		}
	}
}

func hasCombination(s *jsonschema.Schema) bool {
	return s.AllOf != nil || s.AnyOf != nil || s.Not != nil || s.OneOf != nil
}
