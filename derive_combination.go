package typeschema

import (
	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

// deriveCombination handles allOf, anyOf, not and oneOf, in that order.
// allOf is derived as a union of its branches, not an intersection, and oneOf
// is not exclusive.
func (d *deriver) deriveCombination(s *jsonschema.Schema, at PathRef) (domain.Domain, bool) {
	switch {
	case s.AllOf != nil:
		return d.branches(s.AllOf, at.Field("allOf")), true
	case s.AnyOf != nil:
		return d.branches(s.AnyOf, at.Field("anyOf")), true
	case s.Not != nil:
		return domain.NewNot(d.derive(s.Not, at.Field("not"))), true
	case s.OneOf != nil:
		return d.branches(s.OneOf, at.Field("oneOf")), true
	}
	return nil, false
}

func (d *deriver) branches(list []*jsonschema.Schema, at PathRef) domain.Domain {
	members := make([]domain.Domain, len(list))
	for i, branch := range list {
		members[i] = d.derive(branch, at.Index(i))
	}
	return domain.NewUnion(members...)
}
