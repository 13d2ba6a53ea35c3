package typeschema

import (
	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

// deriveDefined handles const and enum. const wins when both are present.
func (d *deriver) deriveDefined(s *jsonschema.Schema, at PathRef) (domain.Domain, bool) {
	if s.Const != nil {
		lit := domain.NewLiteral(s.Const.V)
		if lit.Kind() == domain.KindNever {
			d.diag.warnf(at.Field("const"), "value %T is not a JSON value", s.Const.V)
		}
		return lit, true
	}
	if s.Enum != nil {
		members := make([]domain.Domain, 0, len(s.Enum))
		for i, v := range s.Enum {
			lit := domain.NewLiteral(v)
			if lit.Kind() == domain.KindNever {
				d.diag.warnf(at.Field("enum").Index(i), "value %T is not a JSON value", v)
			}
			members = append(members, lit)
		}
		return domain.NewUnion(members...), true
	}
	return nil, false
}
