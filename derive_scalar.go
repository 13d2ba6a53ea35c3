package typeschema

import (
	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

func isScalarType(t string) bool {
	switch t {
	case "boolean", "null", "number", "integer", "string":
		return true
	}
	return false
}

// deriveScalar maps the scalar `type` tags to primitive domains. integer and
// number share the Number domain.
func (d *deriver) deriveScalar(s *jsonschema.Schema) (domain.Domain, bool) {
	switch s.Type {
	case "boolean":
		return domain.B, true
	case "null":
		return domain.Z, true
	case "number", "integer":
		return domain.N, true
	case "string":
		return domain.S, true
	}
	return nil, false
}
