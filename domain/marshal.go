package domain

import (
	"github.com/goccy/go-json"
)

// Describe projects d into a JSON-friendly tree:
//
//	{"kind": "object", "properties": [{"key": "a", "required": true, "domain": {...}}], "additional": {...}}
//
// Literal values are embedded verbatim under "value".
func Describe(d Domain) map[string]any {
	if d == nil {
		return nil
	}
	out := map[string]any{"kind": d.Kind().String()}
	switch x := d.(type) {
	case *Literal:
		raw, err := json.Marshal(x.value)
		if err == nil {
			out["value"] = json.RawMessage(raw)
		}
	case *Array:
		if x.IsTuple() {
			items := make([]any, len(x.tuple))
			for i, item := range x.tuple {
				items[i] = Describe(item)
			}
			out["tuple"] = items
		} else {
			out["items"] = Describe(x.elem)
		}
	case *Object:
		props := make([]any, len(x.props))
		for i, p := range x.props {
			props[i] = map[string]any{
				"key":      p.Key,
				"required": p.Required,
				"domain":   Describe(p.Value),
			}
		}
		out["properties"] = props
		out["closed"] = x.Closed()
		if x.additional != nil {
			out["additional"] = Describe(x.additional)
		}
	case *Not:
		out["excluded"] = Describe(x.excluded)
	case Union:
		members := make([]any, len(x))
		for i, m := range x {
			members[i] = Describe(m)
		}
		out["members"] = members
	}
	return out
}

// MarshalJSON encodes the projection returned by Describe.
func MarshalJSON(d Domain) ([]byte, error) {
	return json.Marshal(Describe(d))
}

// MarshalIndent is like MarshalJSON but indents the output.
func MarshalIndent(d Domain, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(Describe(d), prefix, indent)
}
