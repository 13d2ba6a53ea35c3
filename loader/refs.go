package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonreference"
)

// resolver inlines local $refs ("#/..." JSON Pointers into the same document).
// Sibling keywords of a $ref override the referenced schema's keywords.
// References that point back into their own expansion are left in place.
// Expansions are memoized per pointer, and every inlined node is charged to a
// budget; once it is spent the remaining references stay unresolved.
type resolver struct {
	root      any
	active    map[string]bool
	done      map[string]expansion
	budget    int
	cycles    int
	exhausted bool
	warnings  []string
}

// expansion is a resolved reference target that did not depend on the
// references active when it was resolved.
type expansion struct {
	value any
	size  int
}

func newResolver(root any, budget int) *resolver {
	return &resolver{root: root, active: map[string]bool{}, done: map[string]expansion{}, budget: budget}
}

func (r *resolver) warnf(at, f string, a ...any) {
	r.warnings = append(r.warnings, pointer(at)+": "+fmt.Sprintf(f, a...))
}

// charge takes n nodes from the budget and reports whether they were
// available.
func (r *resolver) charge(at string, n int) bool {
	if !r.exhausted && n <= r.budget {
		r.budget -= n
		return true
	}
	if !r.exhausted {
		r.exhausted = true
		r.warnf(at, "reference expansion limit reached; remaining $refs are left unresolved")
	}
	return false
}

// schema resolves node in place where possible and returns the result.
func (r *resolver) schema(node any, at string) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}
	if ref, ok := m["$ref"].(string); ok {
		return r.ref(m, ref, at)
	}
	r.children(m, at)
	return m
}

var (
	schemaKeys     = []string{"additionalItems", "additionalProperties", "contains", "not", "propertyNames"}
	schemaListKeys = []string{"allOf", "anyOf", "oneOf"}
	schemaMapKeys  = []string{"$defs", "definitions", "dependencies", "patternProperties", "properties"}
)

func (r *resolver) children(m map[string]any, at string) {
	for _, k := range schemaKeys {
		if v, ok := m[k]; ok {
			m[k] = r.schema(v, at+"/"+k)
		}
	}
	for _, k := range schemaListKeys {
		if list, ok := m[k].([]any); ok {
			r.list(list, at+"/"+k)
		}
	}
	for _, k := range schemaMapKeys {
		if sub, ok := m[k].(map[string]any); ok {
			for name, v := range sub {
				sub[name] = r.schema(v, at+"/"+k+"/"+escape(name))
			}
		}
	}
	switch items := m["items"].(type) {
	case []any:
		r.list(items, at+"/items")
	case map[string]any:
		m["items"] = r.schema(items, at+"/items")
	}
}

func (r *resolver) list(list []any, at string) {
	for i, v := range list {
		list[i] = r.schema(v, at+"/"+strconv.Itoa(i))
	}
}

func (r *resolver) ref(m map[string]any, ref, at string) any {
	jr, err := gojsonreference.NewJsonReference(ref)
	if err != nil || !(jr.HasFragmentOnly || ref == "#") {
		r.warnf(at, "$ref %q is not a local reference and is left unresolved", ref)
		return m
	}
	ptr := jr.GetPointer()
	key := ptr.String()
	if r.active[key] {
		r.cycles++
		r.warnf(at, "cyclic $ref %q is left unresolved", ref)
		return m
	}
	if r.exhausted {
		return m
	}

	var resolved any
	if e, ok := r.done[key]; ok {
		if !r.charge(at, e.size) {
			return m
		}
		resolved = deepCopy(e.value)
	} else {
		target, _, err := ptr.Get(r.root)
		if err != nil {
			r.warnf(at, "$ref %q cannot be resolved: %v", ref, err)
			return m
		}
		cycles := r.cycles
		r.active[key] = true
		resolved = r.schema(deepCopy(target), at)
		delete(r.active, key)
		size := countNodes(resolved)
		if r.cycles == cycles {
			r.done[key] = expansion{value: deepCopy(resolved), size: size}
		} else if !r.charge(at, size) {
			return m
		}
	}

	delete(m, "$ref")
	r.children(m, at)
	switch t := resolved.(type) {
	case map[string]any:
		for k, v := range m {
			t[k] = v
		}
		return t
	case bool:
		if !t || len(m) == 0 {
			return t
		}
		return m
	}
	r.warnf(at, "$ref %q does not point at a schema", ref)
	m["$ref"] = ref
	return m
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	}
	return v
}

func countNodes(v any) int {
	n := 1
	switch t := v.(type) {
	case map[string]any:
		for _, e := range t {
			n += countNodes(e)
		}
	case []any:
		for _, e := range t {
			n += countNodes(e)
		}
	}
	return n
}

func escape(seg string) string {
	return strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1")
}

func pointer(at string) string {
	if at == "" {
		return "/"
	}
	return at
}
