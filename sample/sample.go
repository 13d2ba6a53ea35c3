// Package sample draws example JSON values from a domain. Every value it
// returns is accepted by typeschema.Accepts for the domain it was drawn from.
package sample

import (
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/reoring/typeschema"
	"github.com/reoring/typeschema/domain"
)

// ErrEmptyDomain is returned when no value could be drawn from a domain.
var ErrEmptyDomain = errors.New("sample: domain admits no value")

const (
	defaultMaxDepth    = 3
	defaultMaxItems    = 3
	defaultNotAttempts = 32
)

// Generator draws values. It is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	// MaxDepth bounds the nesting of values drawn for any.
	MaxDepth int
	// MaxItems bounds the length of arrays and the number of undeclared keys.
	MaxItems int
	// NotAttempts bounds the draws made to satisfy a complement.
	NotAttempts int
}

// New returns a Generator seeded with seed. Equal seeds produce equal value
// sequences; 0 picks a random seed.
func New(seed int64) *Generator {
	return &Generator{
		faker:       gofakeit.New(seed),
		MaxDepth:    defaultMaxDepth,
		MaxItems:    defaultMaxItems,
		NotAttempts: defaultNotAttempts,
	}
}

// Generate returns a value that belongs to d.
func (g *Generator) Generate(d domain.Domain) (any, error) {
	return g.draw(d, 0)
}

func (g *Generator) draw(d domain.Domain, depth int) (any, error) {
	switch t := d.(type) {
	case nil, domain.Top:
		return g.anyValue(depth), nil
	case domain.Never:
		return nil, ErrEmptyDomain
	case domain.Null:
		return nil, nil
	case domain.Boolean:
		return g.faker.Bool(), nil
	case domain.Number:
		return g.number(), nil
	case domain.String:
		return g.text(), nil
	case *domain.Literal:
		return t.Value(), nil
	case domain.Union:
		return g.union(t, depth)
	case *domain.Not:
		return g.complement(t, depth)
	case *domain.Array:
		return g.array(t, depth)
	case *domain.Object:
		return g.object(t, depth)
	}
	return nil, fmt.Errorf("sample: unsupported domain %T", d)
}

// union tries members starting at a random offset.
func (g *Generator) union(u domain.Union, depth int) (any, error) {
	if len(u) == 0 {
		return nil, ErrEmptyDomain
	}
	start := g.faker.IntRange(0, len(u)-1)
	for i := range u {
		if v, err := g.draw(u[(start+i)%len(u)], depth); err == nil {
			return v, nil
		}
	}
	return nil, ErrEmptyDomain
}

func (g *Generator) complement(n *domain.Not, depth int) (any, error) {
	excluded := n.Excluded()
	for _, v := range []any{nil, false, 0, "", []any{}, map[string]any{}} {
		if !typeschema.Accepts(excluded, v) {
			return v, nil
		}
	}
	for i := 0; i < g.NotAttempts; i++ {
		v := g.anyValue(depth)
		if !typeschema.Accepts(excluded, v) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: no value outside %s after %d attempts", ErrEmptyDomain, excluded, g.NotAttempts)
}

func (g *Generator) array(a *domain.Array, depth int) (any, error) {
	if a.IsTuple() {
		out := make([]any, a.Len())
		for i := range out {
			v, err := g.draw(a.Select(i), depth+1)
			if err != nil {
				return nil, fmt.Errorf("sample: position %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}
	out := []any{}
	n := g.faker.IntRange(0, g.MaxItems)
	for i := 0; i < n; i++ {
		v, err := g.draw(a.Elem(), depth+1)
		if err != nil {
			// The empty array always belongs to a homogeneous array domain.
			return []any{}, nil
		}
		out = append(out, v)
	}
	return out, nil
}

func (g *Generator) object(o *domain.Object, depth int) (any, error) {
	out := map[string]any{}
	for _, p := range o.Properties() {
		if !p.Required && g.faker.Bool() {
			continue
		}
		v, err := g.draw(p.Value, depth+1)
		if err != nil {
			if p.Required {
				return nil, fmt.Errorf("sample: property %q: %w", p.Key, err)
			}
			continue
		}
		out[p.Key] = v
	}
	if add := o.Additional(); add != nil {
		n := g.faker.IntRange(0, g.MaxItems)
		for i := 0; i < n; i++ {
			key := g.faker.Word()
			if _, declared := o.Property(key); declared {
				continue
			}
			if _, taken := out[key]; taken {
				continue
			}
			v, err := g.draw(add, depth+1)
			if err != nil {
				break
			}
			out[key] = v
		}
	}
	return out, nil
}

func (g *Generator) number() any {
	if g.faker.Bool() {
		return g.faker.IntRange(-1000, 1000)
	}
	return g.faker.Float64Range(-1000, 1000)
}

func (g *Generator) text() string {
	switch g.faker.IntRange(0, 3) {
	case 0:
		return g.faker.UUID()
	case 1:
		return g.faker.Email()
	case 2:
		return g.faker.PetName()
	}
	return g.faker.Word()
}

// anyValue draws an arbitrary JSON value. Containers are only produced while
// depth is below MaxDepth.
func (g *Generator) anyValue(depth int) any {
	kinds := 4
	if depth < g.MaxDepth {
		kinds = 6
	}
	switch g.faker.IntRange(0, kinds-1) {
	case 0:
		return nil
	case 1:
		return g.faker.Bool()
	case 2:
		return g.number()
	case 3:
		return g.text()
	case 4:
		out := []any{}
		for i, n := 0, g.faker.IntRange(0, g.MaxItems); i < n; i++ {
			out = append(out, g.anyValue(depth+1))
		}
		return out
	}
	out := map[string]any{}
	for i, n := 0, g.faker.IntRange(0, g.MaxItems); i < n; i++ {
		out[g.faker.Word()] = g.anyValue(depth + 1)
	}
	return out
}
