// Package domain declares the descriptors produced by schema derivation: each
// Domain describes the set of JSON values that a schema admits.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Kind enumerates the domain variants.
type Kind int

const (
	KindNever Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindLiteral
	KindArray
	KindObject
	KindNot
	KindUnion
	KindTop
)

var kindNames = [...]string{
	KindNever:   "never",
	KindNull:    "null",
	KindBoolean: "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindLiteral: "literal",
	KindArray:   "array",
	KindObject:  "object",
	KindNot:     "not",
	KindUnion:   "union",
	KindTop:     "any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sprint returns the string representation of the domain.
func Sprint(d Domain) string {
	if d == nil {
		return "???"
	}
	return d.String()
}

// Domain is an immutable description of a set of JSON values.
type Domain interface {
	Kind() Kind
	String() string
	domainMarker()
}

func (Top) domainMarker()      {}
func (Never) domainMarker()    {}
func (Null) domainMarker()     {}
func (Boolean) domainMarker()  {}
func (Number) domainMarker()   {}
func (String) domainMarker()   {}
func (*Literal) domainMarker() {}
func (*Array) domainMarker()   {}
func (*Object) domainMarker()  {}
func (*Not) domainMarker()     {}
func (Union) domainMarker()    {}

// Top is the universal JSON value domain.
type Top struct{}

// Any is the shared instance of Top.
var Any Domain = Top{}

func (Top) Kind() Kind     { return KindTop }
func (Top) String() string { return "any" }

// Never admits no value at all.
type Never struct{}

// None is the shared instance of Never.
var None Domain = Never{}

func (Never) Kind() Kind     { return KindNever }
func (Never) String() string { return "never" }

// Null represents the null domain.
type Null struct{}

// Z is the shared instance of Null.
var Z Domain = Null{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "null" }

// Boolean represents true and false.
type Boolean struct{}

// B is the shared instance of Boolean.
var B Domain = Boolean{}

func (Boolean) Kind() Kind     { return KindBoolean }
func (Boolean) String() string { return "boolean" }

// Number represents every JSON number. Integer schemas derive to Number as
// well; no integral domain is modeled.
type Number struct{}

// N is the shared instance of Number.
var N Domain = Number{}

func (Number) Kind() Kind     { return KindNumber }
func (Number) String() string { return "number" }

// String represents every JSON string.
type String struct{}

// S is the shared instance of String.
var S Domain = String{}

func (String) Kind() Kind     { return KindString }
func (String) String() string { return "string" }

// Literal is a singleton domain holding exactly one JSON value.
type Literal struct {
	value any
}

// NewLiteral returns the singleton domain of v. Values that are not JSON
// values yield Never.
func NewLiteral(v any) Domain {
	n, ok := Normalize(v)
	if !ok {
		return None
	}
	return &Literal{value: n}
}

// Value returns a copy of the literal value in canonical JSON form.
func (t *Literal) Value() any { return copyValue(t.value) }

// Contains reports whether v is the literal value.
func (t *Literal) Contains(v any) bool { return EqualValues(t.value, v) }

// ValueKind returns the JSON kind of the literal value.
func (t *Literal) ValueKind() ValueKind { return KindOfValue(t.value) }

func (*Literal) Kind() Kind { return KindLiteral }

func (t *Literal) String() string {
	b, err := json.Marshal(t.value)
	if err != nil {
		return fmt.Sprintf("%v", t.value)
	}
	return string(b)
}

// Array represents sequences. A tuple array fixes the length and the domain
// of every position; a homogeneous array constrains every element with Elem.
type Array struct {
	tuple []Domain
	elem  Domain
}

// NewArray returns a homogeneous array domain of any length.
func NewArray(elem Domain) *Array {
	if elem == nil {
		elem = Any
	}
	return &Array{elem: elem}
}

// NewTuple returns an array domain of exactly len(items) positions.
func NewTuple(items ...Domain) *Array {
	cpy := make([]Domain, len(items))
	for i, d := range items {
		if d == nil {
			d = Any
		}
		cpy[i] = d
	}
	return &Array{tuple: cpy}
}

func (*Array) Kind() Kind { return KindArray }

// IsTuple reports whether the array has a fixed length.
func (t *Array) IsTuple() bool { return t.elem == nil }

// Len returns the number of tuple positions.
func (t *Array) Len() int { return len(t.tuple) }

// Elem returns the element domain of a homogeneous array, nil for tuples.
func (t *Array) Elem() Domain { return t.elem }

// Select returns the domain at the zero-based position, nil when out of range.
func (t *Array) Select(pos int) Domain {
	if t.elem != nil {
		return t.elem
	}
	if pos >= 0 && pos < len(t.tuple) {
		return t.tuple[pos]
	}
	return nil
}

func (t *Array) String() string {
	if t.elem != nil {
		return "array[" + Sprint(t.elem) + "]"
	}
	buf := make([]string, len(t.tuple))
	for i, d := range t.tuple {
		buf[i] = Sprint(d)
	}
	return "array<" + strings.Join(buf, ", ") + ">"
}

// Property is a declared object key.
type Property struct {
	Key      string
	Value    Domain
	Required bool
}

// Object represents string-keyed maps. Declared properties keep their own
// domains; every other key must belong to the additional domain. A nil
// additional domain closes the object.
type Object struct {
	props      []Property
	additional Domain
}

// NewObject returns an object domain. Properties are sorted by key; later
// duplicates replace earlier ones.
func NewObject(props []Property, additional Domain) *Object {
	byKey := make(map[string]Property, len(props))
	for _, p := range props {
		if p.Value == nil {
			p.Value = Any
		}
		byKey[p.Key] = p
	}
	sorted := make([]Property, 0, len(byKey))
	for _, p := range byKey {
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return &Object{props: sorted, additional: additional}
}

// NewMap returns an object domain without declared properties.
func NewMap(values Domain) *Object {
	if values == nil {
		values = Any
	}
	return &Object{additional: values}
}

func (*Object) Kind() Kind { return KindObject }

// Properties returns the declared properties sorted by key.
func (t *Object) Properties() []Property {
	return append([]Property(nil), t.props...)
}

// Property returns the declared property named key.
func (t *Object) Property(key string) (Property, bool) {
	i := sort.Search(len(t.props), func(i int) bool { return t.props[i].Key >= key })
	if i < len(t.props) && t.props[i].Key == key {
		return t.props[i], true
	}
	return Property{}, false
}

// Additional returns the domain of undeclared keys, nil when closed.
func (t *Object) Additional() Domain { return t.additional }

// Closed reports whether undeclared keys are rejected.
func (t *Object) Closed() bool { return t.additional == nil }

// Select returns the domain for the named key, nil when the key is not admitted.
func (t *Object) Select(key string) Domain {
	if p, ok := t.Property(key); ok {
		return p.Value
	}
	return t.additional
}

func (t *Object) String() string {
	buf := make([]string, 0, len(t.props))
	for _, p := range t.props {
		sep := "?: "
		if p.Required {
			sep = ": "
		}
		buf = append(buf, p.Key+sep+Sprint(p.Value))
	}
	repr := "object"
	if len(buf) > 0 {
		repr += "<" + strings.Join(buf, ", ") + ">"
	}
	if t.additional != nil {
		repr += "[" + t.additional.String() + "]"
	}
	return repr
}

// Not is the complement of a domain within Top.
type Not struct {
	excluded Domain
}

// NewNot returns the complement of d within the universal domain.
func NewNot(d Domain) Domain {
	switch x := d.(type) {
	case nil, Top:
		return None
	case Never:
		return Any
	case *Not:
		return x.excluded
	}
	return &Not{excluded: d}
}

func (*Not) Kind() Kind { return KindNot }

// Excluded returns the domain removed from Top.
func (t *Not) Excluded() Domain { return t.excluded }

func (t *Not) String() string { return "not<" + Sprint(t.excluded) + ">" }

// Union is a set of alternative domains. Build unions with NewUnion or Or so
// that they stay normalized.
type Union []Domain

// NewUnion returns the normalized union of the given domains: nested unions
// are flattened, Never members dropped, duplicates and literals already
// covered by a primitive member removed. Declaration order is preserved. A
// Top member makes the whole union Top; zero members give Never and a single
// member is returned as is.
func NewUnion(of ...Domain) Domain {
	flat := make([]Domain, 0, len(of))
	var walk func(ds []Domain) bool
	walk = func(ds []Domain) bool {
		for _, d := range ds {
			switch x := d.(type) {
			case nil, Never:
				continue
			case Top:
				return false
			case Union:
				if !walk(x) {
					return false
				}
			default:
				flat = append(flat, d)
			}
		}
		return true
	}
	if !walk(of) {
		return Any
	}

	out := make(Union, 0, len(flat))
	for _, d := range flat {
		if out.contains(d) {
			continue
		}
		out = append(out, d)
	}
	// Drop literals that a primitive member already covers.
	kept := make(Union, 0, len(out))
	for _, d := range out {
		if lit, ok := d.(*Literal); ok && out.coversLiteral(lit) {
			continue
		}
		kept = append(kept, d)
	}
	switch len(kept) {
	case 0:
		return None
	case 1:
		return kept[0]
	}
	return kept
}

// Or returns the union of a and b.
func Or(a, b Domain) Domain {
	return NewUnion(a, b)
}

func (Union) Kind() Kind { return KindUnion }

func (t Union) contains(d Domain) bool {
	for _, m := range t {
		if Compare(m, d) == 0 {
			return true
		}
	}
	return false
}

func (t Union) coversLiteral(lit *Literal) bool {
	want := primitiveFor(KindOfValue(lit.value))
	if want == nil {
		return false
	}
	for _, m := range t {
		if m.Kind() == want.Kind() {
			return true
		}
	}
	return false
}

func primitiveFor(k ValueKind) Domain {
	switch k {
	case ValueNull:
		return Z
	case ValueBoolean:
		return B
	case ValueNumber:
		return N
	case ValueString:
		return S
	}
	return nil
}

// Literals reports whether every member is a literal, i.e. the union came
// from an enum.
func (t Union) Literals() bool {
	for _, m := range t {
		if _, ok := m.(*Literal); !ok {
			return false
		}
	}
	return len(t) > 0
}

func (t Union) String() string {
	buf := make([]string, len(t))
	for i := range t {
		buf[i] = Sprint(t[i])
	}
	return strings.Join(buf, " | ")
}

// Equal reports whether a and b describe the same domain.
func Equal(a, b Domain) bool {
	return Compare(a, b) == 0
}

// Compare returns -1, 0, 1 based on a structural ordering of a and b. Unions
// compare as sets.
func Compare(a, b Domain) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if c := compareInts(int(a.Kind()), int(b.Kind())); c != 0 {
		return c
	}
	switch x := a.(type) {
	case *Literal:
		return CompareValues(x.value, b.(*Literal).value)
	case *Array:
		y := b.(*Array)
		if x.IsTuple() != y.IsTuple() {
			if x.IsTuple() {
				return -1
			}
			return 1
		}
		if !x.IsTuple() {
			return Compare(x.elem, y.elem)
		}
		return sliceCompare(x.tuple, y.tuple)
	case *Object:
		y := b.(*Object)
		if c := Compare(x.additional, y.additional); c != 0 {
			return c
		}
		for i := 0; i < len(x.props) && i < len(y.props); i++ {
			px, py := x.props[i], y.props[i]
			if c := strings.Compare(px.Key, py.Key); c != 0 {
				return c
			}
			if px.Required != py.Required {
				if px.Required {
					return 1
				}
				return -1
			}
			if c := Compare(px.Value, py.Value); c != 0 {
				return c
			}
		}
		return compareInts(len(x.props), len(y.props))
	case *Not:
		return Compare(x.excluded, b.(*Not).excluded)
	case Union:
		sx := sortedCopy(x)
		sy := sortedCopy(b.(Union))
		return sliceCompare(sx, sy)
	}
	return 0
}

func sortedCopy(u Union) []Domain {
	cpy := append([]Domain(nil), u...)
	sort.Slice(cpy, func(i, j int) bool { return Compare(cpy[i], cpy[j]) < 0 })
	return cpy
}

func sliceCompare(a, b []Domain) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}
