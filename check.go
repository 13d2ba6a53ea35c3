package typeschema

import (
	"context"

	"github.com/reoring/typeschema/domain"
)

// Check verifies that v belongs to d. It returns nil on success and Issues
// otherwise. Object keys are visited in sorted order so the issue list is
// deterministic. When ctx carries WithFailFast(ctx, true), checking stops at
// the first issue.
//
// v is a decoded JSON value: nil, bool, string, json.Number, a finite Go
// number, []any, map[string]any or map[any]any with string keys.
func Check(ctx context.Context, d domain.Domain, v any) error {
	c := &checker{failFast: IsFailFast(ctx)}
	c.check(d, v, Root())
	if len(c.issues) == 0 {
		return nil
	}
	return c.issues
}

// Accepts reports whether v belongs to d.
func Accepts(d domain.Domain, v any) bool {
	switch t := d.(type) {
	case nil, domain.Top:
		return domain.IsJSON(v)
	case domain.Never:
		return false
	case domain.Null:
		return domain.KindOfValue(v) == domain.ValueNull
	case domain.Boolean:
		return domain.KindOfValue(v) == domain.ValueBoolean
	case domain.Number:
		return domain.KindOfValue(v) == domain.ValueNumber
	case domain.String:
		return domain.KindOfValue(v) == domain.ValueString
	case *domain.Literal:
		return t.Contains(v)
	case domain.Union:
		for _, m := range t {
			if Accepts(m, v) {
				return true
			}
		}
		return false
	case *domain.Not:
		return domain.IsJSON(v) && !Accepts(t.Excluded(), v)
	case *domain.Array:
		if domain.KindOfValue(v) != domain.ValueArray {
			return false
		}
		elems := domain.Elements(v)
		if t.IsTuple() && len(elems) != t.Len() {
			return false
		}
		for i, e := range elems {
			if !Accepts(t.Select(i), e) {
				return false
			}
		}
		return true
	case *domain.Object:
		if domain.KindOfValue(v) != domain.ValueObject {
			return false
		}
		members := domain.Members(v)
		for _, p := range t.Properties() {
			if _, ok := members[p.Key]; !ok && p.Required {
				return false
			}
		}
		for k, e := range members {
			sel := t.Select(k)
			if sel == nil || !Accepts(sel, e) {
				return false
			}
		}
		return true
	}
	return false
}

type checker struct {
	failFast bool
	issues   Issues
}

func (c *checker) done() bool { return c.failFast && len(c.issues) > 0 }

func (c *checker) report(at PathRef, code string, params map[string]any) {
	c.issues = AppendIssues(c.issues, IssueAt(at, code, params))
}

func (c *checker) check(d domain.Domain, v any, at PathRef) {
	if d == nil {
		d = domain.Any
	}
	kind := domain.KindOfValue(v)
	if kind == domain.ValueInvalid {
		c.report(at, CodeInvalidType, map[string]any{"expected": domain.Sprint(d), "got": "non-JSON value"})
		return
	}
	switch t := d.(type) {
	case domain.Top:
		if kind == domain.ValueArray || kind == domain.ValueObject {
			c.children(v, at)
		}
	case domain.Never:
		c.report(at, CodeNotAllowed, map[string]any{"excluded": "any"})
	case domain.Null, domain.Boolean, domain.Number, domain.String:
		if !Accepts(d, v) {
			c.report(at, CodeInvalidType, map[string]any{"expected": d.String(), "got": kind.String()})
		}
	case *domain.Literal:
		if !t.Contains(v) {
			c.report(at, CodeInvalidConst, map[string]any{"expected": t.String()})
		}
	case domain.Union:
		c.checkUnion(t, v, kind, at)
	case *domain.Not:
		if !domain.IsJSON(v) {
			c.children(v, at)
			return
		}
		if Accepts(t.Excluded(), v) {
			c.report(at, CodeNotAllowed, map[string]any{"excluded": domain.Sprint(t.Excluded())})
		}
	case *domain.Array:
		c.checkArray(t, v, kind, at)
	case *domain.Object:
		c.checkObject(t, v, kind, at)
	}
}

// children validates that nested values are JSON values when the domain does
// not constrain them further.
func (c *checker) children(v any, at PathRef) {
	switch domain.KindOfValue(v) {
	case domain.ValueArray:
		for i, e := range domain.Elements(v) {
			if c.done() {
				return
			}
			c.check(domain.Any, e, at.Index(i))
		}
	case domain.ValueObject:
		members := domain.Members(v)
		for _, k := range domain.SortedKeys(members) {
			if c.done() {
				return
			}
			c.check(domain.Any, members[k], at.Field(k))
		}
	}
}

func (c *checker) checkUnion(u domain.Union, v any, kind domain.ValueKind, at PathRef) {
	if Accepts(u, v) {
		return
	}
	if u.Literals() {
		c.report(at, CodeInvalidEnum, map[string]any{"expected": u.String()})
		return
	}
	// A single member of the value's shape gets to explain the failure.
	var candidate domain.Domain
	n := 0
	for _, m := range u {
		if shapeMatches(m, kind) {
			candidate = m
			n++
		}
	}
	if n == 1 {
		c.check(candidate, v, at)
		return
	}
	c.report(at, CodeInvalidUnion, map[string]any{"expected": u.String(), "got": kind.String()})
}

func shapeMatches(d domain.Domain, kind domain.ValueKind) bool {
	switch t := d.(type) {
	case domain.Null:
		return kind == domain.ValueNull
	case domain.Boolean:
		return kind == domain.ValueBoolean
	case domain.Number:
		return kind == domain.ValueNumber
	case domain.String:
		return kind == domain.ValueString
	case *domain.Literal:
		return t.ValueKind() == kind
	case *domain.Array:
		return kind == domain.ValueArray
	case *domain.Object:
		return kind == domain.ValueObject
	}
	return false
}

func (c *checker) checkArray(t *domain.Array, v any, kind domain.ValueKind, at PathRef) {
	if kind != domain.ValueArray {
		c.report(at, CodeInvalidType, map[string]any{"expected": "array", "got": kind.String()})
		return
	}
	elems := domain.Elements(v)
	if t.IsTuple() {
		switch {
		case len(elems) < t.Len():
			c.report(at, CodeTooShort, map[string]any{"expected": t.Len(), "got": len(elems)})
		case len(elems) > t.Len():
			c.report(at, CodeTooLong, map[string]any{"expected": t.Len(), "got": len(elems)})
		}
	}
	for i, e := range elems {
		if c.done() {
			return
		}
		sel := t.Select(i)
		if sel == nil {
			break
		}
		c.check(sel, e, at.Index(i))
	}
}

func (c *checker) checkObject(t *domain.Object, v any, kind domain.ValueKind, at PathRef) {
	if kind != domain.ValueObject {
		c.report(at, CodeInvalidType, map[string]any{"expected": "object", "got": kind.String()})
		return
	}
	members := domain.Members(v)
	for _, p := range t.Properties() {
		if c.done() {
			return
		}
		if _, ok := members[p.Key]; !ok && p.Required {
			c.report(at.Field(p.Key), CodeRequired, map[string]any{"key": p.Key})
		}
	}
	for _, k := range domain.SortedKeys(members) {
		if c.done() {
			return
		}
		sel := t.Select(k)
		if sel == nil {
			c.report(at.Field(k), CodeUnknownKey, map[string]any{"key": k})
			continue
		}
		c.check(sel, members[k], at.Field(k))
	}
}
