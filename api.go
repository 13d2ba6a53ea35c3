package typeschema

import (
	"context"
	"io"

	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
)

// DefaultCacheSize is the cache size of the package-level Deriver.
const DefaultCacheSize = 256

var defaultDeriver = NewDeriver(DeriveOpt{CacheSize: DefaultCacheSize})

// Derive returns the domain admitted by s using precise additionalProperties
// semantics and the package-level cache.
func Derive(s *jsonschema.Schema) domain.Domain {
	return defaultDeriver.Derive(s)
}

// DeriveWithDiag is like Derive and also returns derivation warnings.
func DeriveWithDiag(s *jsonschema.Schema) (domain.Domain, Diag) {
	return defaultDeriver.DeriveWithDiag(s)
}

// CheckSchema derives s and checks v against the result.
func CheckSchema(ctx context.Context, s *jsonschema.Schema, v any) error {
	return Check(ctx, Derive(s), v)
}

// CheckJSON decodes data with opt and checks the value against the domain of
// s. Decoding failures are returned as Issues with parse-level codes;
// duplicate keys under Warn do not fail the check.
func CheckJSON(ctx context.Context, s *jsonschema.Schema, data []byte, opt DecodeOpt) error {
	v, _, err := DecodeJSON(data, opt)
	if err != nil {
		return err
	}
	return CheckSchema(ctx, s, v)
}

// CheckJSONReader is like CheckJSON but reads the instance from r.
func CheckJSONReader(ctx context.Context, s *jsonschema.Schema, r io.Reader, opt DecodeOpt) error {
	v, _, err := DecodeJSONReader(r, opt)
	if err != nil {
		return err
	}
	return CheckSchema(ctx, s, v)
}

// ---- context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that makes Check stop at the first
// issue.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current check should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
