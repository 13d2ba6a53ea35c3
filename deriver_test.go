package typeschema_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/reoring/typeschema"
	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
	"github.com/reoring/typeschema/logging"
)

const cacheSchema = `{"type":"object","properties":{"a":{"type":"strng"}}}`

func TestDeriver_CacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	dv := typeschema.NewDeriver(typeschema.DeriveOpt{CacheSize: 8, Registerer: reg})

	first, d1 := dv.DeriveWithDiag(mustSchema(t, cacheSchema))
	second, d2 := dv.DeriveWithDiag(mustSchema(t, cacheSchema))
	if !domain.Equal(first, second) {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}
	if strings.Join(d1.Warnings(), "\n") != strings.Join(d2.Warnings(), "\n") {
		t.Fatalf("cached warnings differ: %v vs %v", d1.Warnings(), d2.Warnings())
	}

	expected := `
# HELP typeschema_derivations_total Counter for schema derivations by cache outcome.
# TYPE typeschema_derivations_total counter
typeschema_derivations_total{cache="hit"} 1
typeschema_derivations_total{cache="miss"} 1
# HELP typeschema_derivation_warnings_total Counter for warnings emitted while deriving schemas.
# TYPE typeschema_derivation_warnings_total counter
typeschema_derivation_warnings_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected)); err != nil {
		t.Fatal(err)
	}

	dv.Purge()
	dv.Derive(mustSchema(t, cacheSchema))
	if err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP typeschema_derivations_total Counter for schema derivations by cache outcome.
# TYPE typeschema_derivations_total counter
typeschema_derivations_total{cache="hit"} 1
typeschema_derivations_total{cache="miss"} 2
`), "typeschema_derivations_total"); err != nil {
		t.Fatalf("after purge: %v", err)
	}
}

func TestDeriver_NoCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	dv := typeschema.NewDeriver(typeschema.DeriveOpt{Registerer: reg})
	dv.Derive(mustSchema(t, cacheSchema))
	dv.Derive(mustSchema(t, cacheSchema))
	n, err := testutil.GatherAndCount(reg, "typeschema_derivations_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want only the miss series, got %d series", n)
	}
}

func TestDeriver_ModeIsPartOfCacheKey(t *testing.T) {
	src := `{"type":"object","properties":{"a":{"type":"boolean"}},"additionalProperties":{"type":"number"}}`
	precise := typeschema.NewDeriver(typeschema.DeriveOpt{CacheSize: 4})
	widened := typeschema.NewDeriver(typeschema.DeriveOpt{CacheSize: 4, AdditionalProperties: typeschema.AdditionalPropertiesWidened})
	if precise.Derive(mustSchema(t, src)).String() == widened.Derive(mustSchema(t, src)).String() {
		t.Fatalf("modes must derive different domains")
	}
}

func TestDeriver_DuplicateRegistrationIsLogged(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logging.Error)

	typeschema.NewDeriver(typeschema.DeriveOpt{Registerer: reg, Logger: logger})
	typeschema.NewDeriver(typeschema.DeriveOpt{Registerer: reg, Logger: logger})
	if !strings.Contains(buf.String(), "failed to register") {
		t.Fatalf("expected a registration error in the log, got %q", buf.String())
	}
}

func TestDeriver_WarningsAreLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logging.Debug)

	dv := typeschema.NewDeriver(typeschema.DeriveOpt{Logger: logger})
	dv.Derive(mustSchema(t, `{"type":"strng"}`))
	if !strings.Contains(buf.String(), "unknown type") {
		t.Fatalf("expected the warning in the log, got %q", buf.String())
	}
}

func TestDeriver_Concurrent(t *testing.T) {
	dv := typeschema.NewDeriver(typeschema.DeriveOpt{CacheSize: 2})
	srcs := []string{
		`{"type":"string"}`,
		`{"enum":[1,2,3]}`,
		`{"type":"array","items":{"type":"number"}}`,
		`{"type":"object","properties":{"x":{"type":"null"}},"required":["x"]}`,
	}
	want := make([]domain.Domain, len(srcs))
	schemas := make([]*jsonschema.Schema, len(srcs))
	for i, src := range srcs {
		schemas[i] = mustSchema(t, src)
		want[i] = typeschema.NewDeriver(typeschema.DeriveOpt{}).Derive(schemas[i])
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				i := (g + n) % len(srcs)
				if got := dv.Derive(schemas[i]); !domain.Equal(got, want[i]) {
					errs <- got.String() + " != " + want[i].String()
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestDeriver_NonJSONSchemaIsNotCached(t *testing.T) {
	dv := typeschema.NewDeriver(typeschema.DeriveOpt{CacheSize: 4})
	type opaque struct{ A int }
	a := dv.Derive(&jsonschema.Schema{Const: &jsonschema.Value{V: opaque{1}}})
	b := dv.Derive(&jsonschema.Schema{Const: &jsonschema.Value{V: map[string]any{}}})
	if domain.Equal(a, b) {
		t.Fatalf("distinct schemas collided in the cache: %v", a)
	}
}
