package typeschema

import (
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/jsonschema"
	"github.com/reoring/typeschema/logging"
)

// Deriver derives domains from schemas. It is safe for concurrent use. When
// configured with a cache size, results are memoized by a fingerprint of the
// schema's canonical JSON encoding.
type Deriver struct {
	opt     DeriveOpt
	cache   *lru.Cache[uint64, derivation]
	logger  logging.Logger
	metrics *collectors
}

type derivation struct {
	domain   domain.Domain
	warnings []string
}

// NewDeriver returns a Deriver configured by opt.
func NewDeriver(opt DeriveOpt) *Deriver {
	dv := &Deriver{opt: opt, logger: opt.Logger}
	if dv.logger == nil {
		dv.logger = logging.NewNoOpLogger()
	}
	if opt.CacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		dv.cache, _ = lru.New[uint64, derivation](opt.CacheSize)
	}
	dv.metrics = newCollectors()
	dv.metrics.RegisterAll(opt.Registerer, dv.logger)
	return dv
}

// Derive returns the domain of values admitted by s.
func (dv *Deriver) Derive(s *jsonschema.Schema) domain.Domain {
	d, _ := dv.DeriveWithDiag(s)
	return d
}

// DeriveWithDiag is like Derive and also returns the warnings collected while
// walking the schema: ignored keywords, unresolved references, unknown types.
func (dv *Deriver) DeriveWithDiag(s *jsonschema.Schema) (domain.Domain, Diag) {
	key, cacheable := dv.fingerprint(s)
	if cacheable {
		if hit, ok := dv.cache.Get(key); ok {
			dv.metrics.derivations.WithLabelValues("hit").Inc()
			return hit.domain, &simpleDiag{ws: hit.warnings}
		}
	}

	w := newDeriver(dv.opt.AdditionalProperties)
	out := w.derive(s, Root())
	dv.metrics.derivations.WithLabelValues("miss").Inc()
	if w.diag.HasWarnings() {
		dv.metrics.warnings.Add(float64(len(w.diag.ws)))
		for _, msg := range w.diag.ws {
			dv.logger.Debug("derivation warning: %s", msg)
		}
	}
	if cacheable {
		dv.cache.Add(key, derivation{domain: out, warnings: w.diag.Warnings()})
	}
	return out, w.diag
}

// Purge drops every cached derivation.
func (dv *Deriver) Purge() {
	if dv.cache != nil {
		dv.cache.Purge()
	}
}

func (dv *Deriver) fingerprint(s *jsonschema.Schema) (uint64, bool) {
	if dv.cache == nil || s == nil {
		return 0, false
	}
	// Go values without a JSON form would collide with their encodings.
	tree := s.ToValue()
	if !domain.IsJSON(tree) {
		return 0, false
	}
	bs, err := json.Marshal(tree)
	if err != nil {
		return 0, false
	}
	h := xxhash.New()
	_, _ = h.WriteString(dv.opt.AdditionalProperties.String())
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(bs)
	return h.Sum64(), true
}

type collectors struct {
	derivations *prometheus.CounterVec
	warnings    prometheus.Counter
}

func newCollectors() *collectors {
	derivations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typeschema_derivations_total",
			Help: "Counter for schema derivations by cache outcome.",
		},
		[]string{"cache"},
	)
	warnings := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typeschema_derivation_warnings_total",
			Help: "Counter for warnings emitted while deriving schemas.",
		},
	)
	return &collectors{derivations: derivations, warnings: warnings}
}

func (c *collectors) toList() []prometheus.Collector {
	return []prometheus.Collector{c.derivations, c.warnings}
}

func (c *collectors) RegisterAll(register prometheus.Registerer, logger logging.Logger) {
	if register == nil {
		return
	}
	for _, collector := range c.toList() {
		if err := register.Register(collector); err != nil {
			logger.Error("Derivation metric failed to register on prometheus: %v.", err)
		}
	}
}
