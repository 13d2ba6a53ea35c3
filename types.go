package typeschema

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/typeschema/logging"
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// AdditionalPropertiesMode selects how `additionalProperties: <schema>` is
// derived when `properties` are declared too.
type AdditionalPropertiesMode int

const (
	// AdditionalPropertiesPrecise keeps declared keys with their own domains and
	// constrains undeclared keys with the additional domain.
	AdditionalPropertiesPrecise AdditionalPropertiesMode = iota
	// AdditionalPropertiesWidened produces a single open map whose values are
	// the union of every declared domain and the additional domain. No key is
	// required.
	AdditionalPropertiesWidened
)

func (m AdditionalPropertiesMode) String() string {
	if m == AdditionalPropertiesWidened {
		return "widened"
	}
	return "precise"
}

// DeriveOpt bundles derivation options.
type DeriveOpt struct {
	AdditionalProperties AdditionalPropertiesMode
	// CacheSize bounds the number of derived domains kept by a Deriver. 0
	// disables caching.
	CacheSize int
	// Logger receives derivation warnings at debug level. Nil discards them.
	Logger logging.Logger
	// Registerer receives the Deriver's collectors. Nil skips registration.
	Registerer prometheus.Registerer
}

// DecodeOpt bundles instance decoding options.
type DecodeOpt struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
	MaxDepth       int      // 0 means unlimited.
	MaxBytes       int64    // 0 means unlimited.
}
