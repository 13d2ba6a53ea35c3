// Package loader reads JSON Schema documents from JSON or YAML text and turns
// them into *jsonschema.Schema values ready for derivation. Local $refs can be
// inlined and documents can be checked against the draft-07 meta-schema.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	santhosh "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/reoring/typeschema/internal/jsonvalue"
	"github.com/reoring/typeschema/jsonschema"
	"github.com/reoring/typeschema/logging"
)

var (
	// ErrUnsupportedFormat is returned by FromFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("loader: unsupported document format")
	// ErrInvalidSchema is returned when a document is not a JSON Schema.
	ErrInvalidSchema = errors.New("loader: invalid JSON Schema")
)

// DefaultMaxExpansion is the reference expansion budget used when
// Options.MaxExpansion is zero.
const DefaultMaxExpansion = 100000

// Options configures document loading.
type Options struct {
	// ResolveRefs inlines local "#/..." references.
	ResolveRefs bool
	// MaxExpansion bounds the number of nodes inlined by ResolveRefs. Zero
	// means DefaultMaxExpansion.
	MaxExpansion int
	// MetaValidate compiles the document as a draft-07 schema before use.
	MetaValidate bool
	// Logger receives load warnings. Nil discards them.
	Logger logging.Logger
}

// Document is a loaded schema document.
type Document struct {
	Schema *jsonschema.Schema
	// Raw is the decoded document before reference resolution.
	Raw any
	// Warnings are prefixed with the JSON Pointer they concern.
	Warnings []string
}

// FromJSON loads a schema document from JSON text. Duplicate keys keep the
// last value and are reported as warnings.
func FromJSON(data []byte, opt Options) (*Document, error) {
	tree, si, err := jsonvalue.Decode(data, jsonvalue.Options{OnDuplicateKey: jsonvalue.DupWarn})
	if err != nil {
		return nil, fmt.Errorf("loader: decode JSON: %w", err)
	}
	ws := make([]string, 0, len(si))
	for _, it := range si {
		ws = append(ws, it.Path+": "+it.Message)
	}
	return build(tree, ws, opt)
}

// FromYAML loads a schema document from the first document of a YAML stream.
func FromYAML(data []byte, opt Options) (*Document, error) {
	tree, ws, err := decodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("loader: decode YAML: %w", err)
	}
	return build(tree, ws, opt)
}

// FromFile loads a schema document, choosing the decoder by extension:
// .json, .yaml or .yml.
func FromFile(path string, opt Options) (*Document, error) {
	var load func([]byte, Options) (*Document, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		load = FromJSON
	case ".yaml", ".yml":
		load = FromYAML
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	doc, err := load(data, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func build(tree any, ws []string, opt Options) (*Document, error) {
	logger := opt.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if opt.MetaValidate {
		if err := metaValidate(tree); err != nil {
			return nil, err
		}
	}
	resolved := tree
	if opt.ResolveRefs {
		budget := opt.MaxExpansion
		if budget <= 0 {
			budget = DefaultMaxExpansion
		}
		r := newResolver(tree, budget)
		resolved = r.schema(deepCopy(tree), "")
		ws = append(ws, r.warnings...)
	}
	s, err := jsonschema.FromValue(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	for _, w := range ws {
		logger.Warn("schema load: %s", w)
	}
	return &Document{Schema: s, Raw: tree, Warnings: ws}, nil
}

// documentURL names the in-memory resource handed to the compiler.
const documentURL = "typeschema-document.json"

func metaValidate(tree any) error {
	c := santhosh.NewCompiler()
	c.DefaultDraft(santhosh.Draft7)
	if err := c.AddResource(documentURL, tree); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if _, err := c.Compile(documentURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return nil
}
