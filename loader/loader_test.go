package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/typeschema"
	"github.com/reoring/typeschema/loader"
	"github.com/reoring/typeschema/logging"
)

func TestFromJSON(t *testing.T) {
	doc, err := loader.FromJSON([]byte(`{"type":"object","properties":{"a":{"type":"string"}},"required":["a"]}`), loader.Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, "object<a: string>[any]", typeschema.Derive(doc.Schema).String())
	assert.IsType(t, map[string]any{}, doc.Raw)
}

func TestFromJSON_DuplicateKeysWarn(t *testing.T) {
	doc, err := loader.FromJSON([]byte(`{"type":"string","type":"number"}`), loader.Options{})
	require.NoError(t, err)
	require.Len(t, doc.Warnings, 1)
	assert.True(t, strings.HasPrefix(doc.Warnings[0], "/type: "), doc.Warnings[0])
	assert.Equal(t, "number", typeschema.Derive(doc.Schema).String())
}

func TestFromJSON_NotASchema(t *testing.T) {
	_, err := loader.FromJSON([]byte(`[1,2]`), loader.Options{})
	require.ErrorIs(t, err, loader.ErrInvalidSchema)

	_, err = loader.FromJSON([]byte(`{"type":`), loader.Options{})
	require.Error(t, err)
}

func TestFromYAML(t *testing.T) {
	src := `
type: object
properties:
  port:
    enum: [80, 443, 8080.5]
  name:
    type: string
  ratio:
    const: 1e3
required: [port]
additionalProperties: false
`
	doc, err := loader.FromYAML([]byte(src), loader.Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	d := typeschema.Derive(doc.Schema)
	assert.Equal(t, "object<name?: string, port: 80 | 443 | 8080.5, ratio?: 1000>", d.String())
}

func TestFromYAML_Warnings(t *testing.T) {
	src := "type: string\ntype: boolean\n---\ntype: number\n"
	doc, err := loader.FromYAML([]byte(src), loader.Options{})
	require.NoError(t, err)
	require.Len(t, doc.Warnings, 2)
	assert.Contains(t, doc.Warnings[0], `/type: duplicate YAML key "type" at 2:1 (first at 1:1)`)
	assert.Equal(t, "/: only the first YAML document is used", doc.Warnings[1])
	assert.Equal(t, "boolean", typeschema.Derive(doc.Schema).String())
}

func TestFromYAML_Anchors(t *testing.T) {
	src := `
definitions:
  name: &name {type: string}
type: array
items: *name
`
	doc, err := loader.FromYAML([]byte(src), loader.Options{})
	require.NoError(t, err)
	assert.Equal(t, "array[string]", typeschema.Derive(doc.Schema).String())
}

func TestFromYAML_Empty(t *testing.T) {
	_, err := loader.FromYAML(nil, loader.Options{})
	require.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}

	doc, err := loader.FromFile(write("a.json", `{"type":"null"}`), loader.Options{})
	require.NoError(t, err)
	assert.Equal(t, "null", typeschema.Derive(doc.Schema).String())

	doc, err = loader.FromFile(write("b.YML", "type: boolean\n"), loader.Options{})
	require.NoError(t, err)
	assert.Equal(t, "boolean", typeschema.Derive(doc.Schema).String())

	_, err = loader.FromFile(write("c.txt", "{}"), loader.Options{})
	require.ErrorIs(t, err, loader.ErrUnsupportedFormat)

	_, err = loader.FromFile(filepath.Join(dir, "missing.json"), loader.Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveRefs(t *testing.T) {
	src := `{
		"definitions": {
			"name": {"type": "string"},
			"pair": {"type": "array", "items": [{"$ref": "#/definitions/name"}, {"type": "number"}]}
		},
		"type": "object",
		"properties": {
			"a": {"$ref": "#/definitions/name"},
			"b": {"$ref": "#/definitions/pair"},
			"c": {"$ref": "#/definitions/name", "type": "null"}
		},
		"required": ["a"]
	}`
	doc, err := loader.FromJSON([]byte(src), loader.Options{ResolveRefs: true})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, "object<a: string, b?: array<string, number>, c?: null>[any]", typeschema.Derive(doc.Schema).String())

	// Raw keeps the references.
	props := doc.Raw.(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "#/definitions/name", props["a"].(map[string]any)["$ref"])
}

func TestResolveRefs_Unresolved(t *testing.T) {
	src := `{"anyOf":[{"$ref":"other.json#/x"},{"$ref":"#/definitions/missing"},{"$ref":"#/definitions/node"}],
		"definitions":{"node":{"type":"array","items":{"$ref":"#/definitions/node"}}}}`
	var buf bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&buf)

	doc, err := loader.FromJSON([]byte(src), loader.Options{ResolveRefs: true, Logger: logger})
	require.NoError(t, err)

	joined := strings.Join(doc.Warnings, "\n")
	assert.Contains(t, joined, `/anyOf/0: $ref "other.json#/x" is not a local reference`)
	assert.Contains(t, joined, `/anyOf/1: $ref "#/definitions/missing" cannot be resolved`)
	assert.Contains(t, joined, `cyclic $ref "#/definitions/node" is left unresolved`)
	assert.Contains(t, buf.String(), "schema load:")
}

func TestResolveRefs_BooleanTarget(t *testing.T) {
	src := `{"definitions":{"no":false,"yes":true},"type":"object","properties":{"a":{"$ref":"#/definitions/no"},"b":{"$ref":"#/definitions/yes","type":"string"}}}`
	doc, err := loader.FromJSON([]byte(src), loader.Options{ResolveRefs: true})
	require.NoError(t, err)
	assert.Equal(t, "object<a?: never, b?: string>[any]", typeschema.Derive(doc.Schema).String())
}

func TestResolveRefs_Root(t *testing.T) {
	src := `{"type":"array","items":{"$ref":"#"}}`
	doc, err := loader.FromJSON([]byte(src), loader.Options{ResolveRefs: true})
	require.NoError(t, err)
	assert.Equal(t, "array[array[any]]", typeschema.Derive(doc.Schema).String())
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], `cyclic $ref "#"`)
}

// doublingChain returns a document whose definition i refers to definition
// i-1 twice, so full inlining grows as 2^n.
func doublingChain(n int) string {
	var b strings.Builder
	b.WriteString(`{"type":"array","items":{"$ref":"#/definitions/d` + strconv.Itoa(n-1) + `"},"definitions":{"d0":{"type":"string"}`)
	for i := 1; i < n; i++ {
		prev := `{"$ref":"#/definitions/d` + strconv.Itoa(i-1) + `"}`
		b.WriteString(`,"d` + strconv.Itoa(i) + `":{"type":"array","items":[` + prev + `,` + prev + `]}`)
	}
	b.WriteString(`}}`)
	return b.String()
}

func TestResolveRefs_SharedTargets(t *testing.T) {
	doc, err := loader.FromJSON([]byte(doublingChain(3)), loader.Options{ResolveRefs: true})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, "array[array<array<string, string>, array<string, string>>]", typeschema.Derive(doc.Schema).String())
}

func TestResolveRefs_ExpansionLimit(t *testing.T) {
	doc, err := loader.FromJSON([]byte(doublingChain(40)), loader.Options{ResolveRefs: true})
	require.NoError(t, err)
	assert.Contains(t, strings.Join(doc.Warnings, "\n"), "reference expansion limit reached")

	doc, err = loader.FromJSON([]byte(doublingChain(3)), loader.Options{ResolveRefs: true, MaxExpansion: 5})
	require.NoError(t, err)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "reference expansion limit reached")
}

func TestMetaValidate(t *testing.T) {
	_, err := loader.FromJSON([]byte(`{"type":"object","properties":{"a":{"type":"string","minLength":1}}}`), loader.Options{MetaValidate: true})
	require.NoError(t, err)

	for _, src := range []string{`{"type":7}`, `{"minLength":-1}`, `{"required":"a"}`, `{"$ref":"#/definitions/missing"}`} {
		_, err := loader.FromJSON([]byte(src), loader.Options{MetaValidate: true})
		assert.ErrorIs(t, err, loader.ErrInvalidSchema, src)
	}

	// Without meta validation malformed keywords only produce derivation warnings.
	doc, err := loader.FromJSON([]byte(`{"type":7}`), loader.Options{})
	require.NoError(t, err)
	_, diag := typeschema.DeriveWithDiag(doc.Schema)
	assert.True(t, diag.HasWarnings())
}
