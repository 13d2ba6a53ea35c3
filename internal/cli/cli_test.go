package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/typeschema"
	"github.com/reoring/typeschema/internal/cli"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "number"},
		"tags": {"type": "array", "items": {"$ref": "#/definitions/tag"}}
	},
	"required": ["name"],
	"additionalProperties": false,
	"definitions": {"tag": {"enum": ["a", "b"]}}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	// Keep the developer's config file out of the tests.
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDerive(t *testing.T) {
	schema := writeFile(t, "person.json", personSchema)

	out, errOut, err := run(t, "", "derive", schema)
	require.NoError(t, err)
	assert.Equal(t, "object<age?: number, name: string, tags?: array[any]>\n", out)
	assert.Contains(t, errOut, "is not resolved")

	out, _, err = run(t, "", "derive", "--resolve-refs", schema)
	require.NoError(t, err)
	assert.Equal(t, `object<age?: number, name: string, tags?: array["a" | "b"]>`+"\n", out)
}

func TestDerive_JSONFormat(t *testing.T) {
	out, _, err := run(t, `{"type":"string"}`, "derive", "-f", "json", "-")
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "string", v["kind"])
}

func TestDerive_Errors(t *testing.T) {
	_, _, err := run(t, "", "derive", writeFile(t, "s.txt", "{}"))
	require.Error(t, err)

	_, _, err = run(t, "", "derive", "--meta-validate", writeFile(t, "s.json", `{"type":7}`))
	require.Error(t, err)

	_, _, err = run(t, "", "derive", "--additional-properties", "loose", writeFile(t, "s.json", `{}`))
	require.Error(t, err)
}

func TestCheck_BothFromStdin(t *testing.T) {
	_, _, err := run(t, `{"type":"string"}`, "check", "-", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot both be read from stdin")
	assert.NotErrorIs(t, err, cli.ErrCheckFailed)
}

func TestCheck(t *testing.T) {
	schema := writeFile(t, "person.yaml", "type: object\nproperties:\n  name: {type: string}\nrequired: [name]\nadditionalProperties: false\n")

	out, _, err := run(t, `{"name":"x"}`, "check", schema, "-")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, _, err = run(t, `{"name":1,"extra":true}`, "check", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, "/extra")
	assert.Contains(t, out, typeschema.CodeUnknownKey)
	assert.Contains(t, out, "2 issue(s)")

	out, _, err = run(t, `{"name":1,"extra":true}`, "check", "--fail-fast", "--format", "json", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	var res struct {
		Valid  bool              `json:"valid"`
		Issues typeschema.Issues `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "/extra", res.Issues[0].Path)
}

func TestCheck_DecodeOptions(t *testing.T) {
	schema := writeFile(t, "any.json", `{}`)

	_, errOut, err := run(t, `{"a":1,"a":2}`, "check", schema, "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "duplicated")

	out, _, err := run(t, `{"a":1,"a":2}`, "check", "--duplicate-keys", "error", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, typeschema.CodeDuplicateKey)

	out, _, err = run(t, `[[[1]]]`, "check", "--max-depth", "2", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, typeschema.CodeTooDeep)
}

func TestCheck_EnvironmentAndConfig(t *testing.T) {
	schema := writeFile(t, "any.json", `{}`)

	t.Setenv("TYPESCHEMA_DUPLICATE_KEYS", "error")
	out, _, err := run(t, `{"a":1,"a":2}`, "check", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, typeschema.CodeDuplicateKey)

	// Flags beat the environment.
	_, _, err = run(t, `{"a":1,"a":2}`, "check", "--duplicate-keys", "ignore", schema, "-")
	require.NoError(t, err)

	cfg := writeFile(t, "config.yaml", "max-depth: 1\n")
	out, _, err = run(t, `[[1]]`, "check", "--config", cfg, "--duplicate-keys", "ignore", schema, "-")
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, typeschema.CodeTooDeep)

	_, _, err = run(t, `1`, "check", "--config", filepath.Join(t.TempDir(), "missing.yaml"), schema, "-")
	require.Error(t, err)
}

func TestSample(t *testing.T) {
	schema := writeFile(t, "person.json", personSchema)

	out, _, err := run(t, "", "sample", "--resolve-refs", "--seed", "9", "-n", "5", schema)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	again, _, err := run(t, "", "sample", "--resolve-refs", "--seed", "9", "-n", "5", schema)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	for _, line := range lines {
		_, _, err := run(t, line, "check", "--resolve-refs", schema, "-")
		assert.NoError(t, err, line)
	}

	_, _, err = run(t, "", "sample", writeFile(t, "never.json", `false`))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+cli.Version)
}
