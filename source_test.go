package typeschema_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/reoring/typeschema"
)

func TestDecodeJSON_DuplicateKey_Error(t *testing.T) {
	_, _, err := typeschema.DecodeJSON([]byte(`{"a":1,"a":2}`), typeschema.DecodeOpt{OnDuplicateKey: typeschema.Error})
	iss, ok := typeschema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got: %v", err)
	}
	if iss[0].Code != typeschema.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got: %v", iss[0])
	}
	if iss[0].Params["key"] != "a" {
		t.Fatalf("expected key param, got: %v", iss[0].Params)
	}
}

func TestDecodeJSON_DuplicateKey_NestedPath(t *testing.T) {
	_, _, err := typeschema.DecodeJSON([]byte(`[{"x/y":1,"x/y":2}]`), typeschema.DecodeOpt{OnDuplicateKey: typeschema.Error})
	iss, ok := typeschema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != "/0/x~1y" || iss[0].Params["key"] != "x/y" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestDecodeJSON_DuplicateKey_Warn(t *testing.T) {
	v, warnings, err := typeschema.DecodeJSON([]byte(`{"a":1,"a":2}`), typeschema.DecodeOpt{OnDuplicateKey: typeschema.Warn})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != typeschema.CodeDuplicateKey {
		t.Fatalf("expected a duplicate_key warning, got: %v", warnings)
	}
	if got := v.(map[string]any)["a"]; got != json.Number("2") {
		t.Fatalf("last value wins, got %v", got)
	}
}

func TestDecodeJSON_DuplicateKey_Ignore(t *testing.T) {
	_, warnings, err := typeschema.DecodeJSON([]byte(`{"a":1,"a":2}`), typeschema.DecodeOpt{})
	if err != nil || len(warnings) != 0 {
		t.Fatalf("duplicates are ignored by default, got %v / %v", warnings, err)
	}
}

func TestDecodeJSON_MaxDepth_Exceeded(t *testing.T) {
	_, _, err := typeschema.DecodeJSON([]byte(`{"a":{"b":{"c":1}}}`), typeschema.DecodeOpt{MaxDepth: 2})
	iss, ok := typeschema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != typeschema.CodeTooDeep || iss[0].Path != "/a/b" {
		t.Fatalf("expected too_deep at /a/b, got: %v", err)
	}
}

func TestDecodeJSONReader_MaxBytes_Exceeded(t *testing.T) {
	data := append([]byte(`{"a":"`), bytes.Repeat([]byte("x"), 1024)...)
	data = append(data, `"}`...)
	_, _, err := typeschema.DecodeJSONReader(bytes.NewReader(data), typeschema.DecodeOpt{MaxBytes: 16})
	iss, ok := typeschema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != typeschema.CodeTooLarge {
		t.Fatalf("expected too_large, got: %v", err)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, src := range []string{``, `{`, `{"a":}`, `[1`, `1 2`} {
		_, _, err := typeschema.DecodeJSON([]byte(src), typeschema.DecodeOpt{})
		iss, ok := typeschema.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != typeschema.CodeParseError || iss[0].Path != "/" {
			t.Errorf("%q: expected parse_error at /, got: %v", src, err)
		}
	}
}

func TestCheckJSON(t *testing.T) {
	ctx := context.Background()
	s := mustSchema(t, `{"type":"object","properties":{"id":{"type":"string"}},"required":["id"],"additionalProperties":false}`)

	if err := typeschema.CheckJSON(ctx, s, []byte(`{"id":"x"}`), typeschema.DecodeOpt{}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	// Warn-level duplicates do not fail the check.
	if err := typeschema.CheckJSON(ctx, s, []byte(`{"id":"x","id":"y"}`), typeschema.DecodeOpt{OnDuplicateKey: typeschema.Warn}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := typeschema.CheckJSON(ctx, s, []byte(`{"id":"x","id":"y"}`), typeschema.DecodeOpt{OnDuplicateKey: typeschema.Error})
	if iss, _ := typeschema.AsIssues(err); len(iss) != 1 || iss[0].Code != typeschema.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got: %v", err)
	}
	err = typeschema.CheckJSONReader(ctx, s, strings.NewReader(`{"id":1,"extra":true}`), typeschema.DecodeOpt{})
	iss, _ := typeschema.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/extra" || iss[1].Path != "/id" {
		t.Fatalf("expected issues at /extra and /id, got: %v", err)
	}
}
