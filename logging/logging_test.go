package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reoring/typeschema/logging"
)

func TestStandardLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New()
	l.SetOutput(&buf)
	l.SetFormatter(logging.GetFormatter("json"))
	l.SetLevel(logging.Warn)

	l.Info("hidden %d", 1)
	l.WithFields(map[string]any{"schema": "s.json"}).Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown 2"`) || !strings.Contains(out, `"schema":"s.json"`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if l.GetLevel() != logging.Warn {
		t.Fatalf("want warn, got %v", l.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]logging.Level{"": logging.Info, "DEBUG": logging.Debug, "warn": logging.Warn, "error": logging.Error} {
		got, err := logging.ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := logging.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNoOpLogger(t *testing.T) {
	var l logging.Logger = logging.NewNoOpLogger()
	l.SetLevel(logging.Debug)
	l.WithFields(map[string]any{"a": 1}).Debug("ignored")
	if l.GetLevel() != logging.Debug {
		t.Fatalf("level not retained")
	}
}
