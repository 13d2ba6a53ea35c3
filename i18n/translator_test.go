package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T("invalid_type", map[string]string{"expected": "string", "got": "number"})
	if got != "expected string, got number" {
		t.Fatalf("unexpected message %q", got)
	}
	// Missing data falls back to the short form.
	if got := T("invalid_type", map[string]string{"expected": "string"}); got != "invalid type" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown codes should echo the code, got %q", got)
	}
}

type fixed string

func (f fixed) Message(string, map[string]string) string { return string(f) }

func TestSetTranslator(t *testing.T) {
	SetTranslator(fixed("x"))
	if got := T("required", nil); got != "x" {
		t.Fatalf("custom translator not used, got %q", got)
	}
	SetTranslator(nil)
	if got := T("required", nil); got != "required property missing" {
		t.Fatalf("nil should restore the default, got %q", got)
	}
}
