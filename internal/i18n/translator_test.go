package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("type_mismatch", nil); msg == "type_mismatch" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("type_mismatch", nil); msg == "value does not match the declared type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("not_a_real_code", nil); msg != "not_a_real_code" {
		t.Fatalf("expected the raw code back, got %q", msg)
	}
}

func TestTranslator_DetailIsAppended(t *testing.T) {
	msg := T("arity_mismatch", map[string]string{"detail": "expected 2 elements, got 1"})
	want := "wrong number of elements: expected 2 elements, got 1"
	if msg != want {
		t.Fatalf("Message = %q, want %q", msg, want)
	}
}
