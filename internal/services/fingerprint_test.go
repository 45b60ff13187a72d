package services

import (
	"testing"

	"github.com/logsage/backend/internal/models"
)

func TestFingerprintShape(t *testing.T) {
	fp := Fingerprint("some sanitized log", models.LogTypeJava, `{"sanitize":true}`)

	if len(fp) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(fp))
	}
	for _, ch := range fp {
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f') {
			t.Errorf("Expected lowercase hex digits only, found %q", ch)
		}
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("log body", models.LogTypeSpring, `{"depth":"FAST"}`)
	b := Fingerprint("log body", models.LogTypeSpring, `{"depth":"FAST"}`)
	if a != b {
		t.Errorf("Identical inputs produced different fingerprints: %s vs %s", a, b)
	}
}

func TestFingerprintSensitiveToEachInput(t *testing.T) {
	base := Fingerprint("log body", models.LogTypeJava, `{"depth":"FAST"}`)

	if got := Fingerprint("log body changed", models.LogTypeJava, `{"depth":"FAST"}`); got == base {
		t.Error("Changing the log did not change the fingerprint")
	}
	if got := Fingerprint("log body", models.LogTypeSpring, `{"depth":"FAST"}`); got == base {
		t.Error("Changing the log type did not change the fingerprint")
	}
	if got := Fingerprint("log body", models.LogTypeJava, `{"depth":"DEEP"}`); got == base {
		t.Error("Changing the options did not change the fingerprint")
	}
}
