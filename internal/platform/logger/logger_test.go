package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"token", "abc", "email", "a@b.c", "product_id", "p1"})
	if out[1] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", out[3])
	}
	if out[5] != "p1" {
		t.Fatalf("product_id altered: %v", out[5])
	}
}

func TestSanitizeKVsHashesUserID(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", "u-42"})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("expected hashed user id, got %v", out[1])
	}
	again := sanitizeKVs([]interface{}{"user_id", "u-42"})
	if again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"order_id", "o1", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "k", "v")
	}
}
