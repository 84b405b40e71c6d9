package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	log.Info().Str("component", "test").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["service"] != ServiceName {
		t.Errorf("expected service=%s, got %v", ServiceName, line["service"])
	}
	if line["message"] != "hello" {
		t.Errorf("expected message=hello, got %v", line["message"])
	}
}

func TestTokenPrefix(t *testing.T) {
	if got := TokenPrefix("abc"); got != "abc" {
		t.Errorf("short token should be unchanged, got %q", got)
	}
	if got := TokenPrefix("0123456789abcdef"); got != "01234567..." {
		t.Errorf("unexpected prefix %q", got)
	}
}
