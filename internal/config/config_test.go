package config

import (
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}

	got := parseOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "15s")
	if d := getEnvDuration("TEST_DURATION", time.Second); d != 15*time.Second {
		t.Fatalf("expected 15s, got %v", d)
	}

	t.Setenv("TEST_DURATION", "7")
	if d := getEnvDuration("TEST_DURATION", time.Second); d != 7*time.Second {
		t.Fatalf("expected 7s, got %v", d)
	}

	t.Setenv("TEST_DURATION", "soon")
	if d := getEnvDuration("TEST_DURATION", time.Second); d != time.Second {
		t.Fatalf("expected fallback, got %v", d)
	}
}

func TestLoadIntegrationsTrimsBaseURLs(t *testing.T) {
	t.Setenv("N8N_WEBHOOK_URL", "https://n8n.example/")
	t.Setenv("SALESFORCE_INSTANCE_URL", "https://acme.my.salesforce.com/")
	t.Setenv("GOOGLE_CALENDAR_ID", "")

	cfg := loadIntegrations()
	if cfg.N8NBaseURL != "https://n8n.example" {
		t.Errorf("unexpected n8n base: %q", cfg.N8NBaseURL)
	}
	if cfg.SalesforceInstanceURL != "https://acme.my.salesforce.com" {
		t.Errorf("unexpected salesforce base: %q", cfg.SalesforceInstanceURL)
	}
	if cfg.GoogleCalendarID != "primary" {
		t.Errorf("expected primary calendar fallback, got %q", cfg.GoogleCalendarID)
	}
}
