package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "QUERYD_API_KEY", "MAX_BODY_BYTES", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %q", cfg.Port)
	}
	if cfg.MaxBodyBytes != 10485760 {
		t.Errorf("expected default body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("expected default read timeout, got %v", cfg.ReadTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("QUERYD_API_KEY", "secret")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("READ_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("expected api key, got %q", cfg.APIKey)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Errorf("expected body limit 1024, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.ReadTimeout)
	}
}

func TestLoad_IgnoresBadValues(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MaxBodyBytes != 10485760 {
		t.Errorf("bad int should fall back, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("bad duration should fall back, got %v", cfg.ReadTimeout)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error when api key is missing")
	}
	if err := (Config{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
