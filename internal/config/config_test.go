package config

import (
	"strings"
	"testing"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ZENDESK_SUBDOMAIN", "ZENDESK_EMAIL", "ZENDESK_API_TOKEN", "MCP_AUTH_TOKEN", "PORT", "HOST", "ENVIRONMENT", "LOCAL_MODE", "LOG_LEVEL", "SESSION_TIMEOUT", "SESSION_CLEANUP_INTERVAL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Port:            3000,
		Host:            "0.0.0.0",
		Environment:     "production",
		LogLevel:        "info",
		SessionTimeout:  30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
	if cfg.Development() {
		t.Fatal("production defaults reported as development")
	}
	if cfg.Addr() != "0.0.0.0:3000" {
		t.Fatalf("addr %q", cfg.Addr())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_EMAIL", "agent@example.com")
	t.Setenv("ZENDESK_API_TOKEN", "secret")
	t.Setenv("MCP_AUTH_TOKEN", "tok")
	t.Setenv("PORT", "8080")
	t.Setenv("LOCAL_MODE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TIMEOUT", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := zendesk.Credentials{Subdomain: "acme", Email: "agent@example.com", APIToken: "secret"}
	if diff := cmp.Diff(want, cfg.Credentials()); diff != "" {
		t.Fatalf("credentials (-want +got):\n%s", diff)
	}
	if cfg.AuthToken != "tok" || cfg.Port != 8080 || cfg.SessionTimeout != 10*time.Minute {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Development() {
		t.Fatal("LOCAL_MODE not honoured")
	}
}

func TestLoadMissingCredentialsIsNotAnError(t *testing.T) {
	t.Setenv("ZENDESK_SUBDOMAIN", "")
	t.Setenv("ZENDESK_EMAIL", "")
	t.Setenv("ZENDESK_API_TOKEN", "")
	if _, err := Load(); err != nil {
		t.Fatalf("missing credentials failed load: %v", err)
	}
}

func TestValidateRejectsMalformedValues(t *testing.T) {
	cfg := Config{Port: 70000, LogLevel: "loud", SessionTimeout: time.Minute}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"PORT", "SESSION_CLEANUP_INTERVAL", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q lacks %s", err, want)
		}
	}
}

func TestDevelopmentEnvironment(t *testing.T) {
	cfg := Config{Environment: "Development"}
	if !cfg.Development() {
		t.Fatal("ENVIRONMENT=development not honoured")
	}
}
