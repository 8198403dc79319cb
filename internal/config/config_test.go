package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "finnhub:\n  token: abc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Finnhub.Token != "abc" {
		t.Fatalf("unexpected token %q", cfg.Finnhub.Token)
	}
	if cfg.RefreshInterval() != 30*time.Second {
		t.Fatalf("expected 30s default interval, got %v", cfg.RefreshInterval())
	}
	if cfg.Web.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Web.Port)
	}
	if cfg.QuoteDelay() != 250*time.Millisecond {
		t.Fatalf("unexpected quote delay %v", cfg.QuoteDelay())
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadInterval(t *testing.T) {
	path := writeConfig(t, "refresh:\n  interval: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unparseable interval")
	}
}

func TestValidateTelegramRequiresCredentials(t *testing.T) {
	path := writeConfig(t, "telegram:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for enabled telegram without credentials")
	}
}

func TestTokenEnvFallback(t *testing.T) {
	t.Setenv("FINNHUB_TOKEN", "from-env")
	cfg := Default()
	if cfg.Finnhub.Token != "from-env" {
		t.Fatalf("expected env fallback, got %q", cfg.Finnhub.Token)
	}
}
