package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"okx_go/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `
app:
  name: "OKX Go"
api:
  okx:
    symbols:
      - "BTC-USDT"
sync:
  refresh_interval_sec: 5
logging:
  level: "debug"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Name != "OKX Go" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Sync.RefreshIntervalSec != 5 {
		t.Errorf("RefreshIntervalSec = %d, want 5", cfg.Sync.RefreshIntervalSec)
	}

	// Defaults fill unset values
	if cfg.API.OKX.RestURL != "https://www.okx.com" {
		t.Errorf("RestURL default not applied: %q", cfg.API.OKX.RestURL)
	}
	if cfg.Sync.MaxOrders != 100 {
		t.Errorf("MaxOrders default not applied: %d", cfg.Sync.MaxOrders)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OKX_API_KEY", "env-key")
	t.Setenv("OKX_API_SECRET", "env-secret")
	t.Setenv("OKX_PASSPHRASE", "env-pass")
	t.Setenv("OKX_DEMO_MODE", "true")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.OKX.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env override", cfg.API.OKX.APIKey)
	}
	if !cfg.API.OKX.DemoMode {
		t.Error("DemoMode env override not applied")
	}
	if !cfg.HasCredentials() {
		t.Error("HasCredentials should be true with all keys set")
	}
}

func TestConfig_Validate_PartialCredentials(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.API.OKX.APIKey = "key-only"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for partial credentials")
	}
}

func TestConfig_Validate_BadURLs(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.API.OKX.RestURL = "http://insecure.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for non-https rest url")
	}

	cfg.API.OKX.RestURL = "https://www.okx.com"
	cfg.API.OKX.WSPublicURL = "https://not-a-ws.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for non-ws url")
	}
}
