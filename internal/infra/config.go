package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"okx_go/internal/domain"

	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is sent on outbound HTTP/WebSocket requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds every application setting. Secrets may be overridden through
// environment variables after the file is parsed, so keys never have to live
// on disk. The loaded value is passed down explicitly; there is no global.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		OKX struct {
			RestURL     string   `yaml:"rest_url"`
			WSPublicURL string   `yaml:"ws_public_url"`
			APIKey      string   `yaml:"api_key"`
			SecretKey   string   `yaml:"secret_key"`
			Passphrase  string   `yaml:"passphrase"`
			DemoMode    bool     `yaml:"demo_mode"`
			Symbols     []string `yaml:"symbols"` // instIds, e.g. "BTC-USDT"
		} `yaml:"okx"`
	} `yaml:"api"`

	Storage struct {
		Path string `yaml:"path"` // empty = OS config dir default
	} `yaml:"storage"`

	Sync struct {
		RefreshIntervalSec int `yaml:"refresh_interval_sec"`
		MaxOrders          int `yaml:"max_orders"`
	} `yaml:"sync"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.OKX.RestURL == "" {
		cfg.API.OKX.RestURL = "https://www.okx.com"
	}
	if cfg.API.OKX.WSPublicURL == "" {
		cfg.API.OKX.WSPublicURL = "wss://ws.okx.com:8443/ws/v5/public"
	}
	if cfg.Sync.RefreshIntervalSec == 0 {
		cfg.Sync.RefreshIntervalSec = 10
	}
	if cfg.Sync.MaxOrders == 0 {
		cfg.Sync.MaxOrders = 100
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	okx := &c.API.OKX

	if !strings.HasPrefix(okx.RestURL, "https://") {
		return &domain.ConfigError{Field: "api.okx.rest_url", Err: fmt.Errorf("must be https, got %q", okx.RestURL)}
	}
	if !strings.HasPrefix(okx.WSPublicURL, "ws://") && !strings.HasPrefix(okx.WSPublicURL, "wss://") {
		return &domain.ConfigError{Field: "api.okx.ws_public_url", Err: fmt.Errorf("must be ws or wss, got %q", okx.WSPublicURL)}
	}
	if c.Sync.RefreshIntervalSec <= 0 {
		return &domain.ConfigError{Field: "sync.refresh_interval_sec", Err: fmt.Errorf("must be positive")}
	}

	// Keys may be absent for public-data-only usage, but never half-present.
	hasAny := okx.APIKey != "" || okx.SecretKey != "" || okx.Passphrase != ""
	hasAll := okx.APIKey != "" && okx.SecretKey != "" && okx.Passphrase != ""
	if hasAny && !hasAll {
		return &domain.ConfigError{Field: "api.okx", Err: fmt.Errorf("api_key, secret_key and passphrase must be set together")}
	}

	return nil
}

// HasCredentials reports whether private endpoints can be called.
func (c *Config) HasCredentials() bool {
	okx := &c.API.OKX
	return okx.APIKey != "" && okx.SecretKey != "" && okx.Passphrase != ""
}

// overrideWithEnv lets environment variables win over file values so secrets
// stay out of the config file.
func overrideWithEnv(cfg *Config) {
	if key := os.Getenv("OKX_API_KEY"); key != "" {
		cfg.API.OKX.APIKey = key
	}
	if secret := os.Getenv("OKX_API_SECRET"); secret != "" {
		cfg.API.OKX.SecretKey = secret
	}
	if pass := os.Getenv("OKX_PASSPHRASE"); pass != "" {
		cfg.API.OKX.Passphrase = pass
	}
	if demo := os.Getenv("OKX_DEMO_MODE"); demo != "" {
		cfg.API.OKX.DemoMode = strings.EqualFold(demo, "true") || demo == "1"
	}
	if path := os.Getenv("OKX_DATABASE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
}
