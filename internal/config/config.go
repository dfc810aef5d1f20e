// Package config loads the service configuration from an optional YAML file
// with environment-variable overrides. cmd mains load .env first (godotenv)
// so local development needs no exported shell state.
package config

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// #endregion

// #region types

// Config is the full service configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Model     ModelConfig     `yaml:"model"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// CatalogConfig locates the vetted content catalog.
type CatalogConfig struct {
	Dir           string `yaml:"dir"`
	DefaultLocale string `yaml:"default_locale"`
}

// StoreConfig selects and locates the personalization backend.
type StoreConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" | "redis"
	Path     string `yaml:"path"`   // sqlite file
	RedisURL string `yaml:"redis_url"`
}

// ModelConfig configures the generative backend. An empty APIKey disables
// generation; the pipeline then always renders retrieved content directly.
type ModelConfig struct {
	APIKey         string  `yaml:"api_key"`
	Name           string  `yaml:"name"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// AnalyticsConfig locates the append-only event log.
type AnalyticsConfig struct {
	Path string `yaml:"path"`
}

// #endregion types

// #region defaults

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Catalog:   CatalogConfig{Dir: "catalog", DefaultLocale: "en"},
		Store:     StoreConfig{Driver: "sqlite", Path: "nous_personal.db"},
		Model:     ModelConfig{Name: "gpt-4o-mini", MaxTokens: 220, Temperature: 0.4, TimeoutSeconds: 20},
		Analytics: AnalyticsConfig{Path: "nous_events.jsonl"},
	}
}

// #endregion defaults

// #region load

// Load reads the YAML file at path (skipped when path is empty or missing)
// and applies environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv lets NOUS_* variables (and OPENAI_API_KEY) win over file values.
func applyEnv(cfg *Config) {
	setIf(&cfg.Catalog.Dir, "NOUS_CATALOG_DIR")
	setIf(&cfg.Catalog.DefaultLocale, "NOUS_DEFAULT_LOCALE")
	setIf(&cfg.Store.Driver, "NOUS_STORE_DRIVER")
	setIf(&cfg.Store.Path, "NOUS_DB_PATH")
	setIf(&cfg.Store.RedisURL, "NOUS_REDIS_URL")
	setIf(&cfg.Model.APIKey, "OPENAI_API_KEY")
	setIf(&cfg.Model.Name, "NOUS_MODEL")
	setIf(&cfg.Analytics.Path, "NOUS_ANALYTICS_PATH")
}

func setIf(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func validate(cfg Config) error {
	switch cfg.Store.Driver {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == "redis" && cfg.Store.RedisURL == "" {
		return fmt.Errorf("store driver redis requires redis_url")
	}
	return nil
}

// #endregion load
