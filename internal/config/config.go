package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"

	"portfolio-builder/pkg/document"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PDF backends. BackendNone disables a slot entirely.
const (
	BackendChromedp = "chromedp"
	BackendRod      = "rod"
	BackendText     = "text"
	BackendNone     = "none"
)

// Config is read from an optional YAML file (CONFIG_FILE) and then from the
// environment, which wins. Zero values get defaults.
type Config struct {
	Port            string        `yaml:"port" env:"PORT"`
	DatabaseURL     string        `yaml:"database_url" env:"DATABASE_URL"`
	StorageDriver   string        `yaml:"storage_driver" env:"STORAGE_DRIVER"`
	SQLitePath      string        `yaml:"sqlite_path" env:"SQLITE_PATH"`
	PDFBackend      string        `yaml:"pdf_backend" env:"PDF_BACKEND"`
	PDFFallback     string        `yaml:"pdf_fallback" env:"PDF_FALLBACK"`
	ChromePath      string        `yaml:"chrome_path" env:"CHROME_PATH"`
	RenderTimeout   time.Duration `yaml:"render_timeout" env:"RENDER_TIMEOUT"`
	RenderAttempts  int           `yaml:"render_attempts" env:"RENDER_ATTEMPTS"`
	DefaultTemplate string        `yaml:"default_template" env:"DEFAULT_TEMPLATE"`
	OutputDir       string        `yaml:"output_dir" env:"OUTPUT_DIR"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string        `yaml:"log_format" env:"LOG_FORMAT"`
}

var (
	errUnknownDriver   = errors.New("unknown storage driver")
	errUnknownBackend  = errors.New("unknown pdf backend")
	errUnknownTemplate = errors.New("unknown template")
	errUnknownLevel    = errors.New("unknown log level")
	errUnknownFormat   = errors.New("unknown log format")
)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom reads the configuration from the given environment map.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if path := environ["CONFIG_FILE"]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.StorageDriver == "" {
		c.StorageDriver = DriverPostgres
		if c.DatabaseURL == "" {
			c.StorageDriver = DriverSQLite
		}
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "portfolio.db"
	}
	if c.PDFBackend == "" {
		c.PDFBackend = BackendChromedp
	}
	if c.PDFFallback == "" {
		c.PDFFallback = BackendText
	}
	if c.RenderTimeout == 0 {
		c.RenderTimeout = 60 * time.Second
	}
	if c.RenderAttempts == 0 {
		c.RenderAttempts = 3
	}
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = document.DefaultTemplate
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	c.StorageDriver = strings.ToLower(c.StorageDriver)
	c.PDFBackend = strings.ToLower(c.PDFBackend)
	c.PDFFallback = strings.ToLower(c.PDFFallback)
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.DefaultTemplate = strings.ToLower(strings.TrimSpace(c.DefaultTemplate))
}

// Validate rejects values the server cannot act on.
func (c Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownDriver, c.StorageDriver))
	}
	if !slices.Contains([]string{BackendChromedp, BackendRod, BackendText, BackendNone}, c.PDFBackend) {
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownBackend, c.PDFBackend))
	}
	if !slices.Contains([]string{BackendText, BackendNone}, c.PDFFallback) {
		errs = append(errs, fmt.Errorf("%w for fallback: %q", errUnknownBackend, c.PDFFallback))
	}
	if _, ok := document.ResolveTemplate(c.DefaultTemplate); !ok {
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownTemplate, c.DefaultTemplate))
	}
	if c.RenderAttempts < 1 {
		errs = append(errs, errors.New("RENDER_ATTEMPTS must be at least 1"))
	}
	if c.RenderTimeout < 0 {
		errs = append(errs, errors.New("RENDER_TIMEOUT must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownFormat, c.LogFormat))
	}
	return errors.Join(errs...)
}
