package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"csvreport/internal/logger"
)

// Config holds all configuration for the report generator
type Config struct {
	// Template configuration. An empty TemplatesDir selects the embedded templates.
	TemplatesDir string `env:"REPORT_TEMPLATES_DIR" yaml:"templates_dir"`
	TemplateName string `env:"REPORT_TEMPLATE,default=report.html" yaml:"template"`
	LogoName     string `env:"REPORT_LOGO,default=logo.png" yaml:"logo"`

	// Output configuration
	OutputDir string `env:"REPORT_OUTPUT_DIR,default=reports" yaml:"output_dir"`

	// Report content
	TopItems int `env:"REPORT_TOP_ITEMS,default=5" yaml:"top_items"`

	// Chart configuration. An empty EChartsCDNURL selects the chart package default.
	EChartsCDNURL  string `env:"ECHARTS_CDN_URL" yaml:"echarts_cdn_url"`
	StaticFallback bool   `env:"CHART_STATIC_FALLBACK,default=false" yaml:"static_fallback"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT,default=text" yaml:"log_format"`
}

// Load loads configuration from a .env file and environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWithFile(ctx, "")
}

// LoadWithFile loads configuration from the environment and then overlays the
// YAML file at path. Keys absent from the file keep their environment value.
func LoadWithFile(ctx context.Context, path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be repaired later in the run
func (c *Config) Validate() error {
	if c.TemplateName == "" {
		return fmt.Errorf("invalid config: template name is empty")
	}
	if c.LogoName == "" {
		return fmt.Errorf("invalid config: logo name is empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("invalid config: output directory is empty")
	}
	if logger.ParseLevel(c.LogLevel) == -1 {
		return fmt.Errorf("invalid config: unknown log level %q", c.LogLevel)
	}
	if logger.ParseFormat(c.LogFormat) == -1 {
		return fmt.Errorf("invalid config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// ResolveDir makes a relative directory absolute against the directory that
// holds the running executable. Absolute and empty paths are returned as is.
func ResolveDir(dir string) (string, error) {
	if dir == "" || filepath.IsAbs(dir) {
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), dir), nil
}
