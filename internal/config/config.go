package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/errors"
)

// DefaultConfigFile is the configuration file consulted when none is given.
const DefaultConfigFile = "doclinks.yaml"

// Config represents the application configuration
type Config struct {
	ContentRoot       string      `yaml:"content_root"`
	AssetsRoot        string      `yaml:"assets_root"`
	SourceExtensions  []string    `yaml:"source_extensions"`
	DocExtensions     []string    `yaml:"doc_extensions"`
	ImageExtensions   []string    `yaml:"image_extensions"`
	IndexName         string      `yaml:"index_name"`
	Extractor         Extractor   `yaml:"extractor"`
	StrictDirectories bool        `yaml:"strict_directories"`
	SkipHidden        bool        `yaml:"skip_hidden"`
	Workers           int         `yaml:"workers"`
	Format            Format      `yaml:"format"`
	MetricsFile       string      `yaml:"metrics_file,omitempty"`
	Watch             WatchConfig `yaml:"watch"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // duration string, e.g. "500ms"
}

// Extractor selects how references are pulled out of document text.
type Extractor string

const (
	// ExtractorPattern matches link/image syntax textually (default).
	ExtractorPattern Extractor = "pattern"
	// ExtractorGoldmark walks a CommonMark AST; code spans and fences are ignored.
	ExtractorGoldmark Extractor = "goldmark"
)

// Format selects the report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Load reads configuration from configPath, applies .env files, environment
// overrides and defaults, then validates the result. A missing file at
// configPath yields the defaults unless required is set.
func Load(configPath string, required bool) (*Config, error) {
	// .env files are optional
	_ = loadEnvFile()

	var config Config
	data, err := os.ReadFile(configPath) // #nosec G304 -- path comes from the CLI flag
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
			return nil, errors.ConfigInvalid(configPath, fmt.Errorf("failed to unmarshal config: %w", err))
		}
	case os.IsNotExist(err) && !required:
		// Defaults only.
	default:
		return nil, errors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	ApplyDefaults(&config)

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnvOverrides applies DOCLINKS_* environment variables on top of the file values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DOCLINKS_CONTENT_ROOT"); v != "" {
		cfg.ContentRoot = v
	}
	if v := os.Getenv("DOCLINKS_ASSETS_ROOT"); v != "" {
		cfg.AssetsRoot = v
	}
	if v := os.Getenv("DOCLINKS_EXTRACTOR"); v != "" {
		cfg.Extractor = Extractor(strings.ToLower(v))
	}
	if v := os.Getenv("DOCLINKS_FORMAT"); v != "" {
		cfg.Format = Format(strings.ToLower(v))
	}
	if v := os.Getenv("DOCLINKS_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
	if v := os.Getenv("DOCLINKS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.ValidationFailed("DOCLINKS_WORKERS", "not an integer: "+v)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("DOCLINKS_STRICT_DIRECTORIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.ValidationFailed("DOCLINKS_STRICT_DIRECTORIES", "not a boolean: "+v)
		}
		cfg.StrictDirectories = b
	}
	if v := os.Getenv("DOCLINKS_SKIP_HIDDEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.ValidationFailed("DOCLINKS_SKIP_HIDDEN", "not a boolean: "+v)
		}
		cfg.SkipHidden = b
	}
	return nil
}
