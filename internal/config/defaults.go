package config

import (
	"strings"
	"time"
)

// Default content layout of the documentation site.
const (
	DefaultContentRoot = "Docs/src/content/docs"
	DefaultAssetsRoot  = "Docs/src/assets"
	DefaultIndexName   = "index"
	DefaultDebounce    = 500 * time.Millisecond
)

// DefaultSourceExtensions lists the document extensions that are scanned.
func DefaultSourceExtensions() []string { return []string{".md", ".mdx"} }

// DefaultDocExtensions lists the documentation extensions probed for extensionless targets.
func DefaultDocExtensions() []string { return []string{".md", ".mdx"} }

// DefaultImageExtensions lists the image extensions probed for extensionless targets.
func DefaultImageExtensions() []string { return []string{".png", ".svg", ".jpg", ".webp"} }

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields and normalizes enum values.
func ApplyDefaults(cfg *Config) {
	if cfg.ContentRoot == "" {
		cfg.ContentRoot = DefaultContentRoot
	}
	if cfg.AssetsRoot == "" {
		cfg.AssetsRoot = DefaultAssetsRoot
	}
	if len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = DefaultSourceExtensions()
	}
	if len(cfg.DocExtensions) == 0 {
		cfg.DocExtensions = DefaultDocExtensions()
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = DefaultImageExtensions()
	}
	cfg.SourceExtensions = normalizeExtensions(cfg.SourceExtensions)
	cfg.DocExtensions = normalizeExtensions(cfg.DocExtensions)
	cfg.ImageExtensions = normalizeExtensions(cfg.ImageExtensions)

	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	if cfg.Extractor == "" {
		cfg.Extractor = ExtractorPattern
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce.String()
	}
}

// ProbeExtensions returns the documentation extensions followed by the image extensions,
// the order in which extensionless targets are probed.
func (c *Config) ProbeExtensions() []string {
	exts := make([]string, 0, len(c.DocExtensions)+len(c.ImageExtensions))
	exts = append(exts, c.DocExtensions...)
	return append(exts, c.ImageExtensions...)
}

// DebounceDuration parses Watch.Debounce, falling back to DefaultDebounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// normalizeExtensions lowercases entries and ensures a leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
