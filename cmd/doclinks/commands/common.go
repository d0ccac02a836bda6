package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doclinks/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"doclinks.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" default:"withargs" help:"Verify links and images once and report broken references"`
	Watch WatchCmd `cmd:"" help:"Re-run the check whenever content changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ScanFlags are the per-run overrides shared by check and watch.
type ScanFlags struct {
	ContentRoot       string `name:"content-root" short:"r" help:"Content root to scan (overrides content_root)"`
	Extractor         string `help:"Reference extractor: pattern or goldmark"`
	Format            string `short:"f" help:"Output format: text or json"`
	Workers           int    `short:"w" help:"Number of files checked concurrently"`
	StrictDirectories *bool  `name:"strict-directories" negatable:"" help:"Require an index file for directory targets"`
	SkipHidden        *bool  `name:"skip-hidden" negatable:"" help:"Do not scan dot-directories below the content root"`
	MetricsFile       string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
}

// loadConfig reads the configuration file and layers the command-line flags on top.
func (f *ScanFlags) loadConfig(root *CLI) (*config.Config, error) {
	required := root.Config != config.DefaultConfigFile
	cfg, err := config.Load(root.Config, required)
	if err != nil {
		return nil, err
	}

	if f.ContentRoot != "" {
		cfg.ContentRoot = f.ContentRoot
	}
	if f.Extractor != "" {
		cfg.Extractor = config.Extractor(f.Extractor)
	}
	if f.Format != "" {
		cfg.Format = config.Format(f.Format)
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.StrictDirectories != nil {
		cfg.StrictDirectories = *f.StrictDirectories
	}
	if f.SkipHidden != nil {
		cfg.SkipHidden = *f.SkipHidden
	}
	if f.MetricsFile != "" {
		cfg.MetricsFile = f.MetricsFile
	}

	config.ApplyDefaults(cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if wd, err := os.Getwd(); err == nil {
		cfg.ResolvePaths(wd)
	}
	return cfg, nil
}
