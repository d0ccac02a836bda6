package commands

import (
	"context"
	"io"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkcheck"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	ScanFlags `embed:""`
}

// Run executes the check command.
func (c *CheckCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := c.loadConfig(root)
	if err != nil {
		return err
	}
	return runCheck(ctx, cfg, g.Logger, g.Stdout)
}

// runCheck performs one scan, writes the report to w and returns a links
// error when broken references were found.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	var registry *prom.Registry
	opts := []linkcheck.Option{linkcheck.WithLogger(logger)}
	if cfg.MetricsFile != "" {
		registry = prom.NewRegistry()
		opts = append(opts, linkcheck.WithRecorder(metrics.NewPrometheusRecorder(registry)))
	}

	checker, err := linkcheck.NewChecker(cfg, opts...)
	if err != nil {
		return err
	}

	formatter := linkcheck.NewFormatter(string(cfg.Format))
	if err := formatter.Begin(w, checker.Root()); err != nil {
		return errors.InternalError("failed to write report", err)
	}

	report, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	if err := formatter.Format(w, report); err != nil {
		return errors.InternalError("failed to write report", err)
	}

	if registry != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			logger.Warn("Failed to write metrics file", logfields.File(cfg.MetricsFile), logfields.Error(err))
		}
	}

	if report.HasErrors() {
		return errors.BrokenLinks(report.ErrorCount())
	}
	return nil
}
