package commands

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ScanFlags `embed:""`
	Debounce  string `help:"Quiet period before a re-run, e.g. 500ms (overrides watch.debounce)"`
}

// Run checks once, then re-checks after every settled burst of content changes
// until interrupted.
func (c *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := c.loadConfig(root)
	if err != nil {
		return err
	}
	if c.Debounce != "" {
		cfg.Watch.Debounce = c.Debounce
		if err := config.ValidateConfig(cfg); err != nil {
			return err
		}
	}

	w, err := watch.New(cfg.ContentRoot, cfg.DebounceDuration(), g.Logger,
		watch.WithSkipHidden(cfg.SkipHidden))
	if err != nil {
		return watchSetupError(cfg.ContentRoot, err)
	}

	check := func(ctx context.Context) {
		err := runCheck(ctx, cfg, g.Logger, g.Stdout)
		switch {
		case err == nil, errors.IsCategory(err, errors.CategoryLinks):
		case ctx.Err() != nil:
		default:
			g.Logger.Error("Link check failed", logfields.Error(err))
		}
	}

	g.Logger.Info("Watching for changes",
		logfields.Root(cfg.ContentRoot),
		slog.String("config", cfg.Snapshot()[:12]))
	check(ctx)
	if err := w.Run(ctx, check); err != nil {
		return errors.Wrap(err, errors.CategoryRuntime, errors.SeverityError, "file watcher stopped")
	}
	g.Logger.Info("Watch stopped")
	return nil
}

// watchSetupError classifies a failure to start watching root. Only a missing
// root is a configuration problem; watch limits and permissions are not.
func watchSetupError(root string, err error) error {
	if os.IsNotExist(err) {
		return errors.ContentRootMissing(root, err)
	}
	return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "failed to watch content root").
		WithContext("root", root)
}
