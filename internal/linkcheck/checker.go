package linkcheck

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

// Checker runs one complete scan: discover, extract, resolve, report.
type Checker struct {
	scanner  *Scanner
	resolver *Resolver
	workers  int
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChecker builds a checker from configuration.
func NewChecker(cfg *config.Config, opts ...Option) (*Checker, error) {
	extractor, err := NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, errors.ValidationFailed("extractor", err.Error())
	}

	c := &Checker{
		scanner: NewScanner(cfg.ContentRoot, cfg.SourceExtensions, extractor,
			WithSkipHidden(cfg.SkipHidden)),
		resolver: NewResolver(cfg.ContentRoot, cfg.ProbeExtensions(),
			WithIndexName(cfg.IndexName),
			WithStrictDirectories(cfg.StrictDirectories)),
		workers:  max(cfg.Workers, 1),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Root returns the content root the checker scans.
func (c *Checker) Root() string { return c.scanner.Root() }

// fileResult is everything learned from one discovered entry.
type fileResult struct {
	path        string
	readErr     error
	skipErr     error
	resolutions []Resolution
}

// Run scans every document under the content root. Per-document failures
// become error records; only a missing or unwalkable content root, or
// cancellation, returns an error. With more than one worker, documents are
// checked concurrently but merged in discovery order, so the report is
// identical to a sequential run.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	root := c.scanner.Root()

	entries, err := c.scanner.Discover()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ContentRootMissing(root, err)
		}
		return nil, errors.DiscoveryError(root, err)
	}
	c.logger.Debug("Discovered documents", logfields.Root(root), logfields.Files(len(entries)), logfields.Workers(c.workers))

	results := make([]fileResult, len(entries))
	if c.workers == 1 {
		for i, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = c.checkEntry(entry)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workers)
		for i, entry := range entries {
			i, entry := i, entry
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = c.checkEntry(entry)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	reporter := NewReporter(root)
	for _, fr := range results {
		c.merge(reporter, fr)
	}
	report := reporter.Report()

	elapsed := time.Since(start)
	c.recorder.ObserveRunDuration(elapsed)
	if report.HasErrors() {
		c.recorder.IncRunOutcome(metrics.OutcomeFailed)
	} else {
		c.recorder.IncRunOutcome(metrics.OutcomePassed)
	}

	c.logger.Info("Link check completed",
		logfields.Root(root),
		logfields.Files(report.FilesTotal),
		logfields.Broken(report.ErrorCount()),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	return report, nil
}

// checkEntry reads, extracts and resolves a single document.
func (c *Checker) checkEntry(entry Entry) fileResult {
	fr := fileResult{path: entry.Path}
	if entry.Dir {
		fr.skipErr = entry.Err
		return fr
	}
	if entry.Err != nil {
		fr.readErr = entry.Err
		return fr
	}

	doc, err := c.scanner.Read(entry.Path)
	if err != nil {
		fr.readErr = err
		return fr
	}

	refs, err := c.scanner.Extract(doc)
	if err != nil {
		fr.readErr = err
		return fr
	}

	fr.resolutions = make([]Resolution, 0, len(refs))
	for _, ref := range refs {
		fr.resolutions = append(fr.resolutions, c.resolver.Resolve(ref))
	}
	return fr
}

// merge folds one file's results into the reporter and metrics.
func (c *Checker) merge(reporter *Reporter, fr fileResult) {
	if fr.skipErr != nil {
		c.logger.Warn("Skipping unreadable directory", logfields.File(fr.path), logfields.Error(fr.skipErr))
		return
	}
	if fr.readErr != nil {
		reporter.AddReadFailure(fr.path, fr.readErr)
		c.recorder.IncUnreadableFiles()
		c.logger.Warn("Could not read document", logfields.File(fr.path), logfields.Error(fr.readErr))
		return
	}

	reporter.AddDocument()
	c.recorder.IncFilesScanned()
	for _, res := range fr.resolutions {
		kind := string(res.Reference.Kind)
		c.recorder.IncReferences(kind)
		if reporter.AddResolution(res) {
			c.recorder.IncBrokenReferences(kind)
			c.logger.Debug("Broken reference",
				logfields.File(fr.path),
				logfields.Kind(kind),
				logfields.Target(res.Reference.Target),
				logfields.Resolved(res.Candidate))
		}
	}
}
