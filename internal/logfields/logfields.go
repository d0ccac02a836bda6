package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRoot       = "root"
	KeyFile       = "file"
	KeyKind       = "kind"
	KeyTarget     = "target"
	KeyResolved   = "resolved"
	KeyFiles      = "files"
	KeyBroken     = "broken"
	KeyWorkers    = "workers"
	KeyExtractor  = "extractor"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Root(path string) slog.Attr       { return slog.String(KeyRoot, path) }
func File(path string) slog.Attr       { return slog.String(KeyFile, path) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Resolved(path string) slog.Attr   { return slog.String(KeyResolved, path) }
func Files(n int) slog.Attr            { return slog.Int(KeyFiles, n) }
func Broken(n int) slog.Attr           { return slog.Int(KeyBroken, n) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func Extractor(name string) slog.Attr  { return slog.String(KeyExtractor, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
