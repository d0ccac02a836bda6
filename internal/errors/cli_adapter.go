package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dle, ok := As(err); ok {
		return a.exitCodeFromDocLinks(dle)
	}

	return 1
}

// exitCodeFromDocLinks maps DocLinksError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocLinks(err *DocLinksError) int {
	switch err.Category {
	case CategoryLinks:
		return 1 // Broken references (gates CI)
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInternal:
		return 10 // Internal error
	case CategoryFileSystem:
		return 11 // Filesystem error
	case CategoryRuntime:
		return 12 // Runtime error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dle, ok := As(err); ok {
		return a.formatDocLinks(dle)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDocLinks formats a DocLinksError for display.
func (a *CLIErrorAdapter) formatDocLinks(err *DocLinksError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)

	// The report on stdout already describes broken references.
	if IsCategory(err, CategoryLinks) {
		os.Exit(exitCode)
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", a.FormatError(err))
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dle, ok := As(err); ok {
		return dle.Category == CategoryInternal ||
			dle.Category == CategoryRuntime ||
			dle.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if dle, ok := As(err); ok {
		level := a.slogLevelFromSeverity(dle.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(dle.Category)),
		}
		for k, v := range dle.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if dle.Cause != nil {
			attrs = append(attrs, slog.String("error", dle.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, dle.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts DocLinksError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
