package linkcheck

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter renders a run for output.
type Formatter interface {
	// Begin announces the scan before any document is read.
	Begin(w io.Writer, root string) error
	// Format renders the final report.
	Format(w io.Writer, report *Report) error
}

// TextFormatter renders the plain-text report.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Begin(w io.Writer, root string) error {
	_, err := fmt.Fprintf(w, "Scanning %s...\n", root)
	return err
}

// Format prints a success line, or the error count followed by every record in discovery order.
func (f *TextFormatter) Format(w io.Writer, report *Report) error {
	if !report.HasErrors() {
		_, err := fmt.Fprintln(w, "No broken links found!")
		return err
	}

	if _, err := fmt.Fprintf(w, "Found %d broken links:\n", report.ErrorCount()); err != nil {
		return err
	}
	for _, rec := range report.Records {
		if _, err := fmt.Fprintln(w, rec.String()); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter renders the report as a single JSON document.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Root            string      `json:"root"`
	FilesTotal      int         `json:"files_total"`
	ReferencesTotal int         `json:"references_total"`
	ErrorCount      int         `json:"error_count"`
	Errors          []JSONError `json:"errors"`
}

// JSONError represents a single error record in JSON format.
type JSONError struct {
	File     string `json:"file"`
	Kind     string `json:"kind,omitempty"`
	Target   string `json:"target,omitempty"`
	Resolved string `json:"resolved,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

func (f *JSONFormatter) Begin(io.Writer, string) error { return nil }

func (f *JSONFormatter) Format(w io.Writer, report *Report) error {
	output := JSONOutput{
		Root:            report.Root,
		FilesTotal:      report.FilesTotal,
		ReferencesTotal: report.ReferencesTotal,
		ErrorCount:      report.ErrorCount(),
		Errors:          make([]JSONError, 0, len(report.Records)),
	}

	for _, rec := range report.Records {
		output.Errors = append(output.Errors, JSONError{
			File:     rec.File,
			Kind:     string(rec.Kind),
			Target:   rec.Target,
			Resolved: rec.Resolved,
			Line:     rec.Line,
			Message:  rec.String(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}
