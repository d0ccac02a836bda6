package errors

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"broken links", BrokenLinks(3), 1},
		{"wrapped broken links", fmt.Errorf("check: %w", BrokenLinks(1)), 1},
		{"validation error", ValidationFailed("extractor", "unknown"), 2},
		{"config error", ConfigInvalid("doclinks.yaml", fmt.Errorf("bad yaml")), 7},
		{"internal error", InternalError("boom", nil), 10},
		{"filesystem error", DiscoveryError("docs", fmt.Errorf("denied")), 11},
		{"unclassified error", fmt.Errorf("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		err      error
		contains string
	}{
		{"nil error", false, nil, ""},
		{"config error shows message and cause", false, ContentRootMissing("docs", fmt.Errorf("no such file")), "content root not found: no such file"},
		{"filesystem error shows category", false, DiscoveryError("docs", fmt.Errorf("denied")), "filesystem: document discovery failed"},
		{"verbose shows full error", true, DiscoveryError("docs", fmt.Errorf("denied")), "filesystem (fatal): document discovery failed: denied"},
		{"plain error", false, fmt.Errorf("oops"), "Error: oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewCLIErrorAdapter(tt.verbose, slog.Default())
			got := adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}
}
