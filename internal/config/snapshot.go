package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that change check results.
// Output format, metrics and watch settings are excluded. Callers should run
// ApplyDefaults first so equivalent configurations hash identically.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	w("content_root", c.ContentRoot)
	w("source_extensions", strings.Join(c.SourceExtensions, ","))
	w("probe_extensions", strings.Join(c.ProbeExtensions(), ","))
	w("index_name", c.IndexName)
	w("extractor", string(c.Extractor))
	w("strict_directories", strconv.FormatBool(c.StrictDirectories))
	w("skip_hidden", strconv.FormatBool(c.SkipHidden))
	return hex.EncodeToString(h.Sum(nil))
}
