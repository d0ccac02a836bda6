// Package linkcheck verifies that link and image references in Markdown/MDX
// documents resolve to files on disk.
//
// A run has three parts. The Scanner discovers documents under a content root
// and extracts References from their text. The Resolver maps each Reference to
// a candidate path and probes the filesystem the way the published site's
// router would (omitted extensions, directory index files, site-rooted paths).
// The Reporter collects an ErrorRecord for every unresolved Reference and every
// unreadable document, in discovery order.
//
// Extraction is textual by default: `![label](target)` and `[label](target)`
// are matched with a regular expression that knows nothing about code fences,
// escapes or nested parentheses. A goldmark-backed extractor is available for
// callers that want CommonMark fidelity.
//
// External targets (http…, mailto:) and anchors are never checked.
package linkcheck
