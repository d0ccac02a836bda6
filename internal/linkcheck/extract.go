package linkcheck

import (
	"bytes"
	"fmt"
	"regexp"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/markdown"
)

// Extractor pulls references out of a document's text.
type Extractor interface {
	Name() string
	Extract(doc Document) ([]Reference, error)
}

// referencePattern matches `![label](target)` and `[label](target)` in one
// pass. The optional leading `!` is tried first at every position, so an image
// is never also counted as a link.
var referencePattern = regexp.MustCompile(`(!?)\[.*?\]\((.*?)\)`)

// PatternExtractor finds references by regular expression. It does not
// understand code fences, escaped brackets or parentheses inside targets.
type PatternExtractor struct{}

func (PatternExtractor) Name() string { return string(config.ExtractorPattern) }

// Extract returns references in order of occurrence.
func (PatternExtractor) Extract(doc Document) ([]Reference, error) {
	matches := referencePattern.FindAllSubmatchIndex(doc.Content, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	refs := make([]Reference, 0, len(matches))
	line, offset := 1, 0
	for _, m := range matches {
		line += bytes.Count(doc.Content[offset:m[0]], []byte("\n"))
		offset = m[0]

		kind := KindLink
		if m[3] > m[2] {
			kind = KindImage
		}
		refs = append(refs, Reference{
			Source: doc.Path,
			Target: string(doc.Content[m[4]:m[5]]),
			Kind:   kind,
			Line:   line,
		})
	}
	return refs, nil
}

// GoldmarkExtractor finds references by walking a CommonMark AST.
type GoldmarkExtractor struct{}

func (GoldmarkExtractor) Name() string { return string(config.ExtractorGoldmark) }

func (GoldmarkExtractor) Extract(doc Document) ([]Reference, error) {
	links, err := markdown.ExtractLinks(doc.Content, markdown.Options{})
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}

	refs := make([]Reference, 0, len(links))
	for _, l := range links {
		kind := KindLink
		if l.Kind == markdown.LinkKindImage {
			kind = KindImage
		}
		refs = append(refs, Reference{
			Source: doc.Path,
			Target: l.Destination,
			Kind:   kind,
			Line:   l.Line,
		})
	}
	return refs, nil
}

// NewExtractor returns the extractor for the configured mode.
func NewExtractor(mode config.Extractor) (Extractor, error) {
	switch mode {
	case config.ExtractorPattern, "":
		return PatternExtractor{}, nil
	case config.ExtractorGoldmark:
		return GoldmarkExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", mode)
	}
}
