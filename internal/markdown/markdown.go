package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte, _ Options) gmast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(body))
}

// ExtractLinks parses a Markdown body and extracts inline links and images,
// including reference-style links resolved against their definitions.
//
// Autolinks are not reported: they always carry a URL or an email address.
// Links inside code spans and code blocks never reach the AST as links.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	root := ParseBody(body, opts)

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: lineOf(node, body)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: lineOf(node, body)})
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}

// lineOf returns the 1-based line of an inline node: the line of its first
// text segment, or the first line of its enclosing block.
func lineOf(n gmast.Node, body []byte) int {
	for c := n.FirstChild(); c != nil; c = c.FirstChild() {
		if t, ok := c.(*gmast.Text); ok {
			return bytes.Count(body[:t.Segment.Start], []byte("\n")) + 1
		}
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		if lines := p.Lines(); lines != nil && lines.Len() > 0 {
			return bytes.Count(body[:lines.At(0).Start], []byte("\n")) + 1
		}
	}
	return 0
}
