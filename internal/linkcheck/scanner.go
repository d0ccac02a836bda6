package linkcheck

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is recorded for documents whose content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Entry is one discovered document path. Entries with Dir set are
// subdirectories that could not be walked; they carry Err and are skipped.
type Entry struct {
	Path string
	Err  error
	Dir  bool
}

// Scanner discovers documents under a content root and extracts their references.
type Scanner struct {
	root       string
	extensions map[string]struct{}
	extractor  Extractor
	skipHidden bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithSkipHidden excludes dot-directories below the root from discovery.
func WithSkipHidden(skip bool) ScannerOption {
	return func(s *Scanner) { s.skipHidden = skip }
}

// NewScanner creates a scanner for documents with the given extensions (".md", ".mdx").
func NewScanner(root string, extensions []string, extractor Extractor, opts ...ScannerOption) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[ext] = struct{}{}
	}
	if extractor == nil {
		extractor = PatternExtractor{}
	}
	s := &Scanner{root: root, extensions: exts, extractor: extractor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the content root being scanned.
func (s *Scanner) Root() string { return s.root }

// Discover walks the content root in lexical order, including dot-directories
// unless WithSkipHidden is set. A subdirectory that cannot be read is returned
// as a Dir entry instead of aborting the walk.
func (s *Scanner) Discover() ([]Entry, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, err
	}

	var entries []Entry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			if d != nil && d.IsDir() {
				entries = append(entries, Entry{Path: path, Err: err, Dir: true})
				return fs.SkipDir
			}
			if s.IsSource(path) {
				entries = append(entries, Entry{Path: path, Err: err})
			}
			return nil
		}

		if d.IsDir() {
			if s.skipHidden && path != s.root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		if s.IsSource(path) {
			entries = append(entries, Entry{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// IsSource reports whether path has one of the scanned extensions.
func (s *Scanner) IsSource(path string) bool {
	_, ok := s.extensions[filepath.Ext(path)]
	return ok
}

// Read loads a document and checks that it decodes as UTF-8.
func (s *Scanner) Read(path string) (Document, error) {
	// #nosec G304 -- path comes from Discover under the configured content root
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	if !utf8.Valid(content) {
		return Document{}, ErrInvalidUTF8
	}
	return Document{Path: path, Content: content}, nil
}

// Extract returns the references contained in doc, in order of occurrence.
func (s *Scanner) Extract(doc Document) ([]Reference, error) {
	return s.extractor.Extract(doc)
}
