package linkcheck

import "fmt"

// Kind classifies a reference.
type Kind string

const (
	KindLink  Kind = "link"
	KindImage Kind = "image"
)

// Document is a content file read during a scan.
type Document struct {
	Path    string
	Content []byte
}

// Reference is a single link or image target found inside a Document.
type Reference struct {
	Source string // path of the owning document
	Target string // raw target as written
	Kind   Kind
	Line   int // 1-based; 0 when the extractor cannot tell
}

// Resolution is the verdict for one Reference.
type Resolution struct {
	Reference Reference
	Path      string   // target with the anchor removed
	Candidate string   // path the target maps to before extension probing
	Tried     []string // every path probed, in order
	Found     bool
}

// ErrorRecord is a reportable failure: an unresolved reference or an unreadable document.
type ErrorRecord struct {
	File     string
	Kind     Kind   // empty for read failures
	Target   string // target with the anchor removed
	Resolved string
	Line     int
	Err      error // set for read failures
}

// IsReadFailure reports whether the record describes a document that could not be read.
func (e ErrorRecord) IsReadFailure() bool {
	return e.Err != nil
}

// String renders the record the way it appears in the text report.
func (e ErrorRecord) String() string {
	if e.IsReadFailure() {
		return fmt.Sprintf("Could not read %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s: Broken %s: %s (resolved: %s)", e.File, e.Kind, e.Target, e.Resolved)
}

// recordFor converts an unresolved Resolution into its ErrorRecord.
func recordFor(res Resolution) ErrorRecord {
	return ErrorRecord{
		File:     res.Reference.Source,
		Kind:     res.Reference.Kind,
		Target:   res.Path,
		Resolved: res.Candidate,
		Line:     res.Reference.Line,
	}
}
