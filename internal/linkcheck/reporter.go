package linkcheck

// Report is the outcome of one run.
type Report struct {
	Root            string
	FilesTotal      int
	ReferencesTotal int
	Records         []ErrorRecord
}

// HasErrors returns true if any error record exists. It alone decides the exit status.
func (r *Report) HasErrors() bool {
	return len(r.Records) > 0
}

// ErrorCount returns the number of error records.
func (r *Report) ErrorCount() int {
	return len(r.Records)
}

// Reporter accumulates error records in the order they are produced.
type Reporter struct {
	report Report
}

// NewReporter creates a reporter for a scan of root.
func NewReporter(root string) *Reporter {
	return &Reporter{report: Report{Root: root, Records: []ErrorRecord{}}}
}

// AddReadFailure records a document (or directory) that could not be read.
func (r *Reporter) AddReadFailure(path string, err error) {
	r.report.Records = append(r.report.Records, ErrorRecord{File: path, Err: err})
}

// AddDocument counts a document that was read successfully.
func (r *Reporter) AddDocument() {
	r.report.FilesTotal++
}

// AddResolution counts one resolved reference and records it if it was not found.
// It reports whether an error record was added.
func (r *Reporter) AddResolution(res Resolution) bool {
	r.report.ReferencesTotal++
	if res.Found {
		return false
	}
	r.report.Records = append(r.report.Records, recordFor(res))
	return true
}

// Report returns the accumulated report.
func (r *Reporter) Report() *Report {
	return &r.report
}
