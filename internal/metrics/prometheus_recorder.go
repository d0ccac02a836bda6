package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once        sync.Once
	files       prom.Counter
	unreadable  prom.Counter
	references  *prom.CounterVec
	broken      *prom.CounterVec
	runDuration prom.Histogram
	runOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.files = prom.NewCounter(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "files_scanned_total",
			Help:      "Documents read and scanned for references",
		})
		pr.unreadable = prom.NewCounter(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "unreadable_files_total",
			Help:      "Documents or directories that could not be read",
		})
		pr.references = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "references_total",
			Help:      "References extracted by kind",
		}, []string{"kind"})
		pr.broken = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "broken_references_total",
			Help:      "References that did not resolve, by kind",
		}, []string{"kind"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doclinks",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a complete check run",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "run_outcomes_total",
			Help:      "Check runs by outcome",
		}, []string{"outcome"})
		reg.MustRegister(pr.files, pr.unreadable, pr.references, pr.broken, pr.runDuration, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) IncFilesScanned() {
	if p == nil || p.files == nil {
		return
	}
	p.files.Inc()
}

func (p *PrometheusRecorder) IncUnreadableFiles() {
	if p == nil || p.unreadable == nil {
		return
	}
	p.unreadable.Inc()
}

func (p *PrometheusRecorder) IncReferences(kind string) {
	if p == nil || p.references == nil {
		return
	}
	p.references.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncBrokenReferences(kind string) {
	if p == nil || p.broken == nil {
		return
	}
	p.broken.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}
