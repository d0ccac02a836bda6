// Package metrics provides run metrics for doclinks.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers counters on a
// Prometheus registry, which the CLI writes out in the node-exporter textfile
// format when a metrics file is configured:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	checker := linkcheck.NewChecker(cfg, linkcheck.WithRecorder(recorder))
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
