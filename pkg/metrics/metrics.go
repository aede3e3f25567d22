// Package metrics defines the Prometheus collectors recorded during a run
// and writes them out in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for a run. Collectors live on a
// private registry so several runs (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	FilesTotal          *prometheus.CounterVec
	FileSizeBytes       prometheus.Histogram
	TokensTotal         *prometheus.CounterVec
	TokensExcludedTotal *prometheus.CounterVec
	DistinctStems       *prometheus.GaugeVec
	ReportRows          *prometheus.GaugeVec
	StemCacheLookups    *prometheus.CounterVec
	ReportsPublished    *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexfreq_files_total",
				Help: "Input files by outcome (ok, open_error, read_error).",
			},
			[]string{"status"},
		),
		FileSizeBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexfreq_file_size_bytes",
				Help:    "Size of successfully read input files.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		TokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexfreq_tokens_total",
				Help: "Tokens aggregated into a frequency dictionary, by language bucket.",
			},
			[]string{"language"},
		),
		TokensExcludedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexfreq_tokens_excluded_total",
				Help: "Tokens dropped by the exclusion list, by language bucket.",
			},
			[]string{"language"},
		),
		DistinctStems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lexfreq_distinct_stems",
				Help: "Distinct stems held by each frequency dictionary.",
			},
			[]string{"language"},
		),
		ReportRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lexfreq_report_rows",
				Help: "Stems that passed every report threshold.",
			},
			[]string{"language"},
		),
		StemCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexfreq_stem_cache_lookups_total",
				Help: "Stem cache lookups by result (local_hit, remote_hit, miss, error).",
			},
			[]string{"language", "result"},
		),
		ReportsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexfreq_reports_published_total",
				Help: "Report publish attempts by status.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.FilesTotal,
		m.FileSizeBytes,
		m.TokensTotal,
		m.TokensExcludedTotal,
		m.DistinctStems,
		m.ReportRows,
		m.StemCacheLookups,
		m.ReportsPublished,
	)

	return m
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every collected metric to path, atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
