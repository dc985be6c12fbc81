// Package metrics exposes the Prometheus collectors for the statement
// pipeline. Collectors are registered on the default registry at init so
// every package can record without plumbing a registry around.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatementsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rupeelog_statements_parsed_total",
		Help: "Statements successfully parsed, labeled by detected format.",
	}, []string{"format"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rupeelog_statement_parse_failures_total",
		Help: "Statement uploads that produced no transactions, by reason.",
	}, []string{"reason"})

	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rupeelog_text_extraction_seconds",
		Help:    "Time spent extracting text from a PDF, by method.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"method"})

	TransactionsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rupeelog_transactions_imported_total",
		Help: "Transactions written to storage through bulk import.",
	})

	DuplicatesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rupeelog_import_duplicates_skipped_total",
		Help: "Transactions dropped by the duplicate check during import.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rupeelog_http_requests_total",
		Help: "HTTP requests served, by route pattern and status class.",
	}, []string{"route", "status"})
)
