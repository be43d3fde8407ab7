// Package metrics defines the Prometheus instruments exported by exopop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics
	RowsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exopop_rows_loaded_total",
		Help: "Total number of raw archive rows read",
	})

	RowsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exopop_rows_removed_total",
		Help: "Total number of rows removed by each filter stage",
	}, []string{"stage"})

	AOverRFilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exopop_a_over_r_filled_total",
		Help: "Total number of a/R values computed from Kepler's third law",
	})

	PositionsNulled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exopop_positions_nulled_total",
		Help: "Total number of rows whose ra/dec sentinel was converted to null",
	})

	InvalidCells = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exopop_invalid_cells_total",
		Help: "Total number of non-empty numeric cells that failed to parse",
	})

	MasterRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exopop_master_rows",
		Help: "Number of rows in the current master table",
	})

	// Selection metrics
	SubsetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "exopop_subset_rows",
		Help: "Number of rows retained by each subset",
	}, []string{"subset"})

	SubsetSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exopop_subset_selections_total",
		Help: "Total number of subset materializations by source",
	}, []string{"subset", "source"})

	// Archive metrics
	ArchiveFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exopop_archive_fetches_total",
		Help: "Total number of archive download attempts by result",
	}, []string{"result"})

	ArchiveFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exopop_archive_fetch_duration_seconds",
		Help:    "Time taken to download an archive snapshot",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exopop_cache_lookups_total",
		Help: "Total number of standard-table cache lookups by result",
	}, []string{"result"})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exopop_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exopop_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
