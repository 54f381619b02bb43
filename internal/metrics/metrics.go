// Package metrics exposes the counters tracked by the admin tooling. They
// register on the default prometheus registry so an embedding process can
// scrape them; the standalone CLI just keeps them for its own bookkeeping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ListQueries counts short URL listing queries issued to the repository.
	ListQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortctl_short_url_list_queries_total",
		Help: "Number of short URL listing queries executed.",
	})

	// GeoDBDownloadAttempts counts geolocation database download attempts.
	GeoDBDownloadAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortctl_geodb_download_attempts_total",
		Help: "Number of geolocation database downloads attempted.",
	})

	// GeoDBDownloadFailures counts failed geolocation database downloads.
	GeoDBDownloadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortctl_geodb_download_failures_total",
		Help: "Number of geolocation database downloads that failed.",
	})
)
