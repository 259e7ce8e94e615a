// Package metrics exposes catalog activity as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "partsearch"

// Recorder implements core.Observer on top of Prometheus collectors.
type Recorder struct {
	loads          *prometheus.CounterVec
	rows           *prometheus.GaugeVec
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by outcome.",
		}, []string{"catalog", "result"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_rows",
			Help:      "Rows in the currently installed table of each catalog.",
		}, []string{"catalog"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Searches served per catalog.",
		}, []string{"catalog"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent filtering and paginating a catalog.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"catalog"}),
	}
	reg.MustRegister(r.loads, r.rows, r.searches, r.searchDuration)
	return r
}

// CatalogLoaded records a load attempt. A failed load leaves the row gauge alone
// because the previous table is still being served.
func (r *Recorder) CatalogLoaded(key string, rows int, _ time.Duration, err error) {
	if err != nil {
		r.loads.WithLabelValues(key, "error").Inc()
		return
	}
	r.loads.WithLabelValues(key, "ok").Inc()
	r.rows.WithLabelValues(key).Set(float64(rows))
}

// CatalogSearched records a served search.
func (r *Recorder) CatalogSearched(key string, _ int, d time.Duration) {
	r.searches.WithLabelValues(key).Inc()
	r.searchDuration.WithLabelValues(key).Observe(d.Seconds())
}
