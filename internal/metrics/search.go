package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and catalog metrics.
var (
	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of matching items per search, before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000, 5000},
		},
	)

	SearchZeroResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_zero_results_total",
			Help:      "Total number of searches that matched nothing",
		},
	)

	SearchPrefilteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_prefiltered_total",
			Help:      "Total number of searches narrowed by the keyword index",
		},
	)

	CatalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Number of items in the current catalog snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Total number of catalog reloads",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

func init() {
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchZeroResultsTotal)
	prometheus.MustRegister(SearchPrefilteredTotal)
	prometheus.MustRegister(CatalogItems)
	prometheus.MustRegister(CatalogReloadsTotal)
}

// ObserveSearch records the size of one search result set.
func ObserveSearch(total int, prefiltered bool) {
	SearchResults.Observe(float64(total))
	if total == 0 {
		SearchZeroResultsTotal.Inc()
	}
	if prefiltered {
		SearchPrefilteredTotal.Inc()
	}
}

// ObserveReload records a catalog reload outcome. items is ignored on failure.
func ObserveReload(items int, err error) {
	if err != nil {
		CatalogReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	CatalogReloadsTotal.WithLabelValues("ok").Inc()
	CatalogItems.Set(float64(items))
}
