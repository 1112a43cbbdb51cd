package river

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

var (
	regionCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procede_region_cache_lookups_total",
		Help: "River region cache lookups, by hit or miss.",
	}, []string{
		resultLabel,
	})

	regionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procede_regions_generated_total",
		Help: "The number of river regions generated.",
	})

	regionGeneration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "procede_region_generation_seconds",
		Help:    "The time taken to generate a river region.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

func instrumentCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	regionCache.With(prometheus.Labels{
		resultLabel: result,
	}).Inc()
}

func instrumentRegionGenerated(start time.Time) {
	regionsGenerated.Inc()
	regionGeneration.Observe(time.Since(start).Seconds())
}
