package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercal_upstream_calls_total",
			Help: "Total upstream weather API calls",
		},
		[]string{"endpoint", "status"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercal_cache_hits_total",
			Help: "Forecast cache hits by tier",
		},
		[]string{"tier"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercal_cache_misses_total",
			Help: "Forecast cache misses by tier",
		},
		[]string{"tier"},
	)

	CalendarsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weathercal_calendars_rendered_total",
			Help: "Total calendar documents rendered",
		},
	)
)
