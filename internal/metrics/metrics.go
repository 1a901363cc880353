package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MarketRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_market_requests_total",
			Help: "Price history requests by provider and status",
		},
		[]string{"provider", "status"},
	)

	MarketRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_market_request_duration_seconds",
			Help:    "Price history request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	PriceCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_price_cache_total",
			Help: "Price cache lookups by result",
		},
		[]string{"backend", "result"},
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_refreshes_total",
			Help: "Universe scans by trigger and status",
		},
		[]string{"trigger", "status"},
	)

	ScanFailedTickers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analyzer_scan_failed_tickers",
			Help: "Tickers that failed in the latest scan",
		},
	)

	SpikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_spikes_total",
			Help: "Movers at or above the spike threshold",
		},
		[]string{"direction"},
	)

	NewsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_news_requests_total",
			Help: "News source requests by source and status",
		},
		[]string{"source", "status"},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_llm_requests_total",
			Help: "Language model calls by provider and status",
		},
		[]string{"provider", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_llm_request_duration_seconds",
			Help:    "Language model call latency",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"provider"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_http_requests_total",
			Help: "Dashboard HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_http_request_duration_seconds",
			Help:    "Dashboard HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
