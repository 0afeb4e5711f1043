package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stitch_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	QuotesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_quotes_generated_total",
			Help: "Quotes generated, labelled by pricing source (ai or local)",
		},
		[]string{"source"},
	)

	QuotesConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stitch_quotes_converted_total",
			Help: "Quotes converted into orders",
		},
	)

	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stitch_realtime_clients",
			Help: "Currently connected realtime websocket clients",
		},
	)

	StorageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_storage_uploads_total",
			Help: "Object storage uploads by bucket and outcome",
		},
		[]string{"bucket", "outcome"},
	)
)
