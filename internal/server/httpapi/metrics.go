package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus collectors of the HTTP API.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsSaved    prometheus.Counter
	ttsRequests     *prometheus.CounterVec
}

// NewRegistry returns a registry with the Go runtime and process
// collectors already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics creates the API collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldkeeper_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldkeeper_http_request_duration_seconds",
				Help:    "Time taken to serve HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		recordsSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldkeeper_records_saved_total",
				Help: "Total number of record documents upserted",
			},
		),
		ttsRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldkeeper_tts_requests_total",
				Help: "Total number of text-to-speech proxy requests by language and result",
			},
			[]string{"language", "result"}, // result: success, error
		),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDuration, m.recordsSaved, m.ttsRequests} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
