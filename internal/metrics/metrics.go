// Package metrics собирает Prometheus-метрики HTTP-сервера и вызовов модели.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics держит собственный реестр, чтобы экземпляры не конфликтовали в тестах.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	forwards        *prometheus.CounterVec
	forwardDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		forwards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_forward_total",
				Help: "Prompt forwards by outcome.",
			},
			[]string{"outcome"},
		),
		forwardDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prompt_forward_duration_seconds",
				Help:    "Latency of the chat-completion call.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.forwards,
		m.forwardDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest учитывает один обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordForward учитывает итог вызова модели.
func (m *Metrics) RecordForward(outcome string, elapsed time.Duration) {
	m.forwards.WithLabelValues(outcome).Inc()
	m.forwardDuration.Observe(elapsed.Seconds())
}

// Handler отдаёт метрики в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
