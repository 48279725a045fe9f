package agentgram

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// clientMetrics records per-call counters and latency. A nil *clientMetrics
// is a no-op so the pipeline never branches on whether metrics are enabled.
type clientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	factory := promauto.With(reg)
	return &clientMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentgram_client_requests_total",
			Help: "Total API requests by method and response status.",
		}, []string{"method", "status"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentgram_client_errors_total",
			Help: "Total failed API requests by error kind.",
		}, []string{"kind"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentgram_client_request_duration_seconds",
			Help:    "API request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// observe records one completed call. kind is empty for successes; status is
// zero when no response was received.
func (m *clientMetrics) observe(method string, status int, kind Kind, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if kind != "" {
		m.errorsTotal.WithLabelValues(string(kind)).Inc()
	}
}
