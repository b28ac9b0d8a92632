// Package obs is the "observability sink" spec.md §7 leaves
// unspecified: structured logging and the aggregated metrics spec.md §5
// allows sessions to update without session-specific locking.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"

	"httpcore/internal/httperr"
)

// Metrics wraps the prometheus counters/histograms the session driver
// updates. Every method is safe for concurrent use by every session
// goroutine; prometheus counters already tolerate that without any
// locking of our own.
type Metrics struct {
	sessionsTotal   prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	requestDuration prometheus.Histogram
	reuseCount      prometheus.Histogram
}

// NewMetrics constructs a Metrics and registers it with reg. Passing a
// fresh *prometheus.Registry (rather than prometheus.DefaultRegisterer)
// keeps tests free of global registration collisions.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpcore_sessions_total",
			Help: "Total accepted connections.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httpcore_requests_total",
			Help: "Total requests fully received and handled.",
		}, []string{"method"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httpcore_errors_total",
			Help: "Total terminal errors, by family and kind.",
		}, []string{"family", "kind"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "httpcore_request_duration_seconds",
			Help:    "End-to-end receive+handle+send duration per request.",
			Buckets: prometheus.DefBuckets,
		}),
		reuseCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "httpcore_session_reuse_count",
			Help:    "Number of requests served per connection before close.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
	reg.MustRegister(m.sessionsTotal, m.requestsTotal, m.errorsTotal, m.requestDuration, m.reuseCount)
	return m
}

func (m *Metrics) SessionAccepted() { m.sessionsTotal.Inc() }

func (m *Metrics) RequestHandled(method string, seconds float64) {
	m.requestsTotal.WithLabelValues(method).Inc()
	m.requestDuration.Observe(seconds)
}

func (m *Metrics) SessionClosed(reuseCount int) {
	m.reuseCount.Observe(float64(reuseCount))
}

// ErrorObserved counts a terminal error by its (family, kind) label
// pair, falling back to "unknown" for errors without an httperr.Kind.
func (m *Metrics) ErrorObserved(err error) {
	kind, ok := httperr.KindOf(err)
	if !ok {
		m.errorsTotal.WithLabelValues("unknown", "unknown").Inc()
		return
	}
	m.errorsTotal.WithLabelValues(kind.Family().String(), string(kind)).Inc()
}
