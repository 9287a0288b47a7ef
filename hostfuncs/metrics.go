package hostfuncs

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks host function call statistics.
type Metrics struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	registerer   prometheus.Registerer
	collectors   []prometheus.Collector
}

// NewMetrics creates host function metrics registered on registerer.
// A nil registerer means prometheus.DefaultRegisterer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registerer: registerer,
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rosmsg",
				Subsystem: "hostfunc",
				Name:      "calls_total",
				Help:      "Total number of host function calls by outcome",
			},
			[]string{"function", "outcome"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rosmsg",
				Subsystem: "hostfunc",
				Name:      "call_duration_seconds",
				Help:      "Host function call latency",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"function"},
		),
	}
	m.collectors = []prometheus.Collector{m.callsTotal, m.callDuration}
	return m
}

// WithLiveHandles adds a gauge reporting the number of live handles as
// returned by live, evaluated at scrape time.
func (m *Metrics) WithLiveHandles(live func() int) *Metrics {
	m.collectors = append(m.collectors, prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "rosmsg",
			Subsystem: "records",
			Name:      "live_handles",
			Help:      "Number of records allocated and not yet released",
		},
		func() float64 { return float64(live()) },
	))
	return m
}

// Register registers the collectors. Already registered collectors are not an error.
func (m *Metrics) Register() error {
	for _, c := range m.collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// observe records one call. outcome is "ok", "error" or the lower-cased error kind.
func (m *Metrics) observe(function, outcome string, d time.Duration) {
	m.callsTotal.WithLabelValues(function, outcome).Inc()
	m.callDuration.WithLabelValues(function).Observe(d.Seconds())
}

// MetricsMiddleware returns a middleware recording call counts and latency in m.
func MetricsMiddleware(m *Metrics) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			start := time.Now()
			resp, err := next(ctx, payload)

			outcome := "ok"
			if err != nil {
				outcome = "error"
			} else if kind := errorKind(resp); kind != "" {
				outcome = strings.ToLower(kind)
			}
			m.observe(FunctionName(ctx), outcome, time.Since(start))
			return resp, err
		}
	}
}
