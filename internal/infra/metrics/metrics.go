package metrics

import (
	"net/http"
	"strconv"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests can build as many as they need.
type Recorder struct {
	registry *prometheus.Registry

	entries     *prometheus.CounterVec
	points      *prometheus.CounterVec
	tierChanges prometheus.Counter
	conflicts   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewRecorder(cfg config.MetricsConfig) *Recorder {
	ns := cfg.Namespace
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "ledger",
				Name:      "entries_total",
				Help:      "Ledger entries appended, by kind.",
			},
			[]string{"kind"},
		),
		points: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "ledger",
				Name:      "points_total",
				Help:      "Absolute points moved by ledger entries, by direction.",
			},
			[]string{"direction"},
		),
		tierChanges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "ledger",
				Name:      "tier_changes_total",
				Help:      "Membership tier reassignments.",
			},
		),
		conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "ledger",
				Name:      "reference_conflicts_total",
				Help:      "Appends rejected because the transaction reference already exists.",
			},
			[]string{"replay"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
	}
	r.registry.MustRegister(
		r.entries,
		r.points,
		r.tierChanges,
		r.conflicts,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

func (r *Recorder) EntryApplied(kind ledger.Kind, points int64) {
	r.entries.WithLabelValues(string(kind)).Inc()
	if points >= 0 {
		r.points.WithLabelValues("credit").Add(float64(points))
	} else {
		r.points.WithLabelValues("debit").Add(float64(-points))
	}
}

func (r *Recorder) TierChanged() {
	r.tierChanges.Inc()
}

func (r *Recorder) ReferenceConflict(replay bool) {
	r.conflicts.WithLabelValues(strconv.FormatBool(replay)).Inc()
}

// ObserveHTTP records one handled request. path should be the route template.
func (r *Recorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
