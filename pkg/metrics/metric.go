package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Set   = "set"
	Event = "event"
	Op    = "op"
)

var (
	EventCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "papi",
		Name:      "event_count",
		Help:      "Events counted by a counter set, accumulated over all of its windows.",
	}, []string{Set, Event})
	Windows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "papi",
		Name:      "windows_total",
		Help:      "Counting windows closed.",
	}, []string{Set})
	WindowDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "papi",
		Name:      "window_duration_seconds",
		Help:      "Wall time of counting windows.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{Set})
	Failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "papi",
		Name:      "failures_total",
		Help:      "Failed counter operations.",
	}, []string{Set, Op})
	PAPICollectors = []prometheus.Collector{EventCount, Windows, WindowDuration, Failures}
)

func init() {
	prometheus.MustRegister(PAPICollectors...)
}

// RecordSnapshot publishes the totals of one counter set.
func RecordSnapshot(set string, snapshot map[string]int64) {
	for event, total := range snapshot {
		EventCount.With(prometheus.Labels{Set: set, Event: event}).Set(float64(total))
	}
}

// RecordWindow counts one closed window of the given length.
func RecordWindow(set string, d time.Duration) {
	Windows.WithLabelValues(set).Inc()
	WindowDuration.WithLabelValues(set).Observe(d.Seconds())
}

// RecordFailure counts a failed operation, such as "build" or "measure".
func RecordFailure(set, op string) {
	Failures.WithLabelValues(set, op).Inc()
}
