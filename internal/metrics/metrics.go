package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Update kinds and pong results used as label values.
const (
	UpdateTransaction = "transaction"
	UpdatePing        = "ping"
	UpdatePong        = "pong"
	UpdateOther       = "other"

	ResultOK    = "ok"
	ResultError = "error"
)

var (
	initOnce sync.Once

	updatesTotalCounter    *prometheus.CounterVec
	eventsDecodedCounter   *prometheus.CounterVec
	pongsTotalCounter      *prometheus.CounterVec
	sessionsActiveGauge    prometheus.Gauge
	trackedSignaturesGauge prometheus.Gauge
	handleDurationMetric   prometheus.Histogram
)

// Init registers metrics on the default Prometheus registry exactly once.
func Init() {
	initOnce.Do(func() {
		updatesTotalCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watcher_updates_total",
				Help: "Total number of stream updates received by kind.",
			},
			[]string{"kind"},
		)

		eventsDecodedCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watcher_events_decoded_total",
				Help: "Total number of program events decoded by event name.",
			},
			[]string{"event"},
		)

		pongsTotalCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watcher_pongs_total",
				Help: "Total number of keepalive pongs sent by result.",
			},
			[]string{"result"},
		)

		sessionsActiveGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "watcher_sessions_active",
				Help: "Number of stream sessions currently streaming.",
			},
		)

		trackedSignaturesGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "watcher_tracked_signatures",
				Help: "Number of transaction signatures held by the aggregator.",
			},
		)

		handleDurationMetric = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "watcher_handle_duration_seconds",
				Help:    "Duration of aggregator handle calls in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		)

		prometheus.MustRegister(
			updatesTotalCounter,
			eventsDecodedCounter,
			pongsTotalCounter,
			sessionsActiveGauge,
			trackedSignaturesGauge,
			handleDurationMetric,
		)

		for _, kind := range []string{UpdateTransaction, UpdatePing, UpdatePong, UpdateOther} {
			updatesTotalCounter.WithLabelValues(kind)
		}
		for _, result := range []string{ResultOK, ResultError} {
			pongsTotalCounter.WithLabelValues(result)
		}
	})
}

func IncUpdate(kind string) {
	Init()
	updatesTotalCounter.WithLabelValues(kind).Inc()
}

func IncEventDecoded(name string) {
	Init()
	eventsDecodedCounter.WithLabelValues(name).Inc()
}

func IncPong(result string) {
	Init()
	pongsTotalCounter.WithLabelValues(result).Inc()
}

func SessionStarted() {
	Init()
	sessionsActiveGauge.Inc()
}

func SessionEnded() {
	Init()
	sessionsActiveGauge.Dec()
}

func SetTrackedSignatures(n int) {
	Init()
	trackedSignaturesGauge.Set(float64(n))
}

func ObserveHandleDuration(d time.Duration) {
	Init()
	handleDurationMetric.Observe(d.Seconds())
}
