package liaison

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiconnect",
			Name:      "submissions_total",
			Help:      "Comments recorded, by detected language.",
		},
		[]string{"lang"},
	)
	rejectedSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiconnect",
			Name:      "submissions_rejected_total",
			Help:      "Submissions dropped before reaching the generator, by reason.",
		},
		[]string{"reason"},
	)
	generationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aiconnect",
			Name:      "generation_failures_total",
			Help:      "Generator calls that failed and were answered with the fallback reply.",
		},
	)
	emptyGenerations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aiconnect",
			Name:      "generation_empty_total",
			Help:      "Generator calls that returned no text.",
		},
	)
	replyLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aiconnect",
			Name:      "reply_seconds",
			Help:      "Time spent awaiting the reply generator.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(submissions)
	prometheus.MustRegister(rejectedSubmissions)
	prometheus.MustRegister(generationFailures)
	prometheus.MustRegister(emptyGenerations)
	prometheus.MustRegister(replyLatency)
}

// RegisterSessionGauge exposes the live session count of store.
func RegisterSessionGauge(registerer prometheus.Registerer, store *SessionStore) error {
	return registerer.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "aiconnect",
			Name:      "sessions_active",
			Help:      "Sessions currently holding a comment feed.",
		},
		func() float64 { return float64(store.Len()) },
	))
}
