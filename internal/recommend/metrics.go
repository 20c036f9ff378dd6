package recommend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"kind"},
	)

	activityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_activity_scores",
			Help:    "Distribution of computed activity match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommend_duration_seconds",
			Help: "Time spent computing recommendations",
		},
		[]string{"kind"},
	)
)

func RecordRecommendation(kind string, duration time.Duration) {
	recommendationsTotal.WithLabelValues(kind).Inc()
	recommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordActivityScore(score float64) {
	activityScores.Observe(score)
}
