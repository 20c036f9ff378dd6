package activities

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activitiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_created_total",
			Help: "Total number of activities created",
		},
		[]string{"category"},
	)

	activityJoinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activities_joins_total",
			Help: "Total number of successful activity joins",
		},
	)

	activityLeavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activities_leaves_total",
			Help: "Total number of users leaving activities",
		},
	)
)

func RecordActivityCreated(category string) {
	activitiesCreatedTotal.WithLabelValues(category).Inc()
}

func RecordJoin() {
	activityJoinsTotal.Inc()
}

func RecordLeave() {
	activityLeavesTotal.Inc()
}
