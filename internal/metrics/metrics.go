package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts scored prediction requests by endpoint and outcome.
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Prediction requests served, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// SeasonLogLookups counts season game-log lookups by resolving tier.
	SeasonLogLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "season_log_lookups_total",
		Help: "Season game-log lookups, by cache tier that resolved them.",
	}, []string{"tier"})
)
