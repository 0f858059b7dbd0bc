package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifact_analyses_total",
			Help: "Total number of resolved analyses",
		},
		[]string{"status"}, // status: completed, error
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verifact_analysis_duration_seconds",
			Help:    "Time from submission to resolution of an analysis",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	SourcesPerAnswer = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verifact_sources_per_answer",
			Help:    "Number of deduplicated sources cited per completed answer",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 15},
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifact_submissions_rejected_total",
			Help: "Submissions refused before reaching the model",
		},
		[]string{"reason"}, // reason: blank, busy, rate_limited
	)

	HistoryItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "verifact_history_items",
			Help: "Number of results currently kept in history",
		},
	)
)
