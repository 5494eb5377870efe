package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesReadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fire_frames_read_total",
		Help: "Total number of frames decoded from the source, by source kind",
	}, []string{"kind"})

	FramesForwardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fire_frames_forwarded_total",
		Help: "Total number of frames forwarded by the sampler, by source kind",
	}, []string{"kind"})

	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fire_classifications_total",
		Help: "Total number of classified frames, by label",
	}, []string{"label"})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fire_errors_total",
		Help: "Total number of errors, by processor",
	}, []string{"processor"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fire_inference_duration_seconds",
		Help:    "Duration of resize plus classification of one frame",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	ThrottleOverrunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fire_live_throttle_overruns_total",
		Help: "Live iterations whose processing exceeded the sampling period",
	})
)
