package store

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tferdous17/rbkv/utils"
)

var (
	buckets = []float64{.000001, .0000025, .000005, .00001, .000025, .00005, .0001, .00025, .0005, .001}

	MetricOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rbkv_operations_total",
			Help: "Store operations by outcome",
		},
		[]string{"op", "result"},
	)
	MetricLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rbkv_operation_seconds",
			Help:    "A histogram of latencies for store operations",
			Buckets: buckets,
		},
		[]string{"op"},
	)
	MetricKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rbkv_keys",
			Help: "Number of keys held across all memtables",
		},
	)
	MetricRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rbkv_rotations_total",
			Help: "Red-black tree rotations performed by memtable mutations",
		},
	)
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, utils.ErrKeyNotFound), errors.Is(err, utils.ErrEmptyTree),
		errors.Is(err, utils.ErrNoSuccessor), errors.Is(err, utils.ErrNoPredecessor):
		return "not_found"
	case errors.Is(err, utils.ErrEmptyKey), errors.Is(err, utils.ErrEmptyValue), errors.Is(err, utils.ErrInvalidRange):
		return "invalid"
	default:
		return "error"
	}
}

func observe(op string, start time.Time, err error) {
	MetricLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	MetricOperations.WithLabelValues(op, resultLabel(err)).Inc()
}
