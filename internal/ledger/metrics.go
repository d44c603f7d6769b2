package ledger

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// opTotal counts ledger operations by name and result code ("ok" on success)
	opTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circlecare_ledger_operations_total",
		Help: "Total ledger operations by operation and result",
	}, []string{"operation", "result"})

	// opDuration tracks ledger operation latency, lock wait included
	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "circlecare_ledger_operation_duration_seconds",
		Help:    "Ledger operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	}, []string{"operation"})
)

func recordOp(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		if code := CodeOf(err); code != 0 {
			result = strconv.FormatUint(uint64(code), 10)
		} else {
			result = "internal"
		}
	}
	opTotal.WithLabelValues(op, result).Inc()
	opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
