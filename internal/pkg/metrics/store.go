package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation results
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionbase_store_operations_total",
			Help: "Question repository operations by outcome",
		},
		[]string{"operation", "result"},
	)

	storeRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "questionbase_store_records",
			Help: "Number of questions held by the repository",
		},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "questionbase_backend_breaker_state",
			Help: "Backend circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"backend"},
	)
)

// RecordStoreOperation counts one repository operation
func RecordStoreOperation(operation, result string) {
	storeOperations.WithLabelValues(operation, result).Inc()
}

// SetStoreRecords publishes the current record count
func SetStoreRecords(n int) {
	storeRecords.Set(float64(n))
}

// SetBreakerState publishes a breaker state for a backend
func SetBreakerState(backend string, state int) {
	breakerState.WithLabelValues(backend).Set(float64(state))
}
