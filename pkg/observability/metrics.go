package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authenticationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_authentications_total",
		Help: "Total customer authentication attempts",
	}, []string{
		"result", // success, failure
	})

	apiCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_platform_calls_total",
		Help: "Total calls to the payment platform APIs",
	}, []string{
		"operation", // create payment request, list instruments, make payment, ...
		"status",    // HTTP status line or transport error class
	})

	apiCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simulator_platform_call_duration_seconds",
		Help:    "Duration of payment platform calls",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
	})

	captureCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_capture_cycles_total",
		Help: "Total card capture cycles started in the embedded widget",
	}, []string{
		"wallet",
	})

	threeDSValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_three_ds_validations_total",
		Help: "Total 3DS step-up validation attempts",
	}, []string{
		"result", // issued, exceeded
	})

	paymentOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_payment_outcomes_total",
		Help: "Terminal payment outcomes per orchestration run",
	}, []string{
		"outcome", // success, failure
	})
)

// RecordAuthentication records one authentication attempt
func RecordAuthentication(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	authenticationsTotal.WithLabelValues(result).Inc()
}

// RecordAPICall records one platform call with its duration
func RecordAPICall(operation, status string, duration time.Duration) {
	apiCallsTotal.WithLabelValues(operation, status).Inc()
	apiCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCaptureCycle records the start of a card capture cycle
func RecordCaptureCycle(wallet string) {
	captureCyclesTotal.WithLabelValues(wallet).Inc()
}

// RecordThreeDSValidation records a step-up validation attempt
func RecordThreeDSValidation(result string) {
	threeDSValidationsTotal.WithLabelValues(result).Inc()
}

// RecordPaymentOutcome records a terminal outcome
func RecordPaymentOutcome(outcome string) {
	paymentOutcomesTotal.WithLabelValues(outcome).Inc()
}
