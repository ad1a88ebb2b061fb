package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores the Prometheus collectors used across the service.
type Metrics struct {
	PaymentAttempts  *prometheus.CounterVec
	PaymentLatency   *prometheus.HistogramVec
	TokenPurchases   *prometheus.CounterVec
	RescueRequests   *prometheus.CounterVec
	ReferralAccruals prometheus.Counter
	Errors           *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			PaymentAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_attempts_total",
				Help:      "Total payment attempts by gateway and outcome.",
			}, []string{"gateway", "outcome"}),
			PaymentLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "payment_duration_seconds",
				Help:      "Latency distribution for gateway payment initiations.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"gateway"}),
			TokenPurchases: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "secours_token_purchases_total",
				Help:      "Total token purchases by subscription type.",
			}, []string{"subscription_type"}),
			RescueRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "secours_rescue_requests_total",
				Help:      "Total rescue requests by status.",
			}, []string{"status"}),
			ReferralAccruals: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "referral_accruals_total",
				Help:      "Total referral commissions accrued.",
			}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.PaymentAttempts,
			metricsInstance.PaymentLatency,
			metricsInstance.TokenPurchases,
			metricsInstance.RescueRequests,
			metricsInstance.ReferralAccruals,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
