package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters exported by the payments service.
type Metrics struct {
	IntentsCreated      prometheus.Counter
	PaymentsCaptured    prometheus.Counter
	DuplicateDeliveries prometheus.Counter
	SignatureFailures   prometheus.Counter
	OrderUpdateFailures prometheus.Counter
	SweepRetries        prometheus.Counter
}

// NewMetrics registers the service counters on the given registerer.
// Pass nil to register on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		IntentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_intents_created_total",
			Help: "Number of payment intents created against the gateway.",
		}),
		PaymentsCaptured: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_captured_total",
			Help: "Number of pending-to-captured transitions applied.",
		}),
		DuplicateDeliveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_duplicate_deliveries_total",
			Help: "Number of confirmation calls absorbed as benign duplicates.",
		}),
		SignatureFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_signature_failures_total",
			Help: "Number of callbacks rejected for a bad HMAC signature.",
		}),
		OrderUpdateFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_order_update_failures_total",
			Help: "Number of captures whose order-side mark-paid failed.",
		}),
		SweepRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_sweep_retries_total",
			Help: "Number of mark-paid retries performed by the reconciliation sweep.",
		}),
	}
}

// MetricsHandler returns the HTTP handler serving the /metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
