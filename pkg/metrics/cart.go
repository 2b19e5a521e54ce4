package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation and checkout outcomes per cart kind.
type CartMetrics struct {
	mutations  *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	checkouts  *prometheus.CounterVec
	checkoutMS *prometheus.HistogramVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart add/remove/clear operations.",
	}, []string{"cart_kind", "op"})
	duplicates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_duplicate_adds_total",
		Help: "Add attempts rejected because the line item already existed.",
	}, []string{"cart_kind"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_checkouts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"cart_kind", "outcome"})
	checkoutMS := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_checkout_duration_seconds",
		Help:    "Duration of checkout handoffs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"cart_kind"})
	reg.MustRegister(mutations, duplicates, checkouts, checkoutMS)
	return &CartMetrics{
		mutations:  mutations,
		duplicates: duplicates,
		checkouts:  checkouts,
		checkoutMS: checkoutMS,
	}
}

// IncMutation counts a successful add/remove/clear.
func (c *CartMetrics) IncMutation(kind, op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(kind), normalizeLabel(op)).Inc()
}

// IncDuplicate counts a rejected duplicate add.
func (c *CartMetrics) IncDuplicate(kind string) {
	if c == nil || c.duplicates == nil {
		return
	}
	c.duplicates.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCheckout counts a checkout attempt by outcome (ok, empty, failed).
func (c *CartMetrics) IncCheckout(kind, outcome string) {
	if c == nil || c.checkouts == nil {
		return
	}
	c.checkouts.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

// ObserveCheckoutDuration records how long the checkout handoff took.
func (c *CartMetrics) ObserveCheckoutDuration(kind string, duration time.Duration) {
	if c == nil || c.checkoutMS == nil {
		return
	}
	c.checkoutMS.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
