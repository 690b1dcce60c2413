package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Availability rejection reasons used as metric labels.
const (
	RejectionBlocked     = "blocked_range"
	RejectionMinDuration = "min_duration"
)

// PricingMetrics records quote computation and availability outcomes.
type PricingMetrics struct {
	quoteDuration *prometheus.HistogramVec
	quoteItems    prometheus.Histogram
	rejections    *prometheus.CounterVec
	suggestions   prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of cart quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	quoteItems := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_cart_items",
		Help:    "Number of items per quoted cart.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_rejections_total",
		Help: "Rental windows rejected by the availability checks.",
	}, []string{"reason"})
	suggestions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discount_suggestions_total",
		Help: "Discount suggestions surfaced on quotes.",
	})
	reg.MustRegister(quoteDuration, quoteItems, rejections, suggestions)
	return &PricingMetrics{
		quoteDuration: quoteDuration,
		quoteItems:    quoteItems,
		rejections:    rejections,
		suggestions:   suggestions,
	}
}

// ObserveQuote records the duration and size of one quote computation.
func (m *PricingMetrics) ObserveQuote(outcome string, items int, duration time.Duration) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	m.quoteDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
	m.quoteItems.Observe(float64(items))
}

// IncAvailabilityRejection increments the rejection counter for the reason.
func (m *PricingMetrics) IncAvailabilityRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// AddSuggestions counts suggestions surfaced to buyers.
func (m *PricingMetrics) AddSuggestions(count int) {
	if m == nil || m.suggestions == nil {
		return
	}
	m.suggestions.Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
