// Package metrics exposes prometheus instruments for the HTTP surface and the
// invoicing domain.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds per-request instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// DomainMetrics counts invoicing operations.
type DomainMetrics struct {
	invoicesCreated  prometheus.Counter
	invoicesDeleted  prometheus.Counter
	sequenceConflict prometheus.Counter
	mailDeliveries   *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoices_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "invoices_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	prometheus.MustRegister(m.requests, m.duration)
	return m
}

// NewDomainMetrics registers the domain instruments on the default registry.
func NewDomainMetrics() *DomainMetrics {
	m := &DomainMetrics{
		invoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoices_created_total",
			Help: "Invoices created successfully.",
		}),
		invoicesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoices_deleted_total",
			Help: "Invoices deleted.",
		}),
		sequenceConflict: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoices_sequence_update_failures_total",
			Help: "Settings counter advances that failed after invoice insert.",
		}),
		mailDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoices_mail_deliveries_total",
			Help: "Invoice emails sent by outcome.",
		}, []string{"outcome"}),
	}
	prometheus.MustRegister(m.invoicesCreated, m.invoicesDeleted, m.sequenceConflict, m.mailDeliveries)
	return m
}

// RecordInvoiceCreated increments the created counter.
func (m *DomainMetrics) RecordInvoiceCreated() {
	if m == nil {
		return
	}
	m.invoicesCreated.Inc()
}

// RecordInvoiceDeleted increments the deleted counter.
func (m *DomainMetrics) RecordInvoiceDeleted() {
	if m == nil {
		return
	}
	m.invoicesDeleted.Inc()
}

// RecordSequenceUpdateFailure counts counter advances lost after an invoice
// insert already succeeded.
func (m *DomainMetrics) RecordSequenceUpdateFailure() {
	if m == nil {
		return
	}
	m.sequenceConflict.Inc()
}

// RecordMailDelivery counts a mail transport attempt.
func (m *DomainMetrics) RecordMailDelivery(outcome string) {
	if m == nil {
		return
	}
	m.mailDeliveries.WithLabelValues(strings.TrimSpace(outcome)).Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
