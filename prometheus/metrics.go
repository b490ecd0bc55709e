package prometheus

import (
	"time"

	"github.com/mikekiroz/maikitto-saas/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog metrics
	CatalogOperationsCounter prometheus.CounterVec

	// Order metrics
	OrderIngestCounter prometheus.Counter
	OrderStatusCounter prometheus.CounterVec

	// Coupon metrics
	CouponOperationsCounter  prometheus.CounterVec
	CouponEvaluationCounter  prometheus.CounterVec
	CouponRedemptionsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(appConfig *config.Config) {
	// Use metric prefix from configuration
	prefix := appConfig.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of category and product operations",
		},
		[]string{"entity", "operation"},
	)

	OrderIngestCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_ingested_total",
			Help: "Total number of orders received from the ordering channel",
		},
	)

	OrderStatusCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_status_changes_total",
			Help: "Total number of order status transitions",
		},
		[]string{"status"},
	)

	CouponOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_coupon_operations_total",
			Help: "Total number of coupon operations",
		},
		[]string{"operation"},
	)

	CouponEvaluationCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_coupon_evaluations_total",
			Help: "Total number of coupon evaluations by outcome",
		},
		[]string{"outcome"},
	)

	CouponRedemptionsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_coupon_redemptions_total",
			Help: "Total number of coupon redemptions recorded at order placement",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordCouponOperation increments the counter for coupon operations
func RecordCouponOperation(operation string) {
	CouponOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCouponEvaluation increments the counter for coupon evaluation outcomes
func RecordCouponEvaluation(outcome string) {
	CouponEvaluationCounter.WithLabelValues(outcome).Inc()
}
