package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for our service
type Metrics struct {
	// Request counters
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Endpoint metrics
	EndpointCalls    *prometheus.CounterVec
	EndpointDuration *prometheus.HistogramVec

	// Backend API metrics
	BackendCalls    *prometheus.CounterVec
	BackendErrors   *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// Business logic metrics
	SessionOperations *prometheus.CounterVec
	AssistantReplies  *prometheus.CounterVec
	CampaignsCreated  prometheus.Counter
	EmailsSent        *prometheus.CounterVec

	// Health check metrics
	HealthCheckStatus *prometheus.GaugeVec
}

// NewPrometheusMetrics creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	metrics := &Metrics{
		// HTTP request metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "referralhub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "referralhub_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
			[]string{"method", "endpoint"},
		),

		EndpointCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_endpoint_calls_total",
				Help: "Total number of endpoint calls",
			},
			[]string{"method", "success"},
		),

		EndpointDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "referralhub_endpoint_duration_seconds",
				Help:    "Endpoint duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		BackendCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_backend_calls_total",
				Help: "Total number of calls to the REST backend",
			},
			[]string{"operation"},
		),

		BackendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_backend_errors_total",
				Help: "Total number of failed calls to the REST backend",
			},
			[]string{"operation", "error_type"},
		),

		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "referralhub_backend_call_duration_seconds",
				Help:    "REST backend call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		SessionOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_session_operations_total",
				Help: "Total number of session store operations",
			},
			[]string{"operation", "result"},
		),

		AssistantReplies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_assistant_replies_total",
				Help: "Total number of assistant replies by matched rule",
			},
			[]string{"rule"},
		),

		CampaignsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "referralhub_campaigns_created_total",
				Help: "Total number of campaigns created through the wizard",
			},
		),

		EmailsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referralhub_emails_sent_total",
				Help: "Total number of emails requested from the backend",
			},
			[]string{"kind"},
		),

		// Health check metrics
		HealthCheckStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "referralhub_health_check_status",
				Help: "Health check status (1 = healthy, 0 = unhealthy)",
			},
			[]string{"check_type"},
		),
	}

	return metrics
}

// RecordHTTPRequest records an HTTP request with its duration and status
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// IncRequestsInFlight increments the in-flight requests counter
func (m *Metrics) IncRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// DecRequestsInFlight decrements the in-flight requests counter
func (m *Metrics) DecRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordEndpoint records one endpoint call
func (m *Metrics) RecordEndpoint(method string, success bool, duration float64) {
	m.EndpointCalls.WithLabelValues(method, boolLabel(success)).Inc()
	m.EndpointDuration.WithLabelValues(method).Observe(duration)
}

// RecordBackendCall records a backend call and its duration
func (m *Metrics) RecordBackendCall(operation string, duration float64) {
	m.BackendCalls.WithLabelValues(operation).Inc()
	m.BackendDuration.WithLabelValues(operation).Observe(duration)
}

// RecordBackendError records a failed backend call
func (m *Metrics) RecordBackendError(operation, errorType string) {
	m.BackendErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordSessionOperation records a session store load, save or delete
func (m *Metrics) RecordSessionOperation(operation, result string) {
	m.SessionOperations.WithLabelValues(operation, result).Inc()
}

// RecordAssistantReply records which assistant rule answered
func (m *Metrics) RecordAssistantReply(rule string) {
	m.AssistantReplies.WithLabelValues(rule).Inc()
}

// RecordCampaignCreated records a campaign launched from the wizard
func (m *Metrics) RecordCampaignCreated() {
	m.CampaignsCreated.Inc()
}

// RecordEmailSent records an email handed to the backend
func (m *Metrics) RecordEmailSent(kind string) {
	m.EmailsSent.WithLabelValues(kind).Inc()
}

// SetHealthCheckStatus sets the health check status
func (m *Metrics) SetHealthCheckStatus(checkType string, healthy bool) {
	status := 0.0
	if healthy {
		status = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(checkType).Set(status)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
