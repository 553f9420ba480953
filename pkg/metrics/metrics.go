// Package metrics exposes the Prometheus collectors used across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request latency by method, path, and status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DatabaseConnectionsGauge tracks database pool state (open, idle, in_use)
	DatabaseConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "database_connections",
			Help: "Database connection pool state",
		},
		[]string{"state"},
	)

	// InvestmentsSubmittedTotal counts submitted investments by plan
	InvestmentsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investments_submitted_total",
			Help: "Total number of submitted investments",
		},
		[]string{"plan"},
	)

	// InvestmentDecisionsTotal counts admin decisions by outcome (approved, rejected)
	InvestmentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investment_decisions_total",
			Help: "Total number of admin investment decisions",
		},
		[]string{"outcome"},
	)

	// InvestmentsSettledTotal counts investments settled by the maturity worker
	InvestmentsSettledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investments_settled_total",
			Help: "Total number of investments settled at maturity",
		},
	)

	// WithdrawalDecisionsTotal counts admin withdrawal decisions by outcome
	WithdrawalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "withdrawal_decisions_total",
			Help: "Total number of admin withdrawal decisions",
		},
		[]string{"outcome"},
	)

	// VerificationEmailsTotal counts verification emails by result (sent, failed)
	VerificationEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_emails_total",
			Help: "Total number of verification emails",
		},
		[]string{"result"},
	)
)
