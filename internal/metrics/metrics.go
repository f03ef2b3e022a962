package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Provisioning metrics
	ProvisionAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_provision_attempts_total",
			Help: "Total number of provisioning attempts by outcome",
		},
		[]string{"outcome"},
	)

	OrphanedIdentitiesCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_orphaned_identities_cleaned_total",
			Help: "Total number of orphaned identities deleted by reconciliation",
		},
	)

	// Worker metrics
	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_subscriptions_expired_total",
			Help: "Total number of subscriptions moved to expired by the worker",
		},
	)

	RenewalRemindersSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_renewal_reminders_sent_total",
			Help: "Total number of renewal reminder emails sent",
		},
	)
)
