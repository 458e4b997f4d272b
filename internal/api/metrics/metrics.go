// Package metrics defines and registers all custom Prometheus metrics for the
// EDIS client portal. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// WebhookEventsTotal counts processed CRM webhook deliveries.
// Labels:
//   - event_type: the CRM event class (e.g. "project.booked")
//   - result: "provisioned", "duplicate", "merged", "ignored", or "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of CRM webhook deliveries, by event type and outcome.",
	},
	[]string{"event_type", "result"},
)

// WebhookSignatureFailuresTotal counts deliveries rejected before processing
// because the HMAC signature did not verify.
var WebhookSignatureFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_signature_failures_total",
		Help:      "Total number of webhook deliveries rejected for an invalid signature.",
	},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "client" or "admin"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// DownloadsGrantedTotal counts successful deliverable download grants.
// Label:
//   - type: deliverable type ("image", "map", "model", "video", "report")
var DownloadsGrantedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_granted_total",
		Help:      "Total number of deliverable download URLs granted, by type.",
	},
	[]string{"type"},
)

// NotificationsTotal counts notification delivery outcomes.
// Labels:
//   - kind: "client_welcome" or "operator_alert"
//   - result: "success" or "failure"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification send attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
