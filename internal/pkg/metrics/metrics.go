// Package metrics defines and registers the custom Prometheus metrics of the
// feed API. It is the single source of truth for metric names, labels, and
// help strings.
//
// HTTP request metrics come from the echoprometheus middleware; the ones
// below count domain outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bucketchat"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "ok", "conflict", "rejected" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "not_found", "bad_password", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// MessagesPostedTotal counts messages accepted into the feed.
var MessagesPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of messages persisted.",
	},
)

// MessagesRejectedTotal counts posts refused before storage.
// Label:
//   - reason: "missing" or "offensive"
var MessagesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_rejected_total",
		Help:      "Total number of posted messages rejected by validation or the content filter.",
	},
	[]string{"reason"},
)

// StoredRecordsDroppedTotal counts stored blobs skipped while reading the feed.
// Label:
//   - reason: "corrupt" or "vanished"
var StoredRecordsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stored_records_dropped_total",
		Help:      "Total number of message records skipped during listing.",
	},
	[]string{"reason"},
)

// FeedListDuration measures a full feed listing: key listing plus fetches.
var FeedListDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_list_duration_seconds",
		Help:      "Duration of listing and fetching the message feed.",
		Buckets:   prometheus.DefBuckets,
	},
)
