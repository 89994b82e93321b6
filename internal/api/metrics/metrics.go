// Package metrics defines and registers all custom Prometheus metrics for the
// developer network API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devconnector"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsDeletedTotal counts completed account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted with their profile and posts.",
	},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileUpsertsTotal counts profile saves.
// Label:
//   - mode: "created" or "updated"
var ProfileUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_upserts_total",
		Help:      "Total number of profile saves, by mode.",
	},
	[]string{"mode"},
)

// SubdocMutationsTotal counts experience and education changes.
// Labels:
//   - kind: "experience" or "education"
//   - op: "add" or "remove"
var SubdocMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subdoc_mutations_total",
		Help:      "Total number of experience and education additions and removals.",
	},
	[]string{"kind", "op"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostActionsTotal counts post interactions.
// Label:
//   - action: "create", "delete", "like", "unlike", "comment" or "uncomment"
var PostActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_actions_total",
		Help:      "Total number of post interactions, by action.",
	},
	[]string{"action"},
)

// ── GitHub metrics ────────────────────────────────────────────────────────────

// GithubRequestDuration measures calls to the GitHub API.
// Label:
//   - outcome: "ok", "not_found" or "error"
var GithubRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "github_request_duration_seconds",
		Help:      "Duration of GitHub repository lookups.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// RepoCacheTotal counts repository cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var RepoCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repo_cache_total",
		Help:      "Total number of GitHub repository cache lookups, by result.",
	},
	[]string{"result"},
)

// WarmerQueueDepth tracks usernames waiting in each warmer worker channel.
// Label:
//   - worker_id: numeric worker index
var WarmerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "warmer_queue_depth",
		Help:      "Current number of usernames pending in each cache warmer worker.",
	},
	[]string{"worker_id"},
)

// WarmerDroppedTotal counts usernames dropped because a worker queue was full.
var WarmerDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "warmer_dropped_total",
		Help:      "Total number of cache warm requests dropped on a full queue.",
	},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - route: the matched route path
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
	[]string{"route"},
)
