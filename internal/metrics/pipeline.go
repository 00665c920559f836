package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AutomodRulesFired counts automod rule matches by action
	AutomodRulesFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automod_rules_fired_total",
			Help: "Total automod rules fired, by action",
		},
		[]string{"action"},
	)

	// MentionsCreated counts mention rows written by the pipeline
	MentionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentions_created_total",
			Help: "Total mention records created",
		},
	)

	// ModLogAppendFailures counts failed audit appends. Any non-zero
	// value means the audit guarantee was broken and needs attention.
	ModLogAppendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "modlog_append_failures_total",
			Help: "Total mod log append failures",
		},
	)

	// SubmissionsTotal counts content submissions by kind and outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_submissions_total",
			Help: "Total content submissions, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
