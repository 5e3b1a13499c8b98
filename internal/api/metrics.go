package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timetrack_events_ingested_total",
		Help: "Number of events ingested, by source type.",
	}, []string{"source_type"})

	sessionsAggregated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetrack_sessions_aggregated_total",
		Help: "Number of sessions produced by aggregation runs.",
	})

	ruleMatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetrack_rule_matches_total",
		Help: "Number of assignments produced by the rule engine.",
	})
)
