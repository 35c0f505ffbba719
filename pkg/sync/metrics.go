package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var recordsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "f1stats",
		Subsystem: "sync",
		Name:      "records_total",
		Help:      "Provider records processed, by entity and outcome.",
	},
	[]string{"entity", "outcome"},
)

const (
	outcomeCreated = "created"
	outcomeUpdated = "updated"
	outcomeSkipped = "skipped"
)

func countOutcome(entity, outcome string) {
	recordsProcessed.WithLabelValues(entity, outcome).Inc()
}
