// Package metrics defines the Prometheus instrumentation for the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsGenerated counts transactions generated from recurring
	// schedules.
	TransactionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwall_recurring_transactions_generated_total",
		Help: "Number of transactions generated from recurring schedules.",
	})

	// GenerationFailures counts schedule occurrences whose processing
	// failed and will be retried on the next pass.
	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwall_recurring_generation_failures_total",
		Help: "Number of failed recurring generation attempts.",
	})

	// BudgetsExceeded counts deltas that pushed a budget over its limit.
	BudgetsExceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwall_ledger_budgets_exceeded_total",
		Help: "Number of ledger deltas that pushed a budget over its limit.",
	})

	// BudgetsRolledOver counts expired budgets replaced by a fresh period
	// instance.
	BudgetsRolledOver = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwall_ledger_budgets_rolled_over_total",
		Help: "Number of expired budgets rolled over into a new period.",
	})
)
