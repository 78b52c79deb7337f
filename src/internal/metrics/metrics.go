package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledgerdesk"

// Posting outcomes.
const (
	OutcomeCommitted         = "committed"
	OutcomeReplayed          = "replayed"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeAccountNotFound   = "account_not_found"
	OutcomeInvalid           = "invalid"
	OutcomeFailed            = "failed"
)

var (
	TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "transactions_total",
		Help:      "Transactions submitted to the ledger by type and outcome.",
	}, []string{"type", "outcome"})

	PostingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "posting_duration_seconds",
		Help:      "Time spent posting a transaction and its balance update.",
		Buckets:   prometheus.DefBuckets,
	})

	BankAccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "bank_accounts_created_total",
		Help:      "Bank accounts registered.",
	})

	// Per-account detail goes to the logs; these stay unlabelled.
	ReconciliationDriftTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "reconciliation",
		Name:      "drift_amount_total",
		Help:      "Sum of absolute balance drift across all accounts in the last run.",
	})

	ReconciliationDriftedAccounts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "reconciliation",
		Name:      "drifted_accounts",
		Help:      "Accounts whose stored balance disagreed with their history in the last run.",
	})

	ReconciliationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciliation",
		Name:      "runs_total",
		Help:      "Reconciliation runs by result.",
	}, []string{"result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "status"})
)
