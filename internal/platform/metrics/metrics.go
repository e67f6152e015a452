package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CompaniesRegistered prometheus.Counter
	CredentialsIssued   prometheus.Counter
	ContractsCreated    prometheus.Counter
	ContractsExecuted   prometheus.Counter
	ContractsTerminated prometheus.Counter
	ContractsCompleted  prometheus.Counter
	DisputesRaised      prometheus.Counter
	DisputesResolved    prometheus.Counter
	ReviewsSubmitted    prometheus.Counter

	// Value movement totals in native units.
	SalaryDeposited prometheus.Counter
	SalaryReleased  prometheus.Counter
	DisputePayouts  prometheus.Counter
	TransferErrors  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CompaniesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_companies_registered_total",
			Help: "Total number of companies registered",
		}),
		CredentialsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_credentials_issued_total",
			Help: "Total number of employee credentials minted",
		}),
		ContractsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_contracts_created_total",
			Help: "Total number of contracts created",
		}),
		ContractsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_contracts_executed_total",
			Help: "Total number of contracts executed by employees",
		}),
		ContractsTerminated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_contracts_terminated_total",
			Help: "Total number of contracts terminated",
		}),
		ContractsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_contracts_completed_total",
			Help: "Total number of contracts completed after their term",
		}),
		DisputesRaised: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_disputes_raised_total",
			Help: "Total number of disputes raised",
		}),
		DisputesResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_disputes_resolved_total",
			Help: "Total number of disputes resolved by arbitrators",
		}),
		ReviewsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_reviews_submitted_total",
			Help: "Total number of post-contract reviews submitted",
		}),
		SalaryDeposited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_salary_deposited_units_total",
			Help: "Total native value deposited into contract escrow",
		}),
		SalaryReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_salary_released_units_total",
			Help: "Total native value released to employees",
		}),
		DisputePayouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_dispute_payout_units_total",
			Help: "Total native value paid out via dispute resolution",
		}),
		TransferErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tenure_transfer_errors_total",
			Help: "Total number of failed value transfers",
		}),
	}
}
