package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	DepositsTotal    prometheus.Counter
	WithdrawalsTotal prometheus.Counter
	TransfersTotal   prometheus.Counter
	MovementAmount   *prometheus.HistogramVec
	MovementErrors   *prometheus.CounterVec

	// Loan metrics
	LoansRequested prometheus.Counter
	LoansApproved  prometheus.Counter
	LoansRepaid    prometheus.Counter

	// User metrics
	UsersRegistered prometheus.Counter
	AuthAttempts    *prometheus.CounterVec

	// Reserve metrics
	ReserveBalance prometheus.Gauge

	// Notification metrics
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Movement metrics
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_deposits_total",
			Help: "Total number of deposits",
		}),
		WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_withdrawals_total",
			Help: "Total number of withdrawals",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_total",
			Help: "Total number of transfers",
		}),
		MovementAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_movement_amount",
				Help:    "Movement amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		MovementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_movement_errors_total",
				Help: "Total number of rejected movements by reason",
			},
			[]string{"reason"},
		),

		// Loan metrics
		LoansRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_loans_requested_total",
			Help: "Total number of loan requests",
		}),
		LoansApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_loans_approved_total",
			Help: "Total number of loan approvals",
		}),
		LoansRepaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_loans_repaid_total",
			Help: "Total number of loan repayments",
		}),

		// User metrics
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_users_registered_total",
			Help: "Total number of registered users",
		}),
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Reserve metrics
		ReserveBalance: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gobank_reserve_balance",
			Help: "Current bank reserve balance",
		}),

		// Notification metrics
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_notifications_sent_total",
			Help: "Total number of notifications sent",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_notifications_failed_total",
			Help: "Total number of failed notifications",
		}),
	}
}
