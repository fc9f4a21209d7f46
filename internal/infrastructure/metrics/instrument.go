package metrics

import (
	"context"
	"errors"

	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
)

// movementService is the slice of MovementUseCase the decorator covers.
type movementService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
}

// InstrumentedMovements wraps a movement service with Prometheus counters.
type InstrumentedMovements struct {
	next    movementService
	metrics *Metrics
}

// NewInstrumentedMovements creates a new InstrumentedMovements.
func NewInstrumentedMovements(next movementService, m *Metrics) *InstrumentedMovements {
	return &InstrumentedMovements{next: next, metrics: m}
}

// Deposit delegates to the wrapped service and records the outcome.
func (s *InstrumentedMovements) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
	txn, err := s.next.Deposit(ctx, input)
	if err != nil {
		s.metrics.MovementErrors.WithLabelValues(movementErrorReason(err)).Inc()
		return nil, err
	}

	s.metrics.DepositsTotal.Inc()
	s.metrics.MovementAmount.WithLabelValues(string(domain.TransactionDeposit)).Observe(txn.Amount.InexactFloat64())
	return txn, nil
}

// Withdraw delegates to the wrapped service and records the outcome.
func (s *InstrumentedMovements) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
	txn, err := s.next.Withdraw(ctx, input)
	if err != nil {
		s.metrics.MovementErrors.WithLabelValues(movementErrorReason(err)).Inc()
		return nil, err
	}

	s.metrics.WithdrawalsTotal.Inc()
	s.metrics.MovementAmount.WithLabelValues(string(domain.TransactionWithdrawal)).Observe(txn.Amount.InexactFloat64())
	return txn, nil
}

// Transfer delegates to the wrapped service and records the outcome.
func (s *InstrumentedMovements) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
	txn, err := s.next.Transfer(ctx, input)
	if err != nil {
		s.metrics.MovementErrors.WithLabelValues(movementErrorReason(err)).Inc()
		return nil, err
	}

	s.metrics.TransfersTotal.Inc()
	s.metrics.MovementAmount.WithLabelValues(string(domain.TransactionTransfer)).Observe(txn.Amount.InexactFloat64())
	return txn, nil
}

func movementErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrReserveExhausted):
		return "reserve_exhausted"
	case errors.Is(err, domain.ErrRecipientNotFound):
		return "recipient_not_found"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	default:
		return "other"
	}
}

// loanService is the slice of LoanUseCase the decorator covers.
type loanService interface {
	RequestLoan(ctx context.Context, input usecase.RequestLoanInput) (*domain.Transaction, error)
	ApproveLoan(ctx context.Context, loanID string) (*domain.Transaction, error)
	RepayLoan(ctx context.Context, input usecase.RepayLoanInput) (*domain.Transaction, error)
	ListLoans(ctx context.Context, input usecase.ListLoansInput) ([]*domain.Transaction, error)
}

// InstrumentedLoans wraps a loan service with Prometheus counters.
type InstrumentedLoans struct {
	next    loanService
	metrics *Metrics
}

// NewInstrumentedLoans creates a new InstrumentedLoans.
func NewInstrumentedLoans(next loanService, m *Metrics) *InstrumentedLoans {
	return &InstrumentedLoans{next: next, metrics: m}
}

// RequestLoan delegates to the wrapped service and records the outcome.
func (s *InstrumentedLoans) RequestLoan(ctx context.Context, input usecase.RequestLoanInput) (*domain.Transaction, error) {
	txn, err := s.next.RequestLoan(ctx, input)
	if err == nil {
		s.metrics.LoansRequested.Inc()
	}
	return txn, err
}

// ApproveLoan delegates to the wrapped service and records the outcome.
func (s *InstrumentedLoans) ApproveLoan(ctx context.Context, loanID string) (*domain.Transaction, error) {
	txn, err := s.next.ApproveLoan(ctx, loanID)
	if err == nil {
		s.metrics.LoansApproved.Inc()
	}
	return txn, err
}

// RepayLoan delegates to the wrapped service and records the outcome.
func (s *InstrumentedLoans) RepayLoan(ctx context.Context, input usecase.RepayLoanInput) (*domain.Transaction, error) {
	txn, err := s.next.RepayLoan(ctx, input)
	if err == nil {
		s.metrics.LoansRepaid.Inc()
	}
	return txn, err
}

// ListLoans delegates to the wrapped service.
func (s *InstrumentedLoans) ListLoans(ctx context.Context, input usecase.ListLoansInput) ([]*domain.Transaction, error) {
	return s.next.ListLoans(ctx, input)
}

// userService is the slice of UserUseCase the decorator covers.
type userService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Account, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
}

// InstrumentedUsers wraps a user service with Prometheus counters.
type InstrumentedUsers struct {
	next    userService
	metrics *Metrics
}

// NewInstrumentedUsers creates a new InstrumentedUsers.
func NewInstrumentedUsers(next userService, m *Metrics) *InstrumentedUsers {
	return &InstrumentedUsers{next: next, metrics: m}
}

// Register delegates to the wrapped service and records the outcome.
func (s *InstrumentedUsers) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Account, error) {
	user, account, err := s.next.Register(ctx, input)
	if err == nil {
		s.metrics.UsersRegistered.Inc()
	}
	return user, account, err
}

// Authenticate delegates to the wrapped service and records the outcome.
func (s *InstrumentedUsers) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	user, err := s.next.Authenticate(ctx, input)
	if err != nil {
		s.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, err
	}

	s.metrics.AuthAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// ChangePassword delegates to the wrapped service.
func (s *InstrumentedUsers) ChangePassword(ctx context.Context, userID, newPassword string) error {
	return s.next.ChangePassword(ctx, userID, newPassword)
}

// bankService is the slice of BankUseCase the decorator covers.
type bankService interface {
	GetReserve(ctx context.Context) (*usecase.ReserveSummary, error)
}

// InstrumentedBank wraps a bank service and tracks the reserve balance gauge.
type InstrumentedBank struct {
	next    bankService
	metrics *Metrics
}

// NewInstrumentedBank creates a new InstrumentedBank.
func NewInstrumentedBank(next bankService, m *Metrics) *InstrumentedBank {
	return &InstrumentedBank{next: next, metrics: m}
}

// GetReserve delegates to the wrapped service and updates the reserve gauge.
func (s *InstrumentedBank) GetReserve(ctx context.Context) (*usecase.ReserveSummary, error) {
	summary, err := s.next.GetReserve(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.ReserveBalance.Set(summary.Balance.InexactFloat64())
	return summary, nil
}
