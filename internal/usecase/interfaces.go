package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
)

// AccountRepository defines data access for customer accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByAccountNo(ctx context.Context, tx Transaction, accountNo string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// ReserveRepository defines data access for the bank reserve singleton.
type ReserveRepository interface {
	Get(ctx context.Context) (*domain.BankReserve, error)
	GetForUpdate(ctx context.Context, tx Transaction) (*domain.BankReserve, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for movement records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]*domain.Transaction, error)
	SumAmountByAccount(ctx context.Context, accountID string, start, end *time.Time) (decimal.Decimal, error)
	ListLoansByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	CountApprovedLoans(ctx context.Context, tx Transaction, accountID string) (int64, error)
	SetLoanApproved(ctx context.Context, tx Transaction, id string) error
	MarkLoanPaid(ctx context.Context, tx Transaction, id string, balanceAfter decimal.Decimal) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string, updatedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNoGenerator generates candidate account numbers.
type AccountNoGenerator interface {
	Generate() string
}

// Notifier sends a best-effort notification to a user. Errors are logged by
// the caller and never affect a completed movement.
type Notifier interface {
	Send(ctx context.Context, recipientEmail, subject, body string) error
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
