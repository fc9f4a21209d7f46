package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
)

const accountColumns = `id, user_id, account_no, balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account inside the given transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, account_no, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		account.ID,
		account.UserID,
		account.AccountNo,
		decimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrAccountNoTaken
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id), domain.ErrAccountNotFound)
}

// GetByUserID retrieves the account owned by a user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, userID), domain.ErrAccountNotFound)
}

// GetByAccountNo resolves an account by its public account number inside the
// given transaction.
func (r *AccountRepository) GetByAccountNo(ctx context.Context, tx usecase.Transaction, accountNo string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_no = $1`

	return scanAccount(tx.(*Tx).PgxTx().QueryRow(ctx, query, accountNo), domain.ErrRecipientNotFound)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(tx.(*Tx).PgxTx().QueryRow(ctx, query, id), domain.ErrAccountNotFound)
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks. The
// ORDER BY matches the caller's sorted lock order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := tx.(*Tx).PgxTx().Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return err
}

func scanAccount(row pgx.Row, notFound error) (*domain.Account, error) {
	account, err := scanAccountRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func scanAccountRow(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNo,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}
