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

const transactionColumns = `id, account_id, recipient_account_id, amount, type, balance_after, loan_approved, created_at`

// TransactionRepository implements usecase.TransactionRepository. Records are
// append-only; the only updates are the loan state transitions.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a movement record inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, recipient_account_id, amount, type, balance_after, loan_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		txn.RecipientAccountID,
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		decimalToNumeric(txn.BalanceAfter),
		txn.LoanApproved,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a record by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	return scanTransaction(tx.(*Tx).PgxTx().QueryRow(ctx, query, id))
}

// ListByAccount lists records for an account, newest last, optionally bounded
// by a date range.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at ASC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, accountID, start, end, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// SumAmountByAccount sums record amounts for an account within a date range.
func (r *TransactionRepository) SumAmountByAccount(ctx context.Context, accountID string, start, end *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID, start, end).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// ListLoansByAccount lists loan and loan_paid records for an account.
func (r *TransactionRepository) ListLoansByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND type IN ($2, $3)
		ORDER BY created_at ASC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, accountID,
		string(domain.TransactionLoan), string(domain.TransactionLoanPaid), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// CountApprovedLoans counts outstanding approved loans for an account inside
// the given transaction.
func (r *TransactionRepository) CountApprovedLoans(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1 AND type = $2 AND loan_approved
	`

	var count int64
	err := tx.(*Tx).PgxTx().QueryRow(ctx, query, accountID, string(domain.TransactionLoan)).Scan(&count)

	return count, err
}

// SetLoanApproved marks a loan record as approved.
func (r *TransactionRepository) SetLoanApproved(ctx context.Context, tx usecase.Transaction, id string) error {
	query := `UPDATE transactions SET loan_approved = TRUE WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id)

	return err
}

// MarkLoanPaid transitions a loan record to loan_paid and snapshots the
// borrower's balance after repayment.
func (r *TransactionRepository) MarkLoanPaid(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	query := `UPDATE transactions SET type = $2, balance_after = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id,
		string(domain.TransactionLoanPaid), decimalToNumeric(balanceAfter))

	return err
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	txn, err := scanTransactionRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func scanTransactionRow(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn          domain.Transaction
		amount       pgtype.Numeric
		balanceAfter pgtype.Numeric
		txnType      string
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.RecipientAccountID,
		&amount,
		&txnType,
		&balanceAfter,
		&txn.LoanApproved,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Amount = numericToDecimal(amount)
	txn.BalanceAfter = numericToDecimal(balanceAfter)
	txn.Type = domain.TransactionType(txnType)

	return &txn, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}
