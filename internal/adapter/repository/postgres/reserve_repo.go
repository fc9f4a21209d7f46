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

const reserveColumns = `id, name, balance, updated_at`

// ReserveRepository implements usecase.ReserveRepository. The reserve is a
// single seeded row; callers address it by the ID read from that row, never by
// a hard-coded value.
type ReserveRepository struct {
	pool *pgxpool.Pool
}

// NewReserveRepository creates a new ReserveRepository.
func NewReserveRepository(pool *pgxpool.Pool) *ReserveRepository {
	return &ReserveRepository{pool: pool}
}

// Get retrieves the reserve row.
func (r *ReserveRepository) Get(ctx context.Context) (*domain.BankReserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM bank_reserve LIMIT 1`

	return scanReserve(r.pool.QueryRow(ctx, query))
}

// GetForUpdate retrieves the reserve row with a FOR UPDATE lock. Reserve rows
// are always locked after account rows.
func (r *ReserveRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.BankReserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM bank_reserve LIMIT 1 FOR UPDATE`

	return scanReserve(tx.(*Tx).PgxTx().QueryRow(ctx, query))
}

// UpdateBalance updates the reserve balance.
func (r *ReserveRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE bank_reserve SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return err
}

func scanReserve(row pgx.Row) (*domain.BankReserve, error) {
	var (
		reserve domain.BankReserve
		balance pgtype.Numeric
	)

	err := row.Scan(
		&reserve.ID,
		&reserve.Name,
		&balance,
		&reserve.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReserveNotFound
	}
	if err != nil {
		return nil, err
	}

	reserve.Balance = numericToDecimal(balance)

	return &reserve, nil
}
