package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
)

// ReportUseCase reads the movement history of an account. Records are
// immutable once appended (except the documented loan transitions), so
// repeated range queries return stable results.
type ReportUseCase struct {
	txnRepo     TransactionRepository
	accountRepo AccountRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(txnRepo TransactionRepository, accountRepo AccountRepository) *ReportUseCase {
	return &ReportUseCase{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// ReportInput represents input for a transaction report.
type ReportInput struct {
	AccountID string
	Start     *time.Time
	End       *time.Time
	Limit     int
	Offset    int
}

// Report is the movement history of an account. Balance is the running sum of
// amounts when a date range is given, otherwise the current account balance.
type Report struct {
	Transactions []*domain.Transaction
	Balance      decimal.Decimal
}

// GetReport lists transactions for an account, optionally filtered by date
// range.
func (uc *ReportUseCase) GetReport(ctx context.Context, input ReportInput) (*Report, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	txns, err := uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Start, input.End, limit, offset)
	if err != nil {
		return nil, err
	}

	var balance decimal.Decimal
	if input.Start != nil && input.End != nil {
		balance, err = uc.txnRepo.SumAmountByAccount(ctx, input.AccountID, input.Start, input.End)
		if err != nil {
			return nil, err
		}
	} else {
		account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
		if err != nil {
			return nil, err
		}
		balance = account.Balance
	}

	return &Report{
		Transactions: txns,
		Balance:      balance,
	}, nil
}
