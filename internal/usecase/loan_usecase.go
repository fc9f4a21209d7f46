package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
)

// LoanUseCase implements the loan lifecycle: request, approval and repayment.
// A loan request earmarks reserve funds immediately; the account balance is
// only touched on repayment.
type LoanUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	reserveRepo ReserveRepository
	txnRepo     TransactionRepository
	userRepo    UserRepository
	idGen       IDGenerator
	notifier    Notifier
	retrier     Retrier
	logger      zerolog.Logger
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	reserveRepo ReserveRepository,
	txnRepo TransactionRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	notifier Notifier,
	retrier Retrier,
	logger zerolog.Logger,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		reserveRepo: reserveRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		idGen:       idGen,
		notifier:    notifier,
		retrier:     retrier,
		logger:      logger,
	}
}

// RequestLoanInput represents input for a loan request.
type RequestLoanInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// RequestLoan debits the reserve and appends an unapproved loan record. An
// account may hold at most MaxApprovedLoans approved loans at a time.
func (uc *LoanUseCase) RequestLoan(ctx context.Context, input RequestLoanInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}

		count, err := uc.txnRepo.CountApprovedLoans(ctx, tx, account.ID)
		if err != nil {
			return err
		}

		if count >= MaxApprovedLoans {
			return domain.ErrLoanLimitExceeded
		}

		reserve, err := uc.reserveRepo.GetForUpdate(ctx, tx)
		if err != nil {
			return err
		}

		if err := reserve.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := uc.reserveRepo.UpdateBalance(ctx, tx, reserve.ID, reserve.ApplyDebit(input.Amount), now); err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:           uc.idGen.Generate(),
			AccountID:    account.ID,
			Amount:       input.Amount,
			Type:         domain.TransactionLoan,
			BalanceAfter: account.Balance,
			LoanApproved: false,
			CreatedAt:    now,
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyBorrower(txn.AccountID, "Loan Request",
		fmt.Sprintf("Loan request for %s$ submitted successfully", input.Amount.StringFixed(2)))

	return txn, nil
}

// ApproveLoan marks a requested loan as approved. Approving an already
// approved loan is a no-op.
func (uc *LoanUseCase) ApproveLoan(ctx context.Context, loanID string) (*domain.Transaction, error) {
	var loan *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		loan, err = uc.txnRepo.GetByIDForUpdate(ctx, tx, loanID)
		if err != nil {
			return err
		}

		if loan.Type == domain.TransactionLoanPaid {
			return domain.ErrLoanAlreadyPaid
		}

		if loan.Type != domain.TransactionLoan {
			return domain.ErrNotALoan
		}

		if loan.LoanApproved {
			return tx.Commit(ctx)
		}

		if err := uc.txnRepo.SetLoanApproved(ctx, tx, loan.ID); err != nil {
			return err
		}

		loan.LoanApproved = true

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyBorrower(loan.AccountID, "Loan Approved",
		fmt.Sprintf("Your loan of %s$ has been approved", loan.Amount.StringFixed(2)))

	return loan, nil
}

// RepayLoanInput represents input for a loan repayment.
type RepayLoanInput struct {
	LoanID string
	// AccountID, when set, restricts repayment to loans held by that account.
	AccountID string
}

// RepayLoan debits the borrower's account by the loan amount and marks the
// loan as paid. Repayment requires an approved loan and a balance strictly
// greater than the loan amount.
func (uc *LoanUseCase) RepayLoan(ctx context.Context, input RepayLoanInput) (*domain.Transaction, error) {
	var loan *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		loan, err = uc.txnRepo.GetByIDForUpdate(ctx, tx, input.LoanID)
		if err != nil {
			return err
		}

		// A loan held by someone else is indistinguishable from a missing one.
		if input.AccountID != "" && loan.AccountID != input.AccountID {
			return domain.ErrTransactionNotFound
		}

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, loan.AccountID)
		if err != nil {
			return err
		}

		if err := loan.ValidateRepayment(account); err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.ApplyDebit(loan.Amount)

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.txnRepo.MarkLoanPaid(ctx, tx, loan.ID, newBalance); err != nil {
			return err
		}

		loan.Type = domain.TransactionLoanPaid
		loan.BalanceAfter = newBalance

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyBorrower(loan.AccountID, "Loan Repaid",
		fmt.Sprintf("Your loan of %s$ has been repaid", loan.Amount.StringFixed(2)))

	return loan, nil
}

// ListLoansInput represents input for listing loans.
type ListLoansInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListLoans lists loan transactions for an account.
func (uc *LoanUseCase) ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListLoansByAccount(ctx, input.AccountID, limit, offset)
}

func (uc *LoanUseCase) notifyBorrower(accountID, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
	defer cancel()

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("notification skipped: account lookup failed")
		return
	}

	user, err := uc.userRepo.GetByID(ctx, account.UserID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", account.UserID).Msg("notification skipped: user lookup failed")
		return
	}

	if err := uc.notifier.Send(ctx, user.Email, subject, body); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("recipient", user.Email).
			Str("subject", subject).
			Msg("notification failed")
	}
}
