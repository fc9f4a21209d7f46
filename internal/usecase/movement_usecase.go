package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
)

// MovementUseCase implements the money movements that touch account and
// reserve balances: deposit, withdrawal and transfer. Every operation runs as
// a single database transaction: read balances, validate, write balances,
// append the movement record. Rows are locked in a fixed global order
// (accounts sorted by ID, reserve last) so concurrent movements cannot
// deadlock.
type MovementUseCase struct {
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

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	reserveRepo ReserveRepository,
	txnRepo TransactionRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	notifier Notifier,
	retrier Retrier,
	logger zerolog.Logger,
) *MovementUseCase {
	return &MovementUseCase{
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

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// Deposit credits the account and the reserve by the amount and appends a
// deposit record.
func (uc *MovementUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
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

		reserve, err := uc.reserveRepo.GetForUpdate(ctx, tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.ApplyCredit(input.Amount)

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.reserveRepo.UpdateBalance(ctx, tx, reserve.ID, reserve.ApplyCredit(input.Amount), now); err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:           uc.idGen.Generate(),
			AccountID:    account.ID,
			Amount:       input.Amount,
			Type:         domain.TransactionDeposit,
			BalanceAfter: newBalance,
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

	uc.notifyAccountOwner(input.AccountID, "Deposit",
		fmt.Sprintf("%s$ was deposited to your account successfully", input.Amount.StringFixed(2)))

	return txn, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// Withdraw debits the account and the reserve by the amount. Both balance
// checks happen before either store is touched; a rejected withdrawal leaves
// no trace.
func (uc *MovementUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
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

		reserve, err := uc.reserveRepo.GetForUpdate(ctx, tx)
		if err != nil {
			return err
		}

		if err := account.ValidateDebit(input.Amount); err != nil {
			return err
		}

		if err := reserve.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.ApplyDebit(input.Amount)

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.reserveRepo.UpdateBalance(ctx, tx, reserve.ID, reserve.ApplyDebit(input.Amount), now); err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:           uc.idGen.Generate(),
			AccountID:    account.ID,
			Amount:       input.Amount,
			Type:         domain.TransactionWithdrawal,
			BalanceAfter: newBalance,
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

	uc.notifyAccountOwner(input.AccountID, "Withdrawal",
		fmt.Sprintf("Successfully withdrawn %s$ from your account", input.Amount.StringFixed(2)))

	return txn, nil
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	AccountID          string
	RecipientAccountNo string
	Amount             decimal.Decimal
}

// Transfer moves the amount from the actor's account to the account resolved
// by the recipient's account number. The reserve is untouched; the sum of
// both balances is invariant.
func (uc *MovementUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		txn         *domain.Transaction
		recipientID string
	)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		recipient, err := uc.accountRepo.GetByAccountNo(ctx, tx, input.RecipientAccountNo)
		if err != nil {
			return err
		}

		if recipient.ID == input.AccountID {
			return domain.ErrSameAccount
		}

		// Lock both accounts in sorted order (deadlock prevention).
		ids := []string{input.AccountID, recipient.ID}
		sort.Strings(ids)

		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		if len(accounts) != len(ids) {
			return domain.ErrAccountNotFound
		}

		var actor *domain.Account
		for _, a := range accounts {
			switch a.ID {
			case input.AccountID:
				actor = a
			case recipient.ID:
				recipient = a
			}
		}

		if actor == nil {
			return domain.ErrAccountNotFound
		}

		if err := actor.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		actorBalance := actor.ApplyDebit(input.Amount)
		recipientBalance := recipient.ApplyCredit(input.Amount)

		if err := uc.accountRepo.UpdateBalance(ctx, tx, actor.ID, actorBalance, now); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, recipient.ID, recipientBalance, now); err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:                 uc.idGen.Generate(),
			AccountID:          actor.ID,
			RecipientAccountID: &recipient.ID,
			Amount:             input.Amount,
			Type:               domain.TransactionTransfer,
			BalanceAfter:       actorBalance,
			CreatedAt:          now,
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		recipientID = recipient.ID

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	amount := input.Amount.StringFixed(2)
	uc.notifyAccountOwner(input.AccountID, "Transfer",
		fmt.Sprintf("Successfully transferred %s$ from your account", amount))
	uc.notifyAccountOwner(recipientID, "Transfer",
		fmt.Sprintf("You received %s$ on your account", amount))

	return txn, nil
}

// notifyAccountOwner sends a best-effort notification to the owner of the
// account. It runs after commit; failures are logged and never surfaced.
func (uc *MovementUseCase) notifyAccountOwner(accountID, subject, body string) {
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
