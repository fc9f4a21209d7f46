package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"

	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
	"github.com/iftihoq/gobank/internal/usecase/mocks"
)

type movementFixture struct {
	accountRepo *mocks.MockAccountRepository
	reserveRepo *mocks.MockReserveRepository
	txnRepo     *mocks.MockTransactionRepository
	userRepo    *mocks.MockUserRepository
	notifier    *mocks.RecordingNotifier
	uc          *usecase.MovementUseCase
}

func newMovementFixture(reserveBalance decimal.Decimal) *movementFixture {
	f := &movementFixture{
		accountRepo: mocks.NewMockAccountRepository(),
		reserveRepo: mocks.NewMockReserveRepository(&domain.BankReserve{ID: "reserve-1", Name: "GoBank", Balance: reserveBalance}),
		txnRepo:     mocks.NewMockTransactionRepository(),
		userRepo:    mocks.NewMockUserRepository(),
		notifier:    mocks.NewRecordingNotifier(),
	}

	f.uc = usecase.NewMovementUseCase(
		mocks.NewMockTransactionManager(),
		f.accountRepo,
		f.reserveRepo,
		f.txnRepo,
		f.userRepo,
		mocks.NewMockIDGenerator(),
		f.notifier,
		mocks.PassthroughRetrier{},
		zerolog.Nop(),
	)

	return f
}

func (f *movementFixture) addAccount(id, userID, accountNo string, balance decimal.Decimal) {
	f.accountRepo.Add(&domain.Account{ID: id, UserID: userID, AccountNo: accountNo, Balance: balance})
	f.userRepo.Add(&domain.User{ID: userID, Email: userID + "@example.com", Active: true})
}

func (f *movementFixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()

	account, err := f.accountRepo.GetByID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	return account.Balance
}

func (f *movementFixture) reserveBalance(t *testing.T) decimal.Decimal {
	t.Helper()

	reserve, err := f.reserveRepo.Get(context.Background())
	if err != nil {
		t.Fatalf("reserve lookup failed: %v", err)
	}
	return reserve.Balance
}

func TestMovementUseCase_Deposit(t *testing.T) {
	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(50))

	txn, err := f.uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected account balance 150, got %s", got)
	}

	if got := f.reserveBalance(t); !got.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected reserve balance 1100, got %s", got)
	}

	if txn.Type != domain.TransactionDeposit {
		t.Errorf("expected deposit record, got %s", txn.Type)
	}

	if !txn.BalanceAfter.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance snapshot 150, got %s", txn.BalanceAfter)
	}

	if recorded := f.txnRepo.All(); len(recorded) != 1 {
		t.Errorf("expected exactly one record, got %d", len(recorded))
	}

	sent := f.notifier.Sent()
	if len(sent) != 1 || sent[0].Subject != "Deposit" {
		t.Errorf("expected one deposit notification, got %+v", sent)
	}
}

func TestMovementUseCase_DepositRejectsNonPositiveAmount(t *testing.T) {
	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(50))

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := f.uc.Deposit(context.Background(), usecase.DepositInput{AccountID: "acc-1", Amount: amount})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount for %s, got %v", amount, err)
		}
	}

	if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance unchanged at 50, got %s", got)
	}

	if len(f.txnRepo.All()) != 0 {
		t.Error("expected no records for rejected deposits")
	}
}

func TestMovementUseCase_Withdraw(t *testing.T) {
	tests := []struct {
		name           string
		accountBalance decimal.Decimal
		reserveBalance decimal.Decimal
		amount         decimal.Decimal
		wantErr        error
		wantAccount    decimal.Decimal
		wantReserve    decimal.Decimal
	}{
		{
			name:           "sufficient funds",
			accountBalance: decimal.NewFromInt(150),
			reserveBalance: decimal.NewFromInt(950),
			amount:         decimal.NewFromInt(150),
			wantAccount:    decimal.Zero,
			wantReserve:    decimal.NewFromInt(800),
		},
		{
			name:           "insufficient account balance",
			accountBalance: decimal.NewFromInt(150),
			reserveBalance: decimal.NewFromInt(1000),
			amount:         decimal.NewFromInt(200),
			wantErr:        domain.ErrInsufficientFunds,
			wantAccount:    decimal.NewFromInt(150),
			wantReserve:    decimal.NewFromInt(1000),
		},
		{
			name:           "reserve exhausted",
			accountBalance: decimal.NewFromInt(500),
			reserveBalance: decimal.NewFromInt(100),
			amount:         decimal.NewFromInt(200),
			wantErr:        domain.ErrReserveExhausted,
			wantAccount:    decimal.NewFromInt(500),
			wantReserve:    decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovementFixture(tt.reserveBalance)
			f.addAccount("acc-1", "user-1", "1111111111", tt.accountBalance)

			txn, err := f.uc.Withdraw(context.Background(), usecase.WithdrawInput{
				AccountID: "acc-1",
				Amount:    tt.amount,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(f.txnRepo.All()) != 0 {
					t.Error("expected no record for rejected withdrawal")
				}
				if len(f.notifier.Sent()) != 0 {
					t.Error("expected no notification for rejected withdrawal")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if txn.Type != domain.TransactionWithdrawal {
					t.Errorf("expected withdrawal record, got %s", txn.Type)
				}
				if !txn.BalanceAfter.Equal(tt.wantAccount) {
					t.Errorf("expected balance snapshot %s, got %s", tt.wantAccount, txn.BalanceAfter)
				}
			}

			if got := f.balance(t, "acc-1"); !got.Equal(tt.wantAccount) {
				t.Errorf("expected account balance %s, got %s", tt.wantAccount, got)
			}

			if got := f.reserveBalance(t); !got.Equal(tt.wantReserve) {
				t.Errorf("expected reserve balance %s, got %s", tt.wantReserve, got)
			}
		})
	}
}

// Scenario: reserve 1000, account A at 50. Deposit 100 brings A to 150 and the
// reserve to 1100; withdrawing 200 is rejected without mutation; withdrawing
// 150 empties the account and leaves the reserve at 950.
func TestMovementUseCase_DepositWithdrawScenario(t *testing.T) {
	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-a", "user-a", "1111111111", decimal.NewFromInt(50))

	ctx := context.Background()

	if _, err := f.uc.Deposit(ctx, usecase.DepositInput{AccountID: "acc-a", Amount: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if got := f.balance(t, "acc-a"); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected balance 150 after deposit, got %s", got)
	}

	if got := f.reserveBalance(t); !got.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected reserve 1100 after deposit, got %s", got)
	}

	if _, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{AccountID: "acc-a", Amount: decimal.NewFromInt(200)}); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := f.balance(t, "acc-a"); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected balance unchanged at 150, got %s", got)
	}

	txn, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{AccountID: "acc-a", Amount: decimal.NewFromInt(150)})
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if got := f.balance(t, "acc-a"); !got.IsZero() {
		t.Errorf("expected balance 0, got %s", got)
	}

	if got := f.reserveBalance(t); !got.Equal(decimal.NewFromInt(950)) {
		t.Errorf("expected reserve 950, got %s", got)
	}

	if !txn.BalanceAfter.IsZero() {
		t.Errorf("expected balance snapshot 0, got %s", txn.BalanceAfter)
	}

	withdrawals := 0
	for _, rec := range f.txnRepo.All() {
		if rec.Type == domain.TransactionWithdrawal {
			withdrawals++
		}
	}
	if withdrawals != 1 {
		t.Errorf("expected exactly one withdrawal record, got %d", withdrawals)
	}
}

func TestMovementUseCase_Transfer(t *testing.T) {
	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(300))
	f.addAccount("acc-2", "user-2", "2222222222", decimal.NewFromInt(100))

	txn, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
		AccountID:          "acc-1",
		RecipientAccountNo: "2222222222",
		Amount:             decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(180)) {
		t.Errorf("expected sender balance 180, got %s", got)
	}

	if got := f.balance(t, "acc-2"); !got.Equal(decimal.NewFromInt(220)) {
		t.Errorf("expected recipient balance 220, got %s", got)
	}

	// Conservation: the combined balance is invariant and the reserve is untouched.
	sum := f.balance(t, "acc-1").Add(f.balance(t, "acc-2"))
	if !sum.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected combined balance 400, got %s", sum)
	}

	if got := f.reserveBalance(t); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected reserve unchanged at 1000, got %s", got)
	}

	if txn.Type != domain.TransactionTransfer {
		t.Errorf("expected transfer record, got %s", txn.Type)
	}

	if txn.RecipientAccountID == nil || *txn.RecipientAccountID != "acc-2" {
		t.Errorf("expected recipient reference acc-2, got %v", txn.RecipientAccountID)
	}

	sent := f.notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("expected notifications for both parties, got %d", len(sent))
	}
}

func TestMovementUseCase_TransferRejections(t *testing.T) {
	tests := []struct {
		name        string
		recipientNo string
		amount      decimal.Decimal
		wantErr     error
	}{
		{
			name:        "recipient not found",
			recipientNo: "9999999999",
			amount:      decimal.NewFromInt(50),
			wantErr:     domain.ErrRecipientNotFound,
		},
		{
			name:        "transfer to own account",
			recipientNo: "1111111111",
			amount:      decimal.NewFromInt(50),
			wantErr:     domain.ErrSameAccount,
		},
		{
			name:        "insufficient funds",
			recipientNo: "2222222222",
			amount:      decimal.NewFromInt(500),
			wantErr:     domain.ErrInsufficientFunds,
		},
		{
			name:        "non-positive amount",
			recipientNo: "2222222222",
			amount:      decimal.Zero,
			wantErr:     domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovementFixture(decimal.NewFromInt(1000))
			f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(300))
			f.addAccount("acc-2", "user-2", "2222222222", decimal.NewFromInt(100))

			_, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
				AccountID:          "acc-1",
				RecipientAccountNo: tt.recipientNo,
				Amount:             tt.amount,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(300)) {
				t.Errorf("expected sender balance unchanged at 300, got %s", got)
			}

			if got := f.balance(t, "acc-2"); !got.Equal(decimal.NewFromInt(100)) {
				t.Errorf("expected recipient balance unchanged at 100, got %s", got)
			}

			if len(f.txnRepo.All()) != 0 {
				t.Error("expected no record for rejected transfer")
			}
		})
	}
}

func TestMovementUseCase_NotificationFailureDoesNotFailDeposit(t *testing.T) {
	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(50))

	f.notifier.SendFunc = func(ctx context.Context, recipientEmail, subject, body string) error {
		return errors.New("smtp unavailable")
	}

	if _, err := f.uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(25),
	}); err != nil {
		t.Fatalf("deposit must not fail on notification error, got %v", err)
	}

	if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected balance 75, got %s", got)
	}
}

func TestMovementUseCase_DepositNotifiesOwner(t *testing.T) {
	ctrl := gomock.NewController(t)

	f := newMovementFixture(decimal.NewFromInt(1000))
	f.addAccount("acc-1", "user-1", "1111111111", decimal.NewFromInt(50))

	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Send(gomock.Any(), "user-1@example.com", "Deposit", gomock.Any()).
		Return(nil)

	uc := usecase.NewMovementUseCase(
		mocks.NewMockTransactionManager(),
		f.accountRepo,
		f.reserveRepo,
		f.txnRepo,
		f.userRepo,
		mocks.NewMockIDGenerator(),
		notifier,
		mocks.PassthroughRetrier{},
		zerolog.Nop(),
	)

	if _, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
