package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountValidateDebit(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(100)}

	if err := account.ValidateDebit(decimal.NewFromInt(100)); err != nil {
		t.Errorf("debit of full balance should be allowed, got %v", err)
	}

	if err := account.ValidateDebit(decimal.NewFromInt(101)); err != ErrInsufficientFunds {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAccountApplyDebitCredit(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(50)}

	if got := account.ApplyDebit(decimal.NewFromInt(20)); !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected balance 30 after debit, got %s", got)
	}

	if got := account.ApplyCredit(decimal.NewFromInt(20)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected balance 70 after credit, got %s", got)
	}
}

func TestReserveValidateDebit(t *testing.T) {
	reserve := &BankReserve{Balance: decimal.NewFromInt(1000)}

	if err := reserve.ValidateDebit(decimal.NewFromInt(1000)); err != nil {
		t.Errorf("debit of full reserve should be allowed, got %v", err)
	}

	if err := reserve.ValidateDebit(decimal.NewFromInt(1001)); err != ErrReserveExhausted {
		t.Errorf("expected ErrReserveExhausted, got %v", err)
	}
}
