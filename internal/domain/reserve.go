package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankReserve is the bank's aggregate float backing withdrawals and loans.
// Exactly one reserve row exists; callers receive it through the repository
// rather than by a well-known identifier.
type BankReserve struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

// ValidateDebit checks if the reserve can cover a debit of amount.
func (r *BankReserve) ValidateDebit(amount decimal.Decimal) error {
	if r.Balance.LessThan(amount) {
		return ErrReserveExhausted
	}
	return nil
}

// ApplyDebit returns the new reserve balance after a debit.
func (r *BankReserve) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return r.Balance.Sub(amount)
}

// ApplyCredit returns the new reserve balance after a credit.
func (r *BankReserve) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return r.Balance.Add(amount)
}
