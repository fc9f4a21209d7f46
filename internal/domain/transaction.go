package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionLoan       TransactionType = "loan"
	TransactionLoanPaid   TransactionType = "loan_paid"
	TransactionTransfer   TransactionType = "transfer"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionDeposit:    true,
	TransactionWithdrawal: true,
	TransactionLoan:       true,
	TransactionLoanPaid:   true,
	TransactionTransfer:   true,
}

// IsValid checks if the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// Transaction is an immutable record of a single money movement, appended at
// the moment the movement is accepted. The only permitted mutations are the
// loan transitions: LoanApproved false to true on approval, and Type loan to
// loan_paid (with a BalanceAfter update) on repayment.
type Transaction struct {
	ID                 string
	AccountID          string
	RecipientAccountID *string
	Amount             decimal.Decimal
	Type               TransactionType
	BalanceAfter       decimal.Decimal
	LoanApproved       bool
	CreatedAt          time.Time
}

// IsLoan reports whether the record is an outstanding loan.
func (t *Transaction) IsLoan() bool {
	return t.Type == TransactionLoan
}

// ValidateRepayment checks the preconditions for repaying this loan against
// the borrower's account.
func (t *Transaction) ValidateRepayment(account *Account) error {
	if t.Type == TransactionLoanPaid {
		return ErrLoanAlreadyPaid
	}
	if t.Type != TransactionLoan {
		return ErrNotALoan
	}
	if !t.LoanApproved {
		return ErrLoanNotApproved
	}
	if !t.Amount.LessThan(account.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}
