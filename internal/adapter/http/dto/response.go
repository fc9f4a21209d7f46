package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	AccountNo string          `json:"account_no"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		AccountNo: a.AccountNo,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// RegisterResponse represents the result of a successful registration.
type RegisterResponse struct {
	User    *UserResponse    `json:"user"`
	Account *AccountResponse `json:"account"`
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// TransactionResponse represents a movement record in API responses.
type TransactionResponse struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	RecipientAccountID *string         `json:"recipient_account_id,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	BalanceAfter       decimal.Decimal `json:"balance_after"`
	LoanApproved       bool            `json:"loan_approved"`
	CreatedAt          time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                 t.ID,
		AccountID:          t.AccountID,
		RecipientAccountID: t.RecipientAccountID,
		Amount:             t.Amount,
		Type:               string(t.Type),
		BalanceAfter:       t.BalanceAfter,
		LoanApproved:       t.LoanApproved,
		CreatedAt:          t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ReportResponse represents a transaction report.
type ReportResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Balance      decimal.Decimal        `json:"balance"`
}

// ReserveResponse represents the bank reserve snapshot.
type ReserveResponse struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
