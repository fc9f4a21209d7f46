package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/usecase"
)

// RegisterRequest represents a request to register a new user.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// MovementRequest represents a deposit or withdrawal request.
type MovementRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest represents a transfer request.
type TransferRequest struct {
	RecipientAccountNo string          `json:"recipient_account_no"`
	Amount             decimal.Decimal `json:"amount"`
}

// LoanRequest represents a loan request.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ReportQuery represents the parsed query parameters of a report request.
type ReportQuery struct {
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}
