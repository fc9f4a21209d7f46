package domain

import "errors"

var (
	// Movement errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds in account")
	ErrReserveExhausted  = errors.New("bank reserve cannot cover this amount")
	ErrRecipientNotFound = errors.New("no account is associated with this number")
	ErrSameAccount       = errors.New("cannot transfer to the same account")

	// Loan errors
	ErrLoanLimitExceeded = errors.New("loan limit reached for this account")
	ErrLoanNotApproved   = errors.New("loan has not been approved")
	ErrLoanAlreadyPaid   = errors.New("loan has already been repaid")
	ErrNotALoan          = errors.New("transaction is not a loan")

	// Lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrReserveNotFound     = errors.New("bank reserve is not initialized")
	ErrUserNotFound        = errors.New("user not found")

	// User errors
	ErrEmailTaken     = errors.New("user with this email already exists")
	ErrAccountNoTaken = errors.New("account number already in use")
)
