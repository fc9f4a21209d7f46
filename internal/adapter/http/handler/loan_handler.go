package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	RequestLoan(ctx context.Context, input usecase.RequestLoanInput) (*domain.Transaction, error)
	ApproveLoan(ctx context.Context, loanID string) (*domain.Transaction, error)
	RepayLoan(ctx context.Context, input usecase.RepayLoanInput) (*domain.Transaction, error)
	ListLoans(ctx context.Context, input usecase.ListLoansInput) ([]*domain.Transaction, error)
}

// LoanHandler handles loan lifecycle HTTP requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Request files a loan request against the bank reserve.
func (h *LoanHandler) Request(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loan, err := h.loanUC.RequestLoan(r.Context(), usecase.RequestLoanInput{
		AccountID: claims.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "loan request failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(loan))
}

// Approve marks a loan as approved. Admin only; enforced by the router.
func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	loan, err := h.loanUC.ApproveLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "loan approval failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(loan))
}

// Repay repays an approved loan from the caller's account.
func (h *LoanHandler) Repay(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	loan, err := h.loanUC.RepayLoan(r.Context(), usecase.RepayLoanInput{
		LoanID:    id,
		AccountID: claims.AccountID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "loan repayment failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(loan))
}

// List lists the caller's loans.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	loans, err := h.loanUC.ListLoans(r.Context(), usecase.ListLoansInput{
		AccountID: claims.AccountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(loans))
}
