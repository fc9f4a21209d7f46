package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
)

// MovementService defines the behavior needed by TransactionHandler.
type MovementService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
}

// ReportService defines the behavior needed for transaction reports.
type ReportService interface {
	GetReport(ctx context.Context, input usecase.ReportInput) (*usecase.Report, error)
}

// TransactionHandler handles money movement HTTP requests. Every operation
// acts on the account bound to the caller's token.
type TransactionHandler struct {
	movementUC MovementService
	reportUC   ReportService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(movementUC MovementService, reportUC ReportService) *TransactionHandler {
	return &TransactionHandler{
		movementUC: movementUC,
		reportUC:   reportUC,
	}
}

// Deposit credits the caller's account.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.movementUC.Deposit(r.Context(), usecase.DepositInput{
		AccountID: claims.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Withdraw debits the caller's account.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.movementUC.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID: claims.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Transfer moves money from the caller's account to the recipient resolved by
// account number.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := domain.ValidateAccountNo(req.RecipientAccountNo); err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	txn, err := h.movementUC.Transfer(r.Context(), usecase.TransferInput{
		AccountID:          claims.AccountID,
		RecipientAccountNo: req.RecipientAccountNo,
		Amount:             req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Report lists the caller's transactions, optionally bounded by start and end
// dates.
func (h *TransactionHandler) Report(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	start, err := parseTimeQuery(r, "start", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	end, err := parseTimeQuery(r, "end", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	report, err := h.reportUC.GetReport(r.Context(), usecase.ReportInput{
		AccountID: claims.AccountID,
		Start:     start,
		End:       end,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "report failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportResponse{
		Transactions: dto.TransactionsFromDomain(report.Transactions),
		Balance:      report.Balance,
	})
}
