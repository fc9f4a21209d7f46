package handler

import (
	"context"
	"net/http"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/usecase"
)

// BankService defines the behavior needed by BankHandler.
type BankService interface {
	GetReserve(ctx context.Context) (*usecase.ReserveSummary, error)
}

// BankHandler exposes bank-wide read endpoints.
type BankHandler struct {
	bankUC BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankUC BankService) *BankHandler {
	return &BankHandler{bankUC: bankUC}
}

// Reserve returns the current bank reserve snapshot. Admin only; enforced by
// the router.
func (h *BankHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	reserve, err := h.bankUC.GetReserve(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get reserve", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReserveResponse{
		Name:    reserve.Name,
		Balance: reserve.Balance,
	})
}
