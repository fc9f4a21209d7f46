package handler

import (
	"context"
	"net/http"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	"github.com/iftihoq/gobank/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Me returns the authenticated user's account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
