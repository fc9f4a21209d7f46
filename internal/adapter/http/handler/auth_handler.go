package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/infrastructure/auth"
	"github.com/iftihoq/gobank/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Account, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
}

// AccountLookup resolves the account owned by a user.
type AccountLookup interface {
	GetAccountByUser(ctx context.Context, userID string) (*domain.Account, error)
}

// AuthHandler handles registration and authentication requests.
type AuthHandler struct {
	userUC     UserService
	accountUC  AccountLookup
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC UserService, accountUC AccountLookup, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		accountUC:  accountUC,
		jwtManager: jwtManager,
	}
}

// Register creates a new user with a zero-balance account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, account, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		User:    dto.UserFromDomain(user),
		Account: dto.AccountFromDomain(account),
	})
}

// Login verifies credentials and issues a JWT bound to the user's account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	account, err := h.accountUC.GetAccountByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "account lookup failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(user, account.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// ChangePassword replaces the authenticated user's password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.userUC.ChangePassword(r.Context(), claims.UserID, req.NewPassword); err != nil {
		writeError(w, mapDomainError(err), "password change failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
