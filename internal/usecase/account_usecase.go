package usecase

import (
	"context"

	"github.com/iftihoq/gobank/internal/domain"
)

// AccountUseCase handles account lookups.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByUser retrieves the account owned by a user.
func (uc *AccountUseCase) GetAccountByUser(ctx context.Context, userID string) (*domain.Account, error) {
	return uc.accountRepo.GetByUserID(ctx, userID)
}
