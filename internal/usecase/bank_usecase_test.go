package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
	"github.com/iftihoq/gobank/internal/usecase/mocks"
)

func TestBankUseCase_GetReserve(t *testing.T) {
	reserveRepo := mocks.NewMockReserveRepository(&domain.BankReserve{
		ID:      "reserve-1",
		Name:    "GoBank",
		Balance: decimal.NewFromInt(5000),
	})
	cache := mocks.NewMockCache()
	uc := usecase.NewBankUseCase(reserveRepo, cache)

	summary, err := uc.GetReserve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Name != "GoBank" {
		t.Errorf("expected name GoBank, got %q", summary.Name)
	}

	if !summary.Balance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected balance 5000, got %s", summary.Balance)
	}

	// The second read is served from cache even if the store goes away.
	reserveRepo.GetFunc = func(ctx context.Context) (*domain.BankReserve, error) {
		return nil, errors.New("store down")
	}

	cached, err := uc.GetReserve(context.Background())
	if err != nil {
		t.Fatalf("expected cached read, got %v", err)
	}

	if !cached.Balance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected cached balance 5000, got %s", cached.Balance)
	}
}

func TestBankUseCase_GetReserveWithoutCache(t *testing.T) {
	reserveRepo := mocks.NewMockReserveRepository(&domain.BankReserve{
		ID:      "reserve-1",
		Name:    "GoBank",
		Balance: decimal.NewFromInt(100),
	})
	uc := usecase.NewBankUseCase(reserveRepo, nil)

	summary, err := uc.GetReserve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", summary.Balance)
	}
}
