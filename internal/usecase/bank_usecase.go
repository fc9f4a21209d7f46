package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	reserveCacheKey = "bank:reserve"
	reserveCacheTTL = 5 * time.Second
)

// BankUseCase exposes read-only bank-wide state.
type BankUseCase struct {
	reserveRepo ReserveRepository
	cache       Cache
}

// NewBankUseCase creates a new BankUseCase. Cache may be nil to disable
// caching.
func NewBankUseCase(reserveRepo ReserveRepository, cache Cache) *BankUseCase {
	return &BankUseCase{
		reserveRepo: reserveRepo,
		cache:       cache,
	}
}

// ReserveSummary is a point-in-time snapshot of the bank reserve.
type ReserveSummary struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// GetReserve returns the current reserve snapshot. The snapshot is cached
// briefly; a slightly stale balance is acceptable for display.
func (uc *BankUseCase) GetReserve(ctx context.Context) (*ReserveSummary, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, reserveCacheKey); err == nil && cached != "" {
			var summary ReserveSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	reserve, err := uc.reserveRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ReserveSummary{
		Name:    reserve.Name,
		Balance: reserve.Balance,
	}

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, reserveCacheKey, string(data), reserveCacheTTL)
		}
	}

	return summary, nil
}
