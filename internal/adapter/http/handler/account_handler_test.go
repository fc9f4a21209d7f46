package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/adapter/http/dto"
	"github.com/iftihoq/gobank/internal/domain"
)

type accountServiceStub struct {
	getFn func(ctx context.Context, id string) (*domain.Account, error)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func TestAccountHandler_Me(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected lookup of token's account, got %s", id)
			}
			account := testAccount()
			account.Balance = decimal.NewFromInt(75)
			return account, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/accounts/me", nil, customerClaims())
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || !resp.Balance.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected account: %+v", resp)
	}
}

func TestAccountHandler_Me_NoClaims(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			t.Fatal("GetAccount should not be called without claims")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
