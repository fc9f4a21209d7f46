package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iftihoq/gobank/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"recipient not found", domain.ErrRecipientNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"weak password", domain.ErrPasswordTooWeak, http.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"reserve exhausted", domain.ErrReserveExhausted, http.StatusUnprocessableEntity},
		{"loan not approved", domain.ErrLoanNotApproved, http.StatusUnprocessableEntity},
		{"loan already paid", domain.ErrLoanAlreadyPaid, http.StatusUnprocessableEntity},
		{"loan limit", domain.ErrLoanLimitExceeded, http.StatusConflict},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/report?start=2026-01-15&end=2026-02-01T10:30:00Z", nil)

	start, err := parseTimeQuery(req, "start", false)
	if err != nil || start == nil {
		t.Fatalf("expected date-only start to parse, got %v (%v)", start, err)
	}
	if start.Year() != 2026 || start.Month() != 1 || start.Day() != 15 || start.Hour() != 0 {
		t.Fatalf("unexpected start: %v", start)
	}

	end, err := parseTimeQuery(req, "end", true)
	if err != nil || end == nil {
		t.Fatalf("expected RFC 3339 end to parse, got %v (%v)", end, err)
	}
	if end.Hour() != 10 || end.Minute() != 30 {
		t.Fatalf("unexpected end: %v", end)
	}

	if missing, err := parseTimeQuery(req, "absent", true); err != nil || missing != nil {
		t.Fatalf("expected nil for absent parameter, got %v (%v)", missing, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/report?start=yesterday", nil)
	if _, err := parseTimeQuery(bad, "start", false); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestParseTimeQueryDateOnlyEndCoversWholeDay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/report?end=2026-01-31", nil)

	end, err := parseTimeQuery(req, "end", true)
	if err != nil || end == nil {
		t.Fatalf("expected date-only end to parse, got %v (%v)", end, err)
	}

	midDay := time.Date(2026, 1, 31, 14, 0, 0, 0, time.UTC)
	if end.Before(midDay) {
		t.Fatalf("end bound %v excludes transactions later on the end day", end)
	}

	nextDay := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !end.Before(nextDay) {
		t.Fatalf("end bound %v leaks into the next day", end)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/loans?limit=5&offset=junk", nil)

	if got := parseIntQuery(req, "limit", 20); got != 5 {
		t.Fatalf("expected limit 5, got %d", got)
	}
	if got := parseIntQuery(req, "offset", 0); got != 0 {
		t.Fatalf("expected default offset for junk, got %d", got)
	}
	if got := parseIntQuery(req, "absent", 20); got != 20 {
		t.Fatalf("expected default for absent parameter, got %d", got)
	}
}
