package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifierSend(t *testing.T) {
	n := NewLogNotifier(zerolog.Nop())

	if err := n.Send(context.Background(), "a@example.com", "Deposit", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSMTPNotifierHonorsCancelledContext(t *testing.T) {
	n := NewSMTPNotifier(Config{Host: "localhost", Port: 2525, From: "noreply@gobank.local"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "a@example.com", "Deposit", "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
