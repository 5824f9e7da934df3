package graceful

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestGracefulContext(t *testing.T) {
	ctx, cancel := Context(context.Background())
	defer cancel()

	// Simulate an interrupt; the signal handler should cancel the context.
	go func() {
		time.Sleep(100 * time.Millisecond) // give the handler time to register
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("Failed to send SIGINT: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("Expected context.Canceled error, got %v", ctx.Err())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out waiting for context to be canceled.")
	}
}

func TestGracefulContextExplicitCancel(t *testing.T) {
	ctx, cancel := Context(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("explicit cancel did not propagate")
	}
}
