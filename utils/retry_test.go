package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewLogger()}

	attempts := 0
	err := r.Do("flaky-op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts: got %d, want 3", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewLogger()}

	sentinel := errors.New("permanent")
	attempts := 0
	err := r.Do("doomed-op", func() error {
		attempts++
		return sentinel
	})
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("wrapped error lost: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts: got %d, want 2", attempts)
	}
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Millisecond, Logger: NewLogger()}

	attempts := 0
	if err := r.Do("healthy-op", func() error { attempts++; return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts: got %d, want 1", attempts)
	}
}
