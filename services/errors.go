package services

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Handlers map these to HTTP
// statuses; nothing here is retried internally — retry policy belongs to
// the caller.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskInactive     = errors.New("task is inactive")
	ErrAlreadyCompleted = errors.New("task already completed in this period")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrValidation       = errors.New("validation failed")
	ErrUnavailable      = errors.New("storage unavailable")
)

// storeErr normalizes store failures: timeouts and cancellations become the
// transient unavailable sentinel, everything else keeps its cause wrapped.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
