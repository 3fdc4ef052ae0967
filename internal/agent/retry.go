package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Retry configuration for model provider calls
const (
	maxRetryAttempts  = 3
	initialBackoff    = 500 * time.Millisecond
	maxBackoff        = 5 * time.Second
	backoffMultiplier = 2.0
)

// retryableStatusCodes are HTTP status codes that indicate a transient
// provider failure worth retrying
var retryableStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// providerError carries the HTTP status of a failed provider call so the
// retry loop can tell transient failures from permanent ones
type providerError struct {
	StatusCode int
	Message    string
}

func (e *providerError) Error() string {
	return e.Message
}

func shouldRetry(statusCode int) bool {
	for _, code := range retryableStatusCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// calculateBackoff returns the backoff duration for a given attempt number
func calculateBackoff(attempt int) time.Duration {
	backoff := initialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * backoffMultiplier)
		if backoff > maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// withRetry executes fn with exponential backoff on transient provider
// errors. Non-provider errors and non-retryable statuses fail fast.
func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("operation cancelled: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var perr *providerError
		if !errors.As(err, &perr) || !shouldRetry(perr.StatusCode) {
			return zero, err
		}

		if attempt < maxRetryAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("operation cancelled: %w", ctx.Err())
			case <-time.After(calculateBackoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("max retry attempts (%d) exceeded: %w", maxRetryAttempts, lastErr)
}
