package shopify

import (
	"context"
	"net/http"
	"time"
)

const (
	retryMax   = 2
	retryDelay = 1 * time.Second
)

// Only transient failures are retried; user errors and GraphQL errors
// arrive inside an HTTP 200 body and never reach this check.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
