package utils

import (
	"fmt"
	"time"
)

// maxBackoff caps the exponential delay so a long retry chain against a
// rate-limited property API does not stall the whole run.
const maxBackoff = 30 * time.Second

// RetryConfig holds the parameters for the retry strategy.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *Logger
}

// Do executes fn with exponential back-off retry logic. The delay doubles
// per attempt up to maxBackoff.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.MaxAttempts {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
				operationName, attempt, r.MaxAttempts, lastErr, delay)
			time.Sleep(delay)
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
