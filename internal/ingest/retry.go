package ingest

import (
	"context"
	"time"
)

// RetryWithBackoff runs fn up to maxAttempts times with exponential backoff
// between attempts (baseDelay, 2*baseDelay, 4*baseDelay, ...). Returns nil on
// the first success, the last error otherwise. Context cancellation aborts
// the wait and returns ctx.Err().
func RetryWithBackoff(ctx context.Context, fn func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := baseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
