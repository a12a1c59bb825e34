package pipeline

import (
	"context"
	"time"
)

// sleepFunc is the sleep used between retries (injectable for tests)
var sleepFunc = time.Sleep

// withRetry runs fn up to attempts times with exponential backoff starting
// at base. It stops early when fn succeeds or the context is cancelled.
func withRetry(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts-1 {
			backoff := base * time.Duration(1<<uint(attempt))
			sleepFunc(backoff)
		}
	}
	return err
}
