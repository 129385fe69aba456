package files

import (
	"fmt"
	"time"
)

// retry retries fn up to attempts times, waiting a little longer after each failure.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryWait * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

var retryWait = 500 * time.Millisecond
