package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/dhalverson/resumescan/internal/analyze"
)

const (
	// MaxRetries is the number of additional attempts after the first
	// failure of a chunk analysis call.
	MaxRetries = 3

	baseBackoff = 2 * time.Second
	maxBackoff  = 30 * time.Second
)

// IsRetryable reports whether err is a transient analysis failure.
func IsRetryable(err error) bool {
	var re *analyze.RetryableError
	return errors.As(err, &re)
}

// Backoff returns the wait before retry attempt n (0-based), exponential
// with jitter, capped at maxBackoff.
func Backoff(attempt int) time.Duration {
	d := baseBackoff << attempt
	if d > maxBackoff {
		d = maxBackoff
	}
	jitter := time.Duration(rand.Int63n(int64(d) / 4))
	return d - jitter
}
