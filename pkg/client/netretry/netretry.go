// Package netretry decides which network failures are worth another attempt and runs
// operations with exponential backoff.
package netretry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"syscall"
	"time"
)

// statusCodePattern matches 429 and 500-504 as whole words so ":5000" does not count.
var statusCodePattern = regexp.MustCompile(`\b(429|50[0-4])\b`)

//nolint:gochecknoglobals // read-only pattern list
var transientPhrases = []string{
	"Too Many Requests",
	"Internal Server Error",
	"Bad Gateway",
	"Service Unavailable",
	"Gateway Timeout",
	"connection reset by peer",
	"connection refused",
	"i/o timeout",
	"TLS handshake timeout",
	"unexpected EOF",
	"no such host",
}

// IsRetryable reports whether err looks like a transient network or server failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	msg := err.Error()

	for _, phrase := range transientPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}

	return statusCodePattern.MatchString(msg)
}

// ExponentialDelay returns min(base * 2^(attempt-1), maxWait) for attempt >= 1.
func ExponentialDelay(attempt int, base, maxWait time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := base
	for range attempt - 1 {
		delay *= 2
		if delay >= maxWait {
			return maxWait
		}
	}

	return min(delay, maxWait)
}

// Policy bounds a retry loop.
type Policy struct {
	Attempts int
	BaseWait time.Duration
	MaxWait  time.Duration
	// Retryable overrides IsRetryable when set.
	Retryable func(error) bool
}

// Do runs op until it succeeds, returns a non-retryable error, or the attempts run out.
// The last error is returned unwrapped so callers can still match it.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	retryable := policy.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	attempts := max(policy.Attempts, 1)

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		err = op(ctx)
		if err == nil || !retryable(err) || attempt == attempts {
			return err
		}

		wait := time.NewTimer(ExponentialDelay(attempt, policy.BaseWait, policy.MaxWait))

		select {
		case <-ctx.Done():
			wait.Stop()

			return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, errors.Join(ctx.Err(), err))
		case <-wait.C:
		}
	}

	return err
}
