package netretry_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNotFound     = errors.New("404 Not Found")
	errPort5000     = errors.New("dial tcp 127.0.0.1:5000: no route")
	errDownload500  = errors.New("failed to fetch index: 500")
	errRateLimited  = errors.New("GET https://ghcr.io/v2/: 429 Too Many Requests")
	errBadGateway   = errors.New("upstream said Bad Gateway")
	errTLSHandshake = errors.New("net/http: TLS handshake timeout")
	errPermanent    = errors.New("chart not found")
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"404", errNotFound, false},
		{"port 5000", errPort5000, false},
		{"500 code", errDownload500, true},
		{"429", errRateLimited, true},
		{"bad gateway text", errBadGateway, true},
		{"tls timeout", errTLSHandshake, true},
		{"wrapped reset", fmt.Errorf("pull: %w", syscall.ECONNRESET), true},
		{"unexpected eof", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, netretry.IsRetryable(tt.err))
		})
	}
}

func TestExponentialDelay(t *testing.T) {
	t.Parallel()

	base, maxWait := 2*time.Second, 15*time.Second

	assert.Equal(t, 2*time.Second, netretry.ExponentialDelay(0, base, maxWait))
	assert.Equal(t, 2*time.Second, netretry.ExponentialDelay(1, base, maxWait))
	assert.Equal(t, 4*time.Second, netretry.ExponentialDelay(2, base, maxWait))
	assert.Equal(t, 8*time.Second, netretry.ExponentialDelay(3, base, maxWait))
	assert.Equal(t, 15*time.Second, netretry.ExponentialDelay(4, base, maxWait))
	assert.Equal(t, 15*time.Second, netretry.ExponentialDelay(80, base, maxWait))
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	err := netretry.Do(context.Background(),
		netretry.Policy{Attempts: 3, BaseWait: time.Millisecond, MaxWait: time.Millisecond},
		func(context.Context) error {
			calls++
			if calls < 3 {
				return errBadGateway
			}

			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := netretry.Do(context.Background(),
		netretry.Policy{Attempts: 5, BaseWait: time.Millisecond, MaxWait: time.Millisecond},
		func(context.Context) error {
			calls++

			return errPermanent
		})

	require.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, calls)
}

func TestDo_GivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := netretry.Do(context.Background(),
		netretry.Policy{Attempts: 2, BaseWait: time.Millisecond, MaxWait: time.Millisecond},
		func(context.Context) error {
			calls++

			return errDownload500
		})

	require.ErrorIs(t, err, errDownload500)
	assert.Equal(t, 2, calls)
}

func TestDo_CustomClassifier(t *testing.T) {
	t.Parallel()

	calls := 0
	err := netretry.Do(context.Background(),
		netretry.Policy{
			Attempts: 3, BaseWait: time.Millisecond, MaxWait: time.Millisecond,
			Retryable: func(err error) bool { return errors.Is(err, errPermanent) },
		},
		func(context.Context) error {
			calls++

			return errPermanent
		})

	require.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 3, calls)
}

func TestDo_HonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	err := netretry.Do(ctx,
		netretry.Policy{Attempts: 3, BaseWait: time.Hour, MaxWait: time.Hour},
		func(context.Context) error {
			cancel()

			return errBadGateway
		})

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, errBadGateway)
}
