package smoketest_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/svc/smoketest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const albumJSON = `{"id":1,"title":"The Dark Side of the Moon","artist":"Pink Floyd"}`

type albumsServer struct {
	healthFailures int32
	albumBody      string
	albumStatus    int

	healthCalls atomic.Int32
	lastHost    atomic.Value
	lastKey     atomic.Value
}

func (s *albumsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lastHost.Store(r.Host)

	switch r.URL.Path {
	case smoketest.HealthPath:
		if s.healthCalls.Add(1) <= s.healthFailures {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte(`{"status":"ok"}`))
	case smoketest.AlbumsPath:
		s.lastKey.Store(r.URL.Query().Get("key"))

		if s.albumStatus != 0 {
			w.WriteHeader(s.albumStatus)
		}

		_, _ = w.Write([]byte(s.albumBody))
	default:
		http.NotFound(w, r)
	}
}

func startServer(t *testing.T, handler *albumsServer) smoketest.Ingress {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)

	portNumber, err := strconv.Atoi(port)
	require.NoError(t, err)

	return smoketest.Ingress{Address: host, Port: portNumber, Host: "albums.playground.local"}
}

func fastOptions() smoketest.Options {
	return smoketest.Options{
		Timeout:      300 * time.Millisecond,
		RetryWait:    5 * time.Millisecond,
		MaxRetryWait: 20 * time.Millisecond,
	}
}

func TestRun_Passes(t *testing.T) {
	t.Parallel()

	handler := &albumsServer{albumBody: albumJSON}
	ingress := startServer(t, handler)

	results, err := smoketest.New(ingress, fastOptions()).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "health", results[0].Name)
	assert.Equal(t, http.StatusOK, results[0].Status)
	assert.Equal(t, "album 1", results[1].Name)
	assert.Equal(t, "albums.playground.local", handler.lastHost.Load())
	assert.Equal(t, "1", handler.lastKey.Load())
}

func TestRun_RetriesUntilHealthy(t *testing.T) {
	t.Parallel()

	handler := &albumsServer{albumBody: albumJSON, healthFailures: 3}
	ingress := startServer(t, handler)

	results, err := smoketest.New(ingress, fastOptions()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, results[0].Attempts)
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler *albumsServer
		opts    func(*smoketest.Options)
		wantErr error
		message string
	}{
		{
			name:    "health never ready",
			handler: &albumsServer{albumBody: albumJSON, healthFailures: 1 << 20},
			wantErr: smoketest.ErrUnexpectedStatus,
			message: "health probe",
		},
		{
			name:    "album missing",
			handler: &albumsServer{albumBody: `{"error":"not found"}`, albumStatus: http.StatusNotFound},
			wantErr: smoketest.ErrUnexpectedStatus,
			message: "album 1 probe",
		},
		{
			name:    "wrong album",
			handler: &albumsServer{albumBody: `{"title":"Abbey Road"}`},
			wantErr: smoketest.ErrUnexpectedBody,
		},
		{
			name:    "custom expectation",
			handler: &albumsServer{albumBody: albumJSON},
			opts: func(o *smoketest.Options) {
				o.Key = "2"
				o.Expect = "Abbey Road"
			},
			wantErr: smoketest.ErrUnexpectedBody,
			message: "album 2 probe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ingress := startServer(t, tt.handler)

			opts := fastOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			_, err := smoketest.New(ingress, opts).Run(context.Background())
			require.ErrorIs(t, err, tt.wantErr)

			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

type recordingDialer struct {
	endpoint smoketest.Endpoint
	closed   atomic.Bool
}

func (d *recordingDialer) Dial(context.Context) (smoketest.Endpoint, io.Closer, error) {
	return d.endpoint, d, nil
}

func (d *recordingDialer) Close() error {
	d.closed.Store(true)

	return nil
}

func TestRun_ClosesEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(&albumsServer{albumBody: `{}`})
	t.Cleanup(server.Close)

	dialer := &recordingDialer{endpoint: smoketest.Endpoint{BaseURL: server.URL}}

	_, err := smoketest.New(dialer, fastOptions()).Run(context.Background())
	require.ErrorIs(t, err, smoketest.ErrUnexpectedBody)
	assert.True(t, dialer.closed.Load(), "endpoint is released on failure")
}

type flakyDialer struct {
	endpoint smoketest.Endpoint
	failures int32
	dials    atomic.Int32
	closes   atomic.Int32
}

func (d *flakyDialer) Dial(context.Context) (smoketest.Endpoint, io.Closer, error) {
	if d.dials.Add(1) <= d.failures {
		return smoketest.Endpoint{}, nil, errNoPod
	}

	return d.endpoint, closeCounter{&d.closes}, nil
}

type closeCounter struct{ n *atomic.Int32 }

func (c closeCounter) Close() error {
	c.n.Add(1)

	return nil
}

var errNoPod = errors.New("no ready pod backs the service")

func TestRun_RedialsUntilPodReady(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(&albumsServer{albumBody: albumJSON})
	t.Cleanup(server.Close)

	dialer := &flakyDialer{endpoint: smoketest.Endpoint{BaseURL: server.URL}, failures: 2}

	results, err := smoketest.New(dialer, fastOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, results[0].Attempts)
	assert.Equal(t, server.URL+smoketest.HealthPath, results[0].URL)
	assert.Equal(t, int32(3), dialer.dials.Load(), "one endpoint serves both probes once open")
	assert.Equal(t, int32(1), dialer.closes.Load())
}

func TestRun_RedialsAfterConnectionLoss(t *testing.T) {
	t.Parallel()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	live := httptest.NewServer(&albumsServer{albumBody: albumJSON})
	t.Cleanup(live.Close)

	var dials atomic.Int32

	dialer := dialFunc(func(context.Context) (smoketest.Endpoint, io.Closer, error) {
		if dials.Add(1) == 1 {
			return smoketest.Endpoint{BaseURL: deadURL}, io.NopCloser(nil), nil
		}

		return smoketest.Endpoint{BaseURL: live.URL}, io.NopCloser(nil), nil
	})

	results, err := smoketest.New(dialer, fastOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, results[0].Attempts)
	assert.Equal(t, int32(2), dials.Load())
}

func TestRun_DialNeverSucceeds(t *testing.T) {
	t.Parallel()

	dialer := &flakyDialer{failures: 1 << 20}

	_, err := smoketest.New(dialer, fastOptions()).Run(context.Background())
	require.ErrorIs(t, err, errNoPod)
	assert.Greater(t, dialer.dials.Load(), int32(1))
}

type dialFunc func(context.Context) (smoketest.Endpoint, io.Closer, error)

func (f dialFunc) Dial(ctx context.Context) (smoketest.Endpoint, io.Closer, error) { return f(ctx) }
