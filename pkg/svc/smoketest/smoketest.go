package smoketest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

// Defaults for the album probe.
const (
	DefaultKey    = "1"
	DefaultExpect = "Dark Side of the Moon"
)

// Probe paths served by the albums application.
const (
	HealthPath = "/health"
	AlbumsPath = "/api/v1/music-albums"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 5 * time.Second
	maxAttempts    = 1000
)

var (
	// ErrUnexpectedStatus is returned when a probe answers with the wrong status code.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrUnexpectedBody is returned when the album response lacks the expected text.
	ErrUnexpectedBody = errors.New("response body does not contain the expected text")
)

// Options configure a smoke test run.
type Options struct {
	// Key is the album key requested. Defaults to DefaultKey.
	Key string
	// Expect must appear in the album response. Defaults to DefaultExpect.
	Expect string
	// Timeout bounds the retries of each probe.
	Timeout time.Duration
	// RetryWait is the first pause between attempts; it doubles up to MaxRetryWait.
	RetryWait    time.Duration
	MaxRetryWait time.Duration
	Client       *http.Client
	Out          io.Writer
}

// Result records one passed probe.
type Result struct {
	Name     string
	URL      string
	Status   int
	Attempts int
	Elapsed  time.Duration
}

// Tester runs the probes against an endpoint.
type Tester struct {
	dialer Dialer
	opts   Options
}

// New returns a tester that reaches the application through dialer.
func New(dialer Dialer, opts Options) *Tester {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}

	if opts.Expect == "" {
		opts.Expect = DefaultExpect
	}

	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}

	if opts.MaxRetryWait <= 0 {
		opts.MaxRetryWait = 5 * time.Second
	}

	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: requestTimeout}
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	return &Tester{dialer: dialer, opts: opts}
}

// Run probes health and then the album lookup. The endpoint is opened on the first
// attempt, reopened after a connection failure and released before returning.
func (t *Tester) Run(ctx context.Context) (results []Result, err error) {
	conn := &connection{dialer: t.dialer}

	defer func() {
		closeErr := conn.close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	query := url.Values{"key": []string{t.opts.Key}}

	probes := []struct {
		name   string
		path   string
		expect string
	}{
		{name: "health", path: HealthPath},
		{name: "album " + t.opts.Key, path: AlbumsPath + "?" + query.Encode(), expect: t.opts.Expect},
	}

	for _, probe := range probes {
		notify.Activityf(t.opts.Out, "probing %s", probe.path)

		result, err := t.probe(ctx, conn, probe.name, probe.path, probe.expect)
		if err != nil {
			return results, fmt.Errorf("%s probe: %w", probe.name, err)
		}

		results = append(results, result)
	}

	return results, nil
}

func (t *Tester) probe(ctx context.Context, conn *connection, name, path, expect string) (Result, error) {
	result := Result{Name: name}
	start := time.Now()

	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	policy := netretry.Policy{
		Attempts:  maxAttempts,
		BaseWait:  t.opts.RetryWait,
		MaxWait:   t.opts.MaxRetryWait,
		Retryable: func(error) bool { return ctx.Err() == nil },
	}

	err := netretry.Do(ctx, policy, func(ctx context.Context) error {
		result.Attempts++

		endpoint, err := conn.open(ctx)
		if err != nil {
			return err
		}

		result.URL = endpoint.BaseURL + path

		status, err := t.get(ctx, endpoint, result.URL, expect)
		result.Status = status

		if err != nil && status == 0 {
			// No HTTP answer: the forwarded pod may be gone, so dial again next time.
			_ = conn.close()
		}

		return err
	})

	result.Elapsed = time.Since(start)

	return result, err
}

// connection holds the endpoint shared by consecutive attempts.
type connection struct {
	dialer   Dialer
	endpoint Endpoint
	closer   io.Closer
}

func (c *connection) open(ctx context.Context) (Endpoint, error) {
	if c.closer != nil {
		return c.endpoint, nil
	}

	endpoint, closer, err := c.dialer.Dial(ctx)
	if err != nil {
		return Endpoint{}, err
	}

	c.endpoint, c.closer = endpoint, closer

	return endpoint, nil
}

func (c *connection) close() error {
	if c.closer == nil {
		return nil
	}

	closer := c.closer
	c.closer = nil

	return closer.Close()
}

func (t *Tester) get(ctx context.Context, endpoint Endpoint, target, expect string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	if endpoint.Host != "" {
		req.Host = endpoint.Host
	}

	resp, err := t.opts.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", target, err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if expect != "" && !strings.Contains(string(body), expect) {
		return resp.StatusCode, fmt.Errorf("%w: %q", ErrUnexpectedBody, expect)
	}

	return resp.StatusCode, nil
}
