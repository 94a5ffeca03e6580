package githubapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/m-mizutani/octopages/pkg/utils/safe"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultMaxDelay   = time.Minute
)

// RetryTransport retries idempotent requests that failed with a rate limit
// or a server error. The wait honors Retry-After (secondary rate limits)
// and then X-RateLimit-Reset (primary rate limits), falling back to
// exponential backoff. Every wait is capped by maxDelay.
type RetryTransport struct {
	base       http.RoundTripper
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

type RetryOption func(*RetryTransport)

func WithMaxRetries(n int) RetryOption {
	return func(x *RetryTransport) {
		x.maxRetries = n
	}
}

func WithBackoff(base, max time.Duration) RetryOption {
	return func(x *RetryTransport) {
		x.baseDelay = base
		x.maxDelay = max
	}
}

func NewRetryTransport(base http.RoundTripper, options ...RetryOption) *RetryTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	x := &RetryTransport{
		base:       base,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
		now:        time.Now,
		sleep:      sleepContext,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return x.base.RoundTrip(req)
	}

	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		resp, err := x.base.RoundTrip(req)

		if attempt >= x.maxRetries || ctx.Err() != nil {
			return resp, err
		}

		var wait time.Duration
		switch {
		case err != nil:
			wait = x.backoff(attempt)
		case retryableResponse(resp):
			wait = x.retryAfter(resp.Header)
			if wait <= 0 {
				wait = x.backoff(attempt)
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
			safe.Close(resp.Body)
		default:
			return resp, nil
		}

		if wait > x.maxDelay {
			wait = x.maxDelay
		}

		attrs := []any{
			slog.String("url", req.URL.String()),
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		} else {
			attrs = append(attrs, slog.Int("status", resp.StatusCode))
		}
		logging.From(ctx).Warn("retrying GitHub request", attrs...)

		if err := x.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (x *RetryTransport) backoff(attempt int) time.Duration {
	return x.baseDelay << attempt
}

func (x *RetryTransport) retryAfter(header http.Header) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	if header.Get("X-RateLimit-Remaining") == "0" {
		if v := header.Get("X-RateLimit-Reset"); v != "" {
			if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
				if d := time.Unix(reset, 0).Sub(x.now()); d > 0 {
					return d
				}
			}
		}
	}

	return 0
}

func retryableResponse(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	case http.StatusForbidden:
		return resp.Header.Get("Retry-After") != "" || resp.Header.Get("X-RateLimit-Remaining") == "0"
	default:
		return false
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
