package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig is the backoff policy for one provider's HTTP calls.
type RetryConfig struct {
	// Provider labels retry logs and the StatusError returned by RetryHTTP.
	Provider    string
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig keeps provider retries inside the per-strategy timeout.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  2,
	InitialWait: 300 * time.Millisecond,
	MaxWait:     2 * time.Second,
	Multiplier:  2.0,
}

// For returns a copy of rc labelled with provider.
func (rc RetryConfig) For(provider string) RetryConfig {
	rc.Provider = provider
	return rc
}

// backoff is the wait before retry number attempt+1. A server-sent Retry-After
// raises it, but never past MaxWait.
func (rc RetryConfig) backoff(attempt int, err error) time.Duration {
	wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
	var se *StatusError
	if errors.As(err, &se) && se.RetryAfter > wait {
		wait = se.RetryAfter
	}
	return min(wait, rc.MaxWait)
}

// StatusError reports a non-success HTTP status from a provider.
type StatusError struct {
	StatusCode int
	Provider   string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("http %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: http %d %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
}

// RetryDo calls fn until it succeeds, fails permanently, or MaxRetries retries are spent.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return zero, err
		}
		if attempt == rc.MaxRetries {
			break
		}

		wait := rc.backoff(attempt, err)
		slog.Debug("provider retry",
			slog.String("provider", rc.Provider),
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.Any("error", err))
		metrics.ProviderRetries.Add(1)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// RetryHTTP sends the request built by fn, retrying throttled and 5xx responses.
// Any other response is returned to the caller unread.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return RetryDo(ctx, rc, func() (*http.Response, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if IsRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, &StatusError{
				StatusCode: resp.StatusCode,
				Provider:   rc.Provider,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
		}
		return resp, nil
	})
}

// parseRetryAfter reads the delay-seconds form of Retry-After. HTTP dates yield 0.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// net.Error includes OpError, so check after OpError.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// IsRetryableStatus reports whether a provider status is throttling or a transient server fault.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
