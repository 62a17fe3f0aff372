package resources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"golang.org/x/time/rate"
)

// Provider executes one strategy against an external search capability.
type Provider interface {
	Search(ctx context.Context, st Strategy) (Response, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, st Strategy) (Response, error)

// Search calls f.
func (f ProviderFunc) Search(ctx context.Context, st Strategy) (Response, error) { return f(ctx, st) }

// Attempt is the outcome of invoking one strategy. A failed call carries Empty{Reason}
// and the same reason in Err.
type Attempt struct {
	Strategy Strategy
	Response Response
	Err      error
	Elapsed  time.Duration
}

// Invoker isolates provider failures: it never returns an error or panics past Invoke.
type Invoker struct {
	providers map[string]Provider
	limiters  map[string]*rate.Limiter
	timeout   time.Duration
}

// NewInvoker binds providers by key. Each provider gets its own rate limiter
// when cfg.ProviderRate is positive.
func NewInvoker(cfg Config, providers map[string]Provider) *Invoker {
	inv := &Invoker{
		providers: make(map[string]Provider, len(providers)),
		limiters:  make(map[string]*rate.Limiter, len(providers)),
		timeout:   cfg.ProviderTimeout,
	}
	for name, p := range providers {
		if p == nil {
			continue
		}
		inv.providers[name] = p
		if cfg.ProviderRate > 0 {
			inv.limiters[name] = rate.NewLimiter(rate.Limit(cfg.ProviderRate), max(1, int(cfg.ProviderRate)))
		}
	}
	return inv
}

// Has reports whether a provider is registered under name.
func (inv *Invoker) Has(name string) bool {
	_, ok := inv.providers[name]
	return ok
}

type providerResult struct {
	resp Response
	err  error
}

// Invoke runs st with a bounded timeout and validates the response shape.
func (inv *Invoker) Invoke(ctx context.Context, st Strategy) Attempt {
	start := time.Now()
	engine.IncrStrategyRun()

	resp, err := inv.call(ctx, st)
	if err == nil {
		resp, err = validate(st.Kind, resp)
	}
	a := Attempt{Strategy: st, Response: resp, Err: err, Elapsed: time.Since(start)}
	if err == nil {
		return a
	}
	a.Response = Empty{Reason: err}

	switch {
	case errors.Is(err, ErrProviderTimeout):
		engine.IncrProviderTimeout()
		slog.Warn("resources: provider timed out",
			slog.String("strategy", st.Name), slog.String("provider", st.Provider),
			slog.Duration("elapsed", a.Elapsed))
	case errors.Is(err, ErrNoCanonicalLink):
		slog.Debug("resources: provider returned no usable links",
			slog.String("strategy", st.Name), slog.String("provider", st.Provider))
	default:
		engine.IncrProviderFailure()
		slog.Warn("resources: provider failed",
			slog.String("strategy", st.Name), slog.String("provider", st.Provider),
			slog.Any("reason", err))
	}
	return a
}

func (inv *Invoker) call(ctx context.Context, st Strategy) (Response, error) {
	p, ok := inv.providers[st.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, st.Provider)
	}
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}
	if lim := inv.limiters[st.Provider]; lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %v", ErrProviderTimeout, err)
		}
	}

	done := make(chan providerResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- providerResult{err: fmt.Errorf("%w: panic: %v", ErrProviderFailed, r)}
			}
		}()
		resp, err := p.Search(ctx, st)
		done <- providerResult{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrProviderTimeout, ctx.Err())
	case r := <-done:
		switch {
		case r.err == nil:
			return r.resp, nil
		case errors.Is(r.err, ErrProviderFailed):
			return nil, r.err
		case errors.Is(r.err, context.DeadlineExceeded), errors.Is(r.err, context.Canceled):
			return nil, fmt.Errorf("%w: %v", ErrProviderTimeout, r.err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrProviderFailed, r.err)
		}
	}
}

// validate rejects responses that carry no canonical link of the expected kind.
func validate(kind Kind, resp Response) (Response, error) {
	switch r := resp.(type) {
	case Structured:
		for _, rec := range r.Records {
			if _, _, ok := Canonical(kind, rec.URL); ok {
				return r, nil
			}
		}
		return nil, ErrNoCanonicalLink
	case Prose:
		if hasCanonicalLink(kind, r.Text) {
			return r, nil
		}
		return nil, ErrNoCanonicalLink
	case Empty:
		if r.Reason != nil {
			return nil, r.Reason
		}
		return nil, ErrNoCanonicalLink
	default:
		return nil, ErrNoCanonicalLink
	}
}
