package completion

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/metrics"
)

// Weighted pairs a client with its share of traffic.
type Weighted struct {
	Client Client
	Weight float64
}

// Router spreads requests across providers by weight, retries each one
// and falls through to the others before giving up with ErrUnavailable.
// Requests carrying the same SessionID run one at a time.
type Router struct {
	routes   []Weighted
	attempts uint
	delay    time.Duration
	random   func() float64
	defaults Request
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*sessionLock
}

type sessionLock struct {
	ch   chan struct{}
	refs int
}

type RouterOption func(*Router)

func WithRetry(attempts uint, delay time.Duration) RouterOption {
	return func(r *Router) {
		if attempts > 0 {
			r.attempts = attempts
		}
		r.delay = delay
	}
}

// WithRandom replaces the source used to pick the first provider.
func WithRandom(f func() float64) RouterOption {
	return func(r *Router) {
		r.random = f
	}
}

// WithDefaults sets the sampling used when a request leaves it unset.
func WithDefaults(temperature float64, maxTokens int) RouterOption {
	return func(r *Router) {
		r.defaults.Temperature = temperature
		r.defaults.MaxTokens = maxTokens
	}
}

func NewRouter(routes []Weighted, log *logger.Logger, opts ...RouterOption) *Router {
	r := &Router{
		attempts: 2,
		delay:    500 * time.Millisecond,
		random:   rand.Float64,
		log:      logger.OrNop(log),
		sessions: make(map[string]*sessionLock),
	}
	for _, w := range routes {
		if w.Client != nil && w.Weight > 0 {
			r.routes = append(r.routes, w)
		}
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Router) Name() string { return "hybrid" }

// Enabled reports whether any provider is configured.
func (r *Router) Enabled() bool { return len(r.routes) > 0 }

func (r *Router) Complete(ctx context.Context, req Request) (string, error) {
	if len(r.routes) == 0 {
		return "", ErrUnavailable
	}
	if req.SessionID != "" {
		release, err := r.lock(ctx, req.SessionID)
		if err != nil {
			return "", err
		}
		defer release()
	}
	if req.Temperature <= 0 {
		req.Temperature = r.defaults.Temperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = r.defaults.MaxTokens
	}

	var errs []error
	for _, c := range r.order() {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		text, err := r.try(ctx, c, req)
		if err == nil {
			metrics.CompletionRequests.WithLabelValues(c.Name(), "ok").Inc()
			return text, nil
		}
		metrics.CompletionRequests.WithLabelValues(c.Name(), "error").Inc()
		r.log.Warn("completion provider failed", "provider", c.Name(), "error", err)
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

func (r *Router) try(ctx context.Context, c Client, req Request) (string, error) {
	var text string
	err := retry.Do(
		func() error {
			out, err := c.Complete(ctx, req)
			if err != nil {
				return err
			}
			text = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
	)
	return text, err
}

// order returns the weighted pick first, then the rest in configured order.
func (r *Router) order() []Client {
	var total float64
	for _, w := range r.routes {
		total += w.Weight
	}
	pick := 0
	x := r.random() * total
	for i, w := range r.routes {
		if x < w.Weight {
			pick = i
			break
		}
		x -= w.Weight
		pick = i
	}

	out := []Client{r.routes[pick].Client}
	for i, w := range r.routes {
		if i != pick {
			out = append(out, w.Client)
		}
	}
	return out
}

func (r *Router) lock(ctx context.Context, id string) (func(), error) {
	r.mu.Lock()
	l, ok := r.sessions[id]
	if !ok {
		l = &sessionLock{ch: make(chan struct{}, 1)}
		r.sessions[id] = l
	}
	l.refs++
	r.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		r.unref(id, l)
		return nil, ctx.Err()
	}
	return func() {
		<-l.ch
		r.unref(id, l)
	}, nil
}

func (r *Router) unref(id string, l *sessionLock) {
	r.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
}
