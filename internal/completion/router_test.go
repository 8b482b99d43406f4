package completion

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
)

type stubClient struct {
	name  string
	reply string
	err   error
	calls atomic.Int32
}

func (s *stubClient) Name() string { return s.name }

func (s *stubClient) Complete(context.Context, Request) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func fixed(x float64) func() float64 { return func() float64 { return x } }

func TestRouterWeightedPick(t *testing.T) {
	deepseek := &stubClient{name: "deepseek", reply: "from deepseek"}
	openai := &stubClient{name: "openai", reply: "from openai"}
	routes := []Weighted{{deepseek, 80}, {openai, 20}}

	tests := []struct {
		roll float64
		want string
	}{
		{0.0, "from deepseek"},
		{0.79, "from deepseek"},
		{0.8, "from openai"},
		{0.99, "from openai"},
	}
	for _, tt := range tests {
		r := NewRouter(routes, nil, WithRandom(fixed(tt.roll)), WithRetry(1, 0))
		got, err := r.Complete(context.Background(), Request{Prompt: "hola"})
		if err != nil {
			t.Fatalf("roll %.2f: Complete() error = %v", tt.roll, err)
		}
		if got != tt.want {
			t.Errorf("roll %.2f: got %q, want %q", tt.roll, got, tt.want)
		}
	}
}

func TestRouterFallsBackAfterRetries(t *testing.T) {
	failing := &stubClient{name: "deepseek", err: errors.New("boom")}
	healthy := &stubClient{name: "openai", reply: "ok"}
	r := NewRouter([]Weighted{{failing, 80}, {healthy, 20}}, nil, WithRandom(fixed(0)), WithRetry(3, time.Millisecond))

	got, err := r.Complete(context.Background(), Request{Prompt: "hola"})
	if err != nil || got != "ok" {
		t.Fatalf("Complete() = %q, %v", got, err)
	}
	if n := failing.calls.Load(); n != 3 {
		t.Errorf("failing provider called %d times, want 3", n)
	}
}

func TestRouterUnrecoverableSkipsRetries(t *testing.T) {
	bad := &stubClient{name: "openai", err: retry.Unrecoverable(errors.New("401"))}
	r := NewRouter([]Weighted{{bad, 1}}, nil, WithRetry(5, time.Millisecond))

	_, err := r.Complete(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if n := bad.calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestRouterNoProviders(t *testing.T) {
	r := NewRouter(nil, nil)
	if r.Enabled() {
		t.Fatal("router without routes should be disabled")
	}
	if _, err := r.Complete(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v", err)
	}
}

type blockingClient struct {
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (b *blockingClient) Name() string { return "blocking" }

func (b *blockingClient) Complete(context.Context, Request) (string, error) {
	n := b.active.Add(1)
	for {
		m := b.maxSeen.Load()
		if n <= m || b.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	b.active.Add(-1)
	return "ok", nil
}

func TestRouterSerializesSession(t *testing.T) {
	c := &blockingClient{}
	r := NewRouter([]Weighted{{c, 1}}, nil, WithRetry(1, 0))

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Complete(context.Background(), Request{SessionID: "s1"})
		}()
	}
	wg.Wait()

	if got := c.maxSeen.Load(); got != 1 {
		t.Errorf("max concurrent calls for one session = %d, want 1", got)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) != 0 {
		t.Errorf("session locks leaked: %d", len(r.sessions))
	}
}

type recordingClient struct {
	got Request
}

func (r *recordingClient) Name() string { return "recording" }

func (r *recordingClient) Complete(_ context.Context, req Request) (string, error) {
	r.got = req
	return "ok", nil
}

func TestRouterAppliesDefaults(t *testing.T) {
	c := &recordingClient{}
	r := NewRouter([]Weighted{{c, 1}}, nil, WithDefaults(0.3, 1500))

	if _, err := r.Complete(context.Background(), Request{Prompt: "hola"}); err != nil {
		t.Fatal(err)
	}
	if c.got.Temperature != 0.3 || c.got.MaxTokens != 1500 {
		t.Errorf("defaults not applied: %+v", c.got)
	}

	if _, err := r.Complete(context.Background(), Request{Prompt: "hola", Temperature: 0.9, MaxTokens: 10}); err != nil {
		t.Fatal(err)
	}
	if c.got.Temperature != 0.9 || c.got.MaxTokens != 10 {
		t.Errorf("explicit values overridden: %+v", c.got)
	}
}
