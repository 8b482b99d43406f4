// Package completion wraps the opaque text-completion services used for
// conversation turns and landing copy.
package completion

import (
	"context"
	"errors"
)

// ErrUnavailable means no provider produced a reply. Callers should treat
// it as retryable.
var ErrUnavailable = errors.New("completion service unavailable")

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
)

type Request struct {
	System      string
	Prompt      string
	SessionID   string
	Temperature float64
	MaxTokens   int
}

func (r Request) withDefaults() Request {
	if r.Temperature <= 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// Client returns natural-language text for a request.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}
