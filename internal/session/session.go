// Package session persists intake conversations between turns.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/intake"
)

var ErrNotFound = errors.New("session not found")

const DefaultTTL = 24 * time.Hour

// Store keeps sessions by id. Get returns a copy; callers Put it back after
// mutating.
type Store interface {
	Get(ctx context.Context, id string) (*intake.Session, error)
	Put(ctx context.Context, s *intake.Session) error
	Delete(ctx context.Context, id string) error
}
