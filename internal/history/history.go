// Package history stores named snapshots of generated pages.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

var ErrNotFound = errors.New("design not found")

const copySuffix = " (copia)"

type Design struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Blocks    []page.Block `json:"blocks"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Summary is a Design without its blocks, for listings.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Blocks    int       `json:"blocks"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	Save(ctx context.Context, name string, blocks []page.Block) (string, error)
	Load(ctx context.Context, id string) (*Design, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (string, error)
	// List returns the most recently updated designs first.
	List(ctx context.Context) ([]Summary, error)
}

// stamp is shared by the store implementations for ids and timestamps.
type stamp struct {
	newID func() string
	now   func() time.Time
}

func defaultStamp() stamp {
	return stamp{newID: uuid.NewString, now: time.Now}
}

func (s stamp) design(name string, blocks []page.Block) (*Design, error) {
	if name == "" {
		name = "Sin título"
	}
	cloned, err := page.CloneBlocks(blocks)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return &Design{ID: s.newID(), Name: name, Blocks: cloned, CreatedAt: now, UpdatedAt: now}, nil
}

func summarize(d *Design) Summary {
	return Summary{ID: d.ID, Name: d.Name, Blocks: len(d.Blocks), UpdatedAt: d.UpdatedAt}
}
