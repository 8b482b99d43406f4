package history

import (
	"context"
	"sort"
	"sync"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]*Design
	stamp
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]*Design), stamp: defaultStamp()}
}

func (m *MemoryStore) Save(_ context.Context, name string, blocks []page.Block) (string, error) {
	d, err := m.design(name, blocks)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.designs[d.ID] = d
	return d.ID, nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Design, error) {
	m.mu.RLock()
	d, ok := m.designs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	blocks, err := page.CloneBlocks(d.Blocks)
	if err != nil {
		return nil, err
	}
	out := *d
	out.Blocks = blocks
	return &out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.designs[id]; !ok {
		return ErrNotFound
	}
	delete(m.designs, id)
	return nil
}

func (m *MemoryStore) Duplicate(ctx context.Context, id string) (string, error) {
	d, err := m.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Save(ctx, d.Name+copySuffix, d.Blocks)
}

func (m *MemoryStore) List(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	out := make([]Summary, 0, len(m.designs))
	for _, d := range m.designs {
		out = append(out, summarize(d))
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
