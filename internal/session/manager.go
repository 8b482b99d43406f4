package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/intake"
)

// Manager runs intake turns against a Store. Turns for one session are
// applied one at a time.
type Manager struct {
	store  Store
	engine *intake.Engine
	newID  func() string

	mu    sync.Mutex
	locks map[string]*turnLock
}

type turnLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, engine *intake.Engine) *Manager {
	return &Manager{
		store:  store,
		engine: engine,
		newID:  uuid.NewString,
		locks:  make(map[string]*turnLock),
	}
}

// Start opens a session. An empty id gets a fresh one.
func (m *Manager) Start(ctx context.Context, id string) (*intake.Session, intake.Reply, error) {
	if id == "" {
		id = m.newID()
	}
	unlock := m.lock(id)
	defer unlock()

	s, reply := m.engine.Start(id)
	if err := m.store.Put(ctx, s); err != nil {
		return nil, intake.Reply{}, fmt.Errorf("failed to save session: %w", err)
	}
	return s, reply, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*intake.Session, error) {
	return m.store.Get(ctx, id)
}

// Send applies one user message to session id.
func (m *Manager) Send(ctx context.Context, id, text string) (*intake.Session, intake.Reply, error) {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, intake.Reply{}, err
	}
	reply, err := m.engine.Reply(ctx, s, text)
	if err != nil {
		return nil, intake.Reply{}, err
	}
	if err := m.store.Put(ctx, s); err != nil {
		return nil, intake.Reply{}, fmt.Errorf("failed to save session: %w", err)
	}
	return s, reply, nil
}

// Resume returns session id, opening it first when it does not exist.
// created reports whether the greeting was just issued.
func (m *Manager) Resume(ctx context.Context, id string) (s *intake.Session, reply intake.Reply, created bool, err error) {
	s, err = m.store.Get(ctx, id)
	if err == nil {
		return s, intake.Reply{}, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, intake.Reply{}, false, err
	}
	s, reply, err = m.Start(ctx, id)
	return s, reply, err == nil, err
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &turnLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
