// Package panel holds per-panel sessions: each bridges one UI surface to the
// shared recent list.
package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"emoji-panel/clipboard"
	"emoji-panel/recent"
)

var ErrNameTaken = errors.New("panel name already in use")
var ErrNotFound = errors.New("panel not found")

// Manager tracks the open panels of this process. All panels share one
// recent.Store.
type Manager struct {
	mu     sync.RWMutex
	panels map[string]*Panel
	store  *recent.Store
	clip   clipboard.Writer
	log    *zap.Logger
}

// NewManager returns a Manager whose panels promote into store and copy
// selections with clip. A nil clip disables clipboard writes.
func NewManager(store *recent.Store, clip clipboard.Writer, log *zap.Logger) *Manager {
	if clip == nil {
		clip = clipboard.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		panels: make(map[string]*Panel),
		store:  store,
		clip:   clip,
		log:    log,
	}
}

// Store returns the recent store shared by every panel.
func (m *Manager) Store() *recent.Store {
	return m.store
}

func (m *Manager) Create(name string) (*Panel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.panels {
		if p.Name == name {
			return nil, ErrNameTaken
		}
	}

	id := uuid.New().String()
	p := &Panel{
		ID:         id,
		Name:       name,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
		store:      m.store,
		clip:       m.clip,
		log:        m.log.With(zap.String("panel", id)),
		done:       make(chan struct{}),
	}
	m.panels[p.ID] = p
	m.log.Info("panel created", zap.String("panel", p.ID), zap.String("name", name))
	return p, nil
}

func (m *Manager) List() []*Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Panel, 0, len(m.panels))
	for _, p := range m.panels {
		list = append(list, p)
	}
	return list
}

func (m *Manager) Get(id string) (*Panel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.panels[id]
	return p, ok
}

// Close removes the panel and closes it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	p, ok := m.panels[id]
	if ok {
		delete(m.panels, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	p.Close()
	m.log.Info("panel closed", zap.String("panel", id))
	return nil
}

// CloseAll closes every panel; used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	panels := m.panels
	m.panels = make(map[string]*Panel)
	m.mu.Unlock()

	for _, p := range panels {
		p.Close()
	}
}

// CloseIdle closes every panel that has had no client attached for at
// least maxIdle as of now, and returns how many it closed.
func (m *Manager) CloseIdle(now time.Time, maxIdle time.Duration) int {
	var idle []string
	for _, p := range m.List() {
		if d, ok := p.idleFor(now); ok && d >= maxIdle {
			idle = append(idle, p.ID)
		}
	}
	closed := 0
	for _, id := range idle {
		if err := m.Close(id); err == nil {
			closed++
		}
	}
	return closed
}

// ReapIdle calls CloseIdle periodically until ctx is cancelled. Pages that
// vanish without closing their panel are cleaned up this way. A maxIdle of
// zero or less disables reaping.
func (m *Manager) ReapIdle(ctx context.Context, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	interval := maxIdle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.CloseIdle(now, maxIdle); n > 0 {
				m.log.Info("closed idle panels", zap.Int("count", n))
			}
		}
	}
}
