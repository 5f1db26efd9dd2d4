package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/safar/go-cart-checkout/internal/storage"
)

// Manager hands out one Engine per session. Hydration from storage runs at
// most once per session even when requests race on first touch.
type Manager struct {
	store  storage.Adapter
	logger *zap.Logger

	mu      sync.Mutex
	engines map[string]*Engine
	sfg     singleflight.Group
}

func NewManager(store storage.Adapter, logger *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		engines: make(map[string]*Engine),
	}
}

func (m *Manager) Get(ctx context.Context, sessionID string) *Engine {
	m.mu.Lock()
	engine, ok := m.engines[sessionID]
	m.mu.Unlock()
	if ok {
		return engine
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.Lock()
		if existing, ok := m.engines[sessionID]; ok {
			m.mu.Unlock()
			return existing, nil
		}
		m.mu.Unlock()

		e := NewEngine(sessionID, m.store, m.logger)
		e.Load(ctx)

		m.mu.Lock()
		m.engines[sessionID] = e
		m.mu.Unlock()
		return e, nil
	})

	return v.(*Engine)
}
