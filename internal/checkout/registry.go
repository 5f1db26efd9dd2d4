package checkout

import (
	"sync"

	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/backend"
	"github.com/safar/go-cart-checkout/internal/notify"
)

// Registry hands out one Orchestrator per cart session so the
// single-submission guard holds per session, not per process.
type Registry struct {
	backend  backend.OrderBackend
	notifier notify.Notifier
	logger   *zap.Logger
	opts     []Option

	mu            sync.Mutex
	orchestrators map[string]*Orchestrator
}

func NewRegistry(b backend.OrderBackend, n notify.Notifier, logger *zap.Logger, opts ...Option) *Registry {
	return &Registry{
		backend:       b,
		notifier:      n,
		logger:        logger,
		opts:          opts,
		orchestrators: make(map[string]*Orchestrator),
	}
}

func (r *Registry) For(sessionID string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.orchestrators[sessionID]; ok {
		return o
	}

	o := New(r.backend, r.notifier, r.logger.With(zap.String("session_id", sessionID)), r.opts...)
	r.orchestrators[sessionID] = o
	return o
}
