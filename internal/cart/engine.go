// Package cart owns the in-memory cart state for each session. All
// mutation flows through an Engine; nothing else touches the item list or
// its persisted snapshot.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/models"
	"github.com/safar/go-cart-checkout/internal/storage"
)

// Engine holds one cart. Items keep insertion order; there is at most one
// entry per product id. Every mutation overwrites the full persisted
// snapshot; snapshot writes that fail are logged and swallowed so
// mutations never error out.
type Engine struct {
	key    string
	store  storage.Adapter
	logger *zap.Logger

	mu     sync.Mutex
	items  []models.CartItem
	loaded bool
}

func NewEngine(key string, store storage.Adapter, logger *zap.Logger) *Engine {
	return &Engine{
		key:    key,
		store:  store,
		logger: logger,
	}
}

// Load rehydrates the cart from its persisted snapshot. A missing or
// malformed snapshot leaves the cart empty; Load never fails. Repeated
// calls after the first are no-ops.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return
	}
	e.loaded = true

	data, err := e.store.Read(ctx, e.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		e.logger.Warn("cart snapshot read failed, starting empty",
			zap.String("key", e.key), zap.Error(err))
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		e.logger.Warn("cart snapshot malformed, starting empty",
			zap.String("key", e.key), zap.Error(err))
		return
	}

	e.items = sanitize(items)
}

// AddItem merges by product id: a known id bumps quantity by one and
// leaves the stored name, price and image alone; an unknown id appends a
// new line with quantity 1. A negative price is coerced to zero, never
// rejected.
func (e *Engine) AddItem(ctx context.Context, candidate models.ItemCandidate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == candidate.ID {
			e.items[i].Quantity++
			e.persistLocked(ctx)
			return
		}
	}

	price := candidate.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}

	e.items = append(e.items, models.CartItem{
		ID:        candidate.ID,
		Name:      candidate.Name,
		UnitPrice: price,
		Image:     candidate.Image,
		Quantity:  1,
	})
	e.persistLocked(ctx)
}

// RemoveItem deletes the whole line for id. An absent id is a no-op, not
// an error.
func (e *Engine) RemoveItem(ctx context.Context, id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	for _, item := range e.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	e.items = kept
	e.persistLocked(ctx)
}

// Clear empties the cart and persists the empty snapshot.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.persistLocked(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (e *Engine) Items() []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// Total is recomputed on every call; it is never cached.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, item := range e.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount is the sum of quantities, recomputed on every call.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

func (e *Engine) persistLocked(ctx context.Context) {
	items := e.items
	if items == nil {
		items = []models.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		e.logger.Error("cart snapshot marshal failed",
			zap.String("key", e.key), zap.Error(err))
		return
	}

	if err := e.store.Write(ctx, e.key, data); err != nil {
		e.logger.Warn("cart snapshot write failed",
			zap.String("key", e.key), zap.Error(err))
	}
}

// sanitize drops lines a well-formed cart cannot contain: quantity below
// one or a negative price.
func sanitize(items []models.CartItem) []models.CartItem {
	var out []models.CartItem
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if item.UnitPrice.IsNegative() {
			item.UnitPrice = decimal.Zero
		}
		out = append(out, item)
	}
	return out
}
