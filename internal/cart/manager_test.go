package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/models"
	"github.com/safar/go-cart-checkout/internal/storage"
)

type countingAdapter struct {
	storage.Adapter
	reads atomic.Int64
}

func (c *countingAdapter) Read(ctx context.Context, key string) ([]byte, error) {
	c.reads.Add(1)
	return c.Adapter.Read(ctx, key)
}

func TestManagerReturnsSameEngine(t *testing.T) {
	m := NewManager(storage.NewMemory(), zap.NewNop())
	ctx := context.Background()

	first := m.Get(ctx, "session-a")
	second := m.Get(ctx, "session-a")
	other := m.Get(ctx, "session-b")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManagerHydratesOncePerSession(t *testing.T) {
	store := &countingAdapter{Adapter: storage.NewMemory()}
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	engines := make([]*Engine, 20)
	for i := range engines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engines[i] = m.Get(ctx, "session-a")
		}(i)
	}
	wg.Wait()

	for _, e := range engines[1:] {
		assert.Same(t, engines[0], e)
	}
	assert.Equal(t, int64(1), store.reads.Load())
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(storage.NewMemory(), zap.NewNop())
	ctx := context.Background()

	a := m.Get(ctx, "session-a")
	b := m.Get(ctx, "session-b")

	a.AddItem(ctx, models.ItemCandidate{ID: 1, Name: "Lamp"})

	require.Equal(t, 1, a.ItemCount())
	assert.Equal(t, 0, b.ItemCount())
}
