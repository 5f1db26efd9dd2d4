package checkout

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/safar/go-cart-checkout/internal/backend"
	"github.com/safar/go-cart-checkout/internal/models"
	"github.com/safar/go-cart-checkout/internal/notify"
)

// mockBackend implements backend.OrderBackend and backend.Compensator,
// recording call order and allowing per-step failure injection.
type mockBackend struct {
	mu    sync.Mutex
	calls []string

	customerErr error
	orderErr    error
	itemsErr    error
	paymentErr  error

	customerID int64
	orderID    int64

	customerReq backend.CreateCustomerRequest
	orderReq    backend.CreateOrderRequest
	itemReqs    []backend.OrderItemRequest
	paymentReq  backend.CreatePaymentRequest

	// blockCustomer, when set, stalls CreateCustomer until released.
	blockCustomer chan struct{}
}

func newMockBackend() *mockBackend {
	return &mockBackend{customerID: 7, orderID: 42}
}

func (m *mockBackend) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *mockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockBackend) CreateCustomer(_ context.Context, req backend.CreateCustomerRequest) (int64, error) {
	m.record("create_customer")
	if m.blockCustomer != nil {
		<-m.blockCustomer
	}
	if m.customerErr != nil {
		return 0, m.customerErr
	}
	m.customerReq = req
	return m.customerID, nil
}

func (m *mockBackend) CreateOrder(_ context.Context, req backend.CreateOrderRequest) (int64, error) {
	m.record("create_order")
	if m.orderErr != nil {
		return 0, m.orderErr
	}
	m.orderReq = req
	return m.orderID, nil
}

func (m *mockBackend) CreateOrderItems(_ context.Context, items []backend.OrderItemRequest) error {
	m.record("create_order_items")
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.itemReqs = items
	return nil
}

func (m *mockBackend) CreatePayment(_ context.Context, req backend.CreatePaymentRequest) error {
	m.record("create_payment")
	if m.paymentErr != nil {
		return m.paymentErr
	}
	m.paymentReq = req
	return nil
}

func (m *mockBackend) DeleteOrder(_ context.Context, orderID int64) error {
	m.record("delete_order")
	return nil
}

func (m *mockBackend) DeleteCustomer(_ context.Context, customerID int64) error {
	m.record("delete_customer")
	return nil
}

// stubCart implements Cart without dragging in a storage adapter.
type stubCart struct {
	mu      sync.Mutex
	items   []models.CartItem
	cleared bool
}

func newStubCart(items ...models.CartItem) *stubCart {
	return &stubCart{items: items}
}

func (c *stubCart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *stubCart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *stubCart) Clear(context.Context) {
	c.mu.Lock()
	c.items = nil
	c.cleared = true
	c.mu.Unlock()
}

func (c *stubCart) Cleared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleared
}

// recordingNotifier counts events per kind.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notify.Event) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Event, len(n.events))
	copy(out, n.events)
	return out
}
