// Package checkout drives the submission of a cart against the order
// backend: validate the form, then four sequential writes (customer →
// order → order items → payment), each feeding the next its generated id.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/backend"
	"github.com/safar/go-cart-checkout/internal/models"
	"github.com/safar/go-cart-checkout/internal/notify"
)

// Cart is the capability the orchestrator receives instead of reaching
// into ambient cart state: a snapshot of the lines, the derived total, and
// the engine's own clear operation.
type Cart interface {
	Items() []models.CartItem
	Total() decimal.Decimal
	Clear(ctx context.Context)
}

// CompensationPolicy decides what happens to steps 1..k-1 when step k
// fails. The default preserves the partial rows; Compensate deletes them
// in reverse order, best effort.
type CompensationPolicy int

const (
	PolicyKeepPartial CompensationPolicy = iota
	PolicyCompensate
)

type Receipt struct {
	AttemptID  string          `json:"attempt_id"`
	CustomerID int64           `json:"customer_id"`
	OrderID    int64           `json:"order_id"`
	Total      decimal.Decimal `json:"total"`
}

type Option func(*Orchestrator)

func WithPolicy(policy CompensationPolicy) Option {
	return func(o *Orchestrator) { o.policy = policy }
}

func WithPaymentProvider(provider string) Option {
	return func(o *Orchestrator) { o.provider = provider }
}

// Orchestrator allows one in-flight submission at a time; a second Submit
// while one runs returns ErrSubmissionInFlight without touching the
// backend.
type Orchestrator struct {
	backend  backend.OrderBackend
	notifier notify.Notifier
	logger   *zap.Logger
	policy   CompensationPolicy
	provider string

	mu     sync.Mutex
	status Status
}

func New(b backend.OrderBackend, n notify.Notifier, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:  b,
		notifier: n,
		logger:   logger,
		provider: "mock_provider",
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Reset returns a terminal orchestrator to Idle, e.g. when the UI closes
// the checkout modal.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if CanTransitionTo(o.status, StatusIdle) {
		o.status = StatusIdle
	}
}

// Submit runs one checkout attempt. A validation failure or empty cart
// returns before any backend call and leaves no state behind. A backend
// failure at step k leaves steps 1..k-1 committed (unless compensation is
// on), keeps the cart intact for a retry, and reports through the
// notifier. Success clears the cart through its own operation and reports
// exactly once.
func (o *Orchestrator) Submit(ctx context.Context, form models.ShippingForm, cart Cart) (receipt *Receipt, err error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	// Uncategorized failures are reported like any backend failure, never
	// left to crash the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checkout panic: %v", r)
			o.fail(ctx, uuid.NewString(), err)
			receipt = nil
		}
	}()

	items := cart.Items()
	if len(items) == 0 {
		o.finish(StatusIdle)
		return nil, ErrEmptyCart
	}

	if err := validateForm(form); err != nil {
		o.finish(StatusIdle)
		return nil, err
	}

	attemptID := uuid.NewString()
	log := o.logger.With(zap.String("attempt_id", attemptID))
	total := cart.Total()

	receipt, err = o.run(ctx, log, form, items, total, attemptID)
	if err != nil {
		o.fail(ctx, attemptID, err)
		return nil, err
	}

	cart.Clear(ctx)
	o.finish(StatusSucceeded)
	o.notifier.Notify(ctx, notify.Event{
		Kind:      notify.KindCheckoutSucceeded,
		Message:   "Order placed successfully!",
		AttemptID: attemptID,
		OrderID:   receipt.OrderID,
		Timestamp: time.Now(),
	})
	log.Info("checkout completed",
		zap.Int64("order_id", receipt.OrderID),
		zap.String("total", total.String()))
	return receipt, nil
}

func (o *Orchestrator) run(ctx context.Context, log *zap.Logger, form models.ShippingForm, items []models.CartItem, total decimal.Decimal, attemptID string) (*Receipt, error) {
	customerID, err := o.backend.CreateCustomer(ctx, backend.CreateCustomerRequest{
		FullName: form.FullName,
		Email:    form.Email,
		ShippingAddress: models.ShippingAddress{
			Address: form.Address,
			City:    form.City,
			Zip:     form.Zip,
		},
	})
	if err != nil {
		return nil, &StepError{Step: StepCreateCustomer, Err: err}
	}
	log.Info("customer created", zap.Int64("customer_id", customerID))

	orderID, err := o.backend.CreateOrder(ctx, backend.CreateOrderRequest{
		CustomerID:  customerID,
		TotalAmount: total,
		Status:      models.OrderStatusPaid,
	})
	if err != nil {
		o.compensate(ctx, log, customerID, 0)
		return nil, &StepError{Step: StepCreateOrder, Err: err}
	}
	log.Info("order created", zap.Int64("order_id", orderID))

	itemReqs := make([]backend.OrderItemRequest, len(items))
	for i, item := range items {
		itemReqs[i] = backend.OrderItemRequest{
			OrderID:     orderID,
			ProductID:   item.ID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	if err := o.backend.CreateOrderItems(ctx, itemReqs); err != nil {
		o.compensate(ctx, log, customerID, orderID)
		return nil, &StepError{Step: StepCreateOrderItems, Err: err}
	}

	if err := o.backend.CreatePayment(ctx, backend.CreatePaymentRequest{
		OrderID:  orderID,
		Amount:   total,
		Status:   models.PaymentStatusSuccess,
		Provider: o.provider,
	}); err != nil {
		o.compensate(ctx, log, customerID, orderID)
		return nil, &StepError{Step: StepCreatePayment, Err: err}
	}

	return &Receipt{
		AttemptID:  attemptID,
		CustomerID: customerID,
		OrderID:    orderID,
		Total:      total,
	}, nil
}

// compensate undoes earlier writes in reverse order when the policy asks
// for it and the backend can. Failures here are logged, not propagated:
// the checkout already failed.
func (o *Orchestrator) compensate(ctx context.Context, log *zap.Logger, customerID, orderID int64) {
	if o.policy != PolicyCompensate {
		return
	}

	comp, ok := o.backend.(backend.Compensator)
	if !ok {
		log.Warn("compensation enabled but backend cannot compensate")
		return
	}

	if orderID != 0 {
		if err := comp.DeleteOrder(ctx, orderID); err != nil {
			log.Error("compensating order delete failed",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}
	if err := comp.DeleteCustomer(ctx, customerID); err != nil {
		log.Error("compensating customer delete failed",
			zap.Int64("customer_id", customerID), zap.Error(err))
	}
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	o.status = StatusSubmitting
	return nil
}

func (o *Orchestrator) finish(status Status) {
	o.mu.Lock()
	o.status = status
	o.mu.Unlock()
}

func (o *Orchestrator) fail(ctx context.Context, attemptID string, err error) {
	o.finish(StatusFailed)
	o.notifier.Notify(ctx, notify.Event{
		Kind:      notify.KindCheckoutFailed,
		Message:   failureMessage(err),
		AttemptID: attemptID,
		Timestamp: time.Now(),
	})
	o.logger.Warn("checkout failed",
		zap.String("attempt_id", attemptID), zap.Error(err))
}

// failureMessage surfaces the backend's own message when there is one.
func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Failed to place order"
	}
	return err.Error()
}
