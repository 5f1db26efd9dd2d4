// Package notify carries checkout outcomes to whatever surfaces them to
// the user: the log, a message broker, or both.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	KindCheckoutSucceeded = "checkout_succeeded"
	KindCheckoutFailed    = "checkout_failed"
)

// Event is one checkout outcome with a human-readable message, suitable
// for a toast.
type Event struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	AttemptID string    `json:"attempt_id"`
	OrderID   int64     `json:"order_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivery is best effort; implementations log failures and move
// on rather than failing the checkout that already happened.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event Event) {
	fields := []zap.Field{
		zap.String("attempt_id", event.AttemptID),
		zap.String("message", event.Message),
	}
	if event.OrderID != 0 {
		fields = append(fields, zap.Int64("order_id", event.OrderID))
	}

	if event.Kind == KindCheckoutFailed {
		n.logger.Warn("checkout failed", fields...)
		return
	}
	n.logger.Info("checkout succeeded", fields...)
}

type multiNotifier []Notifier

// Multi fans one event out to every notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(ctx context.Context, event Event) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}
