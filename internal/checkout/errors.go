package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrSubmissionInFlight = errors.New("checkout submission already in flight")
)

// ValidationError rejects a shipping form before any backend write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StepError wraps a backend failure with the step it happened in. Steps
// before it are already committed; whether they stay depends on the
// compensation policy.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("checkout step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

const (
	StepCreateCustomer   = "create_customer"
	StepCreateOrder      = "create_order"
	StepCreateOrderItems = "create_order_items"
	StepCreatePayment    = "create_payment"
)
