// Package backend defines the contract the checkout flow needs from the
// remote order store: four dependent writes, each returning the identifier
// the next write references. No reads, updates or queries belong here.
package backend

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/safar/go-cart-checkout/internal/models"
)

type CreateCustomerRequest struct {
	FullName        string
	Email           string
	ShippingAddress models.ShippingAddress
}

type CreateOrderRequest struct {
	CustomerID  int64
	TotalAmount decimal.Decimal
	Status      string
}

type OrderItemRequest struct {
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

type CreatePaymentRequest struct {
	OrderID  int64
	Amount   decimal.Decimal
	Status   string
	Provider string
}

type OrderBackend interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (int64, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error)
	CreateOrderItems(ctx context.Context, items []OrderItemRequest) error
	CreatePayment(ctx context.Context, req CreatePaymentRequest) error
}

// Compensator is implemented by backends that can undo earlier checkout
// writes after a later step fails. Deleting an order removes its item and
// payment rows with it.
type Compensator interface {
	DeleteOrder(ctx context.Context, orderID int64) error
	DeleteCustomer(ctx context.Context, customerID int64) error
}
