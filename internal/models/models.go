package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product line in a cart. A cart holds at most one entry
// per product id; adding the same product again bumps Quantity instead.
type CartItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// ItemCandidate is the quantity-less product payload the UI sends when
// adding to a cart. Name, price and image are snapshotted on first add;
// the id alone is authoritative for merging.
type ItemCandidate struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Image     string
}

// ShippingForm is captured for the duration of a single checkout attempt
// and never persisted.
type ShippingForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
}

type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Rating      int             `json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Customer struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Payment struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Provider  string          `json:"provider"`
	CreatedAt time.Time       `json:"created_at"`
}

const (
	OrderStatusPaid      = "paid"
	PaymentStatusSuccess = "success"
)
