package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/safar/go-cart-checkout/internal/database"
)

// Postgres writes order records straight to the tables the storefront
// schema defines. Each exported method is one checkout step; there is no
// transaction spanning steps.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (int64, error) {
	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return 0, fmt.Errorf("marshal shipping address: %w", err)
	}

	var id int64
	err = p.db.QueryRowContext(ctx,
		`INSERT INTO customers (full_name, email, shipping_address, created_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id`,
		req.FullName, req.Email, address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}

	return id, nil
}

func (p *Postgres) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	var id int64
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, total_amount, status, created_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id`,
		req.CustomerID, req.TotalAmount, req.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	return id, nil
}

// CreateOrderItems inserts all rows of the order in one transaction so a
// mid-batch failure never leaves a half-written item list.
func (p *Postgres) CreateOrderItems(ctx context.Context, items []OrderItemRequest) error {
	return database.WithRetry(ctx, p.db, database.TxOptions{
		IsolationLevel: sql.LevelReadCommitted,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		for _, item := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, created_at)
				 VALUES ($1, $2, $3, $4, $5, NOW())`,
				item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		return nil
	})
}

func (p *Postgres) CreatePayment(ctx context.Context, req CreatePaymentRequest) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO payments (order_id, amount, status, provider, created_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		req.OrderID, req.Amount, req.Status, req.Provider)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

// DeleteOrder removes the order and its dependent rows explicitly rather
// than relying on cascades, so compensation behaves the same on schemas
// without them.
func (p *Postgres) DeleteOrder(ctx context.Context, orderID int64) error {
	return database.WithTransaction(ctx, p.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE order_id = $1`, orderID); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

func (p *Postgres) DeleteCustomer(ctx context.Context, customerID int64) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
