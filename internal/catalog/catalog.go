// Package catalog is the read-only product collaborator the storefront
// grid reads from. It is deliberately separate from the checkout write
// path, which never consults it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-cart-checkout/internal/database"
	"github.com/safar/go-cart-checkout/internal/models"
)

type Page struct {
	Items      []models.Product `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListProducts returns products newest-first, the order the storefront
// shows them in.
func ListProducts(ctx context.Context, db *sql.DB, page, pageSize int) (*Page, error) {
	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, name, description, price, image_url, rating, created_at
		FROM products
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var description, imageURL sql.NullString
		err := rows.Scan(&p.ID, &p.Name, &description, &p.Price, &imageURL, &p.Rating, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Description = description.String
		p.ImageURL = imageURL.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &Page{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func GetProduct(ctx context.Context, db *sql.DB, id int64) (*models.Product, error) {
	p := &models.Product{}
	var description, imageURL sql.NullString

	query := `
		SELECT id, name, description, price, image_url, rating, created_at
		FROM products
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &description, &p.Price, &imageURL, &p.Rating, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	p.Description = description.String
	p.ImageURL = imageURL.String
	return p, nil
}
