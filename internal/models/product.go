package models

import "time"

// Product is a marketplace catalog item.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ProductType string    `json:"product_type"`
	Description string    `json:"description,omitempty"`
	BasePrice   float64   `json:"base_price"`
	MinOrderQty int       `json:"min_order_qty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SupplierID  *int      `json:"supplier_id,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	ProductType string  `json:"product_type"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	MinOrderQty int     `json:"min_order_qty"`
	SupplierID  *int    `json:"supplier_id"`
}
