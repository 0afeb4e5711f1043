package models

import "time"

// Order is a converted quote in production. Orders are never deleted; they
// reach a terminal status instead.
type Order struct {
	ID             int        `json:"id"`
	OrderNumber    string     `json:"order_number"`
	QuoteID        *int       `json:"quote_id,omitempty"`
	BuyerID        int        `json:"buyer_id"`
	SupplierID     *int       `json:"supplier_id,omitempty"`
	ProductType    string     `json:"product_type"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	BuyerPrice     float64    `json:"buyer_price"`
	SupplierPrice  float64    `json:"supplier_price"`
	DepositPaid    bool       `json:"deposit_paid"`
	TargetDelivery *time.Time `json:"target_delivery,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Derived, not persisted: overall progress from production stages plus
	// the status taxonomy label.
	Progress      int    `json:"progress"`
	ProgressLabel string `json:"progress_label"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type AssignSupplierRequest struct {
	SupplierID    int     `json:"supplier_id"`
	SupplierPrice float64 `json:"supplier_price"`
}

// OrderFilter narrows order list queries. Zero values mean no filter.
type OrderFilter struct {
	Status     string
	BuyerID    int
	SupplierID int
	Since      *time.Time
	Until      *time.Time
}
