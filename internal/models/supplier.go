package models

import "time"

type Supplier struct {
	ID           int       `json:"id"`
	UserID       *int      `json:"user_id,omitempty"` // portal account of the supplier's operator
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Country      string    `json:"country"`
	Specialties  []string  `json:"specialties,omitempty"` // product types they produce
	MinOrderQty  int       `json:"min_order_qty"`
	LeadTimeDays int       `json:"lead_time_days"`
	Rating       float64   `json:"rating"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateSupplierRequest struct {
	UserID       *int     `json:"user_id"`
	Name         string   `json:"name"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`
	Country      string   `json:"country"`
	Specialties  []string `json:"specialties"`
	MinOrderQty  int      `json:"min_order_qty"`
	LeadTimeDays int      `json:"lead_time_days"`
}
