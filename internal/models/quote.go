package models

import "time"

// Quote is a buyer's priced request for a production run. Once converted to
// an order it is immutable except for the lead/archival fields.
type Quote struct {
	ID             int      `json:"id"`
	QuoteNumber    string   `json:"quote_number"`
	BuyerID        *int     `json:"buyer_id,omitempty"` // nil for anonymous form submissions
	ContactName    string   `json:"contact_name"`
	ContactEmail   string   `json:"contact_email"`
	ContactPhone   string   `json:"contact_phone,omitempty"`
	Company        string   `json:"company,omitempty"`
	ProductType    string   `json:"product_type"`
	Fabric         string   `json:"fabric,omitempty"`
	Customizations []string `json:"customizations,omitempty"`
	Quantity       int      `json:"quantity"`
	Notes          string   `json:"notes,omitempty"`

	// Computed breakdown (echoed from the quote generator)
	BaseUnitPrice         float64 `json:"base_unit_price"`
	ComplexityFactor      float64 `json:"complexity_factor"`
	VolumeDiscount        float64 `json:"volume_discount"`
	FinalUnitPrice        float64 `json:"final_unit_price"`
	TotalPrice            float64 `json:"total_price"`
	EstimatedDeliveryDays int     `json:"estimated_delivery_days"`

	Status           string     `json:"status"` // 'draft', 'pending', 'converted'
	LeadStatus       string     `json:"lead_status,omitempty"`
	ConvertedOrderID *int       `json:"converted_order_id,omitempty"`
	LastActivityAt   *time.Time `json:"last_activity_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateQuoteRequest is the buyer-facing quote form payload.
type CreateQuoteRequest struct {
	ContactName    string           `json:"contact_name"`
	ContactEmail   string           `json:"contact_email"`
	ContactPhone   string           `json:"contact_phone"`
	Company        string           `json:"company"`
	ProductType    string           `json:"product_type"`
	Fabric         string           `json:"fabric"`
	Customizations []string         `json:"customizations"`
	Quantity       int              `json:"quantity"`
	Notes          string           `json:"notes"`
	Attachments    []FileAttachment `json:"attachments,omitempty"`
}

// FileAttachment carries an inline-encoded file forwarded with a form.
type FileAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
}

type UpdateQuoteStatusRequest struct {
	Status     string `json:"status"`
	LeadStatus string `json:"lead_status,omitempty"`
}

// QuoteFilter narrows quote list queries. Zero values mean no filter.
type QuoteFilter struct {
	Status      string
	BuyerID     int
	ProductType string
	Since       *time.Time
	Until       *time.Time
}
