package models

import "time"

// BuyerActivity is derived per buyer from their quote and order rows on
// every dashboard load. It is never persisted.
type BuyerActivity struct {
	BuyerID          int       `json:"buyer_id"`
	BuyerName        string    `json:"buyer_name"`
	Company          string    `json:"company,omitempty"`
	TotalQuotes      int       `json:"total_quotes"`
	InterestedQuotes int       `json:"interested_quotes"`
	ConvertedOrders  int       `json:"converted_orders"`
	TotalValue       float64   `json:"total_value"`
	LastActivityAt   time.Time `json:"last_activity_at"`
	DaysSinceContact int       `json:"days_since_contact"`
	InterestLevel    string    `json:"interest_level"`
	FollowUpNeeded   bool      `json:"follow_up_needed"`
}

// FunnelStats is the admin conversion funnel: quote volume by status plus
// the conversion rate into orders.
type FunnelStats struct {
	TotalQuotes     int     `json:"total_quotes"`
	DraftQuotes     int     `json:"draft_quotes"`
	PendingQuotes   int     `json:"pending_quotes"`
	ConvertedQuotes int     `json:"converted_quotes"`
	TotalOrders     int     `json:"total_orders"`
	ActiveOrders    int     `json:"active_orders"`
	CompletedOrders int     `json:"completed_orders"`
	ConversionRate  float64 `json:"conversion_rate"`
	TotalOrderValue float64 `json:"total_order_value"`
}

// StatusCount is one slice of a status-distribution chart.
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// BuyerDashboard is the single-call payload for the buyer dashboard page.
type BuyerDashboard struct {
	Quotes   []*Quote       `json:"quotes"`
	Orders   []*Order       `json:"orders"`
	Activity *BuyerActivity `json:"activity"`
}

// AdminDashboard is the single-call payload for the admin dashboard page.
type AdminDashboard struct {
	Funnel         FunnelStats      `json:"funnel"`
	OrdersByStatus []StatusCount    `json:"orders_by_status"`
	Leads          []*BuyerActivity `json:"leads"`
}
