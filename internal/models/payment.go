package models

import "time"

// DepositTransaction records a Razorpay deposit collected when a quote is
// converted to an order.
type DepositTransaction struct {
	ID              int        `json:"id"`
	OrderID         int        `json:"order_id"`
	RazorpayOrderID string     `json:"razorpay_order_id"`
	PaymentID       string     `json:"payment_id,omitempty"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"` // 'created', 'paid', 'failed'
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
