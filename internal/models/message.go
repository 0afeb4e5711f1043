package models

import "time"

// Message is a buyer/supplier/admin conversation entry, optionally carrying
// an uploaded attachment.
type Message struct {
	ID            int        `json:"id"`
	OrderID       *int       `json:"order_id,omitempty"`
	SenderID      int        `json:"sender_id"`
	RecipientID   int        `json:"recipient_id"`
	Body          string     `json:"body"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SendMessageRequest struct {
	OrderID       *int   `json:"order_id"`
	RecipientID   int    `json:"recipient_id"`
	Body          string `json:"body"`
	AttachmentURL string `json:"attachment_url"`
}
