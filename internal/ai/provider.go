package ai

import (
	"context"

	"stitch-backend/internal/models"
	"stitch-backend/internal/pricing"
)

// QuoteGenerator prices a quote request. The production implementation calls
// the hosted AI endpoint; callers fall back to the local pricing engine when
// it fails.
type QuoteGenerator interface {
	GenerateQuote(ctx context.Context, req *models.CreateQuoteRequest) (*pricing.Breakdown, error)
}

// AssistantReply is the conversational assistant's turn output.
type AssistantReply struct {
	Message        string            `json:"message"`
	QuickReplies   []string          `json:"quick_replies,omitempty"`
	ExtractedData  map[string]string `json:"extracted_data,omitempty"`
	LeadScore      int               `json:"lead_score"`
	ConversationID string            `json:"conversation_id"`
}

type AssistantMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Assistant drives the buyer-facing conversational quote helper.
type Assistant interface {
	Chat(ctx context.Context, messages []AssistantMessage, sessionID string) (*AssistantReply, error)
}

// ImageResult is a generated product image reference.
type ImageResult struct {
	URL string `json:"url"`
}

// ImageGenerator produces marketing images for catalog products.
type ImageGenerator interface {
	GenerateProductImage(ctx context.Context, product *models.Product) (*ImageResult, error)
}
