package ai

import (
	"context"
	"fmt"

	"stitch-backend/internal/models"
	"stitch-backend/internal/pricing"
)

// MockProvider serves deterministic responses when no AI endpoints are
// configured. Quote pricing uses the local engine, so mock quotes carry real
// breakdowns.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) GenerateQuote(_ context.Context, req *models.CreateQuoteRequest) (*pricing.Breakdown, error) {
	b := pricing.Quote(req.ProductType, req.Fabric, req.Customizations, req.Quantity)
	return &b, nil
}

func (m *MockProvider) Chat(_ context.Context, messages []AssistantMessage, sessionID string) (*AssistantReply, error) {
	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return &AssistantReply{
		Message:        fmt.Sprintf("Thanks! We received: %q. A sourcing specialist will follow up shortly.", last),
		QuickReplies:   []string{"Request a quote", "Talk to a specialist"},
		LeadScore:      50,
		ConversationID: sessionID,
	}, nil
}

func (m *MockProvider) GenerateProductImage(_ context.Context, product *models.Product) (*ImageResult, error) {
	return &ImageResult{URL: fmt.Sprintf("https://placehold.co/600x600?text=%s", product.ProductType)}, nil
}
