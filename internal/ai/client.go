package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stitch-backend/internal/config"
	"stitch-backend/internal/models"
	"stitch-backend/internal/pricing"
)

// Client calls the hosted AI endpoints. Every call carries a client-side
// timeout so a stuck upstream cannot hang a request forever.
type Client struct {
	quoteEndpoint     string
	assistantEndpoint string
	imageEndpoint     string
	apiKey            string
	httpClient        *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		quoteEndpoint:     cfg.AI.QuoteEndpoint,
		assistantEndpoint: cfg.AI.AssistantEndpoint,
		imageEndpoint:     cfg.AI.ImageEndpoint,
		apiKey:            cfg.AI.APIKey,
		httpClient:        &http.Client{Timeout: timeout},
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GenerateQuote sends the validated form payload to the quote endpoint and
// returns the computed breakdown.
func (c *Client) GenerateQuote(ctx context.Context, req *models.CreateQuoteRequest) (*pricing.Breakdown, error) {
	var breakdown pricing.Breakdown
	if err := c.post(ctx, c.quoteEndpoint, req, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// Chat forwards the conversation to the assistant endpoint.
func (c *Client) Chat(ctx context.Context, messages []AssistantMessage, sessionID string) (*AssistantReply, error) {
	payload := struct {
		Messages  []AssistantMessage `json:"messages"`
		SessionID string             `json:"session_id"`
	}{messages, sessionID}

	var reply AssistantReply
	if err := c.post(ctx, c.assistantEndpoint, payload, &reply); err != nil {
		return nil, err
	}
	if reply.ConversationID == "" {
		reply.ConversationID = sessionID
	}
	return &reply, nil
}

// GenerateProductImage requests a marketing image for a catalog product.
func (c *Client) GenerateProductImage(ctx context.Context, product *models.Product) (*ImageResult, error) {
	payload := struct {
		Name        string `json:"name"`
		ProductType string `json:"product_type"`
		Description string `json:"description"`
	}{product.Name, product.ProductType, product.Description}

	var result ImageResult
	if err := c.post(ctx, c.imageEndpoint, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
