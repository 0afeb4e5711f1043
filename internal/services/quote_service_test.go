package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitch-backend/internal/config"
	"stitch-backend/internal/models"
)

func quoteServiceForValidation() *QuoteService {
	cfg := &config.Config{}
	cfg.Validation.MinOrderQuantity = 50
	cfg.Validation.MaxOrderQuantity = 100000
	return &QuoteService{Config: cfg}
}

func validQuoteRequest() *models.CreateQuoteRequest {
	return &models.CreateQuoteRequest{
		ContactName:  "Ada Lovelace",
		ContactEmail: "ada@example.com",
		ProductType:  "t-shirts",
		Quantity:     500,
	}
}

func TestValidateQuoteRequest(t *testing.T) {
	s := quoteServiceForValidation()

	require.NoError(t, s.validate(validQuoteRequest()))

	req := validQuoteRequest()
	req.ContactName = "   "
	assert.Error(t, s.validate(req), "blank name")

	req = validQuoteRequest()
	req.ContactEmail = "not-an-email"
	assert.Error(t, s.validate(req), "bad email")

	req = validQuoteRequest()
	req.ProductType = ""
	assert.Error(t, s.validate(req), "missing product type")

	req = validQuoteRequest()
	req.Notes = strings.Repeat("x", maxNotesLength+1)
	assert.Error(t, s.validate(req), "oversized notes")
}

func TestValidateQuantityBounds(t *testing.T) {
	s := quoteServiceForValidation()

	cases := []struct {
		quantity int
		ok       bool
	}{
		{49, false},
		{50, true},
		{100000, true},
		{100001, false},
		{0, false},
		{-10, false},
	}
	for _, tc := range cases {
		req := validQuoteRequest()
		req.Quantity = tc.quantity
		err := s.validate(req)
		if tc.ok {
			assert.NoError(t, err, "quantity %d", tc.quantity)
		} else {
			assert.Error(t, err, "quantity %d", tc.quantity)
		}
	}
}

func TestValidateNormalizesEmail(t *testing.T) {
	s := quoteServiceForValidation()

	req := validQuoteRequest()
	req.ContactEmail = "  Ada@Example.COM "
	require.NoError(t, s.validate(req))
	assert.Equal(t, "ada@example.com", req.ContactEmail)
}
