package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"stitch-backend/internal/ai"
	"stitch-backend/internal/cache"
	"stitch-backend/internal/config"
	"stitch-backend/internal/metrics"
	"stitch-backend/internal/models"
	"stitch-backend/internal/pricing"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/status"
	"stitch-backend/internal/storage"
)

const (
	maxNameLength  = 200
	maxNotesLength = 2000
)

type QuoteService struct {
	QuoteRepo  *repositories.QuoteRepository
	OrderRepo  *repositories.OrderRepository
	Generator  ai.QuoteGenerator
	Production *ProductionService
	Store      *storage.Store
	Hub        *realtime.Hub
	Config     *config.Config
}

func NewQuoteService(quoteRepo *repositories.QuoteRepository, orderRepo *repositories.OrderRepository, generator ai.QuoteGenerator, production *ProductionService, store *storage.Store, hub *realtime.Hub, cfg *config.Config) *QuoteService {
	return &QuoteService{
		QuoteRepo:  quoteRepo,
		OrderRepo:  orderRepo,
		Generator:  generator,
		Production: production,
		Store:      store,
		Hub:        hub,
		Config:     cfg,
	}
}

func (s *QuoteService) validate(req *models.CreateQuoteRequest) error {
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	req.ProductType = strings.TrimSpace(req.ProductType)

	if req.ContactName == "" {
		return errors.New("contact name is required")
	}
	if len(req.ContactName) > maxNameLength {
		return errors.New("contact name is too long")
	}
	if !emailPattern.MatchString(req.ContactEmail) {
		return errors.New("a valid contact email is required")
	}
	if req.ProductType == "" {
		return errors.New("product type is required")
	}
	min := s.Config.Validation.MinOrderQuantity
	max := s.Config.Validation.MaxOrderQuantity
	if req.Quantity < min || req.Quantity > max {
		return fmt.Errorf("quantity must be between %d and %d", min, max)
	}
	if len(req.Notes) > maxNotesLength {
		return errors.New("notes are too long")
	}
	return nil
}

// Create validates, prices, and persists a quote. AI pricing failures fall
// back to the local engine; quote submission never fails on pricing.
func (s *QuoteService) Create(ctx context.Context, req *models.CreateQuoteRequest, buyerID *int) (*models.Quote, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	breakdown, err := s.Generator.GenerateQuote(ctx, req)
	source := "ai"
	if err != nil {
		log.Printf("[Quote] AI pricing failed, using local engine: %v", err)
		b := pricing.Quote(req.ProductType, req.Fabric, req.Customizations, req.Quantity)
		breakdown = &b
		source = "local"
	}
	metrics.QuotesGenerated.WithLabelValues(source).Inc()

	quote := &models.Quote{
		BuyerID:        buyerID,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Company:        req.Company,
		ProductType:    req.ProductType,
		Fabric:         req.Fabric,
		Customizations: req.Customizations,
		Quantity:       req.Quantity,
		Notes:          req.Notes,

		BaseUnitPrice:         breakdown.BaseUnitPrice,
		ComplexityFactor:      breakdown.ComplexityFactor,
		VolumeDiscount:        breakdown.VolumeDiscount,
		FinalUnitPrice:        breakdown.FinalUnitPrice,
		TotalPrice:            breakdown.TotalPrice,
		EstimatedDeliveryDays: breakdown.EstimatedDeliveryDays,

		Status:     status.QuotePending,
		LeadStatus: "new",
	}

	if err := s.QuoteRepo.Create(ctx, quote); err != nil {
		return nil, errors.New("failed to save quote: " + err.Error())
	}

	if len(req.Attachments) > 0 {
		s.storeAttachments(ctx, quote, req.Attachments)
	}

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventInsert,
		Table:     "quotes",
		New:       quote,
	})
	return quote, nil
}

// storeAttachments uploads reference files sent with the quote form. Upload
// failures are logged, not returned: the quote is already saved.
func (s *QuoteService) storeAttachments(ctx context.Context, quote *models.Quote, attachments []models.FileAttachment) {
	if s.Store == nil {
		return
	}
	for _, att := range attachments {
		data, err := base64.StdEncoding.DecodeString(att.Data)
		if err != nil {
			log.Printf("[Quote] Skipping attachment %q: bad encoding", att.Filename)
			continue
		}
		if err := storage.ValidateAttachment(int64(len(data)), att.ContentType, s.Config.MaxAttachmentSizeBytes()); err != nil {
			log.Printf("[Quote] Skipping attachment %q: %v", att.Filename, err)
			continue
		}
		path := fmt.Sprintf("quotes/%d/%s-%s", quote.ID, uuid.NewString(), att.Filename)
		if _, err := s.Store.Upload(ctx, s.Config.Storage.AttachmentBucket, path, data, att.ContentType); err != nil {
			log.Printf("[Quote] Attachment upload failed for quote %d: %v", quote.ID, err)
		}
	}
}

func (s *QuoteService) Get(ctx context.Context, id int) (*models.Quote, error) {
	return s.QuoteRepo.Get(ctx, id)
}

func (s *QuoteService) List(ctx context.Context, filter models.QuoteFilter) ([]*models.Quote, error) {
	return s.QuoteRepo.List(ctx, filter)
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id int, req *models.UpdateQuoteStatusRequest) (*models.Quote, error) {
	switch req.Status {
	case status.QuoteDraft, status.QuotePending:
	case status.QuoteConverted:
		return nil, errors.New("use the convert endpoint to convert a quote")
	default:
		return nil, errors.New("invalid quote status: " + req.Status)
	}

	quote, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == status.QuoteConverted {
		return nil, errors.New("converted quotes cannot be modified")
	}

	if err := s.QuoteRepo.UpdateStatus(ctx, id, req.Status, req.LeadStatus); err != nil {
		return nil, err
	}
	quote.Status = req.Status
	if req.LeadStatus != "" {
		quote.LeadStatus = req.LeadStatus
	}

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventUpdate,
		Table:     "quotes",
		New:       quote,
	})
	return quote, nil
}

// Convert turns a quote into an order. A quote converts at most once; the
// repository guard makes double conversion a no-op error rather than a
// duplicate order.
func (s *QuoteService) Convert(ctx context.Context, quoteID int, buyerID int) (*models.Order, error) {
	quote, err := s.QuoteRepo.Get(ctx, quoteID)
	if err != nil {
		return nil, errors.New("quote not found")
	}
	if quote.Status == status.QuoteConverted {
		return nil, errors.New("quote already converted")
	}

	if quote.BuyerID != nil {
		buyerID = *quote.BuyerID
	}
	order := &models.Order{
		QuoteID:     &quote.ID,
		BuyerID:     buyerID,
		ProductType: quote.ProductType,
		Quantity:    quote.Quantity,
		Status:      status.Pending,
		BuyerPrice:  quote.TotalPrice,
	}
	if err := s.OrderRepo.Create(ctx, order); err != nil {
		return nil, errors.New("failed to create order: " + err.Error())
	}

	if err := s.QuoteRepo.MarkConverted(ctx, quote.ID, order.ID); err != nil {
		// The order exists but the quote kept its status; surface this so
		// an operator can reconcile instead of silently double-converting.
		log.Printf("[Quote] Order %d created but quote %d not marked converted: %v", order.ID, quote.ID, err)
		return nil, err
	}
	metrics.QuotesConverted.Inc()

	if err := s.Production.InitStages(ctx, order.ID); err != nil {
		log.Printf("[Quote] Failed to create default stages for order %d: %v", order.ID, err)
	}

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventInsert,
		Table:     "orders",
		New:       order,
	})
	return order, nil
}
