package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"stitch-backend/internal/cache"
	"stitch-backend/internal/config"
	"stitch-backend/internal/models"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
)

// depositFraction is the share of the buyer price collected up front before
// production starts.
const depositFraction = 0.30

type PaymentService struct {
	client      *razorpay.Client
	keySecret   string
	PaymentRepo *repositories.PaymentRepository
	OrderRepo   *repositories.OrderRepository
	Hub         *realtime.Hub
}

func NewPaymentService(cfg *config.Config, paymentRepo *repositories.PaymentRepository, orderRepo *repositories.OrderRepository, hub *realtime.Hub) *PaymentService {
	var client *razorpay.Client
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		client = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	} else {
		log.Printf("[Payment] Razorpay credentials not configured, deposits disabled")
	}
	return &PaymentService{
		client:      client,
		keySecret:   cfg.Razorpay.KeySecret,
		PaymentRepo: paymentRepo,
		OrderRepo:   orderRepo,
		Hub:         hub,
	}
}

// CreateDeposit opens a Razorpay order for the 30% production deposit on an
// order that has not paid one yet.
func (s *PaymentService) CreateDeposit(ctx context.Context, orderID int) (*models.DepositTransaction, error) {
	if s.client == nil {
		return nil, errors.New("payments are not configured")
	}

	order, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.DepositPaid {
		return nil, errors.New("deposit already paid")
	}

	amount := order.BuyerPrice * depositFraction
	// Razorpay wants the smallest currency unit.
	amountPaise := int64(amount * 100)
	if amountPaise <= 0 {
		return nil, errors.New("order has no price to collect a deposit on")
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("deposit-%s", order.OrderNumber),
		"notes": map[string]interface{}{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		},
	}
	rzpOrder, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.New("failed to create payment order: " + err.Error())
	}
	rzpOrderID, ok := rzpOrder["id"].(string)
	if !ok {
		return nil, errors.New("unexpected payment gateway response")
	}

	txn := &models.DepositTransaction{
		OrderID:         order.ID,
		RazorpayOrderID: rzpOrderID,
		Amount:          amount,
		Currency:        "INR",
		Status:          "created",
	}
	if err := s.PaymentRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// VerifyDeposit checks the checkout callback signature and marks the order's
// deposit paid. An invalid signature marks the transaction failed.
func (s *PaymentService) VerifyDeposit(ctx context.Context, rzpOrderID, paymentID, signature string) error {
	txn, err := s.PaymentRepo.GetByRazorpayOrderID(ctx, rzpOrderID)
	if err != nil {
		return errors.New("unknown payment order")
	}
	if txn.Status == "paid" {
		return nil // already verified
	}

	if !s.verifySignature(rzpOrderID, paymentID, signature) {
		s.PaymentRepo.MarkFailed(ctx, rzpOrderID)
		return errors.New("payment signature verification failed")
	}

	if err := s.PaymentRepo.MarkPaid(ctx, rzpOrderID, paymentID); err != nil {
		return err
	}
	if err := s.OrderRepo.MarkDepositPaid(ctx, txn.OrderID); err != nil {
		return err
	}

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventUpdate,
		Table:     "orders",
		New:       map[string]interface{}{"id": txn.OrderID, "deposit_paid": true},
	})
	return nil
}

// verifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" with the
// key secret and compares it to the signature Razorpay sent.
func (s *PaymentService) verifySignature(rzpOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(rzpOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
