package repositories

import (
	"context"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, t *models.DepositTransaction) error {
	query := `
		INSERT INTO deposit_transactions (order_id, razorpay_order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		t.OrderID, t.RazorpayOrderID, t.Amount, t.Currency, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *PaymentRepository) GetByRazorpayOrderID(ctx context.Context, rzpOrderID string) (*models.DepositTransaction, error) {
	var t models.DepositTransaction
	err := r.DB.QueryRow(ctx, `
		SELECT id, order_id, razorpay_order_id, COALESCE(payment_id, '') as payment_id,
		       amount, currency, status, paid_at, created_at
		FROM deposit_transactions WHERE razorpay_order_id=$1`,
		rzpOrderID,
	).Scan(&t.ID, &t.OrderID, &t.RazorpayOrderID, &t.PaymentID,
		&t.Amount, &t.Currency, &t.Status, &t.PaidAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PaymentRepository) MarkPaid(ctx context.Context, rzpOrderID, paymentID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE deposit_transactions
		SET status='paid', payment_id=$1, paid_at=NOW()
		WHERE razorpay_order_id=$2`,
		paymentID, rzpOrderID)
	return err
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, rzpOrderID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE deposit_transactions SET status='failed' WHERE razorpay_order_id=$1`,
		rzpOrderID)
	return err
}
