package repositories

import (
	"context"
	"fmt"

	"stitch-backend/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type QuoteRepository struct {
	DB *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{DB: db}
}

const quoteColumns = `id, quote_number, buyer_id, contact_name, contact_email,
	COALESCE(contact_phone, '') as contact_phone, COALESCE(company, '') as company,
	product_type, COALESCE(fabric, '') as fabric, customizations, quantity,
	COALESCE(notes, '') as notes,
	base_unit_price, complexity_factor, volume_discount, final_unit_price, total_price,
	estimated_delivery_days, status, COALESCE(lead_status, '') as lead_status,
	converted_order_id, last_activity_at, created_at, updated_at`

func (r *QuoteRepository) Create(ctx context.Context, q *models.Quote) error {
	// Quote numbers are sequential per day, QT-YYYYMMDD-NNNN.
	query := `
		WITH next_num AS (
			SELECT COUNT(*) + 1 AS num FROM quotes
			WHERE created_at::date = CURRENT_DATE
		)
		INSERT INTO quotes (quote_number, buyer_id, contact_name, contact_email, contact_phone,
			company, product_type, fabric, customizations, quantity, notes,
			base_unit_price, complexity_factor, volume_discount, final_unit_price, total_price,
			estimated_delivery_days, status, lead_status, last_activity_at)
		SELECT 'QT-' || TO_CHAR(NOW(), 'YYYYMMDD') || '-' || LPAD(num::text, 4, '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW()
		FROM next_num
		RETURNING id, quote_number, last_activity_at, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		q.BuyerID, q.ContactName, q.ContactEmail, q.ContactPhone, q.Company,
		q.ProductType, q.Fabric, q.Customizations, q.Quantity, q.Notes,
		q.BaseUnitPrice, q.ComplexityFactor, q.VolumeDiscount, q.FinalUnitPrice, q.TotalPrice,
		q.EstimatedDeliveryDays, q.Status, q.LeadStatus,
	).Scan(&q.ID, &q.QuoteNumber, &q.LastActivityAt, &q.CreatedAt, &q.UpdatedAt)
}

func (r *QuoteRepository) Get(ctx context.Context, id int) (*models.Quote, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, id)
	return scanQuote(row)
}

// List returns quotes matching the filter, newest first.
func (r *QuoteRepository) List(ctx context.Context, filter models.QuoteFilter) ([]*models.Quote, error) {
	builder := psql.Select(quoteColumns).From("quotes").OrderBy("created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.BuyerID > 0 {
		builder = builder.Where(sq.Eq{"buyer_id": filter.BuyerID})
	}
	if filter.ProductType != "" {
		builder = builder.Where(sq.Eq{"product_type": filter.ProductType})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.Since})
	}
	if filter.Until != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.Until})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build quote list query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// UpdateStatus changes quote status and lead status. Converted quotes are
// immutable: the WHERE clause refuses the write and the caller surfaces it.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id int, status, leadStatus string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE quotes SET status=$1, lead_status=$2, last_activity_at=NOW(), updated_at=NOW()
		 WHERE id=$3 AND status != 'converted'`,
		status, leadStatus, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d not found or already converted", id)
	}
	return nil
}

// UpdateLeadStatus touches only the archival lead fields, which stay
// writable after conversion.
func (r *QuoteRepository) UpdateLeadStatus(ctx context.Context, id int, leadStatus string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE quotes SET lead_status=$1, updated_at=NOW() WHERE id=$2`, leadStatus, id)
	return err
}

// MarkConverted stamps the quote with its order and freezes it.
func (r *QuoteRepository) MarkConverted(ctx context.Context, id, orderID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE quotes SET status='converted', converted_order_id=$1, last_activity_at=NOW(), updated_at=NOW()
		 WHERE id=$2 AND status != 'converted'`,
		orderID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d not found or already converted", id)
	}
	return nil
}

// CountByStatus returns quote counts grouped by status.
func (r *QuoteRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM quotes GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	var q models.Quote
	err := row.Scan(&q.ID, &q.QuoteNumber, &q.BuyerID, &q.ContactName, &q.ContactEmail,
		&q.ContactPhone, &q.Company, &q.ProductType, &q.Fabric, &q.Customizations,
		&q.Quantity, &q.Notes,
		&q.BaseUnitPrice, &q.ComplexityFactor, &q.VolumeDiscount, &q.FinalUnitPrice, &q.TotalPrice,
		&q.EstimatedDeliveryDays, &q.Status, &q.LeadStatus,
		&q.ConvertedOrderID, &q.LastActivityAt, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
