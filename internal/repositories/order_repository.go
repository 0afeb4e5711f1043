package repositories

import (
	"context"
	"fmt"

	"stitch-backend/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, order_number, quote_id, buyer_id, supplier_id, product_type,
	quantity, status, buyer_price, supplier_price, deposit_paid, target_delivery,
	created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	// Order numbers are sequential per day, ORD-YYYYMMDD-NNNN.
	query := `
		WITH next_num AS (
			SELECT COUNT(*) + 1 AS num FROM orders
			WHERE created_at::date = CURRENT_DATE
		)
		INSERT INTO orders (order_number, quote_id, buyer_id, supplier_id, product_type,
			quantity, status, buyer_price, supplier_price, target_delivery)
		SELECT 'ORD-' || TO_CHAR(NOW(), 'YYYYMMDD') || '-' || LPAD(num::text, 4, '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		FROM next_num
		RETURNING id, order_number, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		o.QuoteID, o.BuyerID, o.SupplierID, o.ProductType,
		o.Quantity, o.Status, o.BuyerPrice, o.SupplierPrice, o.TargetDelivery,
	).Scan(&o.ID, &o.OrderNumber, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*models.Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	return scanOrder(row)
}

// List returns orders matching the filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	builder := psql.Select(orderColumns).From("orders").OrderBy("created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.BuyerID > 0 {
		builder = builder.Where(sq.Eq{"buyer_id": filter.BuyerID})
	}
	if filter.SupplierID > 0 {
		builder = builder.Where(sq.Eq{"supplier_id": filter.SupplierID})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.Since})
	}
	if filter.Until != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.Until})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order list query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	return nil
}

func (r *OrderRepository) AssignSupplier(ctx context.Context, id, supplierID int, supplierPrice float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE orders SET supplier_id=$1, supplier_price=$2, updated_at=NOW() WHERE id=$3`,
		supplierID, supplierPrice, id)
	return err
}

func (r *OrderRepository) MarkDepositPaid(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE orders SET deposit_paid=true, updated_at=NOW() WHERE id=$1`, id)
	return err
}

// CountByStatus returns order counts grouped by status.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
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

// TotalValue sums buyer prices over all orders.
func (r *OrderRepository) TotalValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(buyer_price), 0) FROM orders`).Scan(&total)
	return total, err
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.QuoteID, &o.BuyerID, &o.SupplierID, &o.ProductType,
		&o.Quantity, &o.Status, &o.BuyerPrice, &o.SupplierPrice, &o.DepositPaid, &o.TargetDelivery,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
