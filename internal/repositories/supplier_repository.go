package repositories

import (
	"context"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SupplierRepository struct {
	DB *pgxpool.Pool
}

func NewSupplierRepository(db *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{DB: db}
}

const supplierColumns = `id, user_id, name, contact_email, COALESCE(contact_phone, '') as contact_phone,
	country, specialties, min_order_qty, lead_time_days, rating, is_active, created_at, updated_at`

func (r *SupplierRepository) Create(ctx context.Context, s *models.Supplier) error {
	query := `
		INSERT INTO suppliers (user_id, name, contact_email, contact_phone, country,
			specialties, min_order_qty, lead_time_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, rating, is_active, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.UserID, s.Name, s.ContactEmail, s.ContactPhone, s.Country,
		s.Specialties, s.MinOrderQty, s.LeadTimeDays,
	).Scan(&s.ID, &s.Rating, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SupplierRepository) Get(ctx context.Context, id int) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id)
	return scanSupplier(row)
}

// GetByUserID resolves the supplier profile linked to a portal account.
func (r *SupplierRepository) GetByUserID(ctx context.Context, userID int) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE user_id=$1`, userID)
	return scanSupplier(row)
}

func (r *SupplierRepository) List(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE is_active=true ORDER BY rating DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *SupplierRepository) Update(ctx context.Context, s *models.Supplier) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE suppliers
		SET name=$1, contact_email=$2, contact_phone=$3, country=$4, specialties=$5,
		    min_order_qty=$6, lead_time_days=$7, rating=$8, is_active=$9, updated_at=NOW()
		WHERE id=$10`,
		s.Name, s.ContactEmail, s.ContactPhone, s.Country, s.Specialties,
		s.MinOrderQty, s.LeadTimeDays, s.Rating, s.IsActive, s.ID)
	return err
}

func scanSupplier(row rowScanner) (*models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.ContactEmail, &s.ContactPhone,
		&s.Country, &s.Specialties, &s.MinOrderQty, &s.LeadTimeDays, &s.Rating,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
