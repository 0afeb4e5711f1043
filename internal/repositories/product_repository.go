package repositories

import (
	"context"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, product_type, COALESCE(description, '') as description,
	base_price, min_order_qty, COALESCE(image_url, '') as image_url, supplier_id,
	is_published, created_at, updated_at`

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, product_type, description, base_price, min_order_qty, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_published, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		p.Name, p.ProductType, p.Description, p.BasePrice, p.MinOrderQty, p.SupplierID,
	).Scan(&p.ID, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

// List returns catalog products; publishedOnly hides drafts for the
// marketplace surface.
func (r *ProductRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE is_published=true ORDER BY created_at DESC`
	}

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$1, product_type=$2, description=$3, base_price=$4, min_order_qty=$5,
		    image_url=$6, is_published=$7, updated_at=NOW()
		WHERE id=$8`,
		p.Name, p.ProductType, p.Description, p.BasePrice, p.MinOrderQty,
		p.ImageURL, p.IsPublished, p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.ProductType, &p.Description,
		&p.BasePrice, &p.MinOrderQty, &p.ImageURL, &p.SupplierID,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
