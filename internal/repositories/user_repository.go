package repositories

import (
	"context"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, password_hash, name, company, phone, role,
	COALESCE(country, '') as country, is_active, totp_enabled, created_at, updated_at, last_login_at`

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, company, phone, role, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, totp_enabled, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.Company, u.Phone, u.Role, u.Country,
	).Scan(&u.ID, &u.IsActive, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET name=$1, company=$2, phone=$3, country=$4, updated_at=NOW() WHERE id=$5`,
		u.Name, u.Company, u.Phone, u.Country, u.ID)
	return err
}

func (r *UserRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	return err
}

func (r *UserRepository) SetTOTPEnabled(ctx context.Context, id int, enabled bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=$1, updated_at=NOW() WHERE id=$2`, enabled, id)
	return err
}

func (r *UserRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1, updated_at=NOW() WHERE id=$2`, secret, id)
	return err
}

func (r *UserRepository) GetTOTPSecret(ctx context.Context, id int) (string, error) {
	var secret string
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(totp_secret, '') FROM users WHERE id=$1`, id).Scan(&secret)
	return secret, err
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET last_login_at=NOW() WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Company, &u.Phone, &u.Role,
		&u.Country, &u.IsActive, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
