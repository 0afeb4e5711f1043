package repositories

import (
	"context"
	"fmt"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductionStageRepository struct {
	DB *pgxpool.Pool
}

func NewProductionStageRepository(db *pgxpool.Pool) *ProductionStageRepository {
	return &ProductionStageRepository{DB: db}
}

const stageColumns = `id, order_id, stage_name, stage_number, status, completion_percent,
	photos, COALESCE(notes, '') as notes, started_at, completed_at, created_at, updated_at`

func (r *ProductionStageRepository) Create(ctx context.Context, s *models.ProductionStage) error {
	query := `
		INSERT INTO production_stages (order_id, stage_name, stage_number, status, completion_percent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.OrderID, s.StageName, s.StageNumber, s.Status, s.CompletionPercent,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ProductionStageRepository) Get(ctx context.Context, id int) (*models.ProductionStage, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+stageColumns+` FROM production_stages WHERE id=$1`, id)
	return scanStage(row)
}

// ListByOrder returns an order's stages in display order.
func (r *ProductionStageRepository) ListByOrder(ctx context.Context, orderID int) ([]models.ProductionStage, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+stageColumns+` FROM production_stages WHERE order_id=$1 ORDER BY stage_number ASC`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []models.ProductionStage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, *s)
	}
	return stages, rows.Err()
}

func (r *ProductionStageRepository) Update(ctx context.Context, s *models.ProductionStage) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE production_stages
		SET status=$1, completion_percent=$2, notes=$3, photos=$4,
		    started_at=CASE WHEN started_at IS NULL AND $1 != 'pending' THEN NOW() ELSE started_at END,
		    completed_at=CASE WHEN $1 = 'completed' THEN COALESCE(completed_at, NOW()) ELSE NULL END,
		    updated_at=NOW()
		WHERE id=$5`,
		s.Status, s.CompletionPercent, s.Notes, s.Photos, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("production stage %d not found", s.ID)
	}
	return nil
}

func scanStage(row rowScanner) (*models.ProductionStage, error) {
	var s models.ProductionStage
	err := row.Scan(&s.ID, &s.OrderID, &s.StageName, &s.StageNumber, &s.Status, &s.CompletionPercent,
		&s.Photos, &s.Notes, &s.StartedAt, &s.CompletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
