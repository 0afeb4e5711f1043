package services

import (
	"context"
	"errors"
	"strings"

	"stitch-backend/internal/cache"
	"stitch-backend/internal/models"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/status"
)

// defaultStages is the standard apparel run template created with every
// order unless the supplier defines their own.
var defaultStages = []string{
	"Fabric Sourcing",
	"Cutting",
	"Sewing",
	"Quality Check",
	"Packaging",
}

type ProductionService struct {
	StageRepo *repositories.ProductionStageRepository
	OrderRepo *repositories.OrderRepository
	Hub       *realtime.Hub
}

func NewProductionService(stageRepo *repositories.ProductionStageRepository, orderRepo *repositories.OrderRepository, hub *realtime.Hub) *ProductionService {
	return &ProductionService{
		StageRepo: stageRepo,
		OrderRepo: orderRepo,
		Hub:       hub,
	}
}

// InitStages creates the default stage template for a new order. Existing
// stages are left alone so re-running is safe.
func (s *ProductionService) InitStages(ctx context.Context, orderID int) error {
	existing, err := s.StageRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i, name := range defaultStages {
		stage := &models.ProductionStage{
			OrderID:     orderID,
			StageName:   name,
			StageNumber: i + 1,
			Status:      status.StagePending,
		}
		if err := s.StageRepo.Create(ctx, stage); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductionService) CreateStage(ctx context.Context, req *models.CreateStageRequest) (*models.ProductionStage, error) {
	req.StageName = strings.TrimSpace(req.StageName)
	if req.StageName == "" {
		return nil, errors.New("stage name is required")
	}
	if req.StageNumber <= 0 {
		return nil, errors.New("stage number must be positive")
	}
	if _, err := s.OrderRepo.Get(ctx, req.OrderID); err != nil {
		return nil, errors.New("order not found")
	}

	stage := &models.ProductionStage{
		OrderID:     req.OrderID,
		StageName:   req.StageName,
		StageNumber: req.StageNumber,
		Status:      status.StagePending,
	}
	if err := s.StageRepo.Create(ctx, stage); err != nil {
		return nil, err
	}

	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventInsert,
		Table:     "production_stages",
		New:       stage,
	})
	return stage, nil
}

func (s *ProductionService) ListStages(ctx context.Context, orderID int) ([]models.ProductionStage, error) {
	return s.StageRepo.ListByOrder(ctx, orderID)
}

func (s *ProductionService) GetStage(ctx context.Context, id int) (*models.ProductionStage, error) {
	return s.StageRepo.Get(ctx, id)
}

// applyStageUpdate merges a partial progress report into the stage. Absent
// fields keep their current values; the percent is clamped to [0,100] and
// reconciled with the status so the two never disagree ("completed" forces
// 100% and vice versa).
func applyStageUpdate(stage *models.ProductionStage, req *models.UpdateStageRequest) error {
	if req.Status != "" {
		switch req.Status {
		case status.StagePending, status.StageInProgress, status.StageCompleted:
			stage.Status = req.Status
		default:
			return errors.New("invalid stage status: " + req.Status)
		}
	}

	if req.CompletionPercent != nil {
		stage.CompletionPercent = status.ClampPercent(*req.CompletionPercent)
	}
	if stage.Status == status.StageCompleted {
		stage.CompletionPercent = 100
	} else if stage.CompletionPercent == 100 {
		stage.Status = status.StageCompleted
	} else if stage.CompletionPercent > 0 && stage.Status == status.StagePending {
		stage.Status = status.StageInProgress
	}

	if req.Notes != "" {
		stage.Notes = req.Notes
	}
	if len(req.Photos) > 0 {
		stage.Photos = append(stage.Photos, req.Photos...)
	}
	return nil
}

// UpdateStage applies a supplier's progress report.
func (s *ProductionService) UpdateStage(ctx context.Context, id int, req *models.UpdateStageRequest) (*models.ProductionStage, error) {
	stage, err := s.StageRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("stage not found")
	}

	if err := applyStageUpdate(stage, req); err != nil {
		return nil, err
	}

	if err := s.StageRepo.Update(ctx, stage); err != nil {
		return nil, err
	}

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventUpdate,
		Table:     "production_stages",
		New:       stage,
	})
	return stage, nil
}
