package services

import (
	"context"
	"errors"

	"stitch-backend/internal/cache"
	"stitch-backend/internal/models"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/status"
)

type OrderService struct {
	OrderRepo *repositories.OrderRepository
	StageRepo *repositories.ProductionStageRepository
	Hub       *realtime.Hub
}

func NewOrderService(orderRepo *repositories.OrderRepository, stageRepo *repositories.ProductionStageRepository, hub *realtime.Hub) *OrderService {
	return &OrderService{
		OrderRepo: orderRepo,
		StageRepo: stageRepo,
		Hub:       hub,
	}
}

// decorate fills the derived progress fields from the status taxonomy.
func decorate(o *models.Order) *models.Order {
	info := status.Progress(o.Status)
	o.Progress = info.Percent
	o.ProgressLabel = info.Label
	return o
}

func (s *OrderService) Get(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decorate(order), nil
}

func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	orders, err := s.OrderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		decorate(o)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, newStatus string) (*models.Order, error) {
	if !status.Valid(newStatus) {
		return nil, errors.New("invalid order status: " + newStatus)
	}

	order, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if status.Terminal(order.Status) {
		return nil, errors.New("order is already " + order.Status)
	}

	if err := s.OrderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	decorate(order)

	cache.InvalidateDashboards(ctx)
	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventUpdate,
		Table:     "orders",
		New:       order,
	})
	return order, nil
}

func (s *OrderService) AssignSupplier(ctx context.Context, id int, req *models.AssignSupplierRequest) (*models.Order, error) {
	if req.SupplierID <= 0 {
		return nil, errors.New("supplier_id is required")
	}
	if req.SupplierPrice < 0 {
		return nil, errors.New("supplier_price cannot be negative")
	}

	order, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if status.Terminal(order.Status) {
		return nil, errors.New("cannot assign a supplier to a " + order.Status + " order")
	}

	if err := s.OrderRepo.AssignSupplier(ctx, id, req.SupplierID, req.SupplierPrice); err != nil {
		return nil, err
	}
	order.SupplierID = &req.SupplierID
	order.SupplierPrice = req.SupplierPrice
	decorate(order)

	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventUpdate,
		Table:     "orders",
		New:       order,
	})
	return order, nil
}

// Progress returns per-stage progress plus the unweighted overall mean. An
// order with no stages reports 0%, not an error.
func (s *OrderService) Progress(ctx context.Context, orderID int) (*models.OrderProgress, error) {
	if _, err := s.OrderRepo.Get(ctx, orderID); err != nil {
		return nil, errors.New("order not found")
	}

	stages, err := s.StageRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	percentages := make([]int, len(stages))
	for i, st := range stages {
		percentages[i] = st.CompletionPercent
	}
	return &models.OrderProgress{
		OrderID:        orderID,
		OverallPercent: status.OverallProgress(percentages),
		Stages:         stages,
	}, nil
}
