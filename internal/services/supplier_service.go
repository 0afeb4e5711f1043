package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"stitch-backend/internal/models"
	"stitch-backend/internal/repositories"
)

type SupplierService struct {
	SupplierRepo *repositories.SupplierRepository
}

func NewSupplierService(supplierRepo *repositories.SupplierRepository) *SupplierService {
	return &SupplierService{SupplierRepo: supplierRepo}
}

func (s *SupplierService) Create(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("supplier name is required")
	}
	if !emailPattern.MatchString(strings.ToLower(req.ContactEmail)) {
		return nil, errors.New("a valid contact email is required")
	}

	supplier := &models.Supplier{
		UserID:       req.UserID,
		Name:         req.Name,
		ContactEmail: strings.ToLower(req.ContactEmail),
		ContactPhone: req.ContactPhone,
		Country:      req.Country,
		Specialties:  req.Specialties,
		MinOrderQty:  req.MinOrderQty,
		LeadTimeDays: req.LeadTimeDays,
		IsActive:     true,
	}
	if err := s.SupplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Get(ctx context.Context, id int) (*models.Supplier, error) {
	return s.SupplierRepo.Get(ctx, id)
}

// ForUser resolves the supplier profile behind a supplier-role account.
// Order access and assignment filters key on suppliers.id, not users.id, so
// every supplier-scoped check goes through here.
func (s *SupplierService) ForUser(ctx context.Context, userID int) (*models.Supplier, error) {
	return s.SupplierRepo.GetByUserID(ctx, userID)
}

func (s *SupplierService) List(ctx context.Context) ([]*models.Supplier, error) {
	return s.SupplierRepo.List(ctx)
}

func (s *SupplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return errors.New("supplier name is required")
	}
	return s.SupplierRepo.Update(ctx, supplier)
}

// MatchForOrder returns active suppliers whose specialties cover the order's
// product type and whose minimum run size fits, best rated first.
func (s *SupplierService) MatchForOrder(ctx context.Context, order *models.Order) ([]*models.Supplier, error) {
	suppliers, err := s.SupplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Supplier, 0)
	for _, sup := range suppliers {
		if !sup.IsActive || sup.MinOrderQty > order.Quantity {
			continue
		}
		if len(sup.Specialties) == 0 {
			matched = append(matched, sup)
			continue
		}
		for _, spec := range sup.Specialties {
			if strings.EqualFold(spec, order.ProductType) {
				matched = append(matched, sup)
				break
			}
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	return matched, nil
}
