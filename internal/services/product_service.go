package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"stitch-backend/internal/ai"
	"stitch-backend/internal/config"
	"stitch-backend/internal/models"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/storage"
)

type ProductService struct {
	ProductRepo *repositories.ProductRepository
	Images      ai.ImageGenerator
	Store       *storage.Store
	Config      *config.Config
}

func NewProductService(productRepo *repositories.ProductRepository, images ai.ImageGenerator, store *storage.Store, cfg *config.Config) *ProductService {
	return &ProductService{
		ProductRepo: productRepo,
		Images:      images,
		Store:       store,
		Config:      cfg,
	}
}

func (s *ProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("product name is required")
	}
	if req.ProductType == "" {
		return nil, errors.New("product type is required")
	}
	if req.BasePrice < 0 {
		return nil, errors.New("base price cannot be negative")
	}

	product := &models.Product{
		Name:        req.Name,
		ProductType: req.ProductType,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		MinOrderQty: req.MinOrderQty,
		SupplierID:  req.SupplierID,
	}
	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.ProductRepo.Get(ctx, id)
}

func (s *ProductService) List(ctx context.Context, includeUnpublished bool) ([]*models.Product, error) {
	return s.ProductRepo.List(ctx, !includeUnpublished)
}

func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}
	return s.ProductRepo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.ProductRepo.Delete(ctx, id)
}

// UploadImage stores a catalog image and points the product at it.
func (s *ProductService) UploadImage(ctx context.Context, id int, data []byte, contentType string) (*models.Product, error) {
	if s.Store == nil {
		return nil, errors.New("storage is not configured")
	}
	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if err := storage.ValidateImage(int64(len(data)), contentType, s.Config.MaxImageSizeBytes()); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("products/%d/%s", id, uuid.NewString())
	if _, err := s.Store.Upload(ctx, s.Config.Storage.ImageBucket, path, data, contentType); err != nil {
		return nil, err
	}

	product.ImageURL = s.Store.PublicURL(s.Config.Storage.ImageBucket, path)
	if err := s.ProductRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GenerateImage asks the image endpoint for a catalog shot and stores the
// URL it returns. Failures leave the product's image untouched.
func (s *ProductService) GenerateImage(ctx context.Context, id int) (*models.Product, error) {
	if s.Images == nil {
		return nil, errors.New("image generation is not configured")
	}
	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	result, err := s.Images.GenerateProductImage(ctx, product)
	if err != nil {
		log.Printf("[Product] Image generation failed for product %d: %v", id, err)
		return nil, errors.New("image generation failed")
	}

	product.ImageURL = result.URL
	if err := s.ProductRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
