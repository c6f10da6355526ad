// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jrvaldez/product-catalog/internal/models"
	"github.com/jrvaldez/product-catalog/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:  db,
		now: time.Now,
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, p *models.Product) error {
	if apiErr := utils.ValidateProduct(p, s.now()); apiErr != nil {
		return apiErr
	}

	exists, err := s.ProductExists(ctx, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return &models.APIError{
			Name:    models.ErrNameBadRequest,
			Message: "Duplicate product identifier",
		}
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// UpdateProduct replaces the mutable fields of an existing product. The
// identifier itself is immutable.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ID = existing.ID
	if apiErr := utils.ValidateProduct(p, s.now()); apiErr != nil {
		return nil, apiErr
	}

	updates := map[string]interface{}{
		"name":          p.Name,
		"description":   p.Description,
		"logo":          p.Logo,
		"date_release":  p.DateRelease,
		"date_revision": p.DateRevision,
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return existing, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) ProductExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}
