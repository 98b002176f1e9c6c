package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/repo"
	"github.com/ekoval/storefront/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	category := models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	category, err := s.Repo.UpdateCategory(ctx, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

// GetProductsByCategory returns every product in the named category. An
// unknown category yields an empty list, not an error.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category parameter is required", ErrValidation)
	}
	return s.Repo.GetProductsByCategory(ctx, category)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
