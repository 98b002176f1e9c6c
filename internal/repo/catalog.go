package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/transport"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	category.Name = name
	if err := r.DB.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Preload("Category").
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// GetProductsByCategory matches the category name exactly, case-sensitive.
func (r *GormRepo) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Preload("Category").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", category).
		Order("products.id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
