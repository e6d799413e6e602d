package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategoryCode  string
	BusinessID    string
	Search        string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Preload("Variants")

	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.BusinessID != "" {
		query = query.Where("products.business_id = ?", filters.BusinessID)
	}
	if s := strings.TrimSpace(filters.Search); s != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("products.created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// GetVariantsByIDs loads the variants with their product. Unknown ids are simply absent from the result.
func (r *ProductsRepository) GetVariantsByIDs(ctx context.Context, ids []string) ([]Variant, error) {
	var variants []Variant
	if len(ids) == 0 {
		return variants, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id IN ?", ids).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
