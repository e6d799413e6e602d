package models

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/komoralink/komora/dto"
)

type BusinessFilters struct {
	Type    dto.BusinessType
	Search  string
	Sector  string
	OwnerID string
}

type BusinessesRepository struct {
	db *gorm.DB
}

func NewBusinessesRepository(db *gorm.DB) *BusinessesRepository {
	return &BusinessesRepository{db: db}
}

func (r *BusinessesRepository) GetFilteredBusinesses(ctx context.Context, offset, limit int, filters BusinessFilters) ([]Business, int64, error) {
	var businesses []Business
	var total int64

	query := r.db.WithContext(ctx).Model(&Business{})

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Sector != "" {
		query = query.Where("LOWER(activity_sector) = ?", strings.ToLower(filters.Sector))
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}
	if s := strings.TrimSpace(filters.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *BusinessesRepository) GetByID(ctx context.Context, id string) (*Business, error) {
	var business Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&business).Error; err != nil {
		return nil, notFound(err)
	}
	return &business, nil
}

func (r *BusinessesRepository) CreateBusiness(ctx context.Context, business *Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *BusinessesRepository) UpdateBusiness(ctx context.Context, business *Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}
