package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/komoralink/komora/dto"
)

// Business is a shop, restaurant, supplier or courier owned by a user.
type Business struct {
	Base
	OwnerID        string           `gorm:"type:uuid;index;not null"`
	Name           string           `gorm:"not null"`
	Type           dto.BusinessType `gorm:"type:varchar(20);index;not null"`
	ActivitySector string           `gorm:"index"`
	Description    string
	Address        string
	Phone          string
	LogoURL        string
	CoverImageURL  string
	IsVerified     bool            `gorm:"not null;default:false"`
	Rating         decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	Tags           pq.StringArray  `gorm:"type:text[]"`
}

func (b *Business) TableName() string {
	return "businesses"
}

// ApplyUpdate copies the fields set in req onto b.
func (b *Business) ApplyUpdate(req dto.UpdateBusinessRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.ActivitySector != nil {
		b.ActivitySector = *req.ActivitySector
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Phone != nil {
		b.Phone = dto.NormalizePhone(*req.Phone)
	}
	if req.LogoURL != nil {
		b.LogoURL = *req.LogoURL
	}
	if req.CoverImageURL != nil {
		b.CoverImageURL = *req.CoverImageURL
	}
	if req.Tags != nil {
		b.Tags = pq.StringArray(*req.Tags)
	}
}
