package models

import (
	"github.com/shopspring/decimal"
)

// Table is a seating spot of a restaurant.
type Table struct {
	Base
	BusinessID  string `gorm:"type:uuid;index;not null"`
	Name        string `gorm:"not null"`
	Capacity    int    `gorm:"not null"`
	IsAvailable bool   `gorm:"not null;default:true"`
	Location    string
}

func (t *Table) TableName() string {
	return "restaurant_tables"
}

// Menu is a fixed bundle of variants sold as one unit.
type Menu struct {
	Base
	BusinessID  string `gorm:"type:uuid;index;not null"`
	Name        string `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	Items       []MenuItem      `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

func (m *Menu) TableName() string {
	return "menus"
}

type MenuItem struct {
	Base
	MenuID    string   `gorm:"type:uuid;index;not null"`
	VariantID string   `gorm:"type:uuid;not null"`
	Variant   *Variant `gorm:"foreignKey:VariantID"`
	Quantity  int      `gorm:"not null"`
}

func (m *MenuItem) TableName() string {
	return "menu_items"
}
