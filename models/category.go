package models

// Category groups products. Its code is the value of the product listing's category filter.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

func (c *Category) TableName() string {
	return "categories"
}
