package models

import (
	"context"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) GetTables(ctx context.Context, businessID string) ([]Table, error) {
	var tables []Table
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *RestaurantRepository) GetTable(ctx context.Context, id string) (*Table, error) {
	var table Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		return nil, notFound(err)
	}
	return &table, nil
}

func (r *RestaurantRepository) CreateTable(ctx context.Context, table *Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *RestaurantRepository) UpdateTable(ctx context.Context, table *Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *RestaurantRepository) DeleteTable(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Table{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RestaurantRepository) menuQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Variant").
		Preload("Items.Variant.Product")
}

func (r *RestaurantRepository) GetMenus(ctx context.Context, businessID string) ([]Menu, error) {
	var menus []Menu
	if err := r.menuQuery(ctx).
		Where("business_id = ?", businessID).
		Order("name").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *RestaurantRepository) GetMenu(ctx context.Context, id string) (*Menu, error) {
	var menu Menu
	if err := r.menuQuery(ctx).Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

func (r *RestaurantRepository) CreateMenu(ctx context.Context, menu *Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

// UpdateMenu saves the menu columns. When replaceItems is set the item list is swapped atomically.
func (r *RestaurantRepository) UpdateMenu(ctx context.Context, menu *Menu, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(menu).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&MenuItem{}).Error; err != nil {
			return err
		}
		for i := range menu.Items {
			menu.Items[i].MenuID = menu.ID
			menu.Items[i].ID = ""
		}
		if len(menu.Items) == 0 {
			return nil
		}
		return tx.Omit("Variant").Create(&menu.Items).Error
	})
}

func (r *RestaurantRepository) DeleteMenu(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&MenuItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Menu{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
