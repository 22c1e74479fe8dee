package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrItemNameExists = errors.New("item already exists")
	ErrItemInUse      = errors.New("item has packing entries or sales")
)

type Item struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"unique;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ItemDAO struct {
	db *gorm.DB
}

func NewItemDAO(db *gorm.DB) *ItemDAO {
	return &ItemDAO{
		db: db,
	}
}

func (d *ItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		if isUniqueViolation(result.Error, constraintItemName) {
			return Item{}, ErrItemNameExists
		}

		return Item{}, result.Error
	}

	return item, nil
}

func (d *ItemDAO) FindAll(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := d.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (d *ItemDAO) FindByID(ctx context.Context, id uint) (Item, error) {
	var item Item
	err := conn(ctx, d.db).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, err
	}

	return item, nil
}

func (d *ItemDAO) Update(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Model(&Item{ID: item.ID}).Update("name", item.Name)
	if result.Error != nil {
		if isUniqueViolation(result.Error, constraintItemName) {
			return Item{}, ErrItemNameExists
		}

		return Item{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Item{}, ErrItemNotFound
	}

	return d.FindByID(ctx, item.ID)
}

func (d *ItemDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Item{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintPackingEntryItem) ||
			isForeignKeyViolation(result.Error, constraintSaleItem) {
			return ErrItemInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
