package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBuyerNotFound = errors.New("buyer not found")
	ErrBuyerInUse    = errors.New("buyer has sales")
)

type Buyer struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null"`
	Contact string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BuyerDAO struct {
	db *gorm.DB
}

func NewBuyerDAO(db *gorm.DB) *BuyerDAO {
	return &BuyerDAO{
		db: db,
	}
}

func (d *BuyerDAO) Insert(ctx context.Context, buyer Buyer) (Buyer, error) {
	result := d.db.WithContext(ctx).Create(&buyer)
	if result.Error != nil {
		return Buyer{}, result.Error
	}

	return buyer, nil
}

func (d *BuyerDAO) FindAll(ctx context.Context) ([]Buyer, error) {
	var buyers []Buyer
	if err := d.db.WithContext(ctx).Order("name").Find(&buyers).Error; err != nil {
		return nil, err
	}

	return buyers, nil
}

func (d *BuyerDAO) FindByID(ctx context.Context, id uint) (Buyer, error) {
	var buyer Buyer
	err := d.db.WithContext(ctx).First(&buyer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Buyer{}, ErrBuyerNotFound
		}

		return Buyer{}, err
	}

	return buyer, nil
}

func (d *BuyerDAO) Update(ctx context.Context, buyer Buyer) (Buyer, error) {
	result := d.db.WithContext(ctx).Model(&Buyer{ID: buyer.ID}).
		Select("name", "contact").
		Updates(Buyer{Name: buyer.Name, Contact: buyer.Contact})
	if result.Error != nil {
		return Buyer{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Buyer{}, ErrBuyerNotFound
	}

	return d.FindByID(ctx, buyer.ID)
}

func (d *BuyerDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Buyer{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintSaleBuyer) {
			return ErrBuyerInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBuyerNotFound
	}

	return nil
}
