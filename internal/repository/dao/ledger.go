package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPackingEntryNotFound = errors.New("packing entry not found")
	ErrSaleNotFound         = errors.New("sale not found")
)

type PackingEntry struct {
	ID uint `gorm:"primaryKey"`

	WorkerID uint   `gorm:"not null;index"`
	Worker   Worker `gorm:"constraint:OnDelete:RESTRICT"`
	ItemID   uint   `gorm:"not null;index"`
	Item     Item   `gorm:"constraint:OnDelete:RESTRICT"`

	Date     time.Time       `gorm:"type:date;not null;index"`
	Quantity int             `gorm:"not null;check:quantity > 0"`
	Rate     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Company  string          `gorm:"type:varchar(8);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Sale struct {
	ID uint `gorm:"primaryKey"`

	ItemID  uint  `gorm:"not null;index"`
	Item    Item  `gorm:"constraint:OnDelete:RESTRICT"`
	BuyerID uint  `gorm:"not null;index"`
	Buyer   Buyer `gorm:"constraint:OnDelete:RESTRICT"`

	Date     time.Time       `gorm:"type:date;not null;index"`
	Quantity int             `gorm:"not null;check:quantity > 0"`
	Rate     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PackingEntryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	WorkerID  uint
	ItemID    uint
	Company   string
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

func (d *LedgerDAO) LockItems(ctx context.Context, itemIDs []uint, fn func(ctx context.Context) error) error {
	return LockItems(ctx, d.db, itemIDs, fn)
}

func (d *LedgerDAO) InsertPackingEntry(ctx context.Context, entry PackingEntry) (PackingEntry, error) {
	result := conn(ctx, d.db).Omit(clause.Associations).Create(&entry)
	if result.Error != nil {
		return PackingEntry{}, mapPackingEntryErr(result.Error)
	}

	return d.FindPackingEntryByID(ctx, entry.ID)
}

func (d *LedgerDAO) FindPackingEntryByID(ctx context.Context, id uint) (PackingEntry, error) {
	var entry PackingEntry
	err := conn(ctx, d.db).
		Joins("Worker").
		Joins("Item").
		First(&entry, "packing_entries.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PackingEntry{}, ErrPackingEntryNotFound
		}

		return PackingEntry{}, err
	}

	return entry, nil
}

func (d *LedgerDAO) FindPackingEntries(ctx context.Context, filter PackingEntryFilter) ([]PackingEntry, error) {
	query := conn(ctx, d.db).Joins("Worker").Joins("Item")
	if filter.StartDate != nil {
		query = query.Where("packing_entries.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("packing_entries.date <= ?", *filter.EndDate)
	}
	if filter.WorkerID != 0 {
		query = query.Where("packing_entries.worker_id = ?", filter.WorkerID)
	}
	if filter.ItemID != 0 {
		query = query.Where("packing_entries.item_id = ?", filter.ItemID)
	}
	if filter.Company != "" {
		query = query.Where("packing_entries.company = ?", filter.Company)
	}

	var entries []PackingEntry
	err := query.Order("packing_entries.date DESC, packing_entries.id DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (d *LedgerDAO) UpdatePackingEntry(ctx context.Context, entry PackingEntry) (PackingEntry, error) {
	result := conn(ctx, d.db).
		Model(&PackingEntry{ID: entry.ID}).
		Omit(clause.Associations).
		Select("WorkerID", "ItemID", "Date", "Quantity", "Rate", "Company", "Total").
		Updates(&entry)
	if result.Error != nil {
		return PackingEntry{}, mapPackingEntryErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return PackingEntry{}, ErrPackingEntryNotFound
	}

	return d.FindPackingEntryByID(ctx, entry.ID)
}

func (d *LedgerDAO) DeletePackingEntry(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Delete(&PackingEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPackingEntryNotFound
	}

	return nil
}

func (d *LedgerDAO) InsertSale(ctx context.Context, sale Sale) (Sale, error) {
	result := conn(ctx, d.db).Omit(clause.Associations).Create(&sale)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintSaleBuyer) {
			return Sale{}, ErrBuyerNotFound
		}
		if isForeignKeyViolation(result.Error, constraintSaleItem) {
			return Sale{}, ErrItemNotFound
		}

		return Sale{}, result.Error
	}

	return d.FindSaleByID(ctx, sale.ID)
}

func (d *LedgerDAO) FindSaleByID(ctx context.Context, id uint) (Sale, error) {
	var sale Sale
	err := conn(ctx, d.db).
		Joins("Item").
		Joins("Buyer").
		First(&sale, "sales.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, err
	}

	return sale, nil
}

// FindSales lists sales most recent first. A zero itemID lists every item.
func (d *LedgerDAO) FindSales(ctx context.Context, itemID uint) ([]Sale, error) {
	query := conn(ctx, d.db).Joins("Item").Joins("Buyer")
	if itemID != 0 {
		query = query.Where("sales.item_id = ?", itemID)
	}

	var sales []Sale
	if err := query.Order("sales.date DESC, sales.id DESC").Find(&sales).Error; err != nil {
		return nil, err
	}

	return sales, nil
}

func (d *LedgerDAO) DeleteSale(ctx context.Context, id uint) (Sale, error) {
	var sale Sale
	result := conn(ctx, d.db).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "item_id"}, {Name: "quantity"}}}).
		Delete(&sale, id)
	if result.Error != nil {
		return Sale{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Sale{}, ErrSaleNotFound
	}

	return sale, nil
}

// DeleteSales removes the given sales of one item and reports how many went.
func (d *LedgerDAO) DeleteSales(ctx context.Context, itemID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := conn(ctx, d.db).Where("item_id = ? AND id IN ?", itemID, ids).Delete(&Sale{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *LedgerDAO) UpdateSaleQuantity(ctx context.Context, id uint, quantity int, total decimal.Decimal) error {
	result := conn(ctx, d.db).
		Model(&Sale{ID: id}).
		Updates(map[string]any{"quantity": quantity, "total": total})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}

func mapPackingEntryErr(err error) error {
	if isForeignKeyViolation(err, constraintPackingEntryWorker) {
		return ErrWorkerNotFound
	}
	if isForeignKeyViolation(err, constraintPackingEntryItem) {
		return ErrItemNotFound
	}

	return err
}
