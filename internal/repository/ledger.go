package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/repository/dao"
)

var (
	ErrPackingEntryNotFound = dao.ErrPackingEntryNotFound
	ErrSaleNotFound         = dao.ErrSaleNotFound
)

type LedgerDAO interface {
	LockItems(ctx context.Context, itemIDs []uint, fn func(ctx context.Context) error) error

	InsertPackingEntry(ctx context.Context, entry dao.PackingEntry) (dao.PackingEntry, error)
	FindPackingEntryByID(ctx context.Context, id uint) (dao.PackingEntry, error)
	FindPackingEntries(ctx context.Context, filter dao.PackingEntryFilter) ([]dao.PackingEntry, error)
	UpdatePackingEntry(ctx context.Context, entry dao.PackingEntry) (dao.PackingEntry, error)
	DeletePackingEntry(ctx context.Context, id uint) error

	InsertSale(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	FindSaleByID(ctx context.Context, id uint) (dao.Sale, error)
	FindSales(ctx context.Context, itemID uint) ([]dao.Sale, error)
	DeleteSale(ctx context.Context, id uint) (dao.Sale, error)
	DeleteSales(ctx context.Context, itemID uint, ids []uint) (int64, error)
	UpdateSaleQuantity(ctx context.Context, id uint, quantity int, total decimal.Decimal) error

	ItemTotals(ctx context.Context, itemID uint) (dao.ItemTotals, error)
	AllItemTotals(ctx context.Context) ([]dao.ItemTotals, error)
	WorkerTotals(ctx context.Context) ([]dao.WorkerTotals, error)
	BuyerTotals(ctx context.Context) ([]dao.BuyerTotals, error)
}

type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

// LockItems serializes stock-affecting writes on the given items. Calls made
// with the ctx passed to fn share one transaction.
func (r *LedgerRepository) LockItems(ctx context.Context, itemIDs []uint, fn func(ctx context.Context) error) error {
	return r.dao.LockItems(ctx, itemIDs, fn)
}

func (r *LedgerRepository) CreatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	created, err := r.dao.InsertPackingEntry(ctx, packingEntryDomainToDao(entry))
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("r.dao.InsertPackingEntry -> %w", err)
	}

	return packingEntryDaoToDomain(created), nil
}

func (r *LedgerRepository) FindPackingEntryByID(ctx context.Context, id uint) (domain.PackingEntry, error) {
	found, err := r.dao.FindPackingEntryByID(ctx, id)
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("r.dao.FindPackingEntryByID -> %w", err)
	}

	return packingEntryDaoToDomain(found), nil
}

func (r *LedgerRepository) FindPackingEntries(ctx context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error) {
	found, err := r.dao.FindPackingEntries(ctx, dao.PackingEntryFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		WorkerID:  filter.WorkerID,
		ItemID:    filter.ItemID,
		Company:   string(filter.Company),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPackingEntries -> %w", err)
	}

	entries := make([]domain.PackingEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, packingEntryDaoToDomain(e))
	}

	return entries, nil
}

func (r *LedgerRepository) UpdatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	updated, err := r.dao.UpdatePackingEntry(ctx, packingEntryDomainToDao(entry))
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("r.dao.UpdatePackingEntry -> %w", err)
	}

	return packingEntryDaoToDomain(updated), nil
}

func (r *LedgerRepository) DeletePackingEntry(ctx context.Context, id uint) error {
	if err := r.dao.DeletePackingEntry(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePackingEntry -> %w", err)
	}

	return nil
}

func (r *LedgerRepository) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	created, err := r.dao.InsertSale(ctx, dao.Sale{
		ItemID:   sale.ItemID,
		BuyerID:  sale.BuyerID,
		Date:     sale.Date,
		Quantity: sale.Quantity,
		Rate:     sale.Rate,
		Total:    domain.LineTotal(sale.Quantity, sale.Rate),
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.InsertSale -> %w", err)
	}

	return saleDaoToDomain(created), nil
}

func (r *LedgerRepository) FindSaleByID(ctx context.Context, id uint) (domain.Sale, error) {
	found, err := r.dao.FindSaleByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindSaleByID -> %w", err)
	}

	return saleDaoToDomain(found), nil
}

func (r *LedgerRepository) FindSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	found, err := r.dao.FindSales(ctx, filter.ItemID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSales -> %w", err)
	}

	sales := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		sales = append(sales, saleDaoToDomain(s))
	}

	return sales, nil
}

func (r *LedgerRepository) DeleteSale(ctx context.Context, id uint) (domain.Sale, error) {
	deleted, err := r.dao.DeleteSale(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.DeleteSale -> %w", err)
	}

	return saleDaoToDomain(deleted), nil
}

func (r *LedgerRepository) DeleteSales(ctx context.Context, itemID uint, ids []uint) (int, error) {
	n, err := r.dao.DeleteSales(ctx, itemID, ids)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteSales -> %w", err)
	}

	return int(n), nil
}

// ReduceSale sets a new quantity on sale and recomputes its total at the
// stored rate.
func (r *LedgerRepository) ReduceSale(ctx context.Context, sale domain.Sale, quantity int) error {
	err := r.dao.UpdateSaleQuantity(ctx, sale.ID, quantity, domain.LineTotal(quantity, sale.Rate))
	if err != nil {
		return fmt.Errorf("r.dao.UpdateSaleQuantity -> %w", err)
	}

	return nil
}

func (r *LedgerRepository) StockLevel(ctx context.Context, itemID uint) (domain.StockLevel, error) {
	totals, err := r.dao.ItemTotals(ctx, itemID)
	if err != nil {
		return domain.StockLevel{}, fmt.Errorf("r.dao.ItemTotals -> %w", err)
	}

	return domain.NewStockLevel(itemID, totals.ItemName, totals.Packed, totals.Sold, totals.PackedValue), nil
}

// StockLevels returns every item's stock ordered by item name.
func (r *LedgerRepository) StockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	rows, err := r.dao.AllItemTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AllItemTotals -> %w", err)
	}

	levels := make([]domain.StockLevel, 0, len(rows))
	for _, t := range rows {
		levels = append(levels, domain.NewStockLevel(t.ItemID, t.ItemName, t.Packed, t.Sold, t.PackedValue))
	}

	return levels, nil
}

// ItemStats returns every item's ledger totals, most packed first.
func (r *LedgerRepository) ItemStats(ctx context.Context) ([]domain.ItemStat, error) {
	rows, err := r.dao.AllItemTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AllItemTotals -> %w", err)
	}

	stats := make([]domain.ItemStat, 0, len(rows))
	for _, t := range rows {
		stats = append(stats, domain.ItemStat{
			ItemID:         t.ItemID,
			ItemName:       t.ItemName,
			PackedQuantity: t.Packed,
			PackedValue:    t.PackedValue,
			SoldQuantity:   t.Sold,
			SoldValue:      t.SoldValue,
			InStock:        max(t.Packed-t.Sold, 0),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PackedQuantity > stats[j].PackedQuantity
	})

	return stats, nil
}

func (r *LedgerRepository) WorkerStats(ctx context.Context) ([]domain.WorkerStat, error) {
	rows, err := r.dao.WorkerTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.WorkerTotals -> %w", err)
	}

	stats := make([]domain.WorkerStat, 0, len(rows))
	for _, t := range rows {
		stats = append(stats, domain.WorkerStat{
			WorkerID:      t.WorkerID,
			WorkerName:    t.WorkerName,
			TotalQuantity: t.TotalQuantity,
			TotalValue:    t.TotalValue,
		})
	}

	return stats, nil
}

func (r *LedgerRepository) BuyerStats(ctx context.Context) ([]domain.BuyerStat, error) {
	rows, err := r.dao.BuyerTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.BuyerTotals -> %w", err)
	}

	stats := make([]domain.BuyerStat, 0, len(rows))
	for _, t := range rows {
		stats = append(stats, domain.BuyerStat{
			BuyerID:       t.BuyerID,
			BuyerName:     t.BuyerName,
			TotalQuantity: t.TotalQuantity,
			TotalValue:    t.TotalValue,
		})
	}

	return stats, nil
}

func packingEntryDomainToDao(e domain.PackingEntry) dao.PackingEntry {
	return dao.PackingEntry{
		ID:       e.ID,
		WorkerID: e.WorkerID,
		ItemID:   e.ItemID,
		Date:     e.Date,
		Quantity: e.Quantity,
		Rate:     e.Rate,
		Company:  string(e.Company),
		Total:    domain.LineTotal(e.Quantity, e.Rate),
	}
}

func packingEntryDaoToDomain(e dao.PackingEntry) domain.PackingEntry {
	return domain.PackingEntry{
		ID:         e.ID,
		WorkerID:   e.WorkerID,
		WorkerName: e.Worker.Name,
		ItemID:     e.ItemID,
		ItemName:   e.Item.Name,
		Date:       e.Date,
		Quantity:   e.Quantity,
		Rate:       e.Rate,
		Company:    domain.Company(e.Company),
		Total:      e.Total,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func saleDaoToDomain(s dao.Sale) domain.Sale {
	return domain.Sale{
		ID:        s.ID,
		ItemID:    s.ItemID,
		ItemName:  s.Item.Name,
		BuyerID:   s.BuyerID,
		BuyerName: s.Buyer.Name,
		Date:      s.Date,
		Quantity:  s.Quantity,
		Rate:      s.Rate,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
