package dao

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemTotals holds the ledger sums of one item.
type ItemTotals struct {
	ItemID      uint
	ItemName    string
	Packed      int
	PackedValue decimal.Decimal
	Sold        int
	SoldValue   decimal.Decimal
}

type WorkerTotals struct {
	WorkerID      uint
	WorkerName    string
	TotalQuantity int
	TotalValue    decimal.Decimal
}

type BuyerTotals struct {
	BuyerID       uint
	BuyerName     string
	TotalQuantity int
	TotalValue    decimal.Decimal
}

const itemTotalsQuery = `
SELECT i.id AS item_id,
       i.name AS item_name,
       COALESCE(p.quantity, 0) AS packed,
       COALESCE(p.value, 0) AS packed_value,
       COALESCE(s.quantity, 0) AS sold,
       COALESCE(s.value, 0) AS sold_value
FROM items i
LEFT JOIN (
    SELECT item_id, SUM(quantity) AS quantity, SUM(total) AS value
    FROM packing_entries GROUP BY item_id
) p ON p.item_id = i.id
LEFT JOIN (
    SELECT item_id, SUM(quantity) AS quantity, SUM(total) AS value
    FROM sales GROUP BY item_id
) s ON s.item_id = i.id`

// ItemTotals returns the sums for one item. An unknown item yields zero sums.
func (d *LedgerDAO) ItemTotals(ctx context.Context, itemID uint) (ItemTotals, error) {
	var rows []ItemTotals
	err := conn(ctx, d.db).Raw(itemTotalsQuery+` WHERE i.id = ?`, itemID).Scan(&rows).Error
	if err != nil {
		return ItemTotals{}, err
	}
	if len(rows) == 0 {
		return ItemTotals{ItemID: itemID, PackedValue: decimal.Zero, SoldValue: decimal.Zero}, nil
	}

	return rows[0], nil
}

// AllItemTotals returns the sums of every item ordered by name.
func (d *LedgerDAO) AllItemTotals(ctx context.Context) ([]ItemTotals, error) {
	var rows []ItemTotals
	err := conn(ctx, d.db).Raw(itemTotalsQuery + ` ORDER BY i.name`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *LedgerDAO) WorkerTotals(ctx context.Context) ([]WorkerTotals, error) {
	var rows []WorkerTotals
	err := conn(ctx, d.db).Raw(`
SELECT w.id AS worker_id,
       w.name AS worker_name,
       SUM(pe.quantity) AS total_quantity,
       SUM(pe.total) AS total_value
FROM packing_entries pe
JOIN workers w ON w.id = pe.worker_id
GROUP BY w.id, w.name
ORDER BY total_quantity DESC, w.name`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *LedgerDAO) BuyerTotals(ctx context.Context) ([]BuyerTotals, error) {
	var rows []BuyerTotals
	err := conn(ctx, d.db).Raw(`
SELECT b.id AS buyer_id,
       b.name AS buyer_name,
       SUM(s.quantity) AS total_quantity,
       SUM(s.total) AS total_value
FROM sales s
JOIN buyers b ON b.id = s.buyer_id
GROUP BY b.id, b.name
ORDER BY total_quantity DESC, b.name`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
