package domain

import "github.com/shopspring/decimal"

const avgRatePlaces = 4

type StockLevel struct {
	ItemID      uint            `json:"item_id"`
	ItemName    string          `json:"item_name"`
	TotalPacked int             `json:"total_packed"`
	TotalSold   int             `json:"total_sold"`
	PackedValue decimal.Decimal `json:"packed_value"`
	InStock     int             `json:"in_stock"`
	AvgRate     decimal.Decimal `json:"avg_rate"`
}

// NewStockLevel derives the display fields from the ledger sums.
func NewStockLevel(itemID uint, itemName string, totalPacked, totalSold int, packedValue decimal.Decimal) StockLevel {
	level := StockLevel{
		ItemID:      itemID,
		ItemName:    itemName,
		TotalPacked: totalPacked,
		TotalSold:   totalSold,
		PackedValue: packedValue,
		InStock:     max(totalPacked-totalSold, 0),
		AvgRate:     decimal.Zero,
	}
	if totalPacked > 0 {
		level.AvgRate = packedValue.DivRound(decimal.NewFromInt(int64(totalPacked)), avgRatePlaces)
	}

	return level
}

// Available is the signed stock, possibly negative.
func (l StockLevel) Available() int {
	return l.TotalPacked - l.TotalSold
}
