package domain

import "time"

// AffectedSale is a sale the operator may cut to resolve a stock conflict.
type AffectedSale struct {
	ID       uint      `json:"id"`
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
	Buyer    string    `json:"buyer"`
	Item     string    `json:"item"`
}

func NewAffectedSale(s Sale) AffectedSale {
	return AffectedSale{
		ID:       s.ID,
		Quantity: s.Quantity,
		Date:     s.Date,
		Buyer:    nameOrUnknown(s.BuyerName),
		Item:     nameOrUnknown(s.ItemName),
	}
}

// ConflictResult is the outcome of checking a change of packed quantity.
type ConflictResult struct {
	Conflict      bool           `json:"conflict"`
	ItemID        uint           `json:"itemId"`
	ItemName      string         `json:"itemName"`
	Available     int            `json:"available"`
	Projected     int            `json:"projected"`
	Deficit       int            `json:"deficit"`
	AffectedSales []AffectedSale `json:"affectedSales"`
}

type SaleReduction struct {
	ID          uint `json:"id"`
	NewQuantity int  `json:"newQuantity"`
}

// Adjustment is a batch of sale deletions and reductions for one item.
// When Deficit is positive the batch must cover it.
type Adjustment struct {
	ItemID    uint
	DeleteIDs []uint
	Reduce    []SaleReduction
	Deficit   int
}

// Coverage returns the number of units the batch removes from sales.
// Ids missing from sales contribute nothing.
func (a Adjustment) Coverage(sales []AffectedSale) int {
	quantities := make(map[uint]int, len(sales))
	for _, s := range sales {
		quantities[s.ID] = s.Quantity
	}

	deleted := make(map[uint]bool, len(a.DeleteIDs))
	total := 0
	for _, id := range a.DeleteIDs {
		if deleted[id] {
			continue
		}
		deleted[id] = true
		total += quantities[id]
	}

	for _, r := range a.Reduce {
		original, ok := quantities[r.ID]
		if !ok || deleted[r.ID] {
			continue
		}
		if newQuantity := max(r.NewQuantity, 0); newQuantity < original {
			total += original - newQuantity
		}
	}

	return total
}

type AdjustmentResult struct {
	Deleted int `json:"deleted"`
	Reduced int `json:"reduced"`
}

func nameOrUnknown(name string) string {
	if name == "" {
		return UnknownName
	}

	return name
}

// StockConflict describes why a packing entry mutation was refused.
type StockConflict struct {
	Deficit         int            `json:"deficit"`
	AffectedSales   []AffectedSale `json:"affectedSales"`
	ItemID          uint           `json:"itemId"`
	ItemName        string         `json:"itemName"`
	EntryQuantity   *int           `json:"entryQuantity,omitempty"`
	CurrentQuantity *int           `json:"currentQuantity,omitempty"`
	NewQuantity     *int           `json:"newQuantity,omitempty"`
}
