package domain

type StockEventType string

const (
	EventPackingEntryCreated StockEventType = "packing_entry.created"
	EventPackingEntryUpdated StockEventType = "packing_entry.updated"
	EventPackingEntryDeleted StockEventType = "packing_entry.deleted"
	EventSaleCreated         StockEventType = "sale.created"
	EventSaleDeleted         StockEventType = "sale.deleted"
	EventSalesAdjusted       StockEventType = "sales.adjusted"
)

// StockEvent is emitted after a committed write changed an item's stock.
// QuantityDelta is the signed change of available stock.
type StockEvent struct {
	Type          StockEventType
	ItemID        uint
	ReferenceID   uint
	QuantityDelta int
}
