package service

import (
	"errors"
	"fmt"

	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/repository"
)

var (
	ErrWorkerNotFound       = repository.ErrWorkerNotFound
	ErrWorkerInUse          = repository.ErrWorkerInUse
	ErrItemNotFound         = repository.ErrItemNotFound
	ErrItemNameExists       = repository.ErrItemNameExists
	ErrItemInUse            = repository.ErrItemInUse
	ErrBuyerNotFound        = repository.ErrBuyerNotFound
	ErrBuyerInUse           = repository.ErrBuyerInUse
	ErrPackingEntryNotFound = repository.ErrPackingEntryNotFound
	ErrSaleNotFound         = repository.ErrSaleNotFound

	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidAdjustment      = errors.New("invalid adjustment")
	ErrInsufficientAdjustment = errors.New("adjustment does not cover the deficit")
	ErrConcurrentModification = errors.New("record changed while being updated, please retry")
	ErrInvalidDateRange       = errors.New("end date is before start date")
)

const (
	msgDeleteEntryConflict = "Deleting this entry would result in negative stock. Please adjust sales."
	msgReduceEntryConflict = "Reducing this entry would result in negative stock. Please adjust sales."
)

// StockConflictError is returned instead of applying a packing entry change
// that would drive stock below zero. It carries what the operator needs to
// pick sales to cut.
type StockConflictError struct {
	Message string
	Details domain.StockConflict
}

func (e *StockConflictError) Error() string {
	return e.Message
}

func newStockConflictError(message string, result domain.ConflictResult) *StockConflictError {
	return &StockConflictError{
		Message: message,
		Details: domain.StockConflict{
			Deficit:       result.Deficit,
			AffectedSales: result.AffectedSales,
			ItemID:        result.ItemID,
			ItemName:      result.ItemName,
		},
	}
}

type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Cannot sell %d items. Only %d items available in stock.", e.Requested, max(e.Available, 0))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type InsufficientAdjustmentError struct {
	Deficit int
	Covered int
}

func (e *InsufficientAdjustmentError) Error() string {
	return fmt.Sprintf("Selected adjustments remove %d items but %d are needed.", e.Covered, e.Deficit)
}

func (e *InsufficientAdjustmentError) Unwrap() error {
	return ErrInsufficientAdjustment
}
