package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/packtrack/stock-api/internal/domain"
)

type LedgerRepository interface {
	LockItems(ctx context.Context, itemIDs []uint, fn func(ctx context.Context) error) error
	StockLevel(ctx context.Context, itemID uint) (domain.StockLevel, error)

	CreatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error)
	FindPackingEntryByID(ctx context.Context, id uint) (domain.PackingEntry, error)
	FindPackingEntries(ctx context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error)
	UpdatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error)
	DeletePackingEntry(ctx context.Context, id uint) error

	CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	FindSaleByID(ctx context.Context, id uint) (domain.Sale, error)
	FindSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	DeleteSale(ctx context.Context, id uint) (domain.Sale, error)
	DeleteSales(ctx context.Context, itemID uint, ids []uint) (int, error)
	ReduceSale(ctx context.Context, sale domain.Sale, quantity int) error
}

type ConflictDetector interface {
	CheckMutation(ctx context.Context, itemID uint, quantityDelta int) (domain.ConflictResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.StockEvent) error
}

// LedgerService owns every write to packing entries and sales. Writes that
// can lower stock run under LockItems so the check and the write commit
// together.
type LedgerService struct {
	repo      LedgerRepository
	detector  ConflictDetector
	cache     StockCache
	publisher EventPublisher
}

func NewLedgerService(repo LedgerRepository, detector ConflictDetector, cache StockCache, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		repo:      repo,
		detector:  detector,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *LedgerService) CreatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	created, err := s.repo.CreatePackingEntry(ctx, entry)
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("s.repo.CreatePackingEntry -> %w", err)
	}

	s.committed(ctx, domain.StockEvent{
		Type:          domain.EventPackingEntryCreated,
		ItemID:        created.ItemID,
		ReferenceID:   created.ID,
		QuantityDelta: created.Quantity,
	})

	return created, nil
}

func (s *LedgerService) GetPackingEntry(ctx context.Context, id uint) (domain.PackingEntry, error) {
	entry, err := s.repo.FindPackingEntryByID(ctx, id)
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("s.repo.FindPackingEntryByID -> %w", err)
	}

	return entry, nil
}

func (s *LedgerService) ListPackingEntries(ctx context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error) {
	entries, err := s.repo.FindPackingEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPackingEntries -> %w", err)
	}

	return entries, nil
}

// UpdatePackingEntry replaces an entry. When the change lowers the packed
// quantity of the entry's current item below what was sold, nothing is
// written and a *StockConflictError is returned.
func (s *LedgerService) UpdatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	existing, err := s.repo.FindPackingEntryByID(ctx, entry.ID)
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("s.repo.FindPackingEntryByID -> %w", err)
	}

	var before, updated domain.PackingEntry
	err = s.repo.LockItems(ctx, []uint{existing.ItemID, entry.ItemID}, func(ctx context.Context) error {
		current, err := s.repo.FindPackingEntryByID(ctx, entry.ID)
		if err != nil {
			return fmt.Errorf("s.repo.FindPackingEntryByID -> %w", err)
		}
		if current.ItemID != existing.ItemID {
			return ErrConcurrentModification
		}

		delta := -current.Quantity
		if current.ItemID == entry.ItemID {
			delta = entry.Quantity - current.Quantity
		}

		if delta < 0 {
			result, err := s.detector.CheckMutation(ctx, current.ItemID, delta)
			if err != nil {
				return fmt.Errorf("s.detector.CheckMutation -> %w", err)
			}
			if result.Conflict {
				conflict := newStockConflictError(msgReduceEntryConflict, result)
				conflict.Details.CurrentQuantity = &current.Quantity
				conflict.Details.NewQuantity = &entry.Quantity
				return conflict
			}
		}

		before = current
		updated, err = s.repo.UpdatePackingEntry(ctx, entry)
		if err != nil {
			return fmt.Errorf("s.repo.UpdatePackingEntry -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.PackingEntry{}, fmt.Errorf("s.repo.LockItems -> %w", err)
	}

	if before.ItemID == updated.ItemID {
		s.committed(ctx, domain.StockEvent{
			Type:          domain.EventPackingEntryUpdated,
			ItemID:        updated.ItemID,
			ReferenceID:   updated.ID,
			QuantityDelta: updated.Quantity - before.Quantity,
		})
	} else {
		s.committed(ctx,
			domain.StockEvent{
				Type:          domain.EventPackingEntryUpdated,
				ItemID:        before.ItemID,
				ReferenceID:   updated.ID,
				QuantityDelta: -before.Quantity,
			},
			domain.StockEvent{
				Type:          domain.EventPackingEntryUpdated,
				ItemID:        updated.ItemID,
				ReferenceID:   updated.ID,
				QuantityDelta: updated.Quantity,
			},
		)
	}

	return updated, nil
}

// DeletePackingEntry removes an entry unless doing so would leave its item
// with negative stock, in which case a *StockConflictError is returned.
func (s *LedgerService) DeletePackingEntry(ctx context.Context, id uint) error {
	existing, err := s.repo.FindPackingEntryByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindPackingEntryByID -> %w", err)
	}

	var deleted domain.PackingEntry
	err = s.repo.LockItems(ctx, []uint{existing.ItemID}, func(ctx context.Context) error {
		current, err := s.repo.FindPackingEntryByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindPackingEntryByID -> %w", err)
		}
		if current.ItemID != existing.ItemID {
			return ErrConcurrentModification
		}

		result, err := s.detector.CheckMutation(ctx, current.ItemID, -current.Quantity)
		if err != nil {
			return fmt.Errorf("s.detector.CheckMutation -> %w", err)
		}
		if result.Conflict {
			conflict := newStockConflictError(msgDeleteEntryConflict, result)
			conflict.Details.EntryQuantity = &current.Quantity
			return conflict
		}

		if err = s.repo.DeletePackingEntry(ctx, id); err != nil {
			return fmt.Errorf("s.repo.DeletePackingEntry -> %w", err)
		}
		deleted = current

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.repo.LockItems -> %w", err)
	}

	s.committed(ctx, domain.StockEvent{
		Type:          domain.EventPackingEntryDeleted,
		ItemID:        deleted.ItemID,
		ReferenceID:   deleted.ID,
		QuantityDelta: -deleted.Quantity,
	})

	return nil
}

// CreateSale records a sale if the item has enough stock. Otherwise an
// *InsufficientStockError is returned and nothing is stored.
func (s *LedgerService) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	var created domain.Sale
	err := s.repo.LockItems(ctx, []uint{sale.ItemID}, func(ctx context.Context) error {
		level, err := s.repo.StockLevel(ctx, sale.ItemID)
		if err != nil {
			return fmt.Errorf("s.repo.StockLevel -> %w", err)
		}

		if available := level.Available(); sale.Quantity > available {
			return &InsufficientStockError{Requested: sale.Quantity, Available: available}
		}

		created, err = s.repo.CreateSale(ctx, sale)
		if err != nil {
			return fmt.Errorf("s.repo.CreateSale -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.LockItems -> %w", err)
	}

	s.committed(ctx, domain.StockEvent{
		Type:          domain.EventSaleCreated,
		ItemID:        created.ItemID,
		ReferenceID:   created.ID,
		QuantityDelta: -created.Quantity,
	})

	return created, nil
}

func (s *LedgerService) GetSale(ctx context.Context, id uint) (domain.Sale, error) {
	sale, err := s.repo.FindSaleByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.FindSaleByID -> %w", err)
	}

	return sale, nil
}

func (s *LedgerService) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	sales, err := s.repo.FindSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSales -> %w", err)
	}

	return sales, nil
}

func (s *LedgerService) DeleteSale(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteSale(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.DeleteSale -> %w", err)
	}

	s.committed(ctx, domain.StockEvent{
		Type:          domain.EventSaleDeleted,
		ItemID:        deleted.ItemID,
		ReferenceID:   deleted.ID,
		QuantityDelta: deleted.Quantity,
	})

	return nil
}

// committed runs after a write is durable. Failures here are logged only.
func (s *LedgerService) committed(ctx context.Context, events ...domain.StockEvent) {
	itemIDs := make([]uint, 0, len(events))
	for _, e := range events {
		itemIDs = append(itemIDs, e.ItemID)
	}
	invalidate(ctx, s.cache, itemIDs...)

	for _, e := range events {
		if err := s.publisher.Publish(ctx, e); err != nil {
			zap.L().Warn("failed to publish stock event",
				zap.String("type", string(e.Type)),
				zap.Uint("item_id", e.ItemID),
				zap.Error(err),
			)
		}
	}
}
