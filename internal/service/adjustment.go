package service

import (
	"context"
	"fmt"

	"github.com/packtrack/stock-api/internal/domain"
)

// ApplyAdjustments deletes and reduces sales of one item in a single
// transaction. Deletions go first. A reduction to zero deletes the sale.
// When adj.Deficit is positive the batch is re-checked against the current
// sales before anything is written. On success the caller retries the
// packing entry change that was refused.
func (s *LedgerService) ApplyAdjustments(ctx context.Context, adj domain.Adjustment) (domain.AdjustmentResult, error) {
	if err := validateAdjustment(adj); err != nil {
		return domain.AdjustmentResult{}, err
	}

	var (
		result  domain.AdjustmentResult
		covered int
	)
	err := s.repo.LockItems(ctx, []uint{adj.ItemID}, func(ctx context.Context) error {
		sales, err := s.repo.FindSales(ctx, domain.SaleFilter{ItemID: adj.ItemID})
		if err != nil {
			return fmt.Errorf("s.repo.FindSales -> %w", err)
		}

		byID := make(map[uint]domain.Sale, len(sales))
		affected := make([]domain.AffectedSale, 0, len(sales))
		for _, sale := range sales {
			byID[sale.ID] = sale
			affected = append(affected, domain.NewAffectedSale(sale))
		}

		deleteIDs := make([]uint, 0, len(adj.DeleteIDs)+len(adj.Reduce))
		for _, id := range adj.DeleteIDs {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("%w: sale %d is not a sale of item %d", ErrInvalidAdjustment, id, adj.ItemID)
			}
			deleteIDs = append(deleteIDs, id)
		}

		type reduction struct {
			sale     domain.Sale
			quantity int
		}
		var reductions []reduction
		for _, r := range adj.Reduce {
			sale, ok := byID[r.ID]
			if !ok {
				return fmt.Errorf("%w: sale %d is not a sale of item %d", ErrInvalidAdjustment, r.ID, adj.ItemID)
			}

			switch {
			case r.NewQuantity > sale.Quantity:
				return fmt.Errorf("%w: sale %d has %d items and cannot be raised to %d",
					ErrInvalidAdjustment, r.ID, sale.Quantity, r.NewQuantity)
			case r.NewQuantity == sale.Quantity:
				continue
			case r.NewQuantity == 0:
				deleteIDs = append(deleteIDs, r.ID)
			default:
				reductions = append(reductions, reduction{sale: sale, quantity: r.NewQuantity})
			}
		}

		if adj.Deficit > 0 {
			if err = ValidateResolution(adj.Deficit, affected, adj); err != nil {
				return err
			}
		}

		deleted, err := s.repo.DeleteSales(ctx, adj.ItemID, deleteIDs)
		if err != nil {
			return fmt.Errorf("s.repo.DeleteSales -> %w", err)
		}
		if deleted != len(deleteIDs) {
			return fmt.Errorf("s.repo.DeleteSales -> %w", ErrConcurrentModification)
		}

		for _, r := range reductions {
			if err = s.repo.ReduceSale(ctx, r.sale, r.quantity); err != nil {
				return fmt.Errorf("s.repo.ReduceSale -> sale %d -> %w", r.sale.ID, err)
			}
		}

		result = domain.AdjustmentResult{Deleted: deleted, Reduced: len(reductions)}
		covered = adj.Coverage(affected)

		return nil
	})
	if err != nil {
		return domain.AdjustmentResult{}, fmt.Errorf("s.repo.LockItems -> %w", err)
	}

	s.committed(ctx, domain.StockEvent{
		Type:          domain.EventSalesAdjusted,
		ItemID:        adj.ItemID,
		QuantityDelta: covered,
	})

	return result, nil
}

func validateAdjustment(adj domain.Adjustment) error {
	if len(adj.DeleteIDs) == 0 && len(adj.Reduce) == 0 {
		return fmt.Errorf("%w: nothing to adjust", ErrInvalidAdjustment)
	}
	if adj.Deficit < 0 {
		return fmt.Errorf("%w: deficit cannot be negative", ErrInvalidAdjustment)
	}

	seen := make(map[uint]bool, len(adj.DeleteIDs)+len(adj.Reduce))
	for _, id := range adj.DeleteIDs {
		if seen[id] {
			return fmt.Errorf("%w: sale %d is listed twice", ErrInvalidAdjustment, id)
		}
		seen[id] = true
	}
	for _, r := range adj.Reduce {
		if r.NewQuantity < 0 {
			return fmt.Errorf("%w: sale %d cannot have a negative quantity", ErrInvalidAdjustment, r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: sale %d is listed twice", ErrInvalidAdjustment, r.ID)
		}
		seen[r.ID] = true
	}

	return nil
}
