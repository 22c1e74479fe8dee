package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/packtrack/stock-api/internal/domain"
)

type StockRepository interface {
	StockLevel(ctx context.Context, itemID uint) (domain.StockLevel, error)
	StockLevels(ctx context.Context) ([]domain.StockLevel, error)
	FindSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
}

type StockCache interface {
	Get(ctx context.Context, itemID uint) (domain.StockLevel, bool, error)
	Version(ctx context.Context, itemID uint) (int64, error)
	// Set stores level only if the item was not invalidated after version
	// was read.
	Set(ctx context.Context, level domain.StockLevel, version int64) error
	Invalidate(ctx context.Context, itemIDs ...uint) error
}

type StockService struct {
	repo  StockRepository
	cache StockCache
}

func NewStockService(repo StockRepository, cache StockCache) *StockService {
	return &StockService{
		repo:  repo,
		cache: cache,
	}
}

// ComputeStock returns the stock level of an item. Unknown items yield a
// zeroed level rather than an error.
func (s *StockService) ComputeStock(ctx context.Context, itemID uint) (domain.StockLevel, error) {
	level, ok, err := s.cache.Get(ctx, itemID)
	if err != nil {
		zap.L().Warn("stock cache read failed", zap.Uint("item_id", itemID), zap.Error(err))
	} else if ok {
		return level, nil
	}

	version, versionErr := s.cache.Version(ctx, itemID)
	if versionErr != nil {
		zap.L().Warn("stock cache read failed", zap.Uint("item_id", itemID), zap.Error(versionErr))
	}

	level, err = s.repo.StockLevel(ctx, itemID)
	if err != nil {
		return domain.StockLevel{}, fmt.Errorf("s.repo.StockLevel -> %w", err)
	}

	if versionErr == nil {
		if err = s.cache.Set(ctx, level, version); err != nil {
			zap.L().Warn("stock cache write failed", zap.Uint("item_id", itemID), zap.Error(err))
		}
	}

	return level, nil
}

// ListStockLevels returns the items that currently have stock.
func (s *StockService) ListStockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	levels, err := s.repo.StockLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.StockLevels -> %w", err)
	}

	inStock := make([]domain.StockLevel, 0, len(levels))
	for _, l := range levels {
		if l.InStock > 0 {
			inStock = append(inStock, l)
		}
	}

	return inStock, nil
}

// CheckMutation reports whether changing the packed quantity of an item by
// quantityDelta would leave its stock negative. It always reads the store,
// so inside LockItems it sees the locked state.
func (s *StockService) CheckMutation(ctx context.Context, itemID uint, quantityDelta int) (domain.ConflictResult, error) {
	level, err := s.repo.StockLevel(ctx, itemID)
	if err != nil {
		return domain.ConflictResult{}, fmt.Errorf("s.repo.StockLevel -> %w", err)
	}

	available := level.Available()
	result := domain.ConflictResult{
		ItemID:        itemID,
		ItemName:      level.ItemName,
		Available:     available,
		Projected:     available + quantityDelta,
		AffectedSales: []domain.AffectedSale{},
	}
	if result.Projected >= 0 {
		return result, nil
	}

	sales, err := s.repo.FindSales(ctx, domain.SaleFilter{ItemID: itemID})
	if err != nil {
		return domain.ConflictResult{}, fmt.Errorf("s.repo.FindSales -> %w", err)
	}

	result.Conflict = true
	result.Deficit = -result.Projected
	for _, sale := range sales {
		result.AffectedSales = append(result.AffectedSales, domain.NewAffectedSale(sale))
	}

	return result, nil
}

// ValidateResolution accepts an adjustment when the units it removes from
// sales cover the deficit. Exact coverage is enough.
func ValidateResolution(deficit int, sales []domain.AffectedSale, adj domain.Adjustment) error {
	if covered := adj.Coverage(sales); covered < deficit {
		return &InsufficientAdjustmentError{Deficit: deficit, Covered: covered}
	}

	return nil
}

func invalidate(ctx context.Context, cache StockCache, itemIDs ...uint) {
	if err := cache.Invalidate(ctx, itemIDs...); err != nil {
		zap.L().Warn("stock cache invalidation failed", zap.Uints("item_ids", itemIDs), zap.Error(err))
	}
}
