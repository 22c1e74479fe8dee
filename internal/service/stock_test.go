package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/domain"
)

func TestStockService_ComputeStock(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 10, 2)
	f.store.addEntry(1, 5, 4)
	f.store.addSale(1, 1, 3, day(2))

	level, err := f.stock.ComputeStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 15, level.TotalPacked)
	assert.Equal(t, 3, level.TotalSold)
	assert.Equal(t, 12, level.InStock)
	assert.Equal(t, "2.6667", level.AvgRate.String())
	assert.Equal(t, "Soap", level.ItemName)
}

func TestStockService_ComputeStock_UnknownItem(t *testing.T) {
	f := newLedgerFixture()

	level, err := f.stock.ComputeStock(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, level.TotalPacked)
	assert.Equal(t, 0, level.InStock)
	assert.True(t, level.AvgRate.IsZero())
}

func TestStockService_ComputeStock_Cache(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 10, 2)
	ctx := context.Background()

	_, err := f.stock.ComputeStock(ctx, 1)
	require.NoError(t, err)
	reads := f.store.stockReads

	level, err := f.stock.ComputeStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, reads, f.store.stockReads, "second read should be served from the cache")
	assert.Equal(t, 10, level.InStock)

	_, err = f.ledger.CreateSale(ctx, domain.Sale{ItemID: 1, BuyerID: 1, Date: day(3), Quantity: 4, Rate: decimal.NewFromInt(3)})
	require.NoError(t, err)

	level, err = f.stock.ComputeStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, level.InStock, "a committed sale drops the cached level")
}

// slowStockReads lets a write commit between loading a level and caching it.
type slowStockReads struct {
	*memStore
	afterRead func()
}

func (r *slowStockReads) StockLevel(ctx context.Context, itemID uint) (domain.StockLevel, error) {
	level, err := r.memStore.StockLevel(ctx, itemID)
	if r.afterRead != nil {
		afterRead := r.afterRead
		r.afterRead = nil
		afterRead()
	}

	return level, err
}

func TestStockService_ComputeStock_WriteDuringRead(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 10, 2)
	ctx := context.Background()

	repo := &slowStockReads{memStore: f.store}
	repo.afterRead = func() {
		_, err := f.ledger.CreateSale(ctx, domain.Sale{ItemID: 1, BuyerID: 1, Date: day(3), Quantity: 4, Rate: decimal.NewFromInt(3)})
		require.NoError(t, err)
	}
	svc := NewStockService(repo, f.cache)

	level, err := svc.ComputeStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, level.InStock, "loaded before the sale committed")

	_, cached, _ := f.cache.Get(ctx, 1)
	assert.False(t, cached, "a level loaded before a write must not be cached")

	level, err = svc.ComputeStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, level.InStock)

	cachedLevel, cached, _ := f.cache.Get(ctx, 1)
	require.True(t, cached)
	assert.Equal(t, 6, cachedLevel.InStock)
}

func TestStockService_ListStockLevels(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 10, 2)
	f.store.addEntry(2, 4, 2)
	f.store.addSale(2, 1, 4, day(2))

	levels, err := f.stock.ListStockLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, uint(1), levels[0].ItemID)
}

func TestStockService_CheckMutation(t *testing.T) {
	tests := []struct {
		name     string
		packed   []int
		sold     []int
		delta    int
		conflict bool
		deficit  int
	}{
		{
			name:     "deleting 30 of 100 with 80 sold",
			packed:   []int{70, 30},
			sold:     []int{50, 30},
			delta:    -30,
			conflict: true,
			deficit:  10,
		},
		{
			name:   "reducing by 20 with 50 in stock",
			packed: []int{100},
			sold:   []int{50},
			delta:  -20,
		},
		{
			name:   "reducing to exactly zero stock",
			packed: []int{100},
			sold:   []int{80},
			delta:  -20,
		},
		{
			name:   "growing stock",
			packed: []int{10},
			sold:   []int{10},
			delta:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			for _, q := range tt.packed {
				f.store.addEntry(1, q, 2)
			}
			for i, q := range tt.sold {
				f.store.addSale(1, 1, q, day(i+1))
			}

			result, err := f.stock.CheckMutation(context.Background(), 1, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.conflict, result.Conflict)
			assert.Equal(t, tt.deficit, result.Deficit)
			if tt.conflict {
				assert.Len(t, result.AffectedSales, len(tt.sold))
			} else {
				assert.Empty(t, result.AffectedSales)
			}
		})
	}
}

func TestStockService_CheckMutation_AffectedSales(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 20, 2)
	older := f.store.addSale(1, 1, 5, day(2))
	newer := f.store.addSale(1, 2, 10, day(5))

	result, err := f.stock.CheckMutation(context.Background(), 1, -20)
	require.NoError(t, err)
	require.True(t, result.Conflict)
	assert.Equal(t, 15, result.Deficit)
	assert.Equal(t, "Soap", result.ItemName)
	assert.Equal(t, []domain.AffectedSale{
		{ID: newer.ID, Quantity: 10, Date: day(5), Buyer: "Meena", Item: "Soap"},
		{ID: older.ID, Quantity: 5, Date: day(2), Buyer: "Ravi", Item: "Soap"},
	}, result.AffectedSales)
}

func TestStockService_CheckMutation_Idempotent(t *testing.T) {
	f := newLedgerFixture()
	f.store.addEntry(1, 100, 2)
	f.store.addSale(1, 1, 80, day(2))
	ctx := context.Background()

	first, err := f.stock.CheckMutation(ctx, 1, -30)
	require.NoError(t, err)
	second, err := f.stock.CheckMutation(ctx, 1, -30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 20, f.store.available(1), "checking must not change stock")
}

func TestValidateResolution(t *testing.T) {
	sales := []domain.AffectedSale{
		{ID: 1, Quantity: 4},
		{ID: 2, Quantity: 10},
	}

	err := ValidateResolution(10, sales, domain.Adjustment{
		DeleteIDs: []uint{1},
		Reduce:    []domain.SaleReduction{{ID: 2, NewQuantity: 4}},
	})
	assert.NoError(t, err)

	err = ValidateResolution(10, sales, domain.Adjustment{
		DeleteIDs: []uint{1},
		Reduce:    []domain.SaleReduction{{ID: 2, NewQuantity: 5}},
	})
	var insufficient *InsufficientAdjustmentError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 9, insufficient.Covered)
	assert.Equal(t, 10, insufficient.Deficit)
	assert.ErrorIs(t, err, ErrInsufficientAdjustment)
}
