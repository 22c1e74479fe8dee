package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/domain"
)

// conflictFixture packs 100, sells 4 + 10 + 66 and leaves a 30 unit entry
// whose deletion is short by 10.
func conflictFixture() (ledgerFixture, domain.PackingEntry, domain.Sale, domain.Sale, domain.Sale) {
	f := newLedgerFixture()
	f.store.addEntry(1, 70, 2)
	entry := f.store.addEntry(1, 30, 2)
	small := f.store.addSale(1, 1, 4, day(2))
	medium := f.store.addSale(1, 2, 10, day(3))
	large := f.store.addSale(1, 1, 66, day(4))

	return f, entry, small, medium, large
}

func TestLedgerService_ApplyAdjustments_ResolvesConflict(t *testing.T) {
	f, entry, small, medium, _ := conflictFixture()
	ctx := context.Background()

	err := f.ledger.DeletePackingEntry(ctx, entry.ID)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, 10, conflict.Details.Deficit)

	result, err := f.ledger.ApplyAdjustments(ctx, domain.Adjustment{
		ItemID:    1,
		DeleteIDs: []uint{small.ID},
		Reduce:    []domain.SaleReduction{{ID: medium.ID, NewQuantity: 4}},
		Deficit:   conflict.Details.Deficit,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdjustmentResult{Deleted: 1, Reduced: 1}, result)

	_, err = f.store.FindSaleByID(ctx, small.ID)
	assert.ErrorIs(t, err, ErrSaleNotFound)
	reduced, err := f.store.FindSaleByID(ctx, medium.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reduced.Quantity)
	assert.Equal(t, "20", reduced.Total.String())

	events := f.publisher.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventSalesAdjusted, events[0].Type)
	assert.Equal(t, 10, events[0].QuantityDelta)

	require.NoError(t, f.ledger.DeletePackingEntry(ctx, entry.ID))
	assert.Equal(t, 0, f.store.available(1))
}

func TestLedgerService_ApplyAdjustments_InsufficientCoverage(t *testing.T) {
	f, _, small, medium, _ := conflictFixture()
	ctx := context.Background()

	_, err := f.ledger.ApplyAdjustments(ctx, domain.Adjustment{
		ItemID:    1,
		DeleteIDs: []uint{small.ID},
		Reduce:    []domain.SaleReduction{{ID: medium.ID, NewQuantity: 5}},
		Deficit:   10,
	})

	var insufficient *InsufficientAdjustmentError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 9, insufficient.Covered)

	sales, err := f.store.FindSales(ctx, domain.SaleFilter{ItemID: 1})
	require.NoError(t, err)
	assert.Len(t, sales, 3, "nothing is written when coverage falls short")
	assert.Empty(t, f.publisher.recorded())
}

func TestLedgerService_ApplyAdjustments_RollsBack(t *testing.T) {
	f, _, small, medium, large := conflictFixture()
	ctx := context.Background()
	f.store.failReduce = errors.New("connection reset")

	_, err := f.ledger.ApplyAdjustments(ctx, domain.Adjustment{
		ItemID:    1,
		DeleteIDs: []uint{small.ID},
		Reduce: []domain.SaleReduction{
			{ID: medium.ID, NewQuantity: 2},
			{ID: large.ID, NewQuantity: 60},
		},
	})
	require.Error(t, err)

	sales, err := f.store.FindSales(ctx, domain.SaleFilter{ItemID: 1})
	require.NoError(t, err)
	quantities := map[uint]int{}
	for _, s := range sales {
		quantities[s.ID] = s.Quantity
	}
	assert.Equal(t, map[uint]int{small.ID: 4, medium.ID: 10, large.ID: 66}, quantities)
	assert.Empty(t, f.publisher.recorded())
}

func TestLedgerService_ApplyAdjustments_ReduceToZeroDeletes(t *testing.T) {
	f, _, small, _, _ := conflictFixture()
	ctx := context.Background()

	result, err := f.ledger.ApplyAdjustments(ctx, domain.Adjustment{
		ItemID: 1,
		Reduce: []domain.SaleReduction{{ID: small.ID, NewQuantity: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdjustmentResult{Deleted: 1}, result)

	_, err = f.store.FindSaleByID(ctx, small.ID)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestLedgerService_ApplyAdjustments_Invalid(t *testing.T) {
	f, _, small, medium, _ := conflictFixture()
	other := f.store.addSale(2, 1, 3, day(2))

	tests := []struct {
		name string
		adj  domain.Adjustment
		want error
	}{
		{
			name: "empty batch",
			adj:  domain.Adjustment{ItemID: 1},
			want: ErrInvalidAdjustment,
		},
		{
			name: "negative quantity",
			adj:  domain.Adjustment{ItemID: 1, Reduce: []domain.SaleReduction{{ID: medium.ID, NewQuantity: -1}}},
			want: ErrInvalidAdjustment,
		},
		{
			name: "deleted and reduced",
			adj: domain.Adjustment{
				ItemID:    1,
				DeleteIDs: []uint{small.ID},
				Reduce:    []domain.SaleReduction{{ID: small.ID, NewQuantity: 1}},
			},
			want: ErrInvalidAdjustment,
		},
		{
			name: "listed twice",
			adj:  domain.Adjustment{ItemID: 1, DeleteIDs: []uint{small.ID, small.ID}},
			want: ErrInvalidAdjustment,
		},
		{
			name: "negative deficit",
			adj:  domain.Adjustment{ItemID: 1, DeleteIDs: []uint{small.ID}, Deficit: -1},
			want: ErrInvalidAdjustment,
		},
		{
			name: "sale of another item",
			adj:  domain.Adjustment{ItemID: 1, DeleteIDs: []uint{other.ID}},
			want: ErrInvalidAdjustment,
		},
		{
			name: "unknown sale",
			adj:  domain.Adjustment{ItemID: 1, DeleteIDs: []uint{12345}},
			want: ErrInvalidAdjustment,
		},
		{
			name: "raising a sale",
			adj:  domain.Adjustment{ItemID: 1, Reduce: []domain.SaleReduction{{ID: medium.ID, NewQuantity: 11}}},
			want: ErrInvalidAdjustment,
		},
		{
			name: "unknown item",
			adj:  domain.Adjustment{ItemID: 77, DeleteIDs: []uint{small.ID}},
			want: ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.ApplyAdjustments(context.Background(), tt.adj)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	sales, err := f.store.FindSales(context.Background(), domain.SaleFilter{ItemID: 1})
	require.NoError(t, err)
	assert.Len(t, sales, 3)
}
