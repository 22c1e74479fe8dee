package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/domain"
)

type memItems struct {
	items map[uint]domain.Item
}

func (m *memItems) Create(_ context.Context, item domain.Item) (domain.Item, error) {
	for _, existing := range m.items {
		if existing.Name == item.Name {
			return domain.Item{}, ErrItemNameExists
		}
	}
	item.ID = uint(len(m.items) + 1)
	m.items[item.ID] = item
	return item, nil
}

func (m *memItems) FindAll(context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *memItems) FindByID(_ context.Context, id uint) (domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return domain.Item{}, ErrItemNotFound
	}
	return item, nil
}

func (m *memItems) Update(_ context.Context, item domain.Item) (domain.Item, error) {
	if _, ok := m.items[item.ID]; !ok {
		return domain.Item{}, ErrItemNotFound
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *memItems) Delete(_ context.Context, id uint) error {
	if _, ok := m.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func TestItemService(t *testing.T) {
	cache := newMemCache()
	svc := NewItemService(&memItems{items: map[uint]domain.Item{}}, cache)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, domain.Item{Name: "Soap"})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, domain.Item{Name: "Soap"})
	assert.ErrorIs(t, err, ErrItemNameExists)

	require.NoError(t, cache.Set(ctx, domain.StockLevel{ItemID: item.ID, ItemName: "Soap"}, 0))
	item.Name = "Bar soap"
	_, err = svc.UpdateItem(ctx, item)
	require.NoError(t, err)
	_, cached, _ := cache.Get(ctx, item.ID)
	assert.False(t, cached, "rename drops the cached level")

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bar soap", got.Name)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	_, err = svc.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = svc.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
