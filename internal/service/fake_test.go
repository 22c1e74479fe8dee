package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/repository"
)

// memStore is an in-memory ledger. LockItems serializes callers and rolls
// entries and sales back when fn fails.
type memStore struct {
	lock sync.Mutex
	mu   sync.Mutex

	nextID  uint
	items   map[uint]domain.Item
	workers map[uint]domain.Worker
	buyers  map[uint]domain.Buyer
	entries map[uint]domain.PackingEntry
	sales   map[uint]domain.Sale

	stockReads int
	failReduce error
}

func newMemStore() *memStore {
	return &memStore{
		nextID:  100,
		items:   map[uint]domain.Item{1: {ID: 1, Name: "Soap"}, 2: {ID: 2, Name: "Oil"}},
		workers: map[uint]domain.Worker{1: {ID: 1, Name: "Anil"}, 2: {ID: 2, Name: "Zoya"}},
		buyers:  map[uint]domain.Buyer{1: {ID: 1, Name: "Ravi"}, 2: {ID: 2, Name: "Meena"}},
		entries: map[uint]domain.PackingEntry{},
		sales:   map[uint]domain.Sale{},
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func (m *memStore) addEntry(itemID uint, quantity int, rate int64) domain.PackingEntry {
	e, _ := m.CreatePackingEntry(context.Background(), domain.PackingEntry{
		WorkerID: 1,
		ItemID:   itemID,
		Date:     day(1),
		Quantity: quantity,
		Rate:     decimal.NewFromInt(rate),
		Company:  domain.CompanyNCC,
	})
	return e
}

func (m *memStore) addSale(itemID, buyerID uint, quantity int, date time.Time) domain.Sale {
	s, _ := m.CreateSale(context.Background(), domain.Sale{
		ItemID:   itemID,
		BuyerID:  buyerID,
		Date:     date,
		Quantity: quantity,
		Rate:     decimal.NewFromInt(5),
	})
	return s
}

func (m *memStore) available(itemID uint) int {
	level, _ := m.StockLevel(context.Background(), itemID)
	return level.Available()
}

func (m *memStore) LockItems(ctx context.Context, itemIDs []uint, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	for _, id := range itemIDs {
		if _, ok := m.items[id]; !ok {
			m.mu.Unlock()
			return repository.ErrItemNotFound
		}
	}
	m.mu.Unlock()

	m.lock.Lock()
	defer m.lock.Unlock()

	m.mu.Lock()
	entries := make(map[uint]domain.PackingEntry, len(m.entries))
	for k, v := range m.entries {
		entries[k] = v
	}
	sales := make(map[uint]domain.Sale, len(m.sales))
	for k, v := range m.sales {
		sales[k] = v
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.entries, m.sales = entries, sales
		m.mu.Unlock()
		return err
	}

	return nil
}

func (m *memStore) StockLevel(_ context.Context, itemID uint) (domain.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stockReads++
	packed, sold, value := 0, 0, decimal.Zero
	for _, e := range m.entries {
		if e.ItemID == itemID {
			packed += e.Quantity
			value = value.Add(e.Total)
		}
	}
	for _, s := range m.sales {
		if s.ItemID == itemID {
			sold += s.Quantity
		}
	}

	return domain.NewStockLevel(itemID, m.items[itemID].Name, packed, sold, value), nil
}

func (m *memStore) StockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	m.mu.Lock()
	ids := make([]uint, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	levels := make([]domain.StockLevel, 0, len(ids))
	for _, id := range ids {
		level, _ := m.StockLevel(ctx, id)
		levels = append(levels, level)
	}

	return levels, nil
}

func (m *memStore) CreatePackingEntry(_ context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[entry.ItemID]; !ok {
		return domain.PackingEntry{}, repository.ErrItemNotFound
	}
	if _, ok := m.workers[entry.WorkerID]; !ok {
		return domain.PackingEntry{}, repository.ErrWorkerNotFound
	}

	m.nextID++
	entry.ID = m.nextID
	entry.Total = domain.LineTotal(entry.Quantity, entry.Rate)
	m.entries[entry.ID] = entry

	return m.withNames(entry), nil
}

func (m *memStore) FindPackingEntryByID(_ context.Context, id uint) (domain.PackingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return domain.PackingEntry{}, repository.ErrPackingEntryNotFound
	}

	return m.withNames(e), nil
}

func (m *memStore) FindPackingEntries(_ context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.PackingEntry
	for _, e := range m.entries {
		switch {
		case filter.StartDate != nil && e.Date.Before(*filter.StartDate):
		case filter.EndDate != nil && e.Date.After(*filter.EndDate):
		case filter.WorkerID != 0 && e.WorkerID != filter.WorkerID:
		case filter.ItemID != 0 && e.ItemID != filter.ItemID:
		case filter.Company != "" && e.Company != filter.Company:
		default:
			out = append(out, m.withNames(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (m *memStore) UpdatePackingEntry(_ context.Context, entry domain.PackingEntry) (domain.PackingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.ID]; !ok {
		return domain.PackingEntry{}, repository.ErrPackingEntryNotFound
	}
	entry.Total = domain.LineTotal(entry.Quantity, entry.Rate)
	m.entries[entry.ID] = entry

	return m.withNames(entry), nil
}

func (m *memStore) DeletePackingEntry(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return repository.ErrPackingEntryNotFound
	}
	delete(m.entries, id)

	return nil
}

func (m *memStore) CreateSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buyers[sale.BuyerID]; !ok {
		return domain.Sale{}, repository.ErrBuyerNotFound
	}

	m.nextID++
	sale.ID = m.nextID
	sale.Total = domain.LineTotal(sale.Quantity, sale.Rate)
	m.sales[sale.ID] = sale

	return m.saleWithNames(sale), nil
}

func (m *memStore) FindSaleByID(_ context.Context, id uint) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sales[id]
	if !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}

	return m.saleWithNames(s), nil
}

func (m *memStore) FindSales(_ context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Sale{}
	for _, s := range m.sales {
		if filter.ItemID == 0 || s.ItemID == filter.ItemID {
			out = append(out, m.saleWithNames(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (m *memStore) DeleteSale(_ context.Context, id uint) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sales[id]
	if !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}
	delete(m.sales, id)

	return s, nil
}

func (m *memStore) DeleteSales(_ context.Context, itemID uint, ids []uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, id := range ids {
		if s, ok := m.sales[id]; ok && s.ItemID == itemID {
			delete(m.sales, id)
			n++
		}
	}

	return n, nil
}

func (m *memStore) ReduceSale(_ context.Context, sale domain.Sale, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failReduce != nil {
		return m.failReduce
	}

	s, ok := m.sales[sale.ID]
	if !ok {
		return repository.ErrSaleNotFound
	}
	s.Quantity = quantity
	s.Total = domain.LineTotal(quantity, s.Rate)
	m.sales[sale.ID] = s

	return nil
}

func (m *memStore) withNames(e domain.PackingEntry) domain.PackingEntry {
	e.WorkerName = m.workers[e.WorkerID].Name
	e.ItemName = m.items[e.ItemID].Name
	return e
}

func (m *memStore) saleWithNames(s domain.Sale) domain.Sale {
	s.ItemName = m.items[s.ItemID].Name
	s.BuyerName = m.buyers[s.BuyerID].Name
	return s
}

type memCache struct {
	mu          sync.Mutex
	levels      map[uint]domain.StockLevel
	versions    map[uint]int64
	invalidated []uint
}

func newMemCache() *memCache {
	return &memCache{levels: map[uint]domain.StockLevel{}, versions: map[uint]int64{}}
}

func (c *memCache) Version(_ context.Context, itemID uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.versions[itemID], nil
}

func (c *memCache) Get(_ context.Context, itemID uint) (domain.StockLevel, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	level, ok := c.levels[itemID]
	return level, ok, nil
}

func (c *memCache) Set(_ context.Context, level domain.StockLevel, version int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions[level.ItemID] != version {
		return nil
	}
	c.levels[level.ItemID] = level
	return nil
}

func (c *memCache) Invalidate(_ context.Context, itemIDs ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range itemIDs {
		c.versions[id]++
		delete(c.levels, id)
	}
	c.invalidated = append(c.invalidated, itemIDs...)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.StockEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.StockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) recorded() []domain.StockEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.StockEvent(nil), p.events...)
}

type ledgerFixture struct {
	store     *memStore
	cache     *memCache
	publisher *recordingPublisher
	stock     *StockService
	ledger    *LedgerService
}

func newLedgerFixture() ledgerFixture {
	store := newMemStore()
	cache := newMemCache()
	publisher := &recordingPublisher{}
	stock := NewStockService(store, cache)

	return ledgerFixture{
		store:     store,
		cache:     cache,
		publisher: publisher,
		stock:     stock,
		ledger:    NewLedgerService(store, stock, cache, publisher),
	}
}
