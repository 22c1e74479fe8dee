package service

import (
	"context"
	"fmt"

	"github.com/packtrack/stock-api/internal/domain"
)

type WorkerRepository interface {
	Create(ctx context.Context, worker domain.Worker) (domain.Worker, error)
	FindAll(ctx context.Context) ([]domain.Worker, error)
	FindByID(ctx context.Context, id uint) (domain.Worker, error)
	Update(ctx context.Context, worker domain.Worker) (domain.Worker, error)
	Delete(ctx context.Context, id uint) error
}

type WorkerService struct {
	repo WorkerRepository
}

func NewWorkerService(repo WorkerRepository) *WorkerService {
	return &WorkerService{
		repo: repo,
	}
}

func (s *WorkerService) CreateWorker(ctx context.Context, worker domain.Worker) (domain.Worker, error) {
	created, err := s.repo.Create(ctx, worker)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *WorkerService) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return workers, nil
}

func (s *WorkerService) GetWorker(ctx context.Context, id uint) (domain.Worker, error) {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return worker, nil
}

func (s *WorkerService) UpdateWorker(ctx context.Context, worker domain.Worker) (domain.Worker, error) {
	updated, err := s.repo.Update(ctx, worker)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *WorkerService) DeleteWorker(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

type ItemRepository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	FindAll(ctx context.Context) ([]domain.Item, error)
	FindByID(ctx context.Context, id uint) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, id uint) error
}

type ItemService struct {
	repo  ItemRepository
	cache StockCache
}

func NewItemService(repo ItemRepository, cache StockCache) *ItemService {
	return &ItemService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ItemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return items, nil
}

func (s *ItemService) GetItem(ctx context.Context, id uint) (domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

// UpdateItem renames an item. The cached stock level carries the name, so it
// is dropped.
func (s *ItemService) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	invalidate(ctx, s.cache, updated.ID)

	return updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	invalidate(ctx, s.cache, id)

	return nil
}

type BuyerRepository interface {
	Create(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error)
	FindAll(ctx context.Context) ([]domain.Buyer, error)
	FindByID(ctx context.Context, id uint) (domain.Buyer, error)
	Update(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error)
	Delete(ctx context.Context, id uint) error
}

type BuyerService struct {
	repo BuyerRepository
}

func NewBuyerService(repo BuyerRepository) *BuyerService {
	return &BuyerService{
		repo: repo,
	}
}

func (s *BuyerService) CreateBuyer(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error) {
	created, err := s.repo.Create(ctx, buyer)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *BuyerService) ListBuyers(ctx context.Context) ([]domain.Buyer, error) {
	buyers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return buyers, nil
}

func (s *BuyerService) GetBuyer(ctx context.Context, id uint) (domain.Buyer, error) {
	buyer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return buyer, nil
}

func (s *BuyerService) UpdateBuyer(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error) {
	updated, err := s.repo.Update(ctx, buyer)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *BuyerService) DeleteBuyer(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
