package repository

import (
	"context"
	"fmt"

	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/repository/dao"
)

var (
	ErrWorkerNotFound = dao.ErrWorkerNotFound
	ErrWorkerInUse    = dao.ErrWorkerInUse
	ErrItemNotFound   = dao.ErrItemNotFound
	ErrItemNameExists = dao.ErrItemNameExists
	ErrItemInUse      = dao.ErrItemInUse
	ErrBuyerNotFound  = dao.ErrBuyerNotFound
	ErrBuyerInUse     = dao.ErrBuyerInUse
)

type WorkerDAO interface {
	Insert(ctx context.Context, worker dao.Worker) (dao.Worker, error)
	FindAll(ctx context.Context) ([]dao.Worker, error)
	FindByID(ctx context.Context, id uint) (dao.Worker, error)
	Update(ctx context.Context, worker dao.Worker) (dao.Worker, error)
	Delete(ctx context.Context, id uint) error
}

type WorkerRepository struct {
	dao WorkerDAO
}

func NewWorkerRepository(dao WorkerDAO) *WorkerRepository {
	return &WorkerRepository{
		dao: dao,
	}
}

func (r *WorkerRepository) Create(ctx context.Context, worker domain.Worker) (domain.Worker, error) {
	created, err := r.dao.Insert(ctx, dao.Worker{Name: worker.Name})
	if err != nil {
		return domain.Worker{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return workerDaoToDomain(created), nil
}

func (r *WorkerRepository) FindAll(ctx context.Context) ([]domain.Worker, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	workers := make([]domain.Worker, 0, len(found))
	for _, w := range found {
		workers = append(workers, workerDaoToDomain(w))
	}

	return workers, nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id uint) (domain.Worker, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return workerDaoToDomain(found), nil
}

func (r *WorkerRepository) Update(ctx context.Context, worker domain.Worker) (domain.Worker, error) {
	updated, err := r.dao.Update(ctx, dao.Worker{ID: worker.ID, Name: worker.Name})
	if err != nil {
		return domain.Worker{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return workerDaoToDomain(updated), nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func workerDaoToDomain(w dao.Worker) domain.Worker {
	return domain.Worker{
		ID:        w.ID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type ItemDAO interface {
	Insert(ctx context.Context, item dao.Item) (dao.Item, error)
	FindAll(ctx context.Context) ([]dao.Item, error)
	FindByID(ctx context.Context, id uint) (dao.Item, error)
	Update(ctx context.Context, item dao.Item) (dao.Item, error)
	Delete(ctx context.Context, id uint) error
}

type ItemRepository struct {
	dao ItemDAO
}

func NewItemRepository(dao ItemDAO) *ItemRepository {
	return &ItemRepository{
		dao: dao,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.dao.Insert(ctx, dao.Item{Name: item.Name})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return itemDaoToDomain(created), nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	items := make([]domain.Item, 0, len(found))
	for _, i := range found {
		items = append(items, itemDaoToDomain(i))
	}

	return items, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uint) (domain.Item, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return itemDaoToDomain(found), nil
}

func (r *ItemRepository) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.dao.Update(ctx, dao.Item{ID: item.ID, Name: item.Name})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return itemDaoToDomain(updated), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func itemDaoToDomain(i dao.Item) domain.Item {
	return domain.Item{
		ID:        i.ID,
		Name:      i.Name,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type BuyerDAO interface {
	Insert(ctx context.Context, buyer dao.Buyer) (dao.Buyer, error)
	FindAll(ctx context.Context) ([]dao.Buyer, error)
	FindByID(ctx context.Context, id uint) (dao.Buyer, error)
	Update(ctx context.Context, buyer dao.Buyer) (dao.Buyer, error)
	Delete(ctx context.Context, id uint) error
}

type BuyerRepository struct {
	dao BuyerDAO
}

func NewBuyerRepository(dao BuyerDAO) *BuyerRepository {
	return &BuyerRepository{
		dao: dao,
	}
}

func (r *BuyerRepository) Create(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error) {
	created, err := r.dao.Insert(ctx, dao.Buyer{Name: buyer.Name, Contact: buyer.Contact})
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return buyerDaoToDomain(created), nil
}

func (r *BuyerRepository) FindAll(ctx context.Context) ([]domain.Buyer, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	buyers := make([]domain.Buyer, 0, len(found))
	for _, b := range found {
		buyers = append(buyers, buyerDaoToDomain(b))
	}

	return buyers, nil
}

func (r *BuyerRepository) FindByID(ctx context.Context, id uint) (domain.Buyer, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return buyerDaoToDomain(found), nil
}

func (r *BuyerRepository) Update(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error) {
	updated, err := r.dao.Update(ctx, dao.Buyer{ID: buyer.ID, Name: buyer.Name, Contact: buyer.Contact})
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return buyerDaoToDomain(updated), nil
}

func (r *BuyerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func buyerDaoToDomain(b dao.Buyer) domain.Buyer {
	return domain.Buyer{
		ID:        b.ID,
		Name:      b.Name,
		Contact:   b.Contact,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
