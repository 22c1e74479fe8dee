package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrWorkerInUse    = errors.New("worker has packing entries")
)

type Worker struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type WorkerDAO struct {
	db *gorm.DB
}

func NewWorkerDAO(db *gorm.DB) *WorkerDAO {
	return &WorkerDAO{
		db: db,
	}
}

func (d *WorkerDAO) Insert(ctx context.Context, worker Worker) (Worker, error) {
	result := d.db.WithContext(ctx).Create(&worker)
	if result.Error != nil {
		return Worker{}, result.Error
	}

	return worker, nil
}

func (d *WorkerDAO) FindAll(ctx context.Context) ([]Worker, error) {
	var workers []Worker
	if err := d.db.WithContext(ctx).Order("name").Find(&workers).Error; err != nil {
		return nil, err
	}

	return workers, nil
}

func (d *WorkerDAO) FindByID(ctx context.Context, id uint) (Worker, error) {
	var worker Worker
	err := d.db.WithContext(ctx).First(&worker, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Worker{}, ErrWorkerNotFound
		}

		return Worker{}, err
	}

	return worker, nil
}

func (d *WorkerDAO) Update(ctx context.Context, worker Worker) (Worker, error) {
	result := d.db.WithContext(ctx).Model(&Worker{ID: worker.ID}).Update("name", worker.Name)
	if result.Error != nil {
		return Worker{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Worker{}, ErrWorkerNotFound
	}

	return d.FindByID(ctx, worker.ID)
}

func (d *WorkerDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Worker{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintPackingEntryWorker) {
			return ErrWorkerInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkerNotFound
	}

	return nil
}
