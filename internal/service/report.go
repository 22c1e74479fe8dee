package service

import (
	"context"
	"fmt"
	"time"

	"github.com/packtrack/stock-api/internal/domain"
)

type ReportRepository interface {
	WorkerStats(ctx context.Context) ([]domain.WorkerStat, error)
	BuyerStats(ctx context.Context) ([]domain.BuyerStat, error)
	ItemStats(ctx context.Context) ([]domain.ItemStat, error)
	FindPackingEntries(ctx context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) WorkerStats(ctx context.Context) ([]domain.WorkerStat, error) {
	stats, err := s.repo.WorkerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.WorkerStats -> %w", err)
	}

	return stats, nil
}

func (s *ReportService) BuyerStats(ctx context.Context) ([]domain.BuyerStat, error) {
	stats, err := s.repo.BuyerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.BuyerStats -> %w", err)
	}

	return stats, nil
}

func (s *ReportService) ItemStats(ctx context.Context) ([]domain.ItemStat, error) {
	stats, err := s.repo.ItemStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ItemStats -> %w", err)
	}

	return stats, nil
}

// WorkerReport groups the packing entries dated from start to end (open ended
// when end is nil) by worker. A zero workerID covers every worker.
func (s *ReportService) WorkerReport(ctx context.Context, start time.Time, end *time.Time, workerID uint) (domain.WorkerReport, error) {
	if end != nil && end.Before(start) {
		return domain.WorkerReport{}, ErrInvalidDateRange
	}

	entries, err := s.repo.FindPackingEntries(ctx, domain.PackingFilter{
		StartDate: &start,
		EndDate:   end,
		WorkerID:  workerID,
	})
	if err != nil {
		return domain.WorkerReport{}, fmt.Errorf("s.repo.FindPackingEntries -> %w", err)
	}

	return domain.NewWorkerReport(start, end, entries), nil
}
