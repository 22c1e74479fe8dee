package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type WorkerStat struct {
	WorkerID      uint            `json:"worker_id"`
	WorkerName    string          `json:"worker_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type BuyerStat struct {
	BuyerID       uint            `json:"buyer_id"`
	BuyerName     string          `json:"buyer_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type ItemStat struct {
	ItemID         uint            `json:"item_id"`
	ItemName       string          `json:"item_name"`
	PackedQuantity int             `json:"packed_quantity"`
	PackedValue    decimal.Decimal `json:"packed_value"`
	SoldQuantity   int             `json:"sold_quantity"`
	SoldValue      decimal.Decimal `json:"sold_value"`
	InStock        int             `json:"in_stock"`
}

type WorkerReportGroup struct {
	WorkerID      uint            `json:"worker_id"`
	WorkerName    string          `json:"worker_name"`
	Entries       []PackingEntry  `json:"entries"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type WorkerReport struct {
	StartDate     time.Time           `json:"start_date"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	Workers       []WorkerReportGroup `json:"workers"`
	TotalQuantity int                 `json:"total_quantity"`
	TotalValue    decimal.Decimal     `json:"total_value"`
}

// NewWorkerReport groups entries by worker, ordered by worker name.
// Entries keep their incoming order inside a group.
func NewWorkerReport(start time.Time, end *time.Time, entries []PackingEntry) WorkerReport {
	report := WorkerReport{
		StartDate:  start,
		EndDate:    end,
		Workers:    []WorkerReportGroup{},
		TotalValue: decimal.Zero,
	}

	index := map[uint]int{}
	for _, e := range entries {
		i, ok := index[e.WorkerID]
		if !ok {
			i = len(report.Workers)
			index[e.WorkerID] = i
			report.Workers = append(report.Workers, WorkerReportGroup{
				WorkerID:   e.WorkerID,
				WorkerName: nameOrUnknown(e.WorkerName),
				TotalValue: decimal.Zero,
			})
		}

		group := &report.Workers[i]
		group.Entries = append(group.Entries, e)
		group.TotalQuantity += e.Quantity
		group.TotalValue = group.TotalValue.Add(e.Total)

		report.TotalQuantity += e.Quantity
		report.TotalValue = report.TotalValue.Add(e.Total)
	}

	sort.SliceStable(report.Workers, func(i, j int) bool {
		return report.Workers[i].WorkerName < report.Workers[j].WorkerName
	})

	return report
}
