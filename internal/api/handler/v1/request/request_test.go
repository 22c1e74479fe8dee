package request

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/domain"
)

func TestWorkerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "latin", input: "Anil"},
		{name: "devanagari", input: "अनिल"},
		{name: "letters and digits", input: "Shift 2 Anil"},
		{name: "trimmed", input: "  Jo  "},
		{name: "empty", input: "", wantErr: true},
		{name: "single rune", input: "A", wantErr: true},
		{name: "digits only", input: "1234", wantErr: true},
		{name: "spaces only", input: "    ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := WorkerRequest{Name: tt.input}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuyerRequest_Validate(t *testing.T) {
	req := BuyerRequest{Name: "Ravi", Contact: strings.Repeat("x", 101)}
	assert.Error(t, req.Validate())

	req = BuyerRequest{Name: "Ravi"}
	assert.NoError(t, req.Validate())
}

func TestItemRequest_Validate(t *testing.T) {
	req := ItemRequest{Name: "9"}
	assert.NoError(t, req.Validate())

	req = ItemRequest{Name: " "}
	assert.Error(t, req.Validate())
}

func TestPackingEntryRequest(t *testing.T) {
	req := PackingEntryRequest{
		WorkerID: 1,
		ItemID:   2,
		Date:     "2024-03-01",
		Quantity: 30,
		Rate:     decimal.RequireFromString("2.5"),
		Company:  "ICD",
	}
	require.NoError(t, req.Validate())

	entry := req.ToDomain()
	assert.Equal(t, domain.CompanyICD, entry.Company)
	assert.Equal(t, "2024-03-01", entry.Date.Format(domain.DateLayout))

	bad := req
	bad.Company = "XYZ"
	assert.Error(t, bad.Validate())

	bad = req
	bad.Rate = decimal.Zero
	assert.Error(t, bad.Validate())

	bad = req
	bad.Date = "01/03/2024"
	assert.Error(t, bad.Validate())

	bad = req
	bad.Quantity = 0
	assert.Error(t, bad.Validate())
}

func TestSaleRequest_Validate(t *testing.T) {
	req := SaleRequest{ItemID: 1, BuyerID: 1, Date: "2024-03-02", Quantity: 8, Rate: decimal.NewFromInt(4)}
	assert.NoError(t, req.Validate())

	req.Rate = decimal.NewFromInt(-1)
	assert.Error(t, req.Validate())
}

func TestRate_StoredExactly(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		rate     string
		wantErr  error
	}{
		{name: "two places", quantity: 3, rate: "2.55"},
		{name: "whole", quantity: 3, rate: "4"},
		{name: "largest rate", quantity: 1, rate: "9999999999.99"},
		{name: "largest total", quantity: 100, rate: "9999999999.99"},
		{name: "rounds to zero", quantity: 3, rate: "0.004", wantErr: errRatePrecision},
		{name: "three places", quantity: 3, rate: "2.555", wantErr: errRatePrecision},
		{name: "zero", quantity: 3, rate: "0", wantErr: errNotPositive},
		{name: "rate overflow", quantity: 1, rate: "123456789012.5", wantErr: errRateTooLarge},
		{name: "total overflow", quantity: 101, rate: "9999999999.99", wantErr: errTotalTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			sale := SaleRequest{ItemID: 1, BuyerID: 1, Date: "2024-03-02", Quantity: tt.quantity, Rate: rate}
			entry := PackingEntryRequest{WorkerID: 1, ItemID: 1, Date: "2024-03-01", Quantity: tt.quantity, Rate: rate, Company: "CC"}

			for _, err := range []error{sale.Validate(), entry.Validate()} {
				if tt.wantErr == nil {
					assert.NoError(t, err)
					continue
				}
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
		})
	}

	entry := PackingEntryRequest{WorkerID: 1, ItemID: 1, Date: "2024-03-01", Quantity: 3, Rate: decimal.RequireFromString("2.55"), Company: "CC"}
	require.NoError(t, entry.Validate())
	stored := entry.ToDomain()
	assert.True(t, stored.Rate.Equal(stored.Rate.Round(domain.MoneyPlaces)))
	assert.Equal(t, "7.65", domain.LineTotal(stored.Quantity, stored.Rate).StringFixed(2))
}

func TestQuantity_Bounded(t *testing.T) {
	req := SaleRequest{ItemID: 1, BuyerID: 1, Date: "2024-03-02", Quantity: domain.MaxQuantity + 1, Rate: decimal.RequireFromString("0.01")}
	assert.Error(t, req.Validate())
}

func TestPackingEntryQuery(t *testing.T) {
	q := PackingEntryQuery{StartDate: "2024-03-01", Company: "NCC", WorkerID: 3}
	require.NoError(t, q.Validate())

	filter := q.ToDomain()
	require.NotNil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.Equal(t, uint(3), filter.WorkerID)
	assert.Equal(t, domain.CompanyNCC, filter.Company)

	q = PackingEntryQuery{StartDate: "2024-03-10", EndDate: "2024-03-01"}
	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), errEndBeforeStart.Error())

	q = PackingEntryQuery{StartDate: "2024-03-10", EndDate: "2024-03-10"}
	assert.NoError(t, q.Validate())

	q = PackingEntryQuery{EndDate: "2024-03-01"}
	assert.NoError(t, q.Validate())
}

func TestAdjustmentRequest_Validate(t *testing.T) {
	req := AdjustmentRequest{Reduce: []domain.SaleReduction{{ID: 1, NewQuantity: -2}}}
	assert.Error(t, req.Validate())

	req = AdjustmentRequest{DeleteIDs: []uint{1}, Deficit: -1}
	assert.Error(t, req.Validate())

	req = AdjustmentRequest{DeleteIDs: []uint{1}, Reduce: []domain.SaleReduction{{ID: 2, NewQuantity: 0}}, Deficit: 4}
	require.NoError(t, req.Validate())
	assert.Equal(t, uint(9), req.ToDomain(9).ItemID)
}

func TestWorkerReportQuery(t *testing.T) {
	q := WorkerReportQuery{}
	assert.Error(t, q.Validate())

	q = WorkerReportQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"}
	require.NoError(t, q.Validate())
	start, end := q.Range()
	assert.Equal(t, 1, start.Day())
	require.NotNil(t, end)
	assert.Equal(t, 31, end.Day())

	q = WorkerReportQuery{StartDate: "2024-03-31", EndDate: "2024-03-01"}
	assert.Error(t, q.Validate())
}
