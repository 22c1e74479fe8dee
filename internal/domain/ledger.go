package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for entry and sale dates.
const DateLayout = "2006-01-02"

// UnknownName is shown when a referenced worker, item or buyer has no name.
const UnknownName = "Unknown"

type Company string

const (
	CompanyNCC Company = "NCC"
	CompanyICD Company = "ICD"
	CompanyCC  Company = "CC"
)

var Companies = []Company{CompanyNCC, CompanyICD, CompanyCC}

func (c Company) Valid() bool {
	for _, company := range Companies {
		if c == company {
			return true
		}
	}

	return false
}

// PackingEntry is one inbound stock event.
type PackingEntry struct {
	ID         uint            `json:"id"`
	WorkerID   uint            `json:"worker_id"`
	WorkerName string          `json:"worker_name,omitempty"`
	ItemID     uint            `json:"item_id"`
	ItemName   string          `json:"item_name,omitempty"`
	Date       time.Time       `json:"date"`
	Quantity   int             `json:"quantity"`
	Rate       decimal.Decimal `json:"rate"`
	Company    Company         `json:"company"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Sale is one outbound stock event.
type Sale struct {
	ID        uint            `json:"id"`
	ItemID    uint            `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	BuyerID   uint            `json:"buyer_id"`
	BuyerName string          `json:"buyer_name,omitempty"`
	Date      time.Time       `json:"date"`
	Quantity  int             `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PackingFilter narrows a packing entry listing. Zero values mean "any".
type PackingFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	WorkerID  uint
	ItemID    uint
	Company   Company
}

type SaleFilter struct {
	ItemID uint
}

// MoneyPlaces is the scale of the rate and total columns.
const MoneyPlaces = 2

// MaxQuantity bounds a single entry or sale.
const MaxQuantity = math.MaxInt32

var (
	// MaxRate is the largest value a numeric(12,2) rate column holds.
	MaxRate = decimal.RequireFromString("9999999999.99")
	// MaxLineTotal is the largest value a numeric(14,2) total column holds.
	MaxLineTotal = decimal.RequireFromString("999999999999.99")
)

// LineTotal is the single place where quantity × rate is computed.
func LineTotal(quantity int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}
