package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/packtrack/stock-api/internal/domain"
)

var (
	errNotPositive    = errors.New("must be greater than 0")
	errRatePrecision  = errors.New("must have at most 2 decimal places")
	errRateTooLarge   = errors.New("must be no greater than " + domain.MaxRate.StringFixed(domain.MoneyPlaces))
	errTotalTooLarge  = errors.New("quantity times rate must be no greater than " + domain.MaxLineTotal.StringFixed(domain.MoneyPlaces))
	errEndBeforeStart = errors.New("must not be before start_date")
)

// validRate checks a rate against the money columns it is stored in, so the
// stored total always equals quantity times the stored rate.
func validRate(quantity int) validation.RuleFunc {
	return func(value interface{}) error {
		d, _ := value.(decimal.Decimal)
		switch {
		case !d.IsPositive():
			return errNotPositive
		case !d.Equal(d.Round(domain.MoneyPlaces)):
			return errRatePrecision
		case d.GreaterThan(domain.MaxRate):
			return errRateTooLarge
		case quantity > 0 && quantity <= domain.MaxQuantity &&
			domain.LineTotal(quantity, d).GreaterThan(domain.MaxLineTotal):
			return errTotalTooLarge
		}

		return nil
	}
}

func notBefore(start string) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(string)
		from, to := optionalDate(start), optionalDate(end)
		if from != nil && to != nil && to.Before(*from) {
			return errEndBeforeStart
		}

		return nil
	}
}

func companies() []interface{} {
	out := make([]interface{}, 0, len(domain.Companies))
	for _, c := range domain.Companies {
		out = append(out, string(c))
	}

	return out
}

type PackingEntryRequest struct {
	WorkerID uint            `json:"worker_id" example:"1"`
	ItemID   uint            `json:"item_id" example:"1"`
	Date     string          `json:"date" format:"YYYY-MM-DD" example:"2024-03-01"`
	Quantity int             `json:"quantity" example:"30"`
	Rate     decimal.Decimal `json:"rate" swaggertype:"string" example:"2.50"`
	Company  string          `json:"company" enums:"NCC,ICD,CC"`
}

func (req *PackingEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WorkerID, validation.Required),
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(domain.MaxQuantity)),
		validation.Field(&req.Rate, validation.By(validRate(req.Quantity))),
		validation.Field(&req.Company, validation.Required, validation.In(companies()...)),
	)
}

// ToDomain expects a request that passed Validate.
func (req *PackingEntryRequest) ToDomain() domain.PackingEntry {
	date, _ := time.Parse(domain.DateLayout, req.Date)

	return domain.PackingEntry{
		WorkerID: req.WorkerID,
		ItemID:   req.ItemID,
		Date:     date,
		Quantity: req.Quantity,
		Rate:     req.Rate,
		Company:  domain.Company(req.Company),
	}
}

type SaleRequest struct {
	ItemID   uint            `json:"item_id" example:"1"`
	BuyerID  uint            `json:"buyer_id" example:"1"`
	Date     string          `json:"date" format:"YYYY-MM-DD" example:"2024-03-02"`
	Quantity int             `json:"quantity" example:"8"`
	Rate     decimal.Decimal `json:"rate" swaggertype:"string" example:"4.00"`
}

func (req *SaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.BuyerID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(domain.MaxQuantity)),
		validation.Field(&req.Rate, validation.By(validRate(req.Quantity))),
	)
}

// ToDomain expects a request that passed Validate.
func (req *SaleRequest) ToDomain() domain.Sale {
	date, _ := time.Parse(domain.DateLayout, req.Date)

	return domain.Sale{
		ItemID:   req.ItemID,
		BuyerID:  req.BuyerID,
		Date:     date,
		Quantity: req.Quantity,
		Rate:     req.Rate,
	}
}

type PackingEntryQuery struct {
	StartDate string `form:"start_date" format:"YYYY-MM-DD"`
	EndDate   string `form:"end_date" format:"YYYY-MM-DD"`
	WorkerID  uint   `form:"worker_id"`
	ItemID    uint   `form:"item_id"`
	Company   string `form:"company"`
}

func (q *PackingEntryQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.StartDate, validation.Date(domain.DateLayout)),
		validation.Field(&q.EndDate, validation.Date(domain.DateLayout), validation.By(notBefore(q.StartDate))),
		validation.Field(&q.Company, validation.In(companies()...)),
	)
}

// ToDomain expects a query that passed Validate.
func (q *PackingEntryQuery) ToDomain() domain.PackingFilter {
	return domain.PackingFilter{
		StartDate: optionalDate(q.StartDate),
		EndDate:   optionalDate(q.EndDate),
		WorkerID:  q.WorkerID,
		ItemID:    q.ItemID,
		Company:   domain.Company(q.Company),
	}
}

type SaleQuery struct {
	ItemID uint `form:"item_id"`
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil
	}

	return &t
}
