package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/packtrack/stock-api/internal/domain"
)

var errNegativeQuantity = errors.New("new quantities cannot be negative")

type StockCheckRequest struct {
	Delta int `json:"delta" example:"-30"`
}

type AdjustmentRequest struct {
	DeleteIDs []uint                 `json:"deleteIds"`
	Reduce    []domain.SaleReduction `json:"reduce"`
	Deficit   int                    `json:"deficit,omitempty" example:"10"`
}

func (req *AdjustmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Deficit, validation.Min(0)),
		validation.Field(&req.Reduce, validation.By(func(value interface{}) error {
			reduce, _ := value.([]domain.SaleReduction)
			for _, r := range reduce {
				if r.NewQuantity < 0 {
					return errNegativeQuantity
				}
			}
			return nil
		})),
	)
}

func (req *AdjustmentRequest) ToDomain(itemID uint) domain.Adjustment {
	return domain.Adjustment{
		ItemID:    itemID,
		DeleteIDs: req.DeleteIDs,
		Reduce:    req.Reduce,
		Deficit:   req.Deficit,
	}
}
