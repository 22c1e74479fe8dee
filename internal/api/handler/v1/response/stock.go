package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packtrack/stock-api/internal/domain"
)

const TypeStockConflict = "STOCK_CONFLICT"

// StockConflict is the body returned when a packing entry change is refused
// because stock would go negative.
type StockConflict struct {
	Success bool                 `json:"success"`
	Type    string               `json:"type"`
	Message string               `json:"message"`
	Details domain.StockConflict `json:"details"`
}

func RenderStockConflict(ctx *gin.Context, message string, details domain.StockConflict) {
	if details.AffectedSales == nil {
		details.AffectedSales = []domain.AffectedSale{}
	}

	ctx.AbortWithStatusJSON(http.StatusConflict, StockConflict{
		Success: false,
		Type:    TypeStockConflict,
		Message: message,
		Details: details,
	})
}

type Adjusted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
	Reduced int    `json:"reduced"`
}

func NewAdjusted(result domain.AdjustmentResult) Adjusted {
	return Adjusted{
		Success: true,
		Message: "Sales adjusted successfully",
		Deleted: result.Deleted,
		Reduced: result.Reduced,
	}
}

type Message struct {
	Message string `json:"message"`
}
