package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packtrack/stock-api/internal/api/handler/v1/request"
	"github.com/packtrack/stock-api/internal/api/handler/v1/response"
	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/service"
)

type SaleService interface {
	CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	GetSale(ctx context.Context, id uint) (domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	DeleteSale(ctx context.Context, id uint) error
}

type SaleHandler struct {
	svc SaleService
}

func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{
		svc: svc,
	}
}

// HandleCreateSale godoc
// @Summary      Record a sale
// @Description  Rejected with 422 when the item does not have enough stock. Nothing is stored in that case.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request  body      request.SaleRequest  true  "request body"
// @Success      201      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales [post]
func (h *SaleHandler) HandleCreateSale(ctx *gin.Context) {
	var req request.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.CreateSale(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		var insufficient *service.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			response.RenderErr(ctx, response.ErrUnprocessable(insufficient))
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", req.ItemID))
		case errors.Is(err, service.ErrBuyerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("buyer", "ID", req.BuyerID))
		default:
			err = fmt.Errorf("HandleCreateSale -> h.svc.CreateSale -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleListSales godoc
// @Summary      List sales
// @Description  Most recent first.
// @Tags         sales
// @Produce      json
// @Param        item_id  query     int  false  "item ID"
// @Success      200      {array}   domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales [get]
func (h *SaleHandler) HandleListSales(ctx *gin.Context) {
	var query request.SaleQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sales, err := h.svc.ListSales(ctx.Request.Context(), domain.SaleFilter{ItemID: query.ItemID})
	if err != nil {
		err = fmt.Errorf("HandleListSales -> h.svc.ListSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleGetSale godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        saleID  path      int  true  "sale ID"
// @Success      200     {object}  domain.Sale
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /sales/{saleID} [get]
func (h *SaleHandler) HandleGetSale(ctx *gin.Context) {
	id, respErr := parseID(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sale, err := h.svc.GetSale(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetSale -> h.svc.GetSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// HandleDeleteSale godoc
// @Summary      Delete a sale
// @Tags         sales
// @Produce      json
// @Param        saleID  path      int  true  "sale ID"
// @Success      200     {object}  response.Message
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /sales/{saleID} [delete]
func (h *SaleHandler) HandleDeleteSale(ctx *gin.Context) {
	id, respErr := parseID(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteSale(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
			return
		}

		err = fmt.Errorf("HandleDeleteSale -> h.svc.DeleteSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "Sale deleted successfully"})
}
