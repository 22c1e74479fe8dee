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

type StockService interface {
	ComputeStock(ctx context.Context, itemID uint) (domain.StockLevel, error)
	ListStockLevels(ctx context.Context) ([]domain.StockLevel, error)
	CheckMutation(ctx context.Context, itemID uint, quantityDelta int) (domain.ConflictResult, error)
}

type AdjustmentService interface {
	ApplyAdjustments(ctx context.Context, adj domain.Adjustment) (domain.AdjustmentResult, error)
}

type StockHandler struct {
	svc      StockService
	adjuster AdjustmentService
}

func NewStockHandler(svc StockService, adjuster AdjustmentService) *StockHandler {
	return &StockHandler{
		svc:      svc,
		adjuster: adjuster,
	}
}

// HandleListStock godoc
// @Summary      List items in stock
// @Tags         stock
// @Produce      json
// @Success      200  {array}   domain.StockLevel
// @Failure      500  {object}  response.Err
// @Router       /stock [get]
func (h *StockHandler) HandleListStock(ctx *gin.Context) {
	levels, err := h.svc.ListStockLevels(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListStock -> h.svc.ListStockLevels -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, levels)
}

// HandleGetItemStock godoc
// @Summary      Get the stock level of an item
// @Description  An unknown item has a zero stock level.
// @Tags         stock
// @Produce      json
// @Param        itemID  path      int  true  "item ID"
// @Success      200     {object}  domain.StockLevel
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items/{itemID}/stock [get]
func (h *StockHandler) HandleGetItemStock(ctx *gin.Context) {
	itemID, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	level, err := h.svc.ComputeStock(ctx.Request.Context(), itemID)
	if err != nil {
		err = fmt.Errorf("HandleGetItemStock -> h.svc.ComputeStock -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, level)
}

// HandleCheckStock godoc
// @Summary      Check a change of packed quantity
// @Description  Reports whether changing the packed quantity by delta would leave negative stock, and which sales could be cut.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                        true  "item ID"
// @Param        request  body      request.StockCheckRequest  true  "request body"
// @Success      200      {object}  domain.ConflictResult
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID}/stock/check [post]
func (h *StockHandler) HandleCheckStock(ctx *gin.Context) {
	itemID, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StockCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.CheckMutation(ctx.Request.Context(), itemID, req.Delta)
	if err != nil {
		err = fmt.Errorf("HandleCheckStock -> h.svc.CheckMutation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleApplyAdjustments godoc
// @Summary      Delete or reduce sales of an item
// @Description  Applies every deletion and reduction in one transaction, or none of them. When deficit is given the batch must remove at least that many items.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                        true  "item ID"
// @Param        request  body      request.AdjustmentRequest  true  "request body"
// @Success      200      {object}  response.Adjusted
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID}/adjustments [post]
func (h *StockHandler) HandleApplyAdjustments(ctx *gin.Context) {
	itemID, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AdjustmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.adjuster.ApplyAdjustments(ctx.Request.Context(), req.ToDomain(itemID))
	if err != nil {
		var insufficient *service.InsufficientAdjustmentError
		switch {
		case errors.As(err, &insufficient):
			response.RenderErr(ctx, response.ErrUnprocessable(insufficient))
		case errors.Is(err, service.ErrInvalidAdjustment):
			response.RenderErr(ctx, response.ErrUnprocessable(reason(err, service.ErrInvalidAdjustment)))
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
		case errors.Is(err, service.ErrConcurrentModification):
			response.RenderErr(ctx, response.ErrConflict(service.ErrConcurrentModification))
		default:
			err = fmt.Errorf("HandleApplyAdjustments -> h.adjuster.ApplyAdjustments -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewAdjusted(result))
}
