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

type BuyerService interface {
	CreateBuyer(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error)
	ListBuyers(ctx context.Context) ([]domain.Buyer, error)
	GetBuyer(ctx context.Context, id uint) (domain.Buyer, error)
	UpdateBuyer(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error)
	DeleteBuyer(ctx context.Context, id uint) error
}

type BuyerHandler struct {
	svc BuyerService
}

func NewBuyerHandler(svc BuyerService) *BuyerHandler {
	return &BuyerHandler{
		svc: svc,
	}
}

// HandleCreateBuyer godoc
// @Summary      Create a buyer
// @Tags         buyers
// @Accept       json
// @Produce      json
// @Param        request  body      request.BuyerRequest  true  "request body"
// @Success      201      {object}  domain.Buyer
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /buyers [post]
func (h *BuyerHandler) HandleCreateBuyer(ctx *gin.Context) {
	var req request.BuyerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	buyer, err := h.svc.CreateBuyer(ctx.Request.Context(), domain.Buyer{Name: req.Name, Contact: req.Contact})
	if err != nil {
		err = fmt.Errorf("HandleCreateBuyer -> h.svc.CreateBuyer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, buyer)
}

// HandleListBuyers godoc
// @Summary      List buyers
// @Tags         buyers
// @Produce      json
// @Success      200  {array}   domain.Buyer
// @Failure      500  {object}  response.Err
// @Router       /buyers [get]
func (h *BuyerHandler) HandleListBuyers(ctx *gin.Context) {
	buyers, err := h.svc.ListBuyers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListBuyers -> h.svc.ListBuyers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, buyers)
}

// HandleGetBuyer godoc
// @Summary      Get a buyer
// @Tags         buyers
// @Produce      json
// @Param        buyerID  path      int  true  "buyer ID"
// @Success      200     {object}  domain.Buyer
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /buyers/{buyerID} [get]
func (h *BuyerHandler) HandleGetBuyer(ctx *gin.Context) {
	id, respErr := parseID(ctx, "buyerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	buyer, err := h.svc.GetBuyer(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBuyerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("buyer", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetBuyer -> h.svc.GetBuyer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, buyer)
}

// HandleUpdateBuyer godoc
// @Summary      Update a buyer
// @Tags         buyers
// @Accept       json
// @Produce      json
// @Param        buyerID   path      int                  true  "buyer ID"
// @Param        request  body      request.BuyerRequest  true  "request body"
// @Success      200      {object}  domain.Buyer
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /buyers/{buyerID} [put]
func (h *BuyerHandler) HandleUpdateBuyer(ctx *gin.Context) {
	id, respErr := parseID(ctx, "buyerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BuyerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	buyer, err := h.svc.UpdateBuyer(ctx.Request.Context(), domain.Buyer{ID: id, Name: req.Name, Contact: req.Contact})
	if err != nil {
		if errors.Is(err, service.ErrBuyerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("buyer", "ID", id))
			return
		}

		err = fmt.Errorf("HandleUpdateBuyer -> h.svc.UpdateBuyer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, buyer)
}

// HandleDeleteBuyer godoc
// @Summary      Delete a buyer
// @Description  A buyer with sales cannot be deleted.
// @Tags         buyers
// @Produce      json
// @Param        buyerID  path      int  true  "buyer ID"
// @Success      200     {object}  response.Message
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /buyers/{buyerID} [delete]
func (h *BuyerHandler) HandleDeleteBuyer(ctx *gin.Context) {
	id, respErr := parseID(ctx, "buyerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.DeleteBuyer(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBuyerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("buyer", "ID", id))
		case errors.Is(err, service.ErrBuyerInUse):
			response.RenderErr(ctx, response.ErrConflict(service.ErrBuyerInUse))
		default:
			err = fmt.Errorf("HandleDeleteBuyer -> h.svc.DeleteBuyer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "Buyer deleted successfully"})
}
