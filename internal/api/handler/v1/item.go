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

type ItemService interface {
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id uint) (domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id uint) error
}

type ItemHandler struct {
	svc ItemService
}

func NewItemHandler(svc ItemService) *ItemHandler {
	return &ItemHandler{
		svc: svc,
	}
}

// HandleCreateItem godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      request.ItemRequest  true  "request body"
// @Success      201      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items [post]
func (h *ItemHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.ItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), domain.Item{Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrItemNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrItemNameExists))
			return
		}

		err = fmt.Errorf("HandleCreateItem -> h.svc.CreateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleListItems godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {array}   domain.Item
// @Failure      500  {object}  response.Err
// @Router       /items [get]
func (h *ItemHandler) HandleListItems(ctx *gin.Context) {
	items, err := h.svc.ListItems(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListItems -> h.svc.ListItems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetItem godoc
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        itemID  path      int  true  "item ID"
// @Success      200     {object}  domain.Item
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items/{itemID} [get]
func (h *ItemHandler) HandleGetItem(ctx *gin.Context) {
	id, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := h.svc.GetItem(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetItem -> h.svc.GetItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleUpdateItem godoc
// @Summary      Rename an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                  true  "item ID"
// @Param        request  body      request.ItemRequest  true  "request body"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID} [put]
func (h *ItemHandler) HandleUpdateItem(ctx *gin.Context) {
	id, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.UpdateItem(ctx.Request.Context(), domain.Item{ID: id, Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", id))
		case errors.Is(err, service.ErrItemNameExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrItemNameExists))
		default:
			err = fmt.Errorf("HandleUpdateItem -> h.svc.UpdateItem -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteItem godoc
// @Summary      Delete an item
// @Description  An item with packing entries or sales cannot be deleted.
// @Tags         items
// @Produce      json
// @Param        itemID  path      int  true  "item ID"
// @Success      200     {object}  response.Message
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items/{itemID} [delete]
func (h *ItemHandler) HandleDeleteItem(ctx *gin.Context) {
	id, respErr := parseID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.DeleteItem(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", id))
		case errors.Is(err, service.ErrItemInUse):
			response.RenderErr(ctx, response.ErrConflict(service.ErrItemInUse))
		default:
			err = fmt.Errorf("HandleDeleteItem -> h.svc.DeleteItem -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "Item deleted successfully"})
}
