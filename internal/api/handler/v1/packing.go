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

type PackingService interface {
	CreatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error)
	GetPackingEntry(ctx context.Context, id uint) (domain.PackingEntry, error)
	ListPackingEntries(ctx context.Context, filter domain.PackingFilter) ([]domain.PackingEntry, error)
	UpdatePackingEntry(ctx context.Context, entry domain.PackingEntry) (domain.PackingEntry, error)
	DeletePackingEntry(ctx context.Context, id uint) error
}

type PackingHandler struct {
	svc PackingService
}

func NewPackingHandler(svc PackingService) *PackingHandler {
	return &PackingHandler{
		svc: svc,
	}
}

// HandleCreatePackingEntry godoc
// @Summary      Record packed items
// @Tags         packing-entries
// @Accept       json
// @Produce      json
// @Param        request  body      request.PackingEntryRequest  true  "request body"
// @Success      201      {object}  domain.PackingEntry
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /packing-entries [post]
func (h *PackingHandler) HandleCreatePackingEntry(ctx *gin.Context) {
	var req request.PackingEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.CreatePackingEntry(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if respErr := referenceErr(err, req.WorkerID, req.ItemID); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("HandleCreatePackingEntry -> h.svc.CreatePackingEntry -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleListPackingEntries godoc
// @Summary      List packing entries
// @Description  Most recent first. Every filter is optional.
// @Tags         packing-entries
// @Produce      json
// @Param        start_date  query     string  false  "first day, YYYY-MM-DD"
// @Param        end_date    query     string  false  "last day, YYYY-MM-DD"
// @Param        worker_id   query     int     false  "worker ID"
// @Param        item_id     query     int     false  "item ID"
// @Param        company     query     string  false  "company"  Enums(NCC, ICD, CC)
// @Success      200         {array}   domain.PackingEntry
// @Failure      400         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /packing-entries [get]
func (h *PackingHandler) HandleListPackingEntries(ctx *gin.Context) {
	var query request.PackingEntryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entries, err := h.svc.ListPackingEntries(ctx.Request.Context(), query.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleListPackingEntries -> h.svc.ListPackingEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetPackingEntry godoc
// @Summary      Get a packing entry
// @Tags         packing-entries
// @Produce      json
// @Param        entryID  path      int  true  "packing entry ID"
// @Success      200      {object}  domain.PackingEntry
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /packing-entries/{entryID} [get]
func (h *PackingHandler) HandleGetPackingEntry(ctx *gin.Context) {
	id, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entry, err := h.svc.GetPackingEntry(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackingEntryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("packing entry", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetPackingEntry -> h.svc.GetPackingEntry -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleUpdatePackingEntry godoc
// @Summary      Update a packing entry
// @Description  Refused with a STOCK_CONFLICT body when the change would leave the item with less stock than was sold.
// @Tags         packing-entries
// @Accept       json
// @Produce      json
// @Param        entryID  path      int                          true  "packing entry ID"
// @Param        request  body      request.PackingEntryRequest  true  "request body"
// @Success      200      {object}  domain.PackingEntry
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.StockConflict
// @Failure      500      {object}  response.Err
// @Router       /packing-entries/{entryID} [put]
func (h *PackingHandler) HandleUpdatePackingEntry(ctx *gin.Context) {
	id, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PackingEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry := req.ToDomain()
	entry.ID = id
	updated, err := h.svc.UpdatePackingEntry(ctx.Request.Context(), entry)
	if err != nil {
		var conflict *service.StockConflictError
		switch {
		case errors.As(err, &conflict):
			response.RenderStockConflict(ctx, conflict.Message, conflict.Details)
		case errors.Is(err, service.ErrPackingEntryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("packing entry", "ID", id))
		case errors.Is(err, service.ErrConcurrentModification):
			response.RenderErr(ctx, response.ErrConflict(service.ErrConcurrentModification))
		default:
			if respErr = referenceErr(err, req.WorkerID, req.ItemID); respErr != nil {
				response.RenderErr(ctx, respErr)
				return
			}

			err = fmt.Errorf("HandleUpdatePackingEntry -> h.svc.UpdatePackingEntry -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeletePackingEntry godoc
// @Summary      Delete a packing entry
// @Description  Refused with a STOCK_CONFLICT body when the item would be left with less stock than was sold.
// @Tags         packing-entries
// @Produce      json
// @Param        entryID  path      int  true  "packing entry ID"
// @Success      200      {object}  response.Message
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.StockConflict
// @Failure      500      {object}  response.Err
// @Router       /packing-entries/{entryID} [delete]
func (h *PackingHandler) HandleDeletePackingEntry(ctx *gin.Context) {
	id, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.DeletePackingEntry(ctx.Request.Context(), id)
	if err != nil {
		var conflict *service.StockConflictError
		switch {
		case errors.As(err, &conflict):
			response.RenderStockConflict(ctx, conflict.Message, conflict.Details)
		case errors.Is(err, service.ErrPackingEntryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("packing entry", "ID", id))
		case errors.Is(err, service.ErrConcurrentModification):
			response.RenderErr(ctx, response.ErrConflict(service.ErrConcurrentModification))
		default:
			err = fmt.Errorf("HandleDeletePackingEntry -> h.svc.DeletePackingEntry -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "Packing entry deleted successfully"})
}

// referenceErr maps a missing worker or item named in a request body.
func referenceErr(err error, workerID, itemID uint) *response.Err {
	switch {
	case errors.Is(err, service.ErrWorkerNotFound):
		return response.ErrNotFound("worker", "ID", workerID)
	case errors.Is(err, service.ErrItemNotFound):
		return response.ErrNotFound("item", "ID", itemID)
	}

	return nil
}
