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

type WorkerService interface {
	CreateWorker(ctx context.Context, worker domain.Worker) (domain.Worker, error)
	ListWorkers(ctx context.Context) ([]domain.Worker, error)
	GetWorker(ctx context.Context, id uint) (domain.Worker, error)
	UpdateWorker(ctx context.Context, worker domain.Worker) (domain.Worker, error)
	DeleteWorker(ctx context.Context, id uint) error
}

type WorkerHandler struct {
	svc WorkerService
}

func NewWorkerHandler(svc WorkerService) *WorkerHandler {
	return &WorkerHandler{
		svc: svc,
	}
}

// HandleCreateWorker godoc
// @Summary      Create a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        request  body      request.WorkerRequest  true  "request body"
// @Success      201      {object}  domain.Worker
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /workers [post]
func (h *WorkerHandler) HandleCreateWorker(ctx *gin.Context) {
	var req request.WorkerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	worker, err := h.svc.CreateWorker(ctx.Request.Context(), domain.Worker{Name: req.Name})
	if err != nil {
		err = fmt.Errorf("HandleCreateWorker -> h.svc.CreateWorker -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, worker)
}

// HandleListWorkers godoc
// @Summary      List workers
// @Tags         workers
// @Produce      json
// @Success      200  {array}   domain.Worker
// @Failure      500  {object}  response.Err
// @Router       /workers [get]
func (h *WorkerHandler) HandleListWorkers(ctx *gin.Context) {
	workers, err := h.svc.ListWorkers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListWorkers -> h.svc.ListWorkers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, workers)
}

// HandleGetWorker godoc
// @Summary      Get a worker
// @Tags         workers
// @Produce      json
// @Param        workerID  path      int  true  "worker ID"
// @Success      200       {object}  domain.Worker
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /workers/{workerID} [get]
func (h *WorkerHandler) HandleGetWorker(ctx *gin.Context) {
	id, respErr := parseID(ctx, "workerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	worker, err := h.svc.GetWorker(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("worker", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetWorker -> h.svc.GetWorker -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, worker)
}

// HandleUpdateWorker godoc
// @Summary      Rename a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        workerID  path      int                    true  "worker ID"
// @Param        request   body      request.WorkerRequest  true  "request body"
// @Success      200       {object}  domain.Worker
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /workers/{workerID} [put]
func (h *WorkerHandler) HandleUpdateWorker(ctx *gin.Context) {
	id, respErr := parseID(ctx, "workerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.WorkerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	worker, err := h.svc.UpdateWorker(ctx.Request.Context(), domain.Worker{ID: id, Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("worker", "ID", id))
			return
		}

		err = fmt.Errorf("HandleUpdateWorker -> h.svc.UpdateWorker -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, worker)
}

// HandleDeleteWorker godoc
// @Summary      Delete a worker
// @Description  A worker with packing entries cannot be deleted.
// @Tags         workers
// @Produce      json
// @Param        workerID  path      int  true  "worker ID"
// @Success      200       {object}  response.Message
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /workers/{workerID} [delete]
func (h *WorkerHandler) HandleDeleteWorker(ctx *gin.Context) {
	id, respErr := parseID(ctx, "workerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.DeleteWorker(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("worker", "ID", id))
		case errors.Is(err, service.ErrWorkerInUse):
			response.RenderErr(ctx, response.ErrConflict(service.ErrWorkerInUse))
		default:
			err = fmt.Errorf("HandleDeleteWorker -> h.svc.DeleteWorker -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "Worker deleted successfully"})
}
