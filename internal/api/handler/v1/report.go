package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/packtrack/stock-api/internal/api/handler/v1/request"
	"github.com/packtrack/stock-api/internal/api/handler/v1/response"
	"github.com/packtrack/stock-api/internal/domain"
	"github.com/packtrack/stock-api/internal/service"
)

type ReportService interface {
	WorkerStats(ctx context.Context) ([]domain.WorkerStat, error)
	BuyerStats(ctx context.Context) ([]domain.BuyerStat, error)
	ItemStats(ctx context.Context) ([]domain.ItemStat, error)
	WorkerReport(ctx context.Context, start time.Time, end *time.Time, workerID uint) (domain.WorkerReport, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleWorkerStats godoc
// @Summary      Packed quantity and value per worker
// @Tags         stats
// @Produce      json
// @Success      200  {array}   domain.WorkerStat
// @Failure      500  {object}  response.Err
// @Router       /stats/workers [get]
func (h *ReportHandler) HandleWorkerStats(ctx *gin.Context) {
	stats, err := h.svc.WorkerStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleWorkerStats -> h.svc.WorkerStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleBuyerStats godoc
// @Summary      Bought quantity and value per buyer
// @Tags         stats
// @Produce      json
// @Success      200  {array}   domain.BuyerStat
// @Failure      500  {object}  response.Err
// @Router       /stats/buyers [get]
func (h *ReportHandler) HandleBuyerStats(ctx *gin.Context) {
	stats, err := h.svc.BuyerStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleBuyerStats -> h.svc.BuyerStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleItemStats godoc
// @Summary      Packed and sold totals per item
// @Tags         stats
// @Produce      json
// @Success      200  {array}   domain.ItemStat
// @Failure      500  {object}  response.Err
// @Router       /stats/items [get]
func (h *ReportHandler) HandleItemStats(ctx *gin.Context) {
	stats, err := h.svc.ItemStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleItemStats -> h.svc.ItemStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleWorkerReport godoc
// @Summary      Packing entries grouped by worker
// @Tags         reports
// @Produce      json
// @Param        start_date  query     string  true   "first day, YYYY-MM-DD"
// @Param        end_date    query     string  false  "last day, YYYY-MM-DD"
// @Param        worker_id   query     int     false  "worker ID"
// @Success      200         {object}  domain.WorkerReport
// @Failure      400         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /reports/workers [get]
func (h *ReportHandler) HandleWorkerReport(ctx *gin.Context) {
	var query request.WorkerReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end := query.Range()
	report, err := h.svc.WorkerReport(ctx.Request.Context(), start, end, query.WorkerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDateRange))
			return
		}

		err = fmt.Errorf("HandleWorkerReport -> h.svc.WorkerReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
