package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/response"
	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/service"
)

type StatsService interface {
	Compute(ctx context.Context, period string) (domain.Statistics, error)
	MonthlySales(ctx context.Context) ([]domain.MonthlySales, error)
	Export(ctx context.Context, period string) (domain.StatisticsExport, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleGetStatistics godoc
// @Summary      Get sales and usage statistics for a period
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false "day, month or year, defaults to day"
// @Success      200 {object} domain.Statistics
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /statistics [get]
// @Security     BearerToken
func (h *StatsHandler) HandleGetStatistics(ctx *gin.Context) {
	period := ctx.DefaultQuery("period", domain.StatsPeriodDay)

	stats, err := h.svc.Compute(ctx.Request.Context(), period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatsPeriod) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatsPeriod))

			return
		}

		err = fmt.Errorf("v1.HandleGetStatistics -> h.svc.Compute -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetMonthlySales godoc
// @Summary      Get per-month revenue for the past year
// @Tags         statistics
// @Produce      json
// @Success      200 {object} []domain.MonthlySales
// @Failure      500 {object} response.Err
// @Router       /statistics/monthly [get]
// @Security     BearerToken
func (h *StatsHandler) HandleGetMonthlySales(ctx *gin.Context) {
	sales, err := h.svc.MonthlySales(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMonthlySales -> h.svc.MonthlySales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleExportStatistics godoc
// @Summary      Download the statistics snapshot as a JSON attachment
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false "day, month or year, defaults to day"
// @Success      200 {object} domain.StatisticsExport
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /statistics/export [get]
// @Security     BearerToken
func (h *StatsHandler) HandleExportStatistics(ctx *gin.Context) {
	period := ctx.DefaultQuery("period", domain.StatsPeriodDay)

	export, err := h.svc.Export(ctx.Request.Context(), period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatsPeriod) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatsPeriod))

			return
		}

		err = fmt.Errorf("v1.HandleExportStatistics -> h.svc.Export -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	filename := fmt.Sprintf("espeat-statistics-%v-%v.json", export.Period, export.GeneratedAt.Format("20060102-150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.JSON(http.StatusOK, export)
}
