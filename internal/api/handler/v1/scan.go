package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/request"
	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/response"
	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/service"
)

const defaultScanHistoryLimit = 50

type ScanService interface {
	Validate(ctx context.Context, agentID uint, order service.ScanOrder) (domain.TicketScan, error)
	History(ctx context.Context, limit int) ([]domain.TicketScan, error)
}

type ScanHandler struct {
	svc ScanService
}

func NewScanHandler(svc ScanService) *ScanHandler {
	return &ScanHandler{
		svc: svc,
	}
}

// HandleScanTicket godoc
// @Summary      Validate a student's meal ticket
// @Tags         scans
// @Produce      json
// @Param        request  body       request.ScanTicketRequest true "request body"
// @Success      201      {object}   domain.TicketScan
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scans [post]
// @Security     BearerToken
func (h *ScanHandler) HandleScanTicket(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.ScanTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	scan, err := h.svc.Validate(ctx.Request.Context(), user.ID, service.ScanOrder{
		StudentNumber: req.StudentNumber,
		TicketType:    domain.TicketType(req.TicketType),
		Count:         req.Count,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidScanCount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidScanCount))

			return
		}

		err = fmt.Errorf("v1.HandleScanTicket -> h.svc.Validate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, scan)
}

// HandleListScans godoc
// @Summary      List recent scans, newest first
// @Tags         scans
// @Produce      json
// @Param        limit  query  int  false "max entries, defaults to 50"
// @Success      200 {object} []domain.TicketScan
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /scans [get]
// @Security     BearerToken
func (h *ScanHandler) HandleListScans(ctx *gin.Context) {
	limit := defaultScanHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit")))

			return
		}
		limit = parsed
	}

	scans, err := h.svc.History(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListScans -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, scans)
}
