package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/request"
	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/response"
	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/service"
)

type TicketService interface {
	PurchaseTickets(ctx context.Context, userID uint, order service.PurchaseOrder) (domain.TicketPurchase, error)
	ListPurchases(ctx context.Context, userID uint) ([]domain.TicketPurchase, error)
	ShareTickets(ctx context.Context, senderID uint, order service.ShareOrder) (domain.TicketShare, error)
	ListShares(ctx context.Context, userID uint) ([]domain.TicketShare, error)
	GetBalance(ctx context.Context, userID uint) (domain.Balance, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandlePurchaseTickets godoc
// @Summary      Buy meal tickets
// @Tags         tickets
// @Produce      json
// @Param        request  body       request.PurchaseTicketsRequest true "request body"
// @Success      201      {object}   domain.TicketPurchase
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/purchases [post]
// @Security     BearerToken
func (h *TicketHandler) HandlePurchaseTickets(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.PurchaseTicketsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	purchase, err := h.svc.PurchaseTickets(ctx.Request.Context(), user.ID, service.PurchaseOrder{
		NdekkiCount: req.NdekkiCount,
		RepasCount:  req.RepasCount,
		Channel:     req.Channel,
		PhoneNumber: req.PhoneNumber,
		CardToken:   req.CardToken,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotAStudent) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAStudent))

			return
		}
		if errors.Is(err, service.ErrPaymentFailed) {
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusPaymentRequired,
				Msg:        service.ErrPaymentFailed.Error(),
			})

			return
		}

		err = fmt.Errorf("v1.HandlePurchaseTickets -> h.svc.PurchaseTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, purchase)
}

// HandleListPurchases godoc
// @Summary      List the caller's ticket purchases
// @Tags         tickets
// @Produce      json
// @Success      200 {object} []domain.TicketPurchase
// @Failure      500 {object} response.Err
// @Router       /tickets/purchases [get]
// @Security     BearerToken
func (h *TicketHandler) HandleListPurchases(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	purchases, err := h.svc.ListPurchases(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPurchases -> h.svc.ListPurchases -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, purchases)
}

// HandleShareTickets godoc
// @Summary      Share tickets with another student
// @Tags         tickets
// @Produce      json
// @Param        request  body       request.ShareTicketsRequest true "request body"
// @Success      201      {object}   domain.TicketShare
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/shares [post]
// @Security     BearerToken
func (h *TicketHandler) HandleShareTickets(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.ShareTicketsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	share, err := h.svc.ShareTickets(ctx.Request.Context(), user.ID, service.ShareOrder{
		RecipientStudentNumber: req.RecipientStudentNumber,
		NdekkiCount:            req.NdekkiCount,
		RepasCount:             req.RepasCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
		case errors.Is(err, service.ErrNothingToShare),
			errors.Is(err, service.ErrNotAStudent),
			errors.Is(err, service.ErrRecipientNotStudent),
			errors.Is(err, service.ErrShareWithSelf),
			errors.Is(err, service.ErrInsufficientTickets):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleShareTickets -> h.svc.ShareTickets -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, share)
}

// HandleListShares godoc
// @Summary      List the caller's sent and received shares
// @Tags         tickets
// @Produce      json
// @Success      200 {object} []domain.TicketShare
// @Failure      500 {object} response.Err
// @Router       /tickets/shares [get]
// @Security     BearerToken
func (h *TicketHandler) HandleListShares(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	shares, err := h.svc.ListShares(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListShares -> h.svc.ListShares -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, shares)
}

// HandleGetBalance godoc
// @Summary      Get the caller's ticket balance
// @Tags         tickets
// @Produce      json
// @Success      200 {object} domain.Balance
// @Failure      500 {object} response.Err
// @Router       /tickets/balance [get]
// @Security     BearerToken
func (h *TicketHandler) HandleGetBalance(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	balance, err := h.svc.GetBalance(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBalance -> h.svc.GetBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, balance)
}
