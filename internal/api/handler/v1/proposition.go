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

type PropositionService interface {
	Submit(ctx context.Context, studentID uint, proposition domain.MenuProposition) (domain.MenuProposition, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, status string) ([]domain.MenuProposition, error)
	ListByStudent(ctx context.Context, studentID uint) ([]domain.MenuProposition, error)
	Review(ctx context.Context, restaurantID, propositionID uint, decision, reply string) (domain.MenuProposition, error)
}

type PropositionHandler struct {
	svc PropositionService
}

func NewPropositionHandler(svc PropositionService) *PropositionHandler {
	return &PropositionHandler{
		svc: svc,
	}
}

// HandleSubmitProposition godoc
// @Summary      Submit a menu proposition
// @Tags         propositions
// @Produce      json
// @Param        request  body       request.SubmitPropositionRequest true "request body"
// @Success      201      {object}   domain.MenuProposition
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /propositions [post]
// @Security     BearerToken
func (h *PropositionHandler) HandleSubmitProposition(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.SubmitPropositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	proposition, err := h.svc.Submit(ctx.Request.Context(), user.ID, domain.MenuProposition{
		RestaurantID: req.RestaurantID,
		MenuType:     domain.TicketType(req.MenuType),
		Content:      req.Content,
		TargetDate:   req.ParsedTargetDate(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRestaurantNotFound))
		case errors.Is(err, service.ErrEmptyProposition):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyProposition))
		default:
			err = fmt.Errorf("v1.HandleSubmitProposition -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, proposition)
}

// HandleListPropositions godoc
// @Summary      List menu propositions
// @Tags         propositions
// @Produce      json
// @Param        restaurant_id  query  int     false "restaurant ID, restaurateur view"
// @Param        status         query  string  false "pending, accepted or refused"
// @Success      200 {object} []domain.MenuProposition
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /propositions [get]
// @Security     BearerToken
func (h *PropositionHandler) HandleListPropositions(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	// Students see their own submissions; restaurateurs see a restaurant's
	// inbox.
	if user.Role == domain.RoleStudent {
		propositions, err := h.svc.ListByStudent(ctx.Request.Context(), user.ID)
		if err != nil {
			err = fmt.Errorf("v1.HandleListPropositions -> h.svc.ListByStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		ctx.JSON(http.StatusOK, propositions)

		return
	}

	restaurantID, err := parseIDQuery(ctx, "restaurant_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	propositions, err := h.svc.ListByRestaurant(ctx.Request.Context(), restaurantID, ctx.Query("status"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListPropositions -> h.svc.ListByRestaurant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, propositions)
}

// HandleReviewProposition godoc
// @Summary      Accept or refuse a proposition
// @Tags         propositions
// @Produce      json
// @Param        propositionID  path   int  true "proposition ID"
// @Param        restaurant_id  query  int  true "restaurant ID"
// @Param        request        body   request.ReviewPropositionRequest true "request body"
// @Success      200 {object} domain.MenuProposition
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /propositions/{propositionID}/review [post]
// @Security     BearerToken
func (h *PropositionHandler) HandleReviewProposition(ctx *gin.Context) {
	propositionID, err := parseIDParam(ctx, "propositionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	restaurantID, err := parseIDQuery(ctx, "restaurant_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ReviewPropositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	proposition, err := h.svc.Review(ctx.Request.Context(), restaurantID, propositionID, req.Decision, req.Reply)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropositionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPropositionNotFound))
		case errors.Is(err, service.ErrNotYourRestaurant):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotYourRestaurant))
		case errors.Is(err, service.ErrPropositionSettled), errors.Is(err, service.ErrInvalidDecision):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleReviewProposition -> h.svc.Review -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, proposition)
}

func parseIDQuery(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %v", name)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}
