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

type RestaurantService interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	ListMenus(ctx context.Context, restaurantID uint, period string) ([]domain.Menu, error)
	CreateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	UpdateMenu(ctx context.Context, restaurantID uint, menu domain.Menu) (domain.Menu, error)
	DeleteMenu(ctx context.Context, restaurantID, menuID uint) error
}

type RestaurantHandler struct {
	svc RestaurantService
}

func NewRestaurantHandler(svc RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		svc: svc,
	}
}

// HandleListRestaurants godoc
// @Summary      List the campus restaurants
// @Tags         restaurants
// @Produce      json
// @Success      200 {object} []domain.Restaurant
// @Failure      500 {object} response.Err
// @Router       /restaurants [get]
// @Security     BearerToken
func (h *RestaurantHandler) HandleListRestaurants(ctx *gin.Context) {
	restaurants, err := h.svc.ListRestaurants(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRestaurants -> h.svc.ListRestaurants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, restaurants)
}

// HandleListMenus godoc
// @Summary      List a restaurant's menus
// @Tags         restaurants
// @Produce      json
// @Param        restaurantID   path    int     true  "restaurant ID"
// @Param        period         query   string  false "today, upcoming or past"
// @Success      200 {object} []domain.Menu
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /restaurants/{restaurantID}/menus [get]
// @Security     BearerToken
func (h *RestaurantHandler) HandleListMenus(ctx *gin.Context) {
	restaurantID, err := parseIDParam(ctx, "restaurantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menus, err := h.svc.ListMenus(ctx.Request.Context(), restaurantID, ctx.Query("period"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRestaurantNotFound))
		case errors.Is(err, service.ErrInvalidMenuPeriod):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidMenuPeriod))
		default:
			err = fmt.Errorf("v1.HandleListMenus -> h.svc.ListMenus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, menus)
}

// HandleCreateMenu godoc
// @Summary      Publish a menu for a restaurant
// @Tags         restaurants
// @Produce      json
// @Param        restaurantID   path    int  true "restaurant ID"
// @Param        request        body    request.SaveMenuRequest true "request body"
// @Success      201 {object} domain.Menu
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /restaurants/{restaurantID}/menus [post]
// @Security     BearerToken
func (h *RestaurantHandler) HandleCreateMenu(ctx *gin.Context) {
	restaurantID, err := parseIDParam(ctx, "restaurantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SaveMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menu, err := h.svc.CreateMenu(ctx.Request.Context(), domain.Menu{
		RestaurantID: restaurantID,
		Date:         req.ParsedDate(),
		NdekkiDishes: req.NdekkiDishes,
		RepasDishes:  req.RepasDishes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRestaurantNotFound))
		case errors.Is(err, service.ErrEmptyMenu):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyMenu))
		default:
			err = fmt.Errorf("v1.HandleCreateMenu -> h.svc.CreateMenu -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, menu)
}

// HandleUpdateMenu godoc
// @Summary      Update a menu
// @Tags         restaurants
// @Produce      json
// @Param        restaurantID   path    int  true "restaurant ID"
// @Param        menuID         path    int  true "menu ID"
// @Param        request        body    request.SaveMenuRequest true "request body"
// @Success      200 {object} domain.Menu
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /restaurants/{restaurantID}/menus/{menuID} [put]
// @Security     BearerToken
func (h *RestaurantHandler) HandleUpdateMenu(ctx *gin.Context) {
	restaurantID, err := parseIDParam(ctx, "restaurantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menuID, err := parseIDParam(ctx, "menuID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SaveMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menu, err := h.svc.UpdateMenu(ctx.Request.Context(), restaurantID, domain.Menu{
		ID:           menuID,
		Date:         req.ParsedDate(),
		NdekkiDishes: req.NdekkiDishes,
		RepasDishes:  req.RepasDishes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
		case errors.Is(err, service.ErrMenuNotOwned):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrMenuNotOwned))
		case errors.Is(err, service.ErrEmptyMenu):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyMenu))
		default:
			err = fmt.Errorf("v1.HandleUpdateMenu -> h.svc.UpdateMenu -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, menu)
}

// HandleDeleteMenu godoc
// @Summary      Delete a menu
// @Tags         restaurants
// @Produce      json
// @Param        restaurantID   path    int  true "restaurant ID"
// @Param        menuID         path    int  true "menu ID"
// @Success      204 "no content"
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /restaurants/{restaurantID}/menus/{menuID} [delete]
// @Security     BearerToken
func (h *RestaurantHandler) HandleDeleteMenu(ctx *gin.Context) {
	restaurantID, err := parseIDParam(ctx, "restaurantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menuID, err := parseIDParam(ctx, "menuID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteMenu(ctx.Request.Context(), restaurantID, menuID); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
		case errors.Is(err, service.ErrMenuNotOwned):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrMenuNotOwned))
		default:
			err = fmt.Errorf("v1.HandleDeleteMenu -> h.svc.DeleteMenu -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
