package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/middleware"
	"github.com/esp-dakar/espeat-api/internal/domain"
)

var errNotAuthenticated = errors.New("not authenticated")

func getUserFromContext(ctx *gin.Context) (domain.User, error) {
	user, ok := middleware.GetAuthedUser(ctx)
	if !ok {
		return domain.User{}, errNotAuthenticated
	}

	return user, nil
}
