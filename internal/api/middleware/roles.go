package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/response"
)

var errRoleNotAllowed = errors.New("role not allowed for this operation")

// RequireRoles gates a route group to the given roles. Must run after
// VerifyJWT.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetAuthedUser(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()

				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(errRoleNotAllowed))
	}
}
