package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/esp-dakar/espeat-api/internal/api/handler/v1/response"
	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/pkg/jwthelper"
)

// ContextKeyAuthedUser is where VerifyJWT stores the authenticated user.
const ContextKeyAuthedUser = "authed_user"

var (
	errMissingToken = errors.New("missing bearer token")
	errStaleToken   = errors.New("token was issued to a different client")
)

type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
	users      UserFinder
}

func NewAuthenticator(signingKey string, users UserFinder) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		users:      users,
	}
}

// VerifyJWT validates the bearer token and loads the user it names into the
// request context. Downstream handlers read it back with GetAuthedUser.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errStaleToken))

			return
		}

		user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		ctx.Set(ContextKeyAuthedUser, user)
		ctx.Next()
	}
}

// GetAuthedUser returns the user VerifyJWT stored on the context.
func GetAuthedUser(ctx *gin.Context) (domain.User, bool) {
	value, exists := ctx.Get(ContextKeyAuthedUser)
	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
