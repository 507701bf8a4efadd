package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

type fakeUserFinder struct {
	users map[uint]domain.User
}

func (f *fakeUserFinder) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, exists := f.users[id]
	if !exists {
		return domain.User{}, errors.New("user not found")
	}

	return user, nil
}

func newAuthTestRouter(t *testing.T, users map[uint]domain.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	authenticator := NewAuthenticator(testSigningKey, &fakeUserFinder{users: users})

	router.GET("/protected", authenticator.VerifyJWT(), func(ctx *gin.Context) {
		user, ok := GetAuthedUser(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})

	return router
}

func TestAuthenticator_VerifyJWT(t *testing.T) {
	users := map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleStudent},
	}

	t.Run("accepts a valid token", func(t *testing.T) {
		router := newAuthTestRouter(t, users)

		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, "test-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", "test-agent")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		router := newAuthTestRouter(t, users)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		router := newAuthTestRouter(t, users)

		token, err := jwthelper.GenerateToken([]byte("other-key"), 1, "test-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", "test-agent")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token replayed from another client", func(t *testing.T) {
		router := newAuthTestRouter(t, users)

		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, "original-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", "different-agent")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token for a deleted user", func(t *testing.T) {
		router := newAuthTestRouter(t, users)

		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 99, "test-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", "test-agent")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		router := gin.New()
		router.GET("/gated",
			func(ctx *gin.Context) {
				ctx.Set(ContextKeyAuthedUser, domain.User{ID: 1, Role: role})
			},
			RequireRoles(domain.RoleManager, domain.RoleRestaurateur),
			func(ctx *gin.Context) {
				ctx.Status(http.StatusOK)
			},
		)

		return router
	}

	tests := []struct {
		role string
		want int
	}{
		{domain.RoleManager, http.StatusOK},
		{domain.RoleRestaurateur, http.StatusOK},
		{domain.RoleStudent, http.StatusForbidden},
		{domain.RoleAgent, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/gated", nil)
			newRouter(tt.role).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("rejects when no user is on the context", func(t *testing.T) {
		router := gin.New()
		router.GET("/gated", RequireRoles(domain.RoleManager), func(ctx *gin.Context) {
			ctx.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
