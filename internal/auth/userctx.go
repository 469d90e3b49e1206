package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/auth/domain"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUser        = "current_user"
)

// UserLoader resolves a verified Firebase UID to a user document.
type UserLoader interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
}

// WithUser loads the caller's user document into the request context. It
// runs after FirebaseAuthMiddleware; identities that never completed the
// sign-in sync are rejected so every downstream handler can rely on a
// profile with a role.
func WithUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxFirebaseUID)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := users.GetByUID(c.Request.Context(), uid)
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusForbidden, gin.H{"error": "profile not found, complete sign-in first"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireRole gates a route group on the server-held role claim. The client
// never gets to assert its own role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by WithUser.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
