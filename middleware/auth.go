package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"conduit-backend/helper"
	"conduit-backend/models"
	"conduit-backend/repositories"
	"conduit-backend/services"
)

var HTTPHelper = &helper.HTTPHelper{}

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// Identity resolves the acting user from the Authorization header and stores
// it in the request context. It never rejects a request: a missing, invalid
// or expired token simply leaves the request anonymous.
func Identity(codec *services.TokenCodec, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := codec.Parse(tokenString)
		if err != nil {
			c.Next()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests. It relies on Identity having run
// earlier in the chain.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserIDKey); !exists {
			HTTPHelper.SendUnauthorizedError(c, "Not authorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentUserID returns the resolved user id, or 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}
