package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/storage"
)

const userKey = "user"

func AuthMiddleware(tokens *TokenManager, users storage.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			userID, err := tokens.Verify(token, "access")
			if err == nil {
				user, err := users.GetUserByID(c.Request.Context(), userID)
				if err == nil {
					c.Set(userKey, user)
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, internal.NewAppError(401, "Unauthorized"))
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) *internal.StoredUser {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*internal.StoredUser)
	return user
}
