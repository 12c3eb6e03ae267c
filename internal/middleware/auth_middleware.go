package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rag-chat/internal/repository"
	"rag-chat/pkg/utils"
)

// AuthMiddleware validates the Bearer token and resolves the active user
// it names, storing both email and user in the request context.
func AuthMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		// A token issued before the user was soft-deleted must stop working.
		user, err := userRepo.FindByEmail(claims.Email)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		c.Set("userEmail", claims.Email)
		c.Set("user", user)

		c.Next()
	}
}
