package middleware

import (
	"net/http"
	"strings"

	"portico/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the identity-provider session token and exposes the
// caller's identity to downstream handlers.
func AuthMiddleware(secret []byte) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateIdentityToken(tokenString, secret)

		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Pass user information to the next handler
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("Role", claims.Role)
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {

	return func(c *gin.Context) {
		role := c.GetString("Role")

		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
