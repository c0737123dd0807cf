// internal/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/genun/genun-backend/internal/utils"
)

// AuthRequired reads the access token from the x-auth-token header. There
// is no Bearer prefix; the header value is the raw JWT.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-auth-token")
		if token == "" {
			utils.UnauthorizedResponse(c, "No token, authorization denied")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Token is not valid")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
