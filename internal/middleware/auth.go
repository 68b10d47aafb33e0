package middleware

import (
	"net/http"

	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a user record and stores it in
// the gin context under "user". Any failure along the chain -- missing
// header, revoked token, bad signature, expiry, unknown subject -- aborts
// with 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		isDenylisted, err := services.IsDenylisted(tokenString)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
			c.Abort()
			return
		}
		if isDenylisted {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Token has been revoked"))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not validate credentials"))
			c.Abort()
			return
		}

		username, ok := claims["sub"].(string)
		if !ok || username == "" {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not validate credentials"))
			c.Abort()
			return
		}

		user, err := services.FindUserByUsername(username)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not validate credentials"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
