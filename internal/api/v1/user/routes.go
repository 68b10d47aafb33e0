package user

import (
	"calcledger-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the user surface. /me is the only protected route;
// list/get/update/delete stay open, matching the original API.
func RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.GET("/me", middleware.AuthMiddleware(), CurrentUser)
	users.GET("", ListUsers)
	users.GET("/:id", GetUser)
	users.PUT("/:id", UpdateUser)
	users.DELETE("/:id", DeleteUser)
}
