package auth

import (
	"calcledger-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.POST("/register", Register)
	users.POST("/login", Login)
	users.POST("/logout", middleware.AuthMiddleware(), Logout)
}
