package calculation

import (
	"calcledger-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the calculation surface. Every route requires a
// resolved identity; PUT and PATCH share one handler.
func RegisterRoutes(router *gin.RouterGroup) {
	calculations := router.Group("/calculations")
	calculations.Use(middleware.AuthMiddleware())
	calculations.POST("", CreateCalculation)
	calculations.GET("", ListCalculations)
	calculations.GET("/:id", GetCalculation)
	calculations.PUT("/:id", UpdateCalculation)
	calculations.PATCH("/:id", UpdateCalculation)
	calculations.DELETE("/:id", DeleteCalculation)
}
