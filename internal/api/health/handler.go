package health

import (
	"net/http"

	"calcledger-backend/internal/database"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports process liveness and dependency reachability.
type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Redis    bool   `json:"redis"`
}

// Check godoc
// @Summary Liveness probe
// @Description Report service status and dependency reachability
// @Tags health
// @Produce  json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Check(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			resp.Database = sqlDB.Ping() == nil
		}
	}

	if database.RedisClient != nil {
		resp.Redis = database.RedisClient.Ping(database.Ctx).Err() == nil
	}

	c.JSON(http.StatusOK, resp)
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", Check)
}
