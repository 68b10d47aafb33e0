package api

import (
	"calcledger-backend/config"
	_ "calcledger-backend/docs"
	"calcledger-backend/internal/api/health"
	"calcledger-backend/internal/api/v1/auth"
	"calcledger-backend/internal/api/v1/calculation"
	userRoutes "calcledger-backend/internal/api/v1/user"
	"calcledger-backend/internal/database"
	"calcledger-backend/internal/middleware"
	"calcledger-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter loads configuration, connects the stores and builds the HTTP
// engine. Redis is optional; the service runs without it.
func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	utils.InitToken(cfg.JWTSecret, cfg.TokenTTLMinutes)

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		if err := database.ConnectRedis(cfg); err != nil {
			zap.L().Warn("redis unreachable, running without cache and token denylist", zap.Error(err))
			database.RedisClient = nil
		}
	}

	return newEngine(), nil
}

// newEngine builds the gin engine and wires all routes. Split from NewRouter
// so handler tests can build an engine against an already-prepared store.
func newEngine() *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		health.RegisterRoutes(v1)
		auth.RegisterRoutes(v1)
		userRoutes.RegisterRoutes(v1)
		calculation.RegisterRoutes(v1)
	}

	return router
}
