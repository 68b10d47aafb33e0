package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"calcledger-backend/internal/database"
	"calcledger-backend/internal/middleware"
	"calcledger-backend/internal/models"
	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Calculation{}, &models.User{})
	if err := db.AutoMigrate(&models.User{}, &models.Calculation{}); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

func setupMockRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr
}

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
		u := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	setupTestDB()
	mr := setupMockRedis()
	defer mr.Close()

	utils.InitToken("test-secret", 30)

	_, err := services.RegisterUser("alice", "alice@x.com", "password123")
	assert.NoError(t, err)
	_, err = services.RegisterUser("bob", "bob@x.com", "password123")
	assert.NoError(t, err)

	validToken, err := utils.GenerateToken("alice")
	assert.NoError(t, err)

	unknownSubject, err := utils.GenerateToken("ghost")
	assert.NoError(t, err)

	expiredClaims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	// Bob's token, not Alice's: tokens issued in the same second with the
	// same claims are byte-identical, and denylisting one would revoke both.
	revokedToken, err := utils.GenerateToken("bob")
	assert.NoError(t, err)
	assert.NoError(t, services.AddToDenylist(revokedToken, time.Hour))

	router := newProtectedRouter()

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Scheme",
			authHeader:     "Basic abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Subject",
			authHeader:     "Bearer " + unknownSubject,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Revoked Token",
			authHeader:     "Bearer " + revokedToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareWithoutRedis(t *testing.T) {
	setupTestDB()
	utils.InitToken("test-secret", 30)

	_, err := services.RegisterUser("alice", "alice@x.com", "password123")
	assert.NoError(t, err)

	token, err := utils.GenerateToken("alice")
	assert.NoError(t, err)

	router := newProtectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
