package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitToken("test-secret", 30)

	token, err := GenerateToken("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])

	exp, ok := claims["exp"].(float64)
	assert.True(t, ok)
	assert.Greater(t, exp, float64(time.Now().Unix()))
}

func TestValidateTokenExpired(t *testing.T) {
	InitToken("test-secret", 30)

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	InitToken("test-secret", 30)
	token, err := GenerateToken("alice")
	assert.NoError(t, err)

	InitToken("another-secret", 30)
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	InitToken("test-secret", 30)

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	InitToken("test-secret", 30)

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, err := ExtractToken(c)
	assert.Error(t, err)
}

func TestExtractTokenWrongScheme(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Authorization", "Basic abc123")

	_, err := ExtractToken(c)
	assert.Error(t, err)
}
