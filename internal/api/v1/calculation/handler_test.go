package calculation_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	calcAPI "calcledger-backend/internal/api/v1/calculation"
	"calcledger-backend/internal/database"
	"calcledger-backend/internal/models"
	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
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
	utils.InitToken("test-secret", 30)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	calcAPI.RegisterRoutes(v1)
	return router
}

func registerUser(t *testing.T, username string) (uint, string) {
	t.Helper()
	u, err := services.RegisterUser(username, username+"@x.com", "password123")
	assert.NoError(t, err)
	token, err := utils.GenerateToken(username)
	assert.NoError(t, err)
	return u.ID, token
}

func doRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCalculation(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	w := doRequest(router, "POST", "/api/v1/calculations", gin.H{
		"a": 10, "b": 5, "type": "add",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var record models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, 15.0, record.Result)
}

func TestCreateCalculationZeroOperands(t *testing.T) {
	setupTestDB()
	router := newRouter()
	_, token := registerUser(t, "alice")

	// Zero is a legitimate operand, not a missing field
	w := doRequest(router, "POST", "/api/v1/calculations", gin.H{
		"a": 0, "b": 0, "type": "multiply",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var record models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 0.0, record.Result)
}

func TestCreateCalculationDivisionByZero(t *testing.T) {
	setupTestDB()
	router := newRouter()
	_, token := registerUser(t, "alice")

	w := doRequest(router, "POST", "/api/v1/calculations", gin.H{
		"a": 10, "b": 0, "type": "divide",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Division by zero is not allowed")
}

func TestCreateCalculationInvalidType(t *testing.T) {
	setupTestDB()
	router := newRouter()
	_, token := registerUser(t, "alice")

	w := doRequest(router, "POST", "/api/v1/calculations", gin.H{
		"a": 10, "b": 5, "type": "modulo",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculationsUnauthenticated(t *testing.T) {
	setupTestDB()
	router := newRouter()

	w := doRequest(router, "GET", "/api/v1/calculations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "POST", "/api/v1/calculations", gin.H{
		"a": 1, "b": 2, "type": "add",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListCalculations(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	for i := 0; i < 3; i++ {
		_, err := services.CreateCalculation(userID, float64(i), 1, "add")
		assert.NoError(t, err)
	}

	w := doRequest(router, "GET", "/api/v1/calculations", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var records []models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 3)

	w = doRequest(router, "GET", "/api/v1/calculations?skip=2&limit=2", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 1)
}

func TestCalculationIsolationBetweenUsers(t *testing.T) {
	setupTestDB()
	router := newRouter()
	aliceID, aliceToken := registerUser(t, "alice")
	_, bobToken := registerUser(t, "bob")

	record, err := services.CreateCalculation(aliceID, 10, 5, "add")
	assert.NoError(t, err)
	path := fmt.Sprintf("/api/v1/calculations/%d", record.ID)

	// Bob's list omits Alice's record
	w := doRequest(router, "GET", "/api/v1/calculations", nil, bobToken)
	assert.Equal(t, http.StatusOK, w.Code)
	var records []models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Empty(t, records)

	// Get, update and delete all come back 404 for Bob
	w = doRequest(router, "GET", path, nil, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "PUT", path, gin.H{"a": 1}, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "DELETE", path, nil, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The record still belongs to Alice
	w = doRequest(router, "GET", path, nil, aliceToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCalculation(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	record, err := services.CreateCalculation(userID, 10, 5, "subtract")
	assert.NoError(t, err)

	w := doRequest(router, "GET", fmt.Sprintf("/api/v1/calculations/%d", record.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 5.0, got.Result)

	w = doRequest(router, "GET", "/api/v1/calculations/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchCalculationRecomputes(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	record, err := services.CreateCalculation(userID, 10, 5, "add")
	assert.NoError(t, err)
	path := fmt.Sprintf("/api/v1/calculations/%d", record.ID)

	w := doRequest(router, "PATCH", path, gin.H{"b": 8}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 18.0, updated.Result)
	assert.Equal(t, "add", string(updated.Type))
	assert.Equal(t, 10.0, updated.A)
}

func TestPutCalculationDivisionByZero(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	record, err := services.CreateCalculation(userID, 10, 5, "divide")
	assert.NoError(t, err)
	path := fmt.Sprintf("/api/v1/calculations/%d", record.ID)

	w := doRequest(router, "PUT", path, gin.H{"b": 0}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stored record unchanged
	w = doRequest(router, "GET", path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 5.0, got.B)
	assert.Equal(t, 2.0, got.Result)
}

func TestUpdateCalculationEmptyBody(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	record, err := services.CreateCalculation(userID, 10, 5, "add")
	assert.NoError(t, err)
	path := fmt.Sprintf("/api/v1/calculations/%d", record.ID)

	w := doRequest(router, "PUT", path, gin.H{}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Calculation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 15.0, got.Result)
}

func TestDeleteCalculation(t *testing.T) {
	setupTestDB()
	router := newRouter()
	userID, token := registerUser(t, "alice")

	record, err := services.CreateCalculation(userID, 10, 5, "add")
	assert.NoError(t, err)
	path := fmt.Sprintf("/api/v1/calculations/%d", record.ID)

	w := doRequest(router, "DELETE", path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("Calculation %d deleted successfully", record.ID))

	w = doRequest(router, "DELETE", path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
