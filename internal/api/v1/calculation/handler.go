package calculation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"calcledger-backend/internal/models"
	"calcledger-backend/internal/operations"
	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateCalculation godoc
// @Summary Create a calculation
// @Description Compute a + b, a - b, a * b or a / b and store the record
// @Tags calculations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   input  body  CreateCalculationInput  true  "Calculation Input"
// @Success 201 {object} models.Calculation
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /calculations [post]
func CreateCalculation(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}

	var input CreateCalculationInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	record, err := services.CreateCalculation(caller.ID, *input.A, *input.B, input.Type)
	if err != nil {
		respondCalculationError(c, err, "Failed to create calculation")
		return
	}

	zap.L().Info("calculation created",
		zap.Uint("calculation_id", record.ID),
		zap.Uint("user_id", caller.ID),
		zap.String("type", string(record.Type)))

	c.JSON(http.StatusCreated, record)
}

// ListCalculations godoc
// @Summary List calculations
// @Description List the caller's calculations, newest first
// @Tags calculations
// @Produce  json
// @Security ApiKeyAuth
// @Param   skip   query  int  false  "Records to skip"        default(0)
// @Param   limit  query  int  false  "Max records (cap 1000)" default(100)
// @Success 200 {array} models.Calculation
// @Failure 401 {object} utils.Response
// @Router /calculations [get]
func ListCalculations(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultCalculationLimit)))

	records, err := services.FindCalculations(caller.ID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list calculations"))
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetCalculation godoc
// @Summary Get a calculation by ID
// @Description Get one of the caller's calculations. Records owned by other users come back 404.
// @Tags calculations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id  path  int  true  "Calculation ID"
// @Success 200 {object} models.Calculation
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /calculations/{id} [get]
func GetCalculation(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := services.FindCalculationByID(caller.ID, id)
	if err != nil {
		respondCalculationError(c, err, "Failed to fetch calculation")
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateCalculation godoc
// @Summary Update a calculation
// @Description Apply the provided fields and recompute the result. An empty body returns the record unchanged.
// @Tags calculations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id     path  int                     true  "Calculation ID"
// @Param   input  body  UpdateCalculationInput  true  "Fields to update"
// @Success 200 {object} models.Calculation
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /calculations/{id} [put]
func UpdateCalculation(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateCalculationInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	record, err := services.UpdateCalculation(caller.ID, id, services.CalculationUpdate{
		A:    input.A,
		B:    input.B,
		Type: input.Type,
	})
	if err != nil {
		respondCalculationError(c, err, "Failed to update calculation")
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteCalculation godoc
// @Summary Delete a calculation
// @Tags calculations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id  path  int  true  "Calculation ID"
// @Success 200 {object} utils.Message
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /calculations/{id} [delete]
func DeleteCalculation(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.DeleteCalculation(caller.ID, id); err != nil {
		respondCalculationError(c, err, "Failed to delete calculation")
		return
	}

	c.JSON(http.StatusOK, utils.Message{Message: fmt.Sprintf("Calculation %d deleted successfully", id)})
}

func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not validate credentials"))
		return models.User{}, false
	}
	return value.(models.User), true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid calculation ID"))
		return 0, false
	}
	return uint(id), true
}

func respondCalculationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, operations.ErrDivisionByZero):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Division by zero is not allowed"))
	case errors.Is(err, operations.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, services.ErrCalculationNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Calculation not found"))
	default:
		zap.L().Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, fallback))
	}
}
