package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"calcledger-backend/internal/models"
	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the authenticated user's information
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} utils.Response
// @Router /users/me [get]
func CurrentUser(c *gin.Context) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not validate credentials"))
		return
	}

	u := value.(models.User)

	// Reload to skip the middleware's cached copy
	if latest, err := services.FindUserByID(u.ID); err == nil {
		u = latest
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// ListUsers godoc
// @Summary List users
// @Description Get all users with pagination
// @Tags users
// @Produce  json
// @Param   skip   query  int  false  "Records to skip"  default(0)
// @Param   limit  query  int  false  "Max records"      default(100)
// @Success 200 {array} UserResponse
// @Failure 500 {object} utils.Response
// @Router /users [get]
func ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	users, err := services.FindUsers(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list users"))
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}

	c.JSON(http.StatusOK, responses)
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   id  path  int  true  "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} utils.Response
// @Router /users/{id} [get]
func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := services.FindUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch user"))
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// UpdateUser godoc
// @Summary Update a user
// @Description Update username, email and/or password. Uniqueness is re-checked excluding the user itself.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id     path  int              true  "User ID"
// @Param   input  body  UpdateUserInput  true  "Fields to update"
// @Success 200 {object} UserResponse
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /users/{id} [put]
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateUserInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.UpdateUser(id, services.UserUpdate{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Username already taken"))
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Email already taken"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update user"))
		}
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(*u))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete a user and all calculations they own
// @Tags users
// @Produce  json
// @Param   id  path  int  true  "User ID"
// @Success 200 {object} utils.Message
// @Failure 404 {object} utils.Response
// @Router /users/{id} [delete]
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	username, err := services.DeleteUser(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete user"))
		return
	}

	c.JSON(http.StatusOK, utils.Message{Message: fmt.Sprintf("User '%s' deleted successfully", username)})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return 0, false
	}
	return uint(id), true
}
