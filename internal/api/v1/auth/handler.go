package auth

import (
	"errors"
	"net/http"
	"time"

	"calcledger-backend/internal/api/v1/user"
	"calcledger-backend/internal/services"
	"calcledger-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register godoc
// @Summary Register a new user
// @Description Register with a unique username and email and get a bearer token back
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input  body  RegisterInput  true  "Register Input"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.RegisterUser(input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Username already registered"))
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Email already registered"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to register user due to an internal error"))
		}
		return
	}

	token, err := utils.GenerateToken(u.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	zap.L().Info("user registered", zap.Uint("user_id", u.ID), zap.String("username", u.Username))

	c.JSON(http.StatusCreated, AuthResponse{
		Message:     "Registration successful",
		User:        user.NewUserResponse(*u),
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Login godoc
// @Summary Log in a user
// @Description Log in with username (or email) and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input  body  LoginInput  true  "Login Input"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /users/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.LoginUser(input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid username or password"))
		case errors.Is(err, services.ErrUserInactive):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "User account is inactive"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to log in due to an internal error"))
		}
		return
	}

	token, err := utils.GenerateToken(u.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	zap.L().Info("user logged in", zap.Uint("user_id", u.ID), zap.String("username", u.Username))

	c.JSON(http.StatusOK, AuthResponse{
		Message:     "Login successful",
		User:        user.NewUserResponse(*u),
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout godoc
// @Summary Log out a user
// @Description Revoke the presented token for its remaining lifetime
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Message
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	// Denylist for the token's remaining life. If the claims can't be read
	// the token is already unusable, but denylist it for a full TTL anyway.
	remaining := 30 * time.Minute
	if claims, err := utils.ValidateToken(tokenString); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			remaining = time.Until(time.Unix(int64(exp), 0))
		}
	}

	if remaining > 0 {
		if err := services.AddToDenylist(tokenString, remaining); err != nil {
			zap.L().Error("failed to denylist token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
			return
		}
	}

	c.JSON(http.StatusOK, utils.Message{Message: "Logged out successfully"})
}
