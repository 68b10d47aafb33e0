package services

import (
	"errors"

	"calcledger-backend/internal/database"
	"calcledger-backend/internal/models"
	"calcledger-backend/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// RegisterUser creates a new account after checking username and email
// uniqueness. Checks and insert run in one transaction so a concurrent
// duplicate register cannot slip between them.
func RegisterUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("username = ?", username).First(&existing)
		if result.Error == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		result = tx.Where("email = ?", email).First(&existing)
		if result.Error == nil {
			return ErrEmailTaken
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// LoginUser authenticates by username or email. Unknown account and wrong
// password both come back as ErrInvalidCredentials so the two cases are
// indistinguishable to the caller.
func LoginUser(usernameOrEmail, password string) (*models.User, error) {
	var user models.User
	err := database.DB.Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &user, nil
}
