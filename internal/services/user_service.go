package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"calcledger-backend/internal/database"
	"calcledger-backend/internal/models"
	"calcledger-backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const userCacheTTL = time.Hour

func userCacheKey(username string) string {
	return fmt.Sprintf("user:name:%s", username)
}

// FindUserByUsername resolves a username to its user record, going through
// the redis read-through cache when one is configured. The auth middleware
// calls this on every protected request.
func FindUserByUsername(username string) (models.User, error) {
	cacheKey := userCacheKey(username)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheTTL)
		}
	}

	return user, nil
}

func FindUserByID(userID uint) (models.User, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// FindUsers retrieves users with skip/limit pagination.
func FindUsers(skip, limit int) ([]models.User, error) {
	var users []models.User
	if err := database.DB.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the optional fields of a profile update. Nil fields are
// left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateUser applies the provided fields. Username and email uniqueness is
// re-checked excluding the user itself. A password change is re-hashed,
// never stored in plaintext.
func UpdateUser(id uint, update UserUpdate) (*models.User, error) {
	var user models.User

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		oldUsername := user.Username

		if update.Username != nil && *update.Username != "" {
			var existing models.User
			result := tx.Where("username = ? AND id <> ?", *update.Username, id).First(&existing)
			if result.Error == nil {
				return ErrUsernameTaken
			}
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			user.Username = *update.Username
		}

		if update.Email != nil && *update.Email != "" {
			var existing models.User
			result := tx.Where("email = ? AND id <> ?", *update.Email, id).First(&existing)
			if result.Error == nil {
				return ErrEmailTaken
			}
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			user.Email = *update.Email
		}

		if update.Password != nil && *update.Password != "" {
			hashed, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hashed
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		invalidateUserCache(oldUsername)
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateUserCache(user.Username)
	return &user, nil
}

// DeleteUser removes the user and all calculations they own in one
// transaction. The FK carries OnDelete:CASCADE, the explicit delete keeps
// the behavior on backends that do not enforce it.
func DeleteUser(id uint) (string, error) {
	var user models.User

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Calculation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return "", err
	}

	invalidateUserCache(user.Username)
	zap.L().Info("user deleted", zap.Uint("user_id", id), zap.String("username", user.Username))

	return user.Username, nil
}

func invalidateUserCache(username string) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(username))
	}
}
