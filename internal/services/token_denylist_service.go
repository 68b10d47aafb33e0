package services

import (
	"time"

	"calcledger-backend/internal/database"
)

const denylistPrefix = "denylist:"

// AddToDenylist marks a token as revoked for the given duration. Entries
// expire with the token itself, so the set never grows past one token
// lifetime. No-op when redis is not configured.
func AddToDenylist(tokenString string, expiration time.Duration) error {
	if database.RedisClient == nil {
		return nil
	}
	key := denylistPrefix + tokenString
	return database.RedisClient.Set(database.Ctx, key, 1, expiration).Err()
}

// IsDenylisted reports whether a token has been revoked via logout.
func IsDenylisted(tokenString string) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	key := denylistPrefix + tokenString
	val, err := database.RedisClient.Get(database.Ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
