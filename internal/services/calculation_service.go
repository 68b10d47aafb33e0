package services

import (
	"errors"

	"calcledger-backend/internal/database"
	"calcledger-backend/internal/models"
	"calcledger-backend/internal/operations"

	"gorm.io/gorm"
)

// ErrCalculationNotFound covers both a missing record and a record owned by
// another user. Ownership mismatches are deliberately indistinguishable from
// absence.
var ErrCalculationNotFound = errors.New("calculation not found")

const (
	DefaultCalculationLimit = 100
	MaxCalculationLimit     = 1000
)

// CreateCalculation computes the result and persists the record for the
// given owner. Engine failures abort before anything is written.
func CreateCalculation(userID uint, a, b float64, op operations.Operation) (*models.Calculation, error) {
	result, err := operations.Calculate(a, b, op)
	if err != nil {
		return nil, err
	}

	calculation := &models.Calculation{
		UserID: userID,
		A:      a,
		B:      b,
		Type:   op,
		Result: result,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(calculation).Error
	})
	if err != nil {
		return nil, err
	}

	return calculation, nil
}

// FindCalculations lists the owner's records, newest first, with skip/limit
// pagination. The limit is capped at MaxCalculationLimit.
func FindCalculations(userID uint, skip, limit int) ([]models.Calculation, error) {
	if limit <= 0 {
		limit = DefaultCalculationLimit
	}
	if limit > MaxCalculationLimit {
		limit = MaxCalculationLimit
	}
	if skip < 0 {
		skip = 0
	}

	var calculations []models.Calculation
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&calculations).Error
	if err != nil {
		return nil, err
	}

	return calculations, nil
}

// FindCalculationByID fetches one record scoped to its owner.
func FindCalculationByID(userID, id uint) (*models.Calculation, error) {
	var calculation models.Calculation
	err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&calculation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalculationNotFound
		}
		return nil, err
	}
	return &calculation, nil
}

// CalculationUpdate carries the optional fields of an update. Nil fields are
// left untouched.
type CalculationUpdate struct {
	A    *float64
	B    *float64
	Type *operations.Operation
}

func (u CalculationUpdate) empty() bool {
	return u.A == nil && u.B == nil && u.Type == nil
}

// UpdateCalculation applies the provided fields and unconditionally
// recomputes the result from the resulting (a, b, type) triple. An update
// with no fields returns the record unchanged without recomputing. A
// recompute failure rolls back; nothing is persisted.
func UpdateCalculation(userID, id uint, update CalculationUpdate) (*models.Calculation, error) {
	var calculation models.Calculation

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&calculation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCalculationNotFound
			}
			return err
		}

		if update.empty() {
			return nil
		}

		if update.A != nil {
			calculation.A = *update.A
		}
		if update.B != nil {
			calculation.B = *update.B
		}
		if update.Type != nil {
			calculation.Type = *update.Type
		}

		result, err := operations.Calculate(calculation.A, calculation.B, calculation.Type)
		if err != nil {
			return err
		}
		calculation.Result = result

		return tx.Save(&calculation).Error
	})
	if err != nil {
		return nil, err
	}

	return &calculation, nil
}

// DeleteCalculation removes the record under the same ownership rule.
func DeleteCalculation(userID, id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var calculation models.Calculation
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&calculation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCalculationNotFound
			}
			return err
		}

		return tx.Delete(&calculation).Error
	})
}
