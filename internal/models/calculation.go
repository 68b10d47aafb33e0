package models

import (
	"time"

	"calcledger-backend/internal/operations"
)

// Calculation stores one arithmetic request and its computed result.
// Result is always derived from (A, B, Type); it is never set directly.
type Calculation struct {
	ID        uint                 `gorm:"primarykey" json:"id"`
	UserID    uint                 `gorm:"index;not null" json:"user_id"`
	A         float64              `gorm:"not null" json:"a"`
	B         float64              `gorm:"not null" json:"b"`
	Type      operations.Operation `gorm:"not null;size:16" json:"type"`
	Result    float64              `gorm:"not null" json:"result"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
