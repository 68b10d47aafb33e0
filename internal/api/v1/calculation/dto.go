package calculation

import "calcledger-backend/internal/operations"

// CreateCalculationInput uses pointer operands so that zero values pass the
// required check.
type CreateCalculationInput struct {
	A    *float64             `json:"a" binding:"required"`
	B    *float64             `json:"b" binding:"required"`
	Type operations.Operation `json:"type" binding:"required,oneof=add subtract multiply divide"`
}

// UpdateCalculationInput carries the optional fields of an update. The
// result is recomputed server-side; it is not accepted as input.
type UpdateCalculationInput struct {
	A    *float64              `json:"a" binding:"omitempty"`
	B    *float64              `json:"b" binding:"omitempty"`
	Type *operations.Operation `json:"type" binding:"omitempty,oneof=add subtract multiply divide"`
}
