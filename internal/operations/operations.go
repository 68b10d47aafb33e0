package operations

import "errors"

// Operation is one of the four supported arithmetic operations.
type Operation string

const (
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

var (
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
	ErrInvalidOperation = errors.New("invalid operation type")
)

// IsValid reports whether op is one of the supported operations.
func (op Operation) IsValid() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Calculate applies op to a and b. Pure function, IEEE-754 float64
// arithmetic. Divide fails with ErrDivisionByZero when b is exactly zero.
func Calculate(a, b float64, op Operation) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, ErrInvalidOperation
	}
}
