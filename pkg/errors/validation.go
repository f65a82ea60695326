package errors

import (
	"math"
)

// ValidatePositive checks that v is a finite real greater than zero.
// The returned error carries code, field and the rejected value.
func ValidatePositive(code Code, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Field(code, field, v, "%s must be a finite number", field)
	}
	if v <= 0 {
		return Field(code, field, v, "%s must be greater than zero (got %g)", field, v)
	}
	return nil
}

// ValidateClosed checks that v lies within [lo, hi].
func ValidateClosed(code Code, field string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Field(code, field, v, "%s must be a finite number", field)
	}
	if v < lo || v > hi {
		return Field(code, field, v, "%s must be within [%g, %g] (got %g)", field, lo, hi, v)
	}
	return nil
}

// MaxResolution bounds the number of sampled spectrum points per request.
const MaxResolution = 10000

// ValidateResolution checks the number of points requested for a sampled curve.
// A curve needs at least two points to span a range.
func ValidateResolution(n int) error {
	if n < 2 {
		return Field(ErrCodeInvalidInput, "resolution", n, "resolution must be at least 2 points (got %d)", n)
	}
	if n > MaxResolution {
		return Field(ErrCodeInvalidInput, "resolution", n, "resolution too large (max %d points)", MaxResolution)
	}
	return nil
}
