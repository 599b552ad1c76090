package errors

import (
	"math"
	"unicode"
)

// maxNameLength bounds node names so that reports and renders stay readable.
const maxNameLength = 256

// ValidateName validates a node display name for the named field. Names may
// be empty, but must not contain control characters or exceed 256 characters.
func ValidateName(field, name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s %q contains control characters", field, name)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidInput, "%s is NaN", field)
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s is infinite", field)
	}
	return nil
}

// ValidateNonNegative rejects NaN, infinite and negative values for the named field.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %g", field, v)
	}
	return nil
}
