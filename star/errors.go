// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

import "fmt"

// Dimension names used in NotFoundError
const (
	DimensionStudent  = "student"
	DimensionActivity = "activity"
	DimensionDate     = "date"
)

// ValidationError reports a malformed or out-of-range field value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports a natural or surrogate key that does not resolve
// to a dimension row
type NotFoundError struct {
	Dimension string
	Key       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Dimension, e.Key)
}
