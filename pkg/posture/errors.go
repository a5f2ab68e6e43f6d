package posture

import "errors"

// Error kinds callers branch on. Ownership conflicts must render differently
// from bad input, and unknown device/user is a normal negative result.
var (
	ErrValidation   = errors.New("validation failed")
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)
