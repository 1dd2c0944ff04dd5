package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrInferenceUnavailable = errors.New("inference service unavailable")
)

// ErrMalformedResponse marks an inference response without a usable risk
// value. It matches ErrInsufficientData under errors.Is so callers handle
// both outcomes the same way.
var ErrMalformedResponse = fmt.Errorf("%w: malformed inference response", ErrInsufficientData)
