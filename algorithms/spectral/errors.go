package spectral

import "errors"

// Errors returned by the transform functions.
var (
	ErrEmptyInput    = errors.New("spectral: empty input")
	ErrNotPowerOfTwo = errors.New("spectral: length is not a power of two")
	ErrInvalidFrame  = errors.New("spectral: invalid frame parameters")
)
