package grid

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	// No partial Grid is produced.
	ErrInvalidConfig = errors.New("grid: invalid configuration")

	// ErrEmptyImage is returned for inputs with zero width or height,
	// before any scanning begins.
	ErrEmptyImage = errors.New("grid: empty image")

	// ErrIndexOutOfRange is returned by index-based accessors when an
	// index does not denote an existing row or column. The Grid itself
	// remains valid.
	ErrIndexOutOfRange = errors.New("grid: index out of range")
)
