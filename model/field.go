package model

// PixelField is a read-only view of a width×height field of luminance
// samples. The extraction pipeline never writes through it.
//
// Implementations must be safe for concurrent reads; the pipeline may
// sample different coordinates from multiple goroutines.
type PixelField interface {
	// Width returns the number of samples per row.
	Width() int

	// Height returns the number of rows.
	Height() int

	// IntensityAt returns the luminance at (x, y) in the range [0, 255],
	// where 0 is black and 255 is white. Coordinates outside the field
	// are undefined behavior; callers stay within Width×Height.
	IntensityAt(x, y int) uint8
}

// FieldFunc adapts a plain function to the PixelField interface.
// It is mainly useful for synthetic inputs in tests.
type FieldFunc struct {
	W, H int
	Fn   func(x, y int) uint8
}

// Width returns the field width.
func (f FieldFunc) Width() int { return f.W }

// Height returns the field height.
func (f FieldFunc) Height() int { return f.H }

// IntensityAt invokes the wrapped function.
func (f FieldFunc) IntensityAt(x, y int) uint8 { return f.Fn(x, y) }
