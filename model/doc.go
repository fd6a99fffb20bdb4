// Package model defines the shared data types used throughout gridscan.
//
// The central types are [Row] and [Column], the merged line records that make
// up a grid, and [Cell], the rectangle formed by one row and one column.
// Lines carry a [LineKind] telling whether they are predominantly foreground
// (ink, rule lines) or background (whitespace, cell content areas).
//
// # Coordinate conventions
//
// All coordinates are pixel coordinates with the origin at the top-left
// corner of the image, x growing rightward and y growing downward. A Row
// occupies the half-open span [Y, Y+Height) and a Column the span
// [X, X+Width).
//
// # Pixel access
//
// The extraction pipeline reads pixels through the [PixelField] interface,
// a read-only luminance accessor. Any image source can participate by
// implementing it; the reader package provides adapters for the standard
// image types.
package model
