// Package grid extracts and represents the line structure of a ruled table
// or form image.
//
// A [Grid] is built from an image in three stages: block-local adaptive
// binarization (package binarize), per-line Empty/Full classification
// (package scan), and run merging. Merging first collapses consecutive
// equally classified pixel lines into runs, then absorbs runs that are
// anomalously small for their kind, so scan noise such as dust specks or
// anti-aliasing halos cannot manufacture spurious grid lines.
//
// # Building a grid
//
//	g, err := grid.FromImage(field, grid.DefaultConfig())
//	if err != nil {
//	    // handle error
//	}
//
// The resulting Grid is immutable. Its rows cover exactly [0, height) and
// its columns exactly [0, width), each axis contiguous and ordered by
// position. Every query returns derived data or a new Grid; nothing
// mutates in place.
//
// # Querying
//
// Rows and Columns yield lazy, restartable sequences. FilteredRows and
// FilteredColumns take a caller-supplied predicate. FindCells turns pairs
// of row and column indices into pixel rectangles. The FilterSmallest and
// FilterBiggest operations derive new grids with the extremal-size lines
// removed and their spans folded into the neighboring lines.
//
// # Errors
//
// Construction fails with [ErrInvalidConfig] or [ErrEmptyImage] before any
// scanning begins. Index-based queries fail with [ErrIndexOutOfRange] and
// leave the grid untouched. All failures are reported as wrapped sentinel
// errors; use errors.Is to test for them.
package grid
