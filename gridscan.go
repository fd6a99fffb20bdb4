// Package gridscan provides a fluent API for extracting the grid structure
// of raster images: the rows and columns formed by rule lines on scanned
// documents, forms and tables.
//
// Basic usage:
//
//	g, err := gridscan.Open("scan.png").Grid()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(g.RowCount(), g.ColumnCount())
//
// With options:
//
//	g, err := gridscan.Open("scan.png").
//	    BlockSize(16).
//	    MergeRatio(0.5).
//	    Grid()
//
// For advanced use cases, the lower-level grid, binarize and scan packages
// are also available.
package gridscan

import (
	"image"

	"github.com/tsawler/gridscan/grid"
	"github.com/tsawler/gridscan/model"
)

// Open prepares an Extractor for the image file at filename. The file is
// not touched until a terminal operation runs; open and decode errors
// surface there.
//
// Example:
//
//	g, err := gridscan.Open("scan.png").Grid()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		cfg:      grid.DefaultConfig(),
	}
}

// FromImage creates an Extractor from an already decoded image.
//
// Example:
//
//	g, err := gridscan.FromImage(img).Grid()
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		img: img,
		cfg: grid.DefaultConfig(),
	}
}

// FromField creates an Extractor from a luminance field. This is the
// entry point for sources that are not image files, such as synthetic
// fields in tests.
func FromField(src model.PixelField) *Extractor {
	return &Extractor{
		field: src,
		cfg:   grid.DefaultConfig(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	g := gridscan.Must(gridscan.Open("scan.png").Grid())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
