package scan

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/gridscan/binarize"
	"github.com/tsawler/gridscan/model"
)

// Rows classifies every pixel row of the mask.
func Rows(mask *binarize.Bitmap, parallel bool) []model.LineKind {
	return classifyLines(mask.Height, mask.Width, parallel, mask.CountRow)
}

// Columns classifies every pixel column of the mask.
func Columns(mask *binarize.Bitmap, parallel bool) []model.LineKind {
	return classifyLines(mask.Width, mask.Height, parallel, mask.CountColumn)
}

// RowRatios returns the foreground ratio of every pixel row.
func RowRatios(mask *binarize.Bitmap, parallel bool) []float64 {
	return lineRatios(mask.Height, mask.Width, parallel, mask.CountRow)
}

// ColumnRatios returns the foreground ratio of every pixel column.
func ColumnRatios(mask *binarize.Bitmap, parallel bool) []float64 {
	return lineRatios(mask.Width, mask.Height, parallel, mask.CountColumn)
}

// classifyLines computes the kind of each of count lines of the given
// length. A line is Full when its foreground pixels outnumber its
// background pixels; the comparison 2*fg > length is exact, so the
// 0.5 decision boundary involves no floating point.
func classifyLines(count, length int, parallel bool, countLine func(i int) int) []model.LineKind {
	kinds := make([]model.LineKind, count)
	forEachLine(count, parallel, func(i int) {
		if 2*countLine(i) > length {
			kinds[i] = model.Full
		}
	})
	return kinds
}

// lineRatios computes the foreground ratio of each of count lines.
func lineRatios(count, length int, parallel bool, countLine func(i int) int) []float64 {
	ratios := make([]float64, count)
	forEachLine(count, parallel, func(i int) {
		ratios[i] = float64(countLine(i)) / float64(length)
	})
	return ratios
}

// forEachLine invokes fn for every line index, sequentially or fanned out
// across CPUs. fn must only write state owned by its own index.
func forEachLine(count int, parallel bool, fn func(i int)) {
	if !parallel || count < 2 {
		for i := 0; i < count; i++ {
			fn(i)
		}
		return
	}

	workers := min(runtime.NumCPU(), count)
	chunk := (count + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < count; start += chunk {
		end := min(start+chunk, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
