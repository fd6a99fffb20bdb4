package binarize

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/gridscan/model"
)

var (
	// ErrEmptyImage is returned when the source has zero width or height.
	ErrEmptyImage = errors.New("binarize: empty image")

	// ErrInvalidBlockSize is returned when the block size is not positive.
	ErrInvalidBlockSize = errors.New("binarize: block size must be positive")
)

// Threshold produces a foreground mask for src using block-local adaptive
// thresholding with the given block side length.
//
// When parallel is true, block rows are processed concurrently. The result
// is identical either way; each block writes a disjoint region of the mask.
func Threshold(src model.PixelField, blockSize int, parallel bool) (*Bitmap, error) {
	if blockSize < 1 {
		return nil, ErrInvalidBlockSize
	}

	width, height := src.Width(), src.Height()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	mask := NewBitmap(width, height)
	blockRows := (height + blockSize - 1) / blockSize

	if !parallel {
		for by := 0; by < blockRows; by++ {
			thresholdBlockRow(src, mask, by, blockSize)
		}
		return mask, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for by := 0; by < blockRows; by++ {
		g.Go(func() error {
			thresholdBlockRow(src, mask, by, blockSize)
			return nil
		})
	}
	// The workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return mask, nil
}

// thresholdBlockRow thresholds every block in block row by.
func thresholdBlockRow(src model.PixelField, mask *Bitmap, by, blockSize int) {
	width, height := src.Width(), src.Height()

	y0 := by * blockSize
	y1 := min(y0+blockSize, height)

	for x0 := 0; x0 < width; x0 += blockSize {
		x1 := min(x0+blockSize, width)
		thresholdBlock(src, mask, x0, y0, x1, y1)
	}
}

// thresholdBlock classifies the pixels of one block. The split value comes
// from Otsu's method over the block's histogram; a block with no usable
// split (uniform intensity) classifies as all background.
func thresholdBlock(src model.PixelField, mask *Bitmap, x0, y0, x1, y1 int) {
	var histogram [256]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			histogram[src.IntensityAt(x, y)]++
		}
	}

	split, ok := otsuSplit(histogram, (x1-x0)*(y1-y0))
	if !ok {
		return // mask is already all background
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if src.IntensityAt(x, y) <= split {
				mask.Set(x, y, true)
			}
		}
	}
}

// otsuSplit finds the intensity t that maximizes the between-class variance
// of the two classes [0, t] and (t, 255]. It returns ok=false when no split
// separates two non-empty classes, which covers uniform blocks.
func otsuSplit(histogram [256]int, total int) (split uint8, ok bool) {
	if total == 0 {
		return 0, false
	}

	var sum float64
	for i, n := range histogram {
		sum += float64(i) * float64(n)
	}

	var (
		sumLow      float64
		weightLow   int
		maxVariance float64
		best        uint8
		found       bool
	)

	for t := 0; t < 256; t++ {
		weightLow += histogram[t]
		if weightLow == 0 {
			continue
		}
		weightHigh := total - weightLow
		if weightHigh == 0 {
			break
		}

		sumLow += float64(t) * float64(histogram[t])
		meanLow := sumLow / float64(weightLow)
		meanHigh := (sum - sumLow) / float64(weightHigh)

		variance := float64(weightLow) * float64(weightHigh) * (meanLow - meanHigh) * (meanLow - meanHigh)
		if variance > maxVariance {
			maxVariance = variance
			best = uint8(t)
			found = true
		}
	}

	return best, found
}
