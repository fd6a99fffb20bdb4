package binarize

// Bitmap is a width×height boolean mask. True marks foreground (ink).
// Pixels are stored row-major, one bool per pixel.
type Bitmap struct {
	Width  int
	Height int
	Pix    []bool
}

// NewBitmap creates an all-background bitmap of the given dimensions.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is foreground.
func (b *Bitmap) At(x, y int) bool {
	return b.Pix[y*b.Width+x]
}

// Set marks the pixel at (x, y).
func (b *Bitmap) Set(x, y int, foreground bool) {
	b.Pix[y*b.Width+x] = foreground
}

// CountRow returns the number of foreground pixels in pixel row y.
func (b *Bitmap) CountRow(y int) int {
	count := 0
	row := b.Pix[y*b.Width : (y+1)*b.Width]
	for _, fg := range row {
		if fg {
			count++
		}
	}
	return count
}

// CountColumn returns the number of foreground pixels in pixel column x.
func (b *Bitmap) CountColumn(x int) int {
	count := 0
	for y := 0; y < b.Height; y++ {
		if b.Pix[y*b.Width+x] {
			count++
		}
	}
	return count
}
