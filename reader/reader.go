package reader

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	// Registered decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// GrayField is an 8-bit grayscale image exposed as a luminance field.
// Pixel reads are pure lookups into the backing array, so a GrayField is
// safe for concurrent readers.
type GrayField struct {
	img *image.Gray
}

// Open reads and decodes the image file at filename.
func Open(filename string) (*GrayField, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	field, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	return field, nil
}

// Decode decodes an image from r in any registered format and converts
// it to grayscale.
func Decode(r io.Reader) (*GrayField, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage adapts an already decoded image, converting it to grayscale.
// The source image is copied, not retained.
func FromImage(img image.Image) *GrayField {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return &GrayField{img: gray}
}

// Width returns the image width in pixels.
func (f *GrayField) Width() int {
	return f.img.Bounds().Dx()
}

// Height returns the image height in pixels.
func (f *GrayField) Height() int {
	return f.img.Bounds().Dy()
}

// IntensityAt returns the luminance of the pixel at (x, y): 0 is black,
// 255 is white.
func (f *GrayField) IntensityAt(x, y int) uint8 {
	return f.img.GrayAt(x, y).Y
}

// Image returns the underlying grayscale image. Callers must not mutate
// it while the field is in use.
func (f *GrayField) Image() *image.Gray {
	return f.img
}
