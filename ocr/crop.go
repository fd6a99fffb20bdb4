package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/tsawler/gridscan/model"
)

// CropCell cuts the cell's rectangle out of src and returns it encoded as
// PNG, ready to feed to an OCR engine. Cell coordinates are taken relative
// to the image's top-left corner. The crop is clipped to the image; a cell
// entirely outside it is an error.
func CropCell(src image.Image, cell model.Cell) ([]byte, error) {
	r := cell.Rect().ImageRect().Add(src.Bounds().Min)
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("cell %v lies outside the image %v", cell.Rect(), src.Bounds())
	}

	crop := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(crop, crop.Bounds(), src, r.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return buf.Bytes(), nil
}
