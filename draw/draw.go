package draw

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/tsawler/gridscan/grid"
	"github.com/tsawler/gridscan/model"
)

// Config controls how a grid is rendered.
type Config struct {
	// Padding shrinks each content cell box by this many pixels on every
	// side before it is drawn.
	Padding int

	// LineThickness is the stroke width of the cell boxes.
	LineThickness int

	// RowColor fills Full row bands. Ignored when RowColorFunc is set.
	RowColor color.RGBA

	// ColumnColor fills Full column bands. Ignored when ColumnColorFunc
	// is set.
	ColumnColor color.RGBA

	// CellColor strokes the content cell boxes.
	CellColor color.RGBA

	// RowColorFunc, when non-nil, supplies the fill color per row index.
	RowColorFunc func(index int) color.RGBA

	// ColumnColorFunc, when non-nil, supplies the fill color per column
	// index.
	ColumnColorFunc func(index int) color.RGBA
}

// DefaultConfig returns the rendering defaults: 2 pixels of cell padding,
// 2 pixel strokes, red rows, blue columns and light gray cell boxes.
func DefaultConfig() Config {
	return Config{
		Padding:       2,
		LineThickness: 2,
		RowColor:      color.RGBA{R: 255, A: 255},
		ColumnColor:   color.RGBA{B: 255, A: 255},
		CellColor:     color.RGBA{R: 200, G: 200, B: 200, A: 255},
	}
}

func (c Config) rowColor(index int) color.RGBA {
	if c.RowColorFunc != nil {
		return c.RowColorFunc(index)
	}
	return c.RowColor
}

func (c Config) columnColor(index int) color.RGBA {
	if c.ColumnColorFunc != nil {
		return c.ColumnColorFunc(index)
	}
	return c.ColumnColor
}

// Overlay copies src and paints every Full row and Full column of g over
// it as a filled band. Rows are painted first, so at crossings the column
// color wins.
func Overlay(src image.Image, g *grid.Grid, cfg Config) *image.RGBA {
	dst := toRGBA(src)
	width := dst.Bounds().Dx()
	height := dst.Bounds().Dy()

	for i := 0; i < g.RowCount(); i++ {
		row, _ := g.Row(i)
		if row.Kind != model.Full {
			continue
		}
		fillRect(dst, image.Rect(0, row.Y, width, row.Y+row.Height), cfg.rowColor(i))
	}

	for i := 0; i < g.ColumnCount(); i++ {
		col, _ := g.Column(i)
		if col.Kind != model.Full {
			continue
		}
		fillRect(dst, image.Rect(col.X, 0, col.X+col.Width, height), cfg.columnColor(i))
	}

	return dst
}

// CellBoxes copies src and strokes the outline of every content cell,
// shrunk by cfg.Padding, with cfg.CellColor at cfg.LineThickness pixels.
// Cells whose padded rectangle collapses to nothing are skipped.
func CellBoxes(src image.Image, g *grid.Grid, cfg Config) *image.RGBA {
	dst := toRGBA(src)

	for ri := 0; ri < g.RowCount(); ri++ {
		row, _ := g.Row(ri)
		if row.Kind != model.Empty {
			continue
		}
		for ci := 0; ci < g.ColumnCount(); ci++ {
			col, _ := g.Column(ci)
			if col.Kind != model.Empty {
				continue
			}

			cell := model.Cell{Row: row, Column: col}
			rect := cell.Rect().Inset(cfg.Padding)
			if rect.IsEmpty() {
				continue
			}
			strokeRect(dst, rect.ImageRect(), cfg.LineThickness, cfg.CellColor)
		}
	}

	return dst
}

// SaveOverlay renders Overlay(src, g, cfg) and writes it to path as PNG.
func SaveOverlay(path string, src image.Image, g *grid.Grid, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, Overlay(src, g, cfg)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// toRGBA copies src into a zero-origin RGBA image.
func toRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws the four edges of r, thickness pixels wide, growing
// inward from the boundary.
func strokeRect(dst *image.RGBA, r image.Rectangle, thickness int, c color.RGBA) {
	if thickness < 1 {
		thickness = 1
	}

	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), c)
}
