package model

// LineKind classifies a pixel line or a merged run of pixel lines.
type LineKind int

const (
	// Empty marks a line that is predominantly background
	// (whitespace or cell content regions).
	Empty LineKind = iota

	// Full marks a line that is predominantly foreground
	// (ink, typically a ruled table border).
	Full
)

// String returns the kind as a human-readable string.
func (k LineKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Full:
		return "Full"
	default:
		return "Unknown"
	}
}

// Row is a horizontal band of the image: a maximal run of equally
// classified pixel rows. Rows within a grid are contiguous and ordered
// by increasing Y.
type Row struct {
	Y      int      // top edge, in pixels
	Height int      // band height, in pixels (> 0)
	Kind   LineKind // Empty or Full
}

// Span returns the half-open pixel span [Y, Y+Height) covered by the row.
func (r Row) Span() (start, end int) {
	return r.Y, r.Y + r.Height
}

// Column is a vertical band of the image: a maximal run of equally
// classified pixel columns. Columns within a grid are contiguous and
// ordered by increasing X.
type Column struct {
	X     int      // left edge, in pixels
	Width int      // band width, in pixels (> 0)
	Kind  LineKind // Empty or Full
}

// Span returns the half-open pixel span [X, X+Width) covered by the column.
func (c Column) Span() (start, end int) {
	return c.X, c.X + c.Width
}

// Cell is the rectangle formed by the intersection of one row and one
// column. Cells are not stored by a grid; they are derived on demand.
type Cell struct {
	Row    Row
	Column Column
}

// Rect returns the cell's pixel rectangle.
func (c Cell) Rect() Rect {
	return Rect{
		X:      c.Column.X,
		Y:      c.Row.Y,
		Width:  c.Column.Width,
		Height: c.Row.Height,
	}
}

// IsContent reports whether the cell lies between rule lines on both axes,
// i.e. both its row and its column are Empty.
func (c Cell) IsContent() bool {
	return c.Row.Kind == Empty && c.Column.Kind == Empty
}
