package grid

import (
	"fmt"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/gridscan/binarize"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/scan"
)

// Grid is the line structure extracted from an image: an ordered sequence
// of Rows covering [0, height) and an ordered sequence of Columns covering
// [0, width), each axis contiguous. A Grid is immutable once constructed;
// filtering operations return new Grids.
type Grid struct {
	rows    []model.Row
	columns []model.Column
}

// FromImage extracts a Grid from a luminance field.
//
// The pipeline binarizes the field with block-local adaptive thresholding,
// classifies every pixel row and column as Empty or Full, collapses the
// classifications into runs, and absorbs anomalously small runs. With
// cfg.EnableParallel set, the two axes are processed concurrently and the
// work within each stage fans out across CPUs; the result is identical to
// the sequential computation.
func FromImage(src model.PixelField, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	width, height := src.Width(), src.Height()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrEmptyImage, width, height)
	}

	mask, err := binarize.Threshold(src, cfg.ThresholdBlockSize, cfg.EnableParallel)
	if err != nil {
		return nil, fmt.Errorf("binarization failed: %w", err)
	}

	var rowKinds, colKinds []model.LineKind
	if cfg.EnableParallel {
		var g errgroup.Group
		g.Go(func() error {
			rowKinds = scan.Rows(mask, true)
			return nil
		})
		g.Go(func() error {
			colKinds = scan.Columns(mask, true)
			return nil
		})
		_ = g.Wait()
	} else {
		rowKinds = scan.Rows(mask, false)
		colKinds = scan.Columns(mask, false)
	}

	return &Grid{
		rows:    rowsFromRuns(mergeRuns(encodeRuns(rowKinds), cfg.MergeThresholdRatio)),
		columns: columnsFromRuns(mergeRuns(encodeRuns(colKinds), cfg.MergeThresholdRatio)),
	}, nil
}

// New builds a Grid directly from rows and columns. The slices are copied.
// Callers are responsible for supplying contiguous, position-ordered lines;
// New is intended for tests and for adapters that already hold a valid
// line structure.
func New(rows []model.Row, columns []model.Column) *Grid {
	return &Grid{
		rows:    slices.Clone(rows),
		columns: slices.Clone(columns),
	}
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	return len(g.columns)
}

// Row returns the row at index i.
func (g *Grid) Row(i int) (model.Row, error) {
	if i < 0 || i >= len(g.rows) {
		return model.Row{}, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, len(g.rows))
	}
	return g.rows[i], nil
}

// Column returns the column at index i.
func (g *Grid) Column(i int) (model.Column, error) {
	if i < 0 || i >= len(g.columns) {
		return model.Column{}, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, len(g.columns))
	}
	return g.columns[i], nil
}

// Rows returns a lazy, restartable sequence over the rows in position order.
func (g *Grid) Rows() iter.Seq[model.Row] {
	return func(yield func(model.Row) bool) {
		for _, r := range g.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Columns returns a lazy, restartable sequence over the columns in
// position order.
func (g *Grid) Columns() iter.Seq[model.Column] {
	return func(yield func(model.Column) bool) {
		for _, c := range g.columns {
			if !yield(c) {
				return
			}
		}
	}
}

// FilteredRows returns a lazy sequence of the rows satisfying the predicate.
func (g *Grid) FilteredRows(predicate func(model.Row) bool) iter.Seq[model.Row] {
	return func(yield func(model.Row) bool) {
		for _, r := range g.rows {
			if predicate(r) && !yield(r) {
				return
			}
		}
	}
}

// FilteredColumns returns a lazy sequence of the columns satisfying the
// predicate.
func (g *Grid) FilteredColumns(predicate func(model.Column) bool) iter.Seq[model.Column] {
	return func(yield func(model.Column) bool) {
		for _, c := range g.columns {
			if predicate(c) && !yield(c) {
				return
			}
		}
	}
}

// CountRowsByKind returns the number of rows of the given kind.
func (g *Grid) CountRowsByKind(kind model.LineKind) int {
	count := 0
	for _, r := range g.rows {
		if r.Kind == kind {
			count++
		}
	}
	return count
}

// CountColumnsByKind returns the number of columns of the given kind.
func (g *Grid) CountColumnsByKind(kind model.LineKind) int {
	count := 0
	for _, c := range g.columns {
		if c.Kind == kind {
			count++
		}
	}
	return count
}

// FindRow returns the row starting at pixel position y.
func (g *Grid) FindRow(y int) (model.Row, bool) {
	for _, r := range g.rows {
		if r.Y == y {
			return r, true
		}
	}
	return model.Row{}, false
}

// FindColumn returns the column starting at pixel position x.
func (g *Grid) FindColumn(x int) (model.Column, bool) {
	for _, c := range g.columns {
		if c.X == x {
			return c, true
		}
	}
	return model.Column{}, false
}

// FindCells returns the cell for every combination of a row index and a
// column index, in row-major order. All indices are validated up front;
// an out-of-range index fails the whole call with ErrIndexOutOfRange and
// leaves the Grid untouched.
//
// FindCells does not check kinds: callers wanting only content cells
// filter for Empty rows and columns first.
func (g *Grid) FindCells(rowIndices, colIndices []int) ([]model.Cell, error) {
	for _, ri := range rowIndices {
		if ri < 0 || ri >= len(g.rows) {
			return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, ri, len(g.rows))
		}
	}
	for _, ci := range colIndices {
		if ci < 0 || ci >= len(g.columns) {
			return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, ci, len(g.columns))
		}
	}

	cells := make([]model.Cell, 0, len(rowIndices)*len(colIndices))
	for _, ri := range rowIndices {
		for _, ci := range colIndices {
			cells = append(cells, model.Cell{Row: g.rows[ri], Column: g.columns[ci]})
		}
	}
	return cells, nil
}

// SmallestRowHeight returns the minimal row height, or false if the grid
// has no rows.
func (g *Grid) SmallestRowHeight() (int, bool) {
	return extremalSize(runsFromRows(g.rows), false)
}

// BiggestRowHeight returns the maximal row height, or false if the grid
// has no rows.
func (g *Grid) BiggestRowHeight() (int, bool) {
	return extremalSize(runsFromRows(g.rows), true)
}

// SmallestColumnWidth returns the minimal column width, or false if the
// grid has no columns.
func (g *Grid) SmallestColumnWidth() (int, bool) {
	return extremalSize(runsFromColumns(g.columns), false)
}

// BiggestColumnWidth returns the maximal column width, or false if the
// grid has no columns.
func (g *Grid) BiggestColumnWidth() (int, bool) {
	return extremalSize(runsFromColumns(g.columns), true)
}

// FilterSmallestRows returns a new Grid without the smallest rows.
// See filterExtremal for the removal and span-repair policy.
func (g *Grid) FilterSmallestRows() *Grid {
	return &Grid{
		rows:    rowsFromRuns(filterExtremal(runsFromRows(g.rows), false)),
		columns: slices.Clone(g.columns),
	}
}

// FilterBiggestRows returns a new Grid without the biggest rows.
func (g *Grid) FilterBiggestRows() *Grid {
	return &Grid{
		rows:    rowsFromRuns(filterExtremal(runsFromRows(g.rows), true)),
		columns: slices.Clone(g.columns),
	}
}

// FilterSmallestColumns returns a new Grid without the smallest columns.
func (g *Grid) FilterSmallestColumns() *Grid {
	return &Grid{
		rows:    slices.Clone(g.rows),
		columns: columnsFromRuns(filterExtremal(runsFromColumns(g.columns), false)),
	}
}

// FilterBiggestColumns returns a new Grid without the biggest columns.
func (g *Grid) FilterBiggestColumns() *Grid {
	return &Grid{
		rows:    slices.Clone(g.rows),
		columns: columnsFromRuns(filterExtremal(runsFromColumns(g.columns), true)),
	}
}

// Equal reports whether two grids hold the same rows and columns.
func (g *Grid) Equal(other *Grid) bool {
	return slices.Equal(g.rows, other.rows) && slices.Equal(g.columns, other.columns)
}

// extremalSize returns the minimal or maximal run length.
func extremalSize(runs []run, biggest bool) (int, bool) {
	if len(runs) == 0 {
		return 0, false
	}

	size := runs[0].length
	for _, r := range runs[1:] {
		if biggest && r.length > size || !biggest && r.length < size {
			size = r.length
		}
	}
	return size, true
}

// filterExtremal removes the runs whose length equals the extremal
// (minimal or maximal) length and whose kind matches the first such run's
// kind. Each removed run's span is folded into the larger of its remaining
// neighbors (ties favor the preceding one; a boundary run has only one
// choice), so contiguity is preserved. Kinds are never rewritten and
// surviving runs are not coalesced.
//
// A single-run axis is returned unchanged, as is an axis where every run
// would be removed; the operation never empties a collection.
func filterExtremal(runs []run, biggest bool) []run {
	out := slices.Clone(runs)
	if len(out) < 2 {
		return out
	}

	size, _ := extremalSize(out, biggest)
	kind := model.LineKind(-1)
	for _, r := range out {
		if r.length == size {
			kind = r.kind
			break
		}
	}

	marked := make([]bool, len(out))
	remaining := 0
	for i, r := range out {
		if r.length == size && r.kind == kind {
			marked[i] = true
		} else {
			remaining++
		}
	}
	if remaining == 0 {
		return out
	}

	for i := 0; i < len(out); {
		if !marked[i] {
			i++
			continue
		}

		var into int
		switch {
		case i == 0:
			into = i + 1
		case i == len(out)-1:
			into = i - 1
		case out[i+1].length > out[i-1].length:
			into = i + 1
		default:
			into = i - 1
		}

		if into < i {
			out[into].length += out[i].length
		} else {
			out[into].start = out[i].start
			out[into].length += out[i].length
		}

		out = append(out[:i], out[i+1:]...)
		marked = append(marked[:i], marked[i+1:]...)
	}

	return out
}
