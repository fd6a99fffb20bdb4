package grid

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tsawler/gridscan/model"
)

// DefaultSizeTolerance is the relative band used by the size-based
// selectors: lines within ±10% of the extremal size are selected together.
const DefaultSizeTolerance = 0.1

// Subset is a selection of a grid's rows and columns. Unlike the Filter
// operations it is a plain view: it does not repair contiguity, so it is
// suited to picking out lines for inspection or drawing rather than for
// further grid math.
type Subset struct {
	rows    []model.Row
	columns []model.Column
}

// Select builds a Subset from row and column indices. Indices are
// validated against the grid; duplicates are preserved in order.
func (g *Grid) Select(rowIndices, colIndices []int) (*Subset, error) {
	rows := make([]model.Row, 0, len(rowIndices))
	for _, ri := range rowIndices {
		if ri < 0 || ri >= len(g.rows) {
			return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, ri, len(g.rows))
		}
		rows = append(rows, g.rows[ri])
	}

	cols := make([]model.Column, 0, len(colIndices))
	for _, ci := range colIndices {
		if ci < 0 || ci >= len(g.columns) {
			return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, ci, len(g.columns))
		}
		cols = append(cols, g.columns[ci])
	}

	return &Subset{rows: rows, columns: cols}, nil
}

// SelectSmallestRows selects the rows whose height lies within
// DefaultSizeTolerance of the smallest row height, along with all columns.
func (g *Grid) SelectSmallestRows() *Subset {
	size, _ := g.SmallestRowHeight()
	return &Subset{
		rows:    rowsWithinTolerance(g.rows, size),
		columns: slices.Clone(g.columns),
	}
}

// SelectBiggestRows selects the rows whose height lies within
// DefaultSizeTolerance of the biggest row height, along with all columns.
func (g *Grid) SelectBiggestRows() *Subset {
	size, _ := g.BiggestRowHeight()
	return &Subset{
		rows:    rowsWithinTolerance(g.rows, size),
		columns: slices.Clone(g.columns),
	}
}

// SelectSmallestColumns selects the columns whose width lies within
// DefaultSizeTolerance of the smallest column width, along with all rows.
func (g *Grid) SelectSmallestColumns() *Subset {
	size, _ := g.SmallestColumnWidth()
	return &Subset{
		rows:    slices.Clone(g.rows),
		columns: columnsWithinTolerance(g.columns, size),
	}
}

// SelectBiggestColumns selects the columns whose width lies within
// DefaultSizeTolerance of the biggest column width, along with all rows.
func (g *Grid) SelectBiggestColumns() *Subset {
	size, _ := g.BiggestColumnWidth()
	return &Subset{
		rows:    slices.Clone(g.rows),
		columns: columnsWithinTolerance(g.columns, size),
	}
}

// Rows returns a lazy sequence over the subset's rows.
func (s *Subset) Rows() iter.Seq[model.Row] {
	return func(yield func(model.Row) bool) {
		for _, r := range s.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Columns returns a lazy sequence over the subset's columns.
func (s *Subset) Columns() iter.Seq[model.Column] {
	return func(yield func(model.Column) bool) {
		for _, c := range s.columns {
			if !yield(c) {
				return
			}
		}
	}
}

// RowCount returns the number of selected rows.
func (s *Subset) RowCount() int {
	return len(s.rows)
}

// ColumnCount returns the number of selected columns.
func (s *Subset) ColumnCount() int {
	return len(s.columns)
}

// Combine returns a new Subset holding this subset's lines followed by
// the other's.
func (s *Subset) Combine(other *Subset) *Subset {
	return &Subset{
		rows:    append(slices.Clone(s.rows), other.rows...),
		columns: append(slices.Clone(s.columns), other.columns...),
	}
}

// Exclude returns a new Subset without the lines that appear in other.
func (s *Subset) Exclude(other *Subset) *Subset {
	result := &Subset{}
	for _, r := range s.rows {
		if !slices.Contains(other.rows, r) {
			result.rows = append(result.rows, r)
		}
	}
	for _, c := range s.columns {
		if !slices.Contains(other.columns, c) {
			result.columns = append(result.columns, c)
		}
	}
	return result
}

// rowsWithinTolerance returns the rows whose height lies within the
// tolerance band around size.
func rowsWithinTolerance(rows []model.Row, size int) []model.Row {
	lo := float64(size) * (1 - DefaultSizeTolerance)
	hi := float64(size) * (1 + DefaultSizeTolerance)

	var selected []model.Row
	for _, r := range rows {
		if h := float64(r.Height); h >= lo && h <= hi {
			selected = append(selected, r)
		}
	}
	return selected
}

// columnsWithinTolerance returns the columns whose width lies within the
// tolerance band around size.
func columnsWithinTolerance(cols []model.Column, size int) []model.Column {
	lo := float64(size) * (1 - DefaultSizeTolerance)
	hi := float64(size) * (1 + DefaultSizeTolerance)

	var selected []model.Column
	for _, c := range cols {
		if w := float64(c.Width); w >= lo && w <= hi {
			selected = append(selected, c)
		}
	}
	return selected
}
