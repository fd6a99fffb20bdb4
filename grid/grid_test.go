package grid

import (
	"errors"
	"testing"

	"github.com/tsawler/gridscan/model"
)

// uniformField is an all-white synthetic image.
func uniformField(width, height int) model.PixelField {
	return model.FieldFunc{W: width, H: height, Fn: func(x, y int) uint8 {
		return 255
	}}
}

// ruledField draws full-width black horizontal lines on white paper.
// inkRows holds the y coordinates of the ink pixel rows.
func ruledField(width, height int, inkRows ...int) model.PixelField {
	ink := make(map[int]bool, len(inkRows))
	for _, y := range inkRows {
		ink[y] = true
	}
	return model.FieldFunc{W: width, H: height, Fn: func(x, y int) uint8 {
		if ink[y] {
			return 0
		}
		return 255
	}}
}

// assertContiguous checks the contiguity invariant on both axes.
func assertContiguous(t *testing.T, g *Grid, width, height int) {
	t.Helper()

	pos := 0
	for r := range g.Rows() {
		if r.Y != pos {
			t.Errorf("Row at y=%d, expected y=%d", r.Y, pos)
		}
		if r.Height <= 0 {
			t.Errorf("Row at y=%d has non-positive height %d", r.Y, r.Height)
		}
		pos += r.Height
	}
	if pos != height {
		t.Errorf("Rows span [0, %d), expected [0, %d)", pos, height)
	}

	pos = 0
	for c := range g.Columns() {
		if c.X != pos {
			t.Errorf("Column at x=%d, expected x=%d", c.X, pos)
		}
		if c.Width <= 0 {
			t.Errorf("Column at x=%d has non-positive width %d", c.X, c.Width)
		}
		pos += c.Width
	}
	if pos != width {
		t.Errorf("Columns span [0, %d), expected [0, %d)", pos, width)
	}
}

func TestFromImageUniformBackground(t *testing.T) {
	g, err := FromImage(uniformField(100, 100), DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if g.RowCount() != 1 {
		t.Fatalf("Expected exactly 1 row, got %d", g.RowCount())
	}
	if g.ColumnCount() != 1 {
		t.Fatalf("Expected exactly 1 column, got %d", g.ColumnCount())
	}

	row, _ := g.Row(0)
	if row.Kind != model.Empty || row.Y != 0 || row.Height != 100 {
		t.Errorf("Unexpected row: %+v", row)
	}
	col, _ := g.Column(0)
	if col.Kind != model.Empty || col.X != 0 || col.Width != 100 {
		t.Errorf("Unexpected column: %+v", col)
	}
}

func TestFromImageEvenlySpacedLines(t *testing.T) {
	// Five 2-pixel rule lines with even 15-pixel gaps across 100 pixels.
	field := ruledField(100, 100,
		15, 16, 32, 33, 49, 50, 66, 67, 83, 84)

	g, err := FromImage(field, DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	assertContiguous(t, g, 100, 100)

	if g.RowCount() != 11 {
		t.Fatalf("Expected 11 alternating rows, got %d", g.RowCount())
	}
	if got := g.CountRowsByKind(model.Full); got != 5 {
		t.Errorf("Expected 5 Full rows, got %d", got)
	}

	for i := 0; i < g.RowCount(); i++ {
		row, _ := g.Row(i)
		wantFull := i%2 == 1
		if wantFull != (row.Kind == model.Full) {
			t.Errorf("Row %d: expected alternation to make kind Full=%v, got %v", i, wantFull, row.Kind)
		}
		if row.Kind == model.Full && row.Height != 2 {
			t.Errorf("Row %d: expected Full row of height 2, got %d", i, row.Height)
		}
	}

	// No vertical rule lines: the columns collapse to one Empty column.
	if g.ColumnCount() != 1 {
		t.Errorf("Expected 1 column, got %d", g.ColumnCount())
	}
	if got := g.CountColumnsByKind(model.Empty); got != 1 {
		t.Errorf("Expected 1 Empty column, got %d", got)
	}
}

func TestFromImageParallelDeterminism(t *testing.T) {
	fields := []model.PixelField{
		uniformField(100, 100),
		ruledField(100, 100, 15, 16, 32, 33, 49, 50, 66, 67, 83, 84),
		model.FieldFunc{W: 97, H: 53, Fn: func(x, y int) uint8 {
			return uint8((x*29 + y*41) % 256)
		}},
	}

	for i, field := range fields {
		seqCfg := DefaultConfig()
		seqCfg.EnableParallel = false
		parCfg := DefaultConfig()
		parCfg.EnableParallel = true

		seq, err := FromImage(field, seqCfg)
		if err != nil {
			t.Fatalf("Field %d: sequential extraction failed: %v", i, err)
		}
		par, err := FromImage(field, parCfg)
		if err != nil {
			t.Fatalf("Field %d: parallel extraction failed: %v", i, err)
		}

		if !seq.Equal(par) {
			t.Errorf("Field %d: parallel grid differs from sequential", i)
		}
	}
}

func TestFromImageNoiseSuppression(t *testing.T) {
	// Two 3-pixel rule lines and a single-pixel noise line. The noise
	// line is absorbed; the rule lines survive.
	field := ruledField(20, 47, 10, 11, 12, 24, 34, 35, 36)

	g, err := FromImage(field, NewConfig(12, 0.8, false))
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	assertContiguous(t, g, 20, 47)
	if got := g.CountRowsByKind(model.Full); got != 2 {
		t.Errorf("Expected noise row to be absorbed, leaving 2 Full rows, got %d", got)
	}
	if g.RowCount() != 5 {
		t.Errorf("Expected 5 rows after suppression, got %d", g.RowCount())
	}
}

func TestFromImageMonotonicSuppression(t *testing.T) {
	field := ruledField(20, 47, 10, 11, 12, 24, 34, 35, 36)

	prev := -1
	for _, ratio := range []float64{0.1, 0.5, 1.0} {
		g, err := FromImage(field, NewConfig(12, ratio, false))
		if err != nil {
			t.Fatalf("Ratio %v: FromImage failed: %v", ratio, err)
		}

		total := g.RowCount() + g.ColumnCount()
		if prev >= 0 && total > prev {
			t.Errorf("Ratio %v: %d lines, more than %d at the lower ratio", ratio, total, prev)
		}
		prev = total
	}
}

func TestFromImageInvalidConfig(t *testing.T) {
	cases := []Config{
		{ThresholdBlockSize: 0, MergeThresholdRatio: 0.8},
		{ThresholdBlockSize: 12, MergeThresholdRatio: 0},
		{ThresholdBlockSize: 12, MergeThresholdRatio: -0.5},
		{ThresholdBlockSize: 12, MergeThresholdRatio: 1.5},
	}

	for i, cfg := range cases {
		if _, err := FromImage(uniformField(10, 10), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestFromImageRatioOneIsValid(t *testing.T) {
	cfg := Config{ThresholdBlockSize: 12, MergeThresholdRatio: 1.0}
	if _, err := FromImage(uniformField(10, 10), cfg); err != nil {
		t.Errorf("Expected ratio 1.0 to be accepted, got %v", err)
	}
}

func TestFromImageEmptyImage(t *testing.T) {
	if _, err := FromImage(uniformField(0, 100), DefaultConfig()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for zero width, got %v", err)
	}
	if _, err := FromImage(uniformField(100, 0), DefaultConfig()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for zero height, got %v", err)
	}
}

func TestNewConfigClampsBlockSize(t *testing.T) {
	cfg := NewConfig(1, 0.8, true)
	if cfg.ThresholdBlockSize != 3 {
		t.Errorf("Expected block size clamped to 3, got %d", cfg.ThresholdBlockSize)
	}

	cfg = NewConfig(20, 0.8, true)
	if cfg.ThresholdBlockSize != 20 {
		t.Errorf("Expected block size 20 untouched, got %d", cfg.ThresholdBlockSize)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ThresholdBlockSize != 12 {
		t.Errorf("Expected default block size 12, got %d", cfg.ThresholdBlockSize)
	}
	if cfg.MergeThresholdRatio != 0.8 {
		t.Errorf("Expected default merge ratio 0.8, got %v", cfg.MergeThresholdRatio)
	}
	if !cfg.EnableParallel {
		t.Error("Expected parallel execution enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate: %v", err)
	}
}

func TestRowsIteratorIsRestartable(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 5, Kind: model.Empty},
		{Y: 5, Height: 2, Kind: model.Full},
		{Y: 7, Height: 5, Kind: model.Empty},
	}, nil)

	first := 0
	for range g.Rows() {
		first++
	}
	second := 0
	for range g.Rows() {
		second++
	}

	if first != 3 || second != 3 {
		t.Errorf("Expected both passes to yield 3 rows, got %d and %d", first, second)
	}
}

func TestFilteredRows(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 5, Kind: model.Empty},
		{Y: 5, Height: 2, Kind: model.Full},
		{Y: 7, Height: 5, Kind: model.Empty},
		{Y: 12, Height: 2, Kind: model.Full},
	}, nil)

	var full []model.Row
	for r := range g.FilteredRows(func(r model.Row) bool { return r.Kind == model.Full }) {
		full = append(full, r)
	}

	if len(full) != 2 {
		t.Fatalf("Expected 2 Full rows, got %d", len(full))
	}
	if full[0].Y != 5 || full[1].Y != 12 {
		t.Errorf("Unexpected filtered rows: %+v", full)
	}
}

func TestFilteredRowsEarlyStop(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 5, Kind: model.Empty},
		{Y: 5, Height: 2, Kind: model.Full},
		{Y: 7, Height: 5, Kind: model.Empty},
	}, nil)

	seen := 0
	for range g.FilteredRows(func(model.Row) bool { return true }) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("Expected early termination after 1 row, saw %d", seen)
	}
}

func TestCountByKind(t *testing.T) {
	g := New(
		[]model.Row{
			{Y: 0, Height: 5, Kind: model.Empty},
			{Y: 5, Height: 2, Kind: model.Full},
			{Y: 7, Height: 5, Kind: model.Empty},
		},
		[]model.Column{
			{X: 0, Width: 10, Kind: model.Empty},
			{X: 10, Width: 2, Kind: model.Full},
		},
	)

	if got := g.CountRowsByKind(model.Empty); got != 2 {
		t.Errorf("Expected 2 Empty rows, got %d", got)
	}
	if got := g.CountRowsByKind(model.Full); got != 1 {
		t.Errorf("Expected 1 Full row, got %d", got)
	}
	if got := g.CountColumnsByKind(model.Full); got != 1 {
		t.Errorf("Expected 1 Full column, got %d", got)
	}
}

func TestFindRowAndColumn(t *testing.T) {
	g := New(
		[]model.Row{
			{Y: 0, Height: 5, Kind: model.Empty},
			{Y: 5, Height: 2, Kind: model.Full},
		},
		[]model.Column{
			{X: 0, Width: 10, Kind: model.Empty},
		},
	)

	if row, ok := g.FindRow(5); !ok || row.Kind != model.Full {
		t.Errorf("Expected Full row at y=5, got %+v (ok=%v)", row, ok)
	}
	if _, ok := g.FindRow(3); ok {
		t.Error("Expected no row starting at y=3")
	}
	if col, ok := g.FindColumn(0); !ok || col.Width != 10 {
		t.Errorf("Expected column at x=0, got %+v (ok=%v)", col, ok)
	}
	if _, ok := g.FindColumn(99); ok {
		t.Error("Expected no column starting at x=99")
	}
}

func TestFindCellsGeometry(t *testing.T) {
	rows := []model.Row{
		{Y: 0, Height: 5, Kind: model.Empty},
		{Y: 5, Height: 2, Kind: model.Full},
		{Y: 7, Height: 8, Kind: model.Empty},
	}
	cols := []model.Column{
		{X: 0, Width: 10, Kind: model.Empty},
		{X: 10, Width: 3, Kind: model.Full},
	}
	g := New(rows, cols)

	for ri, row := range rows {
		for ci, col := range cols {
			cells, err := g.FindCells([]int{ri}, []int{ci})
			if err != nil {
				t.Fatalf("FindCells(%d, %d) failed: %v", ri, ci, err)
			}
			if len(cells) != 1 {
				t.Fatalf("Expected 1 cell, got %d", len(cells))
			}

			rect := cells[0].Rect()
			if rect.X != col.X || rect.Y != row.Y {
				t.Errorf("Cell (%d, %d): expected origin (%d, %d), got (%d, %d)",
					ri, ci, col.X, row.Y, rect.X, rect.Y)
			}
			if rect.Width != col.Width || rect.Height != row.Height {
				t.Errorf("Cell (%d, %d): expected size %dx%d, got %dx%d",
					ri, ci, col.Width, row.Height, rect.Width, rect.Height)
			}
		}
	}
}

func TestFindCellsRowMajorOrder(t *testing.T) {
	g := New(
		[]model.Row{
			{Y: 0, Height: 5, Kind: model.Empty},
			{Y: 5, Height: 5, Kind: model.Empty},
		},
		[]model.Column{
			{X: 0, Width: 4, Kind: model.Empty},
			{X: 4, Width: 6, Kind: model.Empty},
		},
	)

	cells, err := g.FindCells([]int{0, 1}, []int{0, 1})
	if err != nil {
		t.Fatalf("FindCells failed: %v", err)
	}
	if len(cells) != 4 {
		t.Fatalf("Expected 4 cells, got %d", len(cells))
	}

	wantOrigins := [][2]int{{0, 0}, {4, 0}, {0, 5}, {4, 5}}
	for i, cell := range cells {
		rect := cell.Rect()
		if rect.X != wantOrigins[i][0] || rect.Y != wantOrigins[i][1] {
			t.Errorf("Cell %d: expected origin %v, got (%d, %d)", i, wantOrigins[i], rect.X, rect.Y)
		}
	}
}

func TestFindCellsOutOfRange(t *testing.T) {
	g := New(
		[]model.Row{{Y: 0, Height: 10, Kind: model.Empty}},
		[]model.Column{{X: 0, Width: 10, Kind: model.Empty}},
	)

	// An index equal to the collection length is out of range.
	if _, err := g.FindCells([]int{1}, []int{0}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for row index 1, got %v", err)
	}
	if _, err := g.FindCells([]int{0}, []int{1}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for column index 1, got %v", err)
	}
	if _, err := g.FindCells([]int{-1}, []int{0}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for negative index, got %v", err)
	}

	// The failed call leaves the grid fully usable.
	cells, err := g.FindCells([]int{0}, []int{0})
	if err != nil || len(cells) != 1 {
		t.Errorf("Expected grid to remain valid after failed call, got %v, %d cells", err, len(cells))
	}
}

func TestFilterSmallestRows(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 5, Kind: model.Full},
		{Y: 5, Height: 10, Kind: model.Full},
		{Y: 15, Height: 15, Kind: model.Full},
	}, nil)

	filtered := g.FilterSmallestRows()

	if filtered.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", filtered.RowCount())
	}
	for r := range filtered.Rows() {
		if r.Height <= 5 {
			t.Errorf("Expected all remaining rows taller than 5, got %+v", r)
		}
	}
	assertContiguousRows(t, filtered, 30)

	// The original grid is untouched.
	if g.RowCount() != 3 {
		t.Errorf("Expected original grid unchanged, got %d rows", g.RowCount())
	}
}

func TestFilterBiggestRows(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 5, Kind: model.Full},
		{Y: 5, Height: 10, Kind: model.Full},
		{Y: 15, Height: 15, Kind: model.Full},
	}, nil)

	filtered := g.FilterBiggestRows()

	// The removed span folds into the preceding neighbor, which grows.
	want := []model.Row{
		{Y: 0, Height: 5, Kind: model.Full},
		{Y: 5, Height: 25, Kind: model.Full},
	}
	if filtered.RowCount() != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), filtered.RowCount())
	}
	for i, w := range want {
		if r, _ := filtered.Row(i); r != w {
			t.Errorf("Row %d: expected %+v, got %+v", i, w, r)
		}
	}
	assertContiguousRows(t, filtered, 30)
}

func TestFilterSmallestRowsTieFavorsPreceding(t *testing.T) {
	g := New([]model.Row{
		{Y: 0, Height: 10, Kind: model.Full},
		{Y: 10, Height: 2, Kind: model.Empty},
		{Y: 12, Height: 10, Kind: model.Full},
	}, nil)

	filtered := g.FilterSmallestRows()

	if filtered.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", filtered.RowCount())
	}
	first, _ := filtered.Row(0)
	second, _ := filtered.Row(1)
	if first.Y != 0 || first.Height != 12 {
		t.Errorf("Expected preceding neighbor to absorb the span, got %+v", first)
	}
	if second.Y != 12 || second.Height != 10 {
		t.Errorf("Expected following row unchanged, got %+v", second)
	}
}

func TestFilterSmallestRowsSingleRowIsNoop(t *testing.T) {
	g := New([]model.Row{{Y: 0, Height: 40, Kind: model.Empty}},
		[]model.Column{{X: 0, Width: 40, Kind: model.Empty}})

	filtered := g.FilterSmallestRows()

	if filtered.RowCount() != 1 {
		t.Fatalf("Expected single-row grid to stay single-row, got %d", filtered.RowCount())
	}
	if !filtered.Equal(g) {
		t.Error("Expected filtering a single-row grid to be a no-op")
	}
}

func TestFilterSmallestRowsRestrictedToExtremalKind(t *testing.T) {
	// The smallest row is Full (height 2); the Empty row of height 4 is
	// not in the extremal kind class and must survive.
	g := New([]model.Row{
		{Y: 0, Height: 10, Kind: model.Empty},
		{Y: 10, Height: 2, Kind: model.Full},
		{Y: 12, Height: 4, Kind: model.Empty},
		{Y: 16, Height: 2, Kind: model.Full},
		{Y: 18, Height: 10, Kind: model.Empty},
	}, nil)

	filtered := g.FilterSmallestRows()

	if got := filtered.CountRowsByKind(model.Full); got != 0 {
		t.Errorf("Expected both smallest Full rows removed, got %d", got)
	}
	if got := filtered.CountRowsByKind(model.Empty); got != 3 {
		t.Errorf("Expected all 3 Empty rows kept, got %d", got)
	}
	assertContiguousRows(t, filtered, 28)
}

func TestFilterSmallestColumns(t *testing.T) {
	g := New(nil, []model.Column{
		{X: 0, Width: 5, Kind: model.Full},
		{X: 5, Width: 10, Kind: model.Full},
		{X: 15, Width: 15, Kind: model.Full},
	})

	filtered := g.FilterSmallestColumns()

	if filtered.ColumnCount() != 2 {
		t.Fatalf("Expected 2 columns, got %d", filtered.ColumnCount())
	}
	for c := range filtered.Columns() {
		if c.Width <= 5 {
			t.Errorf("Expected all remaining columns wider than 5, got %+v", c)
		}
	}
}

func TestFilterBiggestColumns(t *testing.T) {
	g := New(nil, []model.Column{
		{X: 0, Width: 5, Kind: model.Full},
		{X: 5, Width: 10, Kind: model.Full},
		{X: 15, Width: 15, Kind: model.Full},
	})

	filtered := g.FilterBiggestColumns()

	want := []model.Column{
		{X: 0, Width: 5, Kind: model.Full},
		{X: 5, Width: 25, Kind: model.Full},
	}
	if filtered.ColumnCount() != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), filtered.ColumnCount())
	}
	for i, w := range want {
		if c, _ := filtered.Column(i); c != w {
			t.Errorf("Column %d: expected %+v, got %+v", i, w, c)
		}
	}
}

func TestExtremalSizes(t *testing.T) {
	g := New(
		[]model.Row{
			{Y: 0, Height: 5, Kind: model.Empty},
			{Y: 5, Height: 2, Kind: model.Full},
			{Y: 7, Height: 8, Kind: model.Empty},
		},
		[]model.Column{
			{X: 0, Width: 12, Kind: model.Empty},
			{X: 12, Width: 3, Kind: model.Full},
		},
	)

	if h, ok := g.SmallestRowHeight(); !ok || h != 2 {
		t.Errorf("Expected smallest row height 2, got %d (ok=%v)", h, ok)
	}
	if h, ok := g.BiggestRowHeight(); !ok || h != 8 {
		t.Errorf("Expected biggest row height 8, got %d (ok=%v)", h, ok)
	}
	if w, ok := g.SmallestColumnWidth(); !ok || w != 3 {
		t.Errorf("Expected smallest column width 3, got %d (ok=%v)", w, ok)
	}
	if w, ok := g.BiggestColumnWidth(); !ok || w != 12 {
		t.Errorf("Expected biggest column width 12, got %d (ok=%v)", w, ok)
	}

	empty := New(nil, nil)
	if _, ok := empty.SmallestRowHeight(); ok {
		t.Error("Expected no smallest row height for empty grid")
	}
}

// assertContiguousRows checks row contiguity over [0, span).
func assertContiguousRows(t *testing.T, g *Grid, span int) {
	t.Helper()
	pos := 0
	for r := range g.Rows() {
		if r.Y != pos {
			t.Errorf("Row at y=%d, expected y=%d", r.Y, pos)
		}
		pos += r.Height
	}
	if pos != span {
		t.Errorf("Rows span [0, %d), expected [0, %d)", pos, span)
	}
}

func BenchmarkFromImage(b *testing.B) {
	field := ruledField(800, 600,
		40, 41, 120, 121, 200, 201, 280, 281, 360, 361, 440, 441, 520, 521)

	cfg := DefaultConfig()
	cfg.EnableParallel = false

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FromImage(field, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFromImageParallel(b *testing.B) {
	field := ruledField(800, 600,
		40, 41, 120, 121, 200, 201, 280, 281, 360, 361, 440, 441, 520, 521)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FromImage(field, DefaultConfig()); err != nil {
			b.Fatal(err)
		}
	}
}
