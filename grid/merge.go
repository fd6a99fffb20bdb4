package grid

import "github.com/tsawler/gridscan/model"

// run is a maximal contiguous span of equally classified pixel lines on
// one axis. Runs are the axis-agnostic currency of merging; they become
// Rows or Columns only at the end of the pipeline.
type run struct {
	start  int
	length int
	kind   model.LineKind
}

// encodeRuns collapses a per-pixel-line classification sequence into runs,
// preserving position order. The runs are contiguous: each starts where
// the previous one ended.
func encodeRuns(kinds []model.LineKind) []run {
	if len(kinds) == 0 {
		return nil
	}

	runs := []run{{start: 0, length: 1, kind: kinds[0]}}
	for i := 1; i < len(kinds); i++ {
		last := &runs[len(runs)-1]
		if kinds[i] == last.kind {
			last.length++
			continue
		}
		runs = append(runs, run{start: i, length: 1, kind: kinds[i]})
	}
	return runs
}

// mergeRuns suppresses noise-induced runs. A run qualifies for absorption
// when its length falls below ratio × the mean length of runs of its kind.
// Qualifying runs are absorbed smallest-first (ties: earliest position)
// into the larger of their neighbors (ties favor the preceding one); the
// neighbor keeps its kind and extends over the absorbed span, and adjacent
// same-kind runs coalesce. The loop repeats until no run qualifies or a
// single run remains.
//
// The per-kind thresholds are computed once, from the pre-merge runs:
// recomputing them as runs grow would make the fixed point depend on
// absorption order, and would break monotonicity in the ratio.
func mergeRuns(runs []run, ratio float64) []run {
	if len(runs) < 2 {
		return runs
	}

	thresholds := kindThresholds(runs, ratio)

	for len(runs) > 1 {
		idx := -1
		for i, r := range runs {
			if float64(r.length) >= thresholds[r.kind] {
				continue
			}
			if idx == -1 || r.length < runs[idx].length {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		runs = coalesce(absorb(runs, idx))
	}
	return runs
}

// kindThresholds returns the absorption threshold for each kind:
// ratio × the mean run length of that kind. A kind with no runs gets
// threshold zero, which nothing can fall below.
func kindThresholds(runs []run, ratio float64) map[model.LineKind]float64 {
	totals := make(map[model.LineKind]int)
	counts := make(map[model.LineKind]int)
	for _, r := range runs {
		totals[r.kind] += r.length
		counts[r.kind]++
	}

	thresholds := make(map[model.LineKind]float64, len(totals))
	for kind, total := range totals {
		mean := float64(total) / float64(counts[kind])
		thresholds[kind] = ratio * mean
	}
	return thresholds
}

// absorb folds runs[idx] into one of its neighbors: the larger of the two
// when both exist (ties favor the preceding), otherwise the only one.
func absorb(runs []run, idx int) []run {
	var into int
	switch {
	case idx == 0:
		into = idx + 1
	case idx == len(runs)-1:
		into = idx - 1
	case runs[idx+1].length > runs[idx-1].length:
		into = idx + 1
	default:
		into = idx - 1
	}

	absorbed := runs[idx]
	if into < idx {
		runs[into].length += absorbed.length
	} else {
		runs[into].start = absorbed.start
		runs[into].length += absorbed.length
	}

	return append(runs[:idx], runs[idx+1:]...)
}

// coalesce merges adjacent runs of equal kind so the sequence stays a
// proper run-length encoding.
func coalesce(runs []run) []run {
	if len(runs) < 2 {
		return runs
	}

	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if r.kind == last.kind {
			last.length += r.length
			continue
		}
		out = append(out, r)
	}
	return out
}

// rowsFromRuns converts runs on the vertical axis into Rows.
func rowsFromRuns(runs []run) []model.Row {
	rows := make([]model.Row, len(runs))
	for i, r := range runs {
		rows[i] = model.Row{Y: r.start, Height: r.length, Kind: r.kind}
	}
	return rows
}

// columnsFromRuns converts runs on the horizontal axis into Columns.
func columnsFromRuns(runs []run) []model.Column {
	cols := make([]model.Column, len(runs))
	for i, r := range runs {
		cols[i] = model.Column{X: r.start, Width: r.length, Kind: r.kind}
	}
	return cols
}

// runsFromRows is the inverse of rowsFromRuns.
func runsFromRows(rows []model.Row) []run {
	runs := make([]run, len(rows))
	for i, r := range rows {
		runs[i] = run{start: r.Y, length: r.Height, kind: r.Kind}
	}
	return runs
}

// runsFromColumns is the inverse of columnsFromRuns.
func runsFromColumns(cols []model.Column) []run {
	runs := make([]run, len(cols))
	for i, c := range cols {
		runs[i] = run{start: c.X, length: c.Width, kind: c.Kind}
	}
	return runs
}
