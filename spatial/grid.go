package spatial

import (
	"fmt"
	"strings"
)

// planOffsets are the 4-connected (level, row, col) steps: N, E, S, W.
var planOffsets = [][3]int{{0, -1, 0}, {0, 0, 1}, {0, 1, 0}, {0, 0, -1}}

// volumeOffsets add the steps to the level below and above.
var volumeOffsets = [][3]int{{0, -1, 0}, {0, 0, 1}, {0, 1, 0}, {0, 0, -1}, {-1, 0, 0}, {1, 0, 0}}

// BuildPlan constructs a 4-connected Graph from a 2D plan of cell markers.
// Edge weights default to UnitWeight; node Z is 0 and cell volumes use opts.Height.
//
// Returns ErrEmptyGrid if rows has no rows or no columns, ErrNonRectangular if
// any row length differs, and ErrBadCellSize for non-positive cell dimensions.
// Complexity: O(R×C) time and memory.
func BuildPlan(rows [][]string, opts GridOptions) (*Graph, error) {
	if opts.Height <= 0 {
		return nil, ErrBadCellSize
	}
	if opts.Weight == nil {
		opts.Weight = UnitWeight
	}
	lv := Level{Bottom: 0, Top: opts.Height, Rows: rows}

	return build([]Level{lv}, opts, 2, planOffsets)
}

// BuildVolume constructs a 6-connected Graph from a stack of levels.
// Edge weights default to EuclideanWeight; node Z is the level mid-height and
// cell volumes use the level height.
//
// Returns ErrEmptyGrid, ErrNonRectangular, ErrLevelMismatch, ErrBadLevel or
// ErrBadCellSize for malformed input.
// Complexity: O(L×R×C) time and memory.
func BuildVolume(levels []Level, opts GridOptions) (*Graph, error) {
	if opts.Weight == nil {
		opts.Weight = EuclideanWeight
	}

	return build(levels, opts, 3, volumeOffsets)
}

// grid is the validated shape shared by both builders.
type grid struct {
	levels     []Level
	rows, cols int
}

// inBounds reports whether (l, r, c) lies within the grid.
func (gr grid) inBounds(l, r, c int) bool {
	return l >= 0 && l < len(gr.levels) && r >= 0 && r < gr.rows && c >= 0 && c < gr.cols
}

func validate(levels []Level, opts GridOptions) (grid, error) {
	if opts.CellWidth <= 0 || opts.CellDepth <= 0 {
		return grid{}, ErrBadCellSize
	}
	if len(levels) == 0 || len(levels[0].Rows) == 0 || len(levels[0].Rows[0]) == 0 {
		return grid{}, ErrEmptyGrid
	}
	gr := grid{levels: levels, rows: len(levels[0].Rows), cols: len(levels[0].Rows[0])}
	for l, lv := range levels {
		if lv.Top <= lv.Bottom {
			return grid{}, fmt.Errorf("%w: level %d spans %g..%g", ErrBadLevel, l, lv.Bottom, lv.Top)
		}
		if len(lv.Rows) != gr.rows {
			return grid{}, fmt.Errorf("%w: level %d has %d rows, want %d", ErrLevelMismatch, l, len(lv.Rows), gr.rows)
		}
		for r, row := range lv.Rows {
			if len(row) != gr.cols {
				return grid{}, fmt.Errorf("%w: level %d row %d has %d cells, want %d",
					ErrNonRectangular, l, r, len(row), gr.cols)
			}
		}
	}

	return gr, nil
}

func build(levels []Level, opts GridOptions, dim int, offsets [][3]int) (*Graph, error) {
	gr, err := validate(levels, opts)
	if err != nil {
		return nil, err
	}
	g := NewGraph()

	// 1) One node per traversable cell, in level, row, column order.
	for l, lv := range gr.levels {
		height := lv.Top - lv.Bottom
		z := 0.0
		if dim == 3 {
			z = (lv.Bottom + lv.Top) / 2
		}
		for r, row := range lv.Rows {
			for c, marker := range row {
				region, ok := classify(marker, opts)
				if !ok {
					continue
				}
				g.addCell(Node{
					Pos: Point{
						X: (float64(c) + 0.5) * opts.CellWidth,
						Y: (float64(r) + 0.5) * opts.CellDepth,
						Z: z,
					},
					Cell:   CellRef{Level: l, Row: r, Col: c},
					Region: region,
					Volume: opts.CellWidth * opts.CellDepth * height,
					Dim:    dim,
				})
			}
		}
	}

	// 2) Edges between traversable neighbours, added once from the lower id.
	for id, n := range g.nodes {
		for _, d := range offsets {
			nl, nr, nc := n.Cell.Level+d[0], n.Cell.Row+d[1], n.Cell.Col+d[2]
			if !gr.inBounds(nl, nr, nc) {
				continue
			}
			nid, ok := g.cells[CellRef{Level: nl, Row: nr, Col: nc}]
			if !ok || nid < id {
				continue
			}
			if err = g.AddEdge(id, nid, opts.Weight(n, g.nodes[nid])); err != nil {
				return nil, fmt.Errorf("spatial: edge %s-%s: %w", n.Cell, g.nodes[nid].Cell, err)
			}
		}
	}

	// 3) Region rates, zones and zone memberships.
	for _, z := range opts.Zones {
		if err = g.AddZone(z); err != nil {
			return nil, err
		}
	}
	for id, r := range g.regions {
		r.ChangeRate = opts.ChangeRates[id]
		r.Zone = opts.RegionZones[id]
	}

	return g, nil
}

// classify reports whether marker is traversable and, if so, its region id.
func classify(marker string, opts GridOptions) (string, bool) {
	m := strings.TrimSpace(marker)
	switch {
	case m == "":
		return "", false
	case m == opts.Block:
		return "", false
	case m == opts.Void:
		return "", true
	default:
		return m, true
	}
}

// SplitRows turns rows of single-character markers into the [][]string form
// the builders expect, e.g. "AA#.B" becomes ["A","A","#",".","B"].
func SplitRows(lines ...string) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		row := make([]string, len(runes))
		for j, ch := range runes {
			row[j] = string(ch)
		}
		out[i] = row
	}

	return out
}
