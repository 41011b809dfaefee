package topology

import "fmt"

// LabelGrid holds one label per mask cell. 0 is background; 1..Count are
// 8-connected regions numbered in the order their first raw label was issued
// during a row-major scan.
type LabelGrid struct {
	Rows   int
	Cols   int
	Labels []int
	Count  int
}

// At returns the label at (row, col), or 0 outside the grid.
func (g *LabelGrid) At(row, col int) int {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0
	}
	return g.Labels[row*g.Cols+col]
}

// Max returns the largest label in the grid, which equals Count.
func (g *LabelGrid) Max() int {
	m := 0
	for _, l := range g.Labels {
		if l > m {
			m = l
		}
	}
	return m
}

// Rows2D returns the labels as a fresh slice of rows.
func (g *LabelGrid) Rows2D() [][]int {
	out := make([][]int, g.Rows)
	for r := range out {
		out[r] = make([]int, g.Cols)
		copy(out[r], g.Labels[r*g.Cols:(r+1)*g.Cols])
	}
	return out
}

// equivalences is a union-find over raw labels 1..n. Index 0 is unused.
type equivalences struct {
	parent []int
}

func (e *equivalences) issue() int {
	if len(e.parent) == 0 {
		e.parent = append(e.parent, 0)
	}
	l := len(e.parent)
	e.parent = append(e.parent, l)
	return l
}

func (e *equivalences) find(l int) int {
	for e.parent[l] != l {
		e.parent[l] = e.parent[e.parent[l]]
		l = e.parent[l]
	}
	return l
}

// union merges the classes of a and b. The smaller root wins so a class is
// always represented by its earliest-issued label.
func (e *equivalences) union(a, b int) {
	ra, rb := e.find(a), e.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		e.parent[rb] = ra
	} else {
		e.parent[ra] = rb
	}
}

func (e *equivalences) issued() int {
	if len(e.parent) == 0 {
		return 0
	}
	return len(e.parent) - 1
}

// causalOffsets are the neighbors already visited by a row-major scan:
// north, west, north-west, north-east.
var causalOffsets = [4][2]int{{-1, 0}, {0, -1}, {-1, -1}, {-1, 1}}

// Label assigns 8-connected component labels to the foreground of m.
//
// A single raster pass gives each foreground cell the smallest raw label among
// its causal neighbors (or a new one) and records the neighbors' labels as
// equivalent. The classes are then compacted to 1..N in issuance order and the
// grid is rewritten in a second pass.
func Label(m *Mask) (*LabelGrid, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	grid := &LabelGrid{Rows: m.Rows, Cols: m.Cols, Labels: make([]int, len(m.Pix))}
	var eq equivalences

	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if !m.Pix[i*m.Cols+j] {
				continue
			}

			var seen [4]int
			n := 0
			for _, o := range causalOffsets {
				if l := grid.At(i+o[0], j+o[1]); l != 0 {
					seen[n] = l
					n++
				}
			}

			if n == 0 {
				grid.Labels[i*m.Cols+j] = eq.issue()
				continue
			}

			lbMin := seen[0]
			for _, l := range seen[1:n] {
				if l < lbMin {
					lbMin = l
				}
			}
			grid.Labels[i*m.Cols+j] = lbMin
			for _, l := range seen[:n] {
				eq.union(lbMin, l)
			}
		}
	}

	// Compact: walk raw labels in issuance order, numbering each class the first
	// time one of its members shows up.
	raw := eq.issued()
	final := make([]int, raw+1)
	next := 0
	for l := 1; l <= raw; l++ {
		root := eq.find(l)
		if final[root] == 0 {
			next++
			final[root] = next
		}
		final[l] = final[root]
	}
	for i, l := range grid.Labels {
		if l != 0 {
			grid.Labels[i] = final[l]
		}
	}
	grid.Count = next

	diagf("label: %dx%d mask, %d raw labels, %d regions", m.Rows, m.Cols, raw, next)
	return grid, nil
}

// Components returns the number of 8-connected foreground regions of m.
func Components(m *Mask) (int, error) {
	g, err := Label(m)
	if err != nil {
		return 0, fmt.Errorf("failed to label mask: %w", err)
	}
	return g.Count, nil
}
