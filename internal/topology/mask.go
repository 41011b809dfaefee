package topology

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when two grids that must share a shape do not,
	// or when a row-slice input is ragged.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidParameter is returned for empty grids, non-positive window sizes and
	// out-of-range crop rectangles.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNonConvergence is returned when skeletonization exceeds its iteration cap.
	ErrNonConvergence = errors.New("skeletonization did not converge")
)

// Mask is a binary raster: Rows x Cols cells, true = foreground.
//
// Cells are stored row-major in Pix. Operations in this package never mutate a
// Mask passed to them; they return a fresh one.
type Mask struct {
	Rows int
	Cols int
	Pix  []bool
}

// Point is a (row, col) pixel coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewMask returns an all-background mask of the given size.
func NewMask(rows, cols int) (*Mask, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: mask must be at least 1x1, got %dx%d", ErrInvalidParameter, rows, cols)
	}
	return &Mask{Rows: rows, Cols: cols, Pix: make([]bool, rows*cols)}, nil
}

// FromRows builds a mask from a slice of equal-length rows.
func FromRows(rows [][]bool) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: mask must be at least 1x1", ErrInvalidParameter)
	}
	m, err := NewMask(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != m.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, r, len(row), m.Cols)
		}
		copy(m.Pix[r*m.Cols:], row)
	}
	return m, nil
}

// Parse builds a mask from text rows where '#' (or '1') is foreground and any
// other byte is background. It is mostly useful for tests and tool output.
func Parse(lines ...string) (*Mask, error) {
	rows := make([][]bool, len(lines))
	for i, line := range lines {
		rows[i] = make([]bool, len(line))
		for j := 0; j < len(line); j++ {
			rows[i][j] = line[j] == '#' || line[j] == '1'
		}
	}
	return FromRows(rows)
}

// MustParse is like Parse but panics on error.
func MustParse(lines ...string) *Mask {
	m, err := Parse(lines...)
	if err != nil {
		panic(err)
	}
	return m
}

// In reports whether (row, col) lies inside the mask.
func (m *Mask) In(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Cols
}

// At returns the cell at (row, col). Out-of-bounds coordinates read as false.
func (m *Mask) At(row, col int) bool {
	if !m.In(row, col) {
		return false
	}
	return m.Pix[row*m.Cols+col]
}

// Set writes the cell at (row, col). Out-of-bounds writes are ignored.
func (m *Mask) Set(row, col int, v bool) {
	if !m.In(row, col) {
		return
	}
	m.Pix[row*m.Cols+col] = v
}

// Copy returns a deep copy of the mask.
func (m *Mask) Copy() *Mask {
	pix := make([]bool, len(m.Pix))
	copy(pix, m.Pix)
	return &Mask{Rows: m.Rows, Cols: m.Cols, Pix: pix}
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have the same shape and cells. A nil mask
// equals only another nil mask.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Rows != o.Rows || m.Cols != o.Cols || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i, v := range m.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// Rows2D returns the mask as a fresh slice of rows.
func (m *Mask) Rows2D() [][]bool {
	out := make([][]bool, m.Rows)
	for r := range out {
		out[r] = make([]bool, m.Cols)
		copy(out[r], m.Pix[r*m.Cols:(r+1)*m.Cols])
	}
	return out
}

// Strings renders the mask as text rows using '#' for foreground and '.' for
// background, the inverse of Parse.
func (m *Mask) Strings() []string {
	out := make([]string, m.Rows)
	buf := make([]byte, m.Cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if m.Pix[r*m.Cols+c] {
				buf[c] = '#'
			} else {
				buf[c] = '.'
			}
		}
		out[r] = string(buf)
	}
	return out
}

// Points returns the foreground cells in row-major order.
func (m *Mask) Points() []Point {
	var pts []Point
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if m.Pix[r*m.Cols+c] {
				pts = append(pts, Point{Row: r, Col: c})
			}
		}
	}
	return pts
}

func (m *Mask) validate() error {
	if m == nil || m.Rows < 1 || m.Cols < 1 {
		return fmt.Errorf("%w: empty mask", ErrInvalidParameter)
	}
	if len(m.Pix) != m.Rows*m.Cols {
		return fmt.Errorf("%w: %d cells for %dx%d mask", ErrDimensionMismatch, len(m.Pix), m.Rows, m.Cols)
	}
	return nil
}

func sameShape(a, b *Mask) error {
	if err := a.validate(); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	return nil
}

// Complement returns a mask with every cell flipped.
func Complement(m *Mask) (*Mask, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	out := m.Copy()
	for i, v := range out.Pix {
		out.Pix[i] = !v
	}
	return out, nil
}

// Union returns the cell-wise logical OR of two same-shaped masks.
func Union(a, b *Mask) (*Mask, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := a.Copy()
	for i, v := range b.Pix {
		out.Pix[i] = out.Pix[i] || v
	}
	return out, nil
}

// Subtract returns the cells of a that are not set in b.
func Subtract(a, b *Mask) (*Mask, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := a.Copy()
	for i, v := range b.Pix {
		if v {
			out.Pix[i] = false
		}
	}
	return out, nil
}

// Crop returns the sub-mask between the inclusive corners (minRow, minCol) and
// (maxRow, maxCol).
func Crop(m *Mask, minRow, minCol, maxRow, maxCol int) (*Mask, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if !m.In(minRow, minCol) || !m.In(maxRow, maxCol) || minRow > maxRow || minCol > maxCol {
		return nil, fmt.Errorf("%w: crop (%d,%d)-(%d,%d) outside %dx%d mask",
			ErrInvalidParameter, minRow, minCol, maxRow, maxCol, m.Rows, m.Cols)
	}
	out, err := NewMask(maxRow-minRow+1, maxCol-minCol+1)
	if err != nil {
		return nil, err
	}
	for r := 0; r < out.Rows; r++ {
		copy(out.Pix[r*out.Cols:(r+1)*out.Cols], m.Pix[(minRow+r)*m.Cols+minCol:])
	}
	return out, nil
}
