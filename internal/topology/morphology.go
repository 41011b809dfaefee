package topology

import "fmt"

// Operation names a morphological operator.
type Operation string

const (
	OpErode  Operation = "erode"
	OpDilate Operation = "dilate"
	OpOpen   Operation = "open"
	OpClose  Operation = "close"
)

// Erode clears every foreground cell that has at least one background cell in
// its square window of side 2*(windowSize/2)+1. Only neighbors inside the mask
// are considered, so the image border never erodes a region on its own.
func Erode(m *Mask, windowSize int) (*Mask, error) {
	return morph(m, windowSize, true)
}

// Dilate sets every background cell that has at least one foreground cell in
// its window.
func Dilate(m *Mask, windowSize int) (*Mask, error) {
	return morph(m, windowSize, false)
}

// Open is Dilate(Erode(m)).
func Open(m *Mask, windowSize int) (*Mask, error) {
	eroded, err := Erode(m, windowSize)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, windowSize)
}

// Close is Erode(Dilate(m)).
func Close(m *Mask, windowSize int) (*Mask, error) {
	dilated, err := Dilate(m, windowSize)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, windowSize)
}

// Apply runs the named operation.
func Apply(op Operation, m *Mask, windowSize int) (*Mask, error) {
	switch op {
	case OpErode:
		return Erode(m, windowSize)
	case OpDilate:
		return Dilate(m, windowSize)
	case OpOpen:
		return Open(m, windowSize)
	case OpClose:
		return Close(m, windowSize)
	default:
		return nil, fmt.Errorf("%w: unknown morphology operation %q", ErrInvalidParameter, op)
	}
}

// morph flips cells whose value equals target when any in-bounds window
// neighbor holds the opposite value. Reads come from m, writes go to a copy.
func morph(m *Mask, windowSize int, target bool) (*Mask, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidParameter, windowSize)
	}

	r := windowSize / 2
	out := m.Copy()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if m.Pix[i*m.Cols+j] != target {
				continue
			}
			if hasNeighbor(m, i, j, r, !target) {
				out.Pix[i*m.Cols+j] = !target
			}
		}
	}
	return out, nil
}

// hasNeighbor reports whether any in-bounds cell within radius r of (i, j),
// excluding the center, has value v.
func hasNeighbor(m *Mask, i, j, r int, v bool) bool {
	r0, r1 := max(i-r, 0), min(i+r, m.Rows-1)
	c0, c1 := max(j-r, 0), min(j+r, m.Cols-1)
	for y := r0; y <= r1; y++ {
		row := m.Pix[y*m.Cols:]
		for x := c0; x <= c1; x++ {
			if y == i && x == j {
				continue
			}
			if row[x] == v {
				return true
			}
		}
	}
	return false
}
