package topology

// Direction bit values summed into a NeighborWeight.
const (
	North     = 1
	NorthEast = 2
	East      = 4
	SouthEast = 8
	South     = 16
	SouthWest = 32
	West      = 64
	NorthWest = 128
)

// neighborOffsets lists (dRow, dCol, bit) for the 8 compass neighbors.
var neighborOffsets = [8]struct {
	dr, dc int
	bit    uint8
}{
	{-1, 0, North},
	{-1, 1, NorthEast},
	{0, 1, East},
	{1, 1, SouthEast},
	{1, 0, South},
	{1, -1, SouthWest},
	{0, -1, West},
	{-1, -1, NorthWest},
}

// Weight reduces the 3x3 window around (row, col) to an 8-bit code: the sum of
// the direction bits of every foreground neighbor. Neighbors outside the mask
// contribute nothing. The center cell is not inspected.
func Weight(m *Mask, row, col int) uint8 {
	var w uint8
	for _, o := range neighborOffsets {
		if m.At(row+o.dr, col+o.dc) {
			w |= o.bit
		}
	}
	return w
}

// Neighbours returns the 3x3 window centred on (row, col). Cells outside the
// mask read as background.
func Neighbours(m *Mask, row, col int) [3][3]bool {
	var win [3][3]bool
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			win[i+1][j+1] = m.At(row+i, col+j)
		}
	}
	return win
}

// WindowWeight computes the same code as Weight from an extracted window.
func WindowWeight(win [3][3]bool) uint8 {
	weights := [3][3]uint8{
		{NorthWest, North, NorthEast},
		{West, 0, East},
		{SouthWest, South, SouthEast},
	}
	var w uint8
	for i := range win {
		for j := range win[i] {
			if win[i][j] {
				w += weights[i][j]
			}
		}
	}
	return w
}

// codeSet is a 256-bit membership set over neighbor weights.
type codeSet [4]uint64

func newCodeSet(codes ...uint8) codeSet {
	var s codeSet
	for _, c := range codes {
		s[c>>6] |= 1 << (c & 63)
	}
	return s
}

func (s *codeSet) has(w uint8) bool {
	return s[w>>6]&(1<<(w&63)) != 0
}
