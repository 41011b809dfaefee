package topology

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeight(t *testing.T) {
	full := MustParse("###", "###", "###")

	tests := []struct {
		name     string
		mask     *Mask
		row, col int
		want     uint8
	}{
		{"isolated pixel", MustParse("...", ".#.", "..."), 1, 1, 0},
		{"all neighbors", full, 1, 1, 255},
		{"top-left corner ignores outside", full, 0, 0, East | SouthEast | South},
		{"bottom-right corner", full, 2, 2, North | West | NorthWest},
		{"top edge middle", full, 0, 1, East | SouthEast | South | SouthWest | West},
		{"north only", MustParse(".#.", ".#.", "..."), 1, 1, North},
		{"north-east and west", MustParse("..#", "##.", "..."), 1, 1, NorthEast | West},
		{"horizontal line interior", MustParse("###"), 0, 1, East | West},
		{"center on background", MustParse("#.#", "...", "#.#"), 1, 1, NorthWest | NorthEast | SouthWest | SouthEast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Weight(tt.mask, tt.row, tt.col))
		})
	}
}

func TestWindowWeightMatchesWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 20; n++ {
		m := randomMask(rng, 6, 9, 0.5)
		for r := 0; r < m.Rows; r++ {
			for c := 0; c < m.Cols; c++ {
				assert.Equal(t, Weight(m, r, c), WindowWeight(Neighbours(m, r, c)), "cell (%d,%d)", r, c)
			}
		}
	}
}

func TestCodeSet(t *testing.T) {
	s := newCodeSet(0, 63, 64, 127, 128, 255)
	for w := 0; w < 256; w++ {
		want := w == 0 || w == 63 || w == 64 || w == 127 || w == 128 || w == 255
		assert.Equal(t, want, s.has(uint8(w)), "code %d", w)
	}
}
