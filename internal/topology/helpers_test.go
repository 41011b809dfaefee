package topology

import (
	"math/rand"
	"testing"
)

// randomMask returns a rows x cols mask with roughly density of its cells set.
func randomMask(rng *rand.Rand, rows, cols int, density float64) *Mask {
	m := &Mask{Rows: rows, Cols: cols, Pix: make([]bool, rows*cols)}
	for i := range m.Pix {
		m.Pix[i] = rng.Float64() < density
	}
	return m
}

// maskCorpus yields a deterministic set of random masks of varied shape and
// density.
func maskCorpus(t *testing.T) []*Mask {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	var out []*Mask
	for _, size := range [][2]int{{1, 1}, {1, 9}, {9, 1}, {4, 4}, {7, 11}, {16, 16}, {23, 17}} {
		for _, density := range []float64{0.1, 0.35, 0.6, 0.9} {
			out = append(out, randomMask(rng, size[0], size[1], density))
		}
	}
	return out
}

// floodComponents counts 8-connected components with a stack-based flood fill.
func floodComponents(m *Mask) int {
	visited := make([]bool, len(m.Pix))
	count := 0
	for start := range m.Pix {
		if !m.Pix[start] || visited[start] {
			continue
		}
		count++
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r, c := p/m.Cols, p%m.Cols
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					nr, nc := r+dr, c+dc
					if !m.In(nr, nc) {
						continue
					}
					n := nr*m.Cols + nc
					if m.Pix[n] && !visited[n] {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
	}
	return count
}
