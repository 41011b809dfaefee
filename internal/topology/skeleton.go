package topology

import "fmt"

// Lookup tables over neighbor weights. borderCodes selects removal candidates;
// removalPhases are tried in order against each remaining candidate.
var (
	borderCodes = newCodeSet(
		3, 6, 7, 12, 14, 15, 24, 28, 30, 31, 48, 56, 60, 62, 63, 96,
		112, 120, 124, 126, 127, 129, 131, 135, 143, 159, 191, 192, 193, 195, 199, 207,
		223, 224, 225, 227, 231, 239, 240, 241, 243, 247, 248, 249, 251, 252, 253, 254,
	)

	removalPhases = [5]codeSet{
		newCodeSet(7, 14, 28, 56, 112, 131, 193, 224),
		newCodeSet(7, 14, 15, 28, 30, 56, 60, 112, 120, 131, 135, 193, 195, 224, 225, 240),
		newCodeSet(7, 14, 15, 28, 30, 31, 56, 60, 62, 112, 120, 124, 131, 135, 143, 193,
			195, 199, 224, 225, 227, 240, 241, 248),
		newCodeSet(7, 14, 15, 28, 30, 31, 56, 60, 62, 63, 112, 120, 124, 126, 131, 135,
			143, 159, 193, 195, 199, 207, 224, 225, 227, 231, 240, 241, 243, 248, 249, 252),
		newCodeSet(7, 14, 15, 28, 30, 31, 56, 60, 62, 63, 112, 120, 124, 126, 131, 135,
			143, 159, 191, 193, 195, 199, 207, 224, 225, 227, 231, 239, 240, 241, 243, 248,
			249, 251, 252, 254),
	}
)

// SkeletonResult is the outcome of a thinning run.
type SkeletonResult struct {
	Skeleton   *Mask
	Iterations int
	Removed    int
}

// Skeletonize thins the foreground of m to a one-pixel-wide skeleton. The loop
// is capped at Rows*Cols+1 iterations.
func Skeletonize(m *Mask) (*Mask, error) {
	res, err := SkeletonizeWithLimit(m, 0)
	if err != nil {
		return nil, err
	}
	return res.Skeleton, nil
}

// SkeletonizeWithLimit is Skeletonize with an explicit iteration cap. A limit
// <= 0 selects the default cap. Each outer iteration flags border candidates,
// then runs five removal phases, recomputing weights as cells are cleared. The
// run stops after the first iteration that removes nothing; if that has not
// happened within maxIterations, ErrNonConvergence is returned.
func SkeletonizeWithLimit(m *Mask, maxIterations int) (*SkeletonResult, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if maxIterations <= 0 {
		maxIterations = m.Rows*m.Cols + 1
	}

	out := m.Copy()
	border := &Mask{Rows: m.Rows, Cols: m.Cols}
	total := 0

	for iter := 1; iter <= maxIterations; iter++ {
		border.Pix = make([]bool, len(out.Pix))
		for i := 0; i < out.Rows; i++ {
			for j := 0; j < out.Cols; j++ {
				if out.Pix[i*out.Cols+j] && borderCodes.has(Weight(out, i, j)) {
					border.Pix[i*out.Cols+j] = true
				}
			}
		}

		removed := 0
		for k := range removalPhases {
			phase := &removalPhases[k]
			for i := 0; i < out.Rows; i++ {
				for j := 0; j < out.Cols; j++ {
					idx := i*out.Cols + j
					if !border.Pix[idx] {
						continue
					}
					if phase.has(Weight(out, i, j)) {
						out.Pix[idx] = false
						border.Pix[idx] = false
						removed++
					}
				}
			}
		}

		// Candidates that survived every phase are still foreground in out, so
		// this merge never changes a cell.
		merged, err := Union(out, border)
		if err != nil {
			return nil, err
		}
		out = merged

		total += removed
		tracef("skeletonize: iteration %d removed %d", iter, removed)
		if removed == 0 {
			diagf("skeletonize: %dx%d converged after %d iterations, %d removed",
				m.Rows, m.Cols, iter, total)
			return &SkeletonResult{Skeleton: out, Iterations: iter, Removed: total}, nil
		}
	}

	opsf("skeletonize: no fixed point after %d iterations on %dx%d mask", maxIterations, m.Rows, m.Cols)
	return nil, fmt.Errorf("%w: still removing pixels after %d iterations", ErrNonConvergence, maxIterations)
}
