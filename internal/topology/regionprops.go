package topology

import "fmt"

// BoundingBox is an inclusive, axis-aligned rectangle in (row, col) space.
type BoundingBox struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// Height is the number of rows the box spans.
func (b BoundingBox) Height() int { return b.MaxRow - b.MinRow + 1 }

// Width is the number of columns the box spans.
func (b BoundingBox) Width() int { return b.MaxCol - b.MinCol + 1 }

// Region describes one labelled component.
type Region struct {
	// Label is the component's label in the LabelGrid it was derived from.
	Label int

	// Area is the number of pixels carrying Label.
	Area int

	// Box is the tight bounding box of those pixels.
	Box BoundingBox

	// Mask holds the region's pixels cropped to Box. A single-pixel region
	// always gets a 1x1 foreground mask.
	Mask *Mask
}

// RegionProps labels m and describes every region 1..N in label order.
func RegionProps(m *Mask) ([]Region, error) {
	grid, err := Label(m)
	if err != nil {
		return nil, err
	}
	return RegionPropsFromLabels(grid)
}

// RegionPropsFromLabels describes every label 1..grid.Count. Each label gets a
// full scan of the grid. A Region is appended for every label, including one
// that happens to cover no pixels; callers that want to drop empty regions
// filter on Area.
func RegionPropsFromLabels(grid *LabelGrid) ([]Region, error) {
	if grid == nil || grid.Rows < 1 || grid.Cols < 1 {
		return nil, fmt.Errorf("%w: empty label grid", ErrInvalidParameter)
	}

	regions := make([]Region, 0, grid.Count)
	for lb := 1; lb <= grid.Count; lb++ {
		sub := &Mask{Rows: grid.Rows, Cols: grid.Cols, Pix: make([]bool, len(grid.Labels))}
		box := BoundingBox{MinRow: grid.Rows, MinCol: grid.Cols}
		area := 0

		for i := 0; i < grid.Rows; i++ {
			for j := 0; j < grid.Cols; j++ {
				if grid.Labels[i*grid.Cols+j] != lb {
					continue
				}
				sub.Pix[i*grid.Cols+j] = true
				area++
				box.MinRow = min(box.MinRow, i)
				box.MinCol = min(box.MinCol, j)
				box.MaxRow = max(box.MaxRow, i)
				box.MaxCol = max(box.MaxCol, j)
			}
		}

		r := Region{Label: lb, Area: area, Box: box}
		switch {
		case area == 1:
			r.Mask = &Mask{Rows: 1, Cols: 1, Pix: []bool{true}}
		case area > 1:
			cropped, err := Crop(sub, box.MinRow, box.MinCol, box.MaxRow, box.MaxCol)
			if err != nil {
				return nil, err
			}
			r.Mask = cropped
		default:
			// No pixels: the box is inverted, so there is nothing to crop.
			r.Box = BoundingBox{}
		}
		regions = append(regions, r)
	}

	diagf("regionprops: %d regions", len(regions))
	return regions, nil
}
