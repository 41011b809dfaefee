package topology

// endpointCodes are weights with a single neighbor, or two neighbors in
// adjacent compass directions.
var endpointCodes = newCodeSet(1, 2, 4, 8, 16, 32, 64, 128, 3, 6, 12, 24, 48, 96, 192, 129)

// Endpoints marks the skeleton pixels that terminate a branch. Every cell is
// examined; neighbors outside the mask count as absent, so a line running off
// the image edge still ends at the edge pixel.
func Endpoints(skeleton *Mask) (*Mask, error) {
	return endpoints(skeleton, 0)
}

// InteriorEndpoints is Endpoints restricted to cells strictly inside the mask:
// the outermost rows and columns are never reported.
func InteriorEndpoints(skeleton *Mask) (*Mask, error) {
	return endpoints(skeleton, 1)
}

func endpoints(skeleton *Mask, margin int) (*Mask, error) {
	if err := skeleton.validate(); err != nil {
		return nil, err
	}
	out := &Mask{Rows: skeleton.Rows, Cols: skeleton.Cols, Pix: make([]bool, len(skeleton.Pix))}
	for i := margin; i < skeleton.Rows-margin; i++ {
		for j := margin; j < skeleton.Cols-margin; j++ {
			idx := i*skeleton.Cols + j
			if skeleton.Pix[idx] {
				out.Pix[idx] = endpointCodes.has(Weight(skeleton, i, j))
			}
		}
	}
	return out, nil
}

// EndpointList returns the endpoints of skeleton in row-major order.
func EndpointList(skeleton *Mask) ([]Point, error) {
	ends, err := Endpoints(skeleton)
	if err != nil {
		return nil, err
	}
	return ends.Points(), nil
}
