package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/image-topology-mcp/internal/config"
	"github.com/ironsheep/image-topology-mcp/internal/imaging"
	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_skeletonize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Fills unset optional parameters from the server config
//  3. Loads and binarizes the image
//  4. Calls the appropriate topology function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Binary Mask Operations
	case "image_binarize":
		return s.handleImageBinarize(args)
	case "image_morphology":
		return s.handleImageMorphology(args)

	// Region Analysis
	case "image_label_regions":
		return s.handleImageLabelRegions(args)
	case "image_region_props":
		return s.handleImageRegionProps(args)
	case "image_region_crop":
		return s.handleImageRegionCrop(args)

	// Skeleton Analysis
	case "image_skeletonize":
		return s.handleImageSkeletonize(args)
	case "image_endpoints":
		return s.handleImageEndpoints(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments; a missing arguments object is treated
// as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Shared mask loading ===

// maskArgs are the binarization arguments every mask tool accepts. Pointer
// fields distinguish "unset" (use config) from an explicit zero.
type maskArgs struct {
	Path      string   `json:"path"`
	Threshold *int     `json:"threshold,omitempty"`
	Invert    *bool    `json:"invert,omitempty"`
	Scale     *float64 `json:"scale,omitempty"`
}

func (a maskArgs) binarizeOptions(s *Server) (imaging.BinarizeOptions, error) {
	opts := imaging.BinarizeOptions{
		Threshold: s.cfg.GetThreshold(),
		Invert:    s.cfg.GetInvert(),
	}
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return opts, fmt.Errorf("%w: threshold must be between 0 and 255, got %d", topology.ErrInvalidParameter, *a.Threshold)
		}
		opts.Threshold = uint8(*a.Threshold)
	}
	if a.Invert != nil {
		opts.Invert = *a.Invert
	}
	return opts, nil
}

func (a maskArgs) scale(s *Server) float64 {
	if a.Scale != nil && *a.Scale > 0 {
		return *a.Scale
	}
	return s.cfg.GetRenderScale()
}

// loadMask loads the image at a.Path through the cache and binarizes it.
func (s *Server) loadMask(a maskArgs) (image.Image, *topology.Mask, error) {
	opts, err := a.binarizeOptions(s)
	if err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	mask, err := imaging.Binarize(img, opts)
	if err != nil {
		return nil, nil, err
	}
	return img, mask, nil
}

// windowSize returns the per-call window, or the configured one when unset.
func (s *Server) windowSize(w *int) (int, error) {
	if w == nil {
		return s.cfg.GetWindowSize(), nil
	}
	if *w < 1 || *w > config.MaxWindowSize {
		return 0, fmt.Errorf("%w: window_size must be between 1 and %d, got %d",
			topology.ErrInvalidParameter, config.MaxWindowSize, *w)
	}
	return *w, nil
}

// MaskResult is returned by tools that produce a single mask.
type MaskResult struct {
	Width           int                      `json:"width"`
	Height          int                      `json:"height"`
	ForegroundCount int                      `json:"foreground_count"`
	Image           *imaging.MaskImageResult `json:"image"`
}

func newMaskResult(m *topology.Mask, scale float64) (*MaskResult, error) {
	img, err := imaging.EncodeMask(m, scale)
	if err != nil {
		return nil, err
	}
	return &MaskResult{
		Width:           m.Cols,
		Height:          m.Rows,
		ForegroundCount: m.Count(),
		Image:           img,
	}, nil
}

// === Binary Mask Operation Handlers ===

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a)
	if err != nil {
		return nil, err
	}
	return newMaskResult(mask, a.scale(s))
}

type imageMorphologyArgs struct {
	maskArgs
	Operation  string `json:"operation"`
	WindowSize *int   `json:"window_size,omitempty"`
}

// MorphologyResult adds the applied operator to a MaskResult.
type MorphologyResult struct {
	*MaskResult
	Operation  string `json:"operation"`
	WindowSize int    `json:"window_size"`
}

func (s *Server) handleImageMorphology(args json.RawMessage) (interface{}, error) {
	var a imageMorphologyArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}
	window, err := s.windowSize(a.WindowSize)
	if err != nil {
		return nil, err
	}
	out, err := topology.Apply(topology.Operation(a.Operation), mask, window)
	if err != nil {
		return nil, err
	}
	res, err := newMaskResult(out, a.scale(s))
	if err != nil {
		return nil, err
	}
	return &MorphologyResult{MaskResult: res, Operation: a.Operation, WindowSize: window}, nil
}

// === Region Analysis Handlers ===

// LabelRegionsResult reports the region count and a colored label image.
type LabelRegionsResult struct {
	RegionCount int                       `json:"region_count"`
	Image       *imaging.LabelImageResult `json:"image"`
}

func (s *Server) handleImageLabelRegions(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a)
	if err != nil {
		return nil, err
	}
	grid, err := topology.Label(mask)
	if err != nil {
		return nil, err
	}
	img, err := imaging.EncodeLabels(grid, a.scale(s))
	if err != nil {
		return nil, err
	}
	return &LabelRegionsResult{RegionCount: grid.Count, Image: img}, nil
}

type imageRegionPropsArgs struct {
	maskArgs
	IncludeMasks bool `json:"include_masks"`
	MinArea      int  `json:"min_area"`
}

// RegionInfo is the wire form of a topology.Region.
type RegionInfo struct {
	Label       int                  `json:"label"`
	Area        int                  `json:"area"`
	BoundingBox topology.BoundingBox `json:"bounding_box"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Mask        []string             `json:"mask,omitempty"`
}

// RegionPropsResult lists regions in label order.
type RegionPropsResult struct {
	RegionCount int          `json:"region_count"`
	Regions     []RegionInfo `json:"regions"`
}

func (s *Server) handleImageRegionProps(args json.RawMessage) (interface{}, error) {
	var a imageRegionPropsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}
	regions, err := topology.RegionProps(mask)
	if err != nil {
		return nil, err
	}

	res := &RegionPropsResult{RegionCount: len(regions), Regions: []RegionInfo{}}
	for _, r := range regions {
		if r.Area < a.MinArea {
			continue
		}
		info := RegionInfo{
			Label:       r.Label,
			Area:        r.Area,
			BoundingBox: r.Box,
		}
		if r.Area > 0 {
			info.Width = r.Box.Width()
			info.Height = r.Box.Height()
		}
		if a.IncludeMasks && r.Mask != nil {
			info.Mask = r.Mask.Strings()
		}
		res.Regions = append(res.Regions, info)
	}
	return res, nil
}

type imageRegionCropArgs struct {
	maskArgs
	Label int `json:"label"`
}

// RegionCropResult is a source-image crop around one region.
type RegionCropResult struct {
	Label       int                  `json:"label"`
	Area        int                  `json:"area"`
	BoundingBox topology.BoundingBox `json:"bounding_box"`
	*imaging.CropResult
}

func (s *Server) handleImageRegionCrop(args json.RawMessage) (interface{}, error) {
	var a imageRegionCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, mask, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}
	regions, err := topology.RegionProps(mask)
	if err != nil {
		return nil, err
	}
	if a.Label < 1 || a.Label > len(regions) {
		return nil, fmt.Errorf("%w: label %d out of range, image has %d regions", topology.ErrInvalidParameter, a.Label, len(regions))
	}
	region := regions[a.Label-1]
	if region.Area == 0 {
		return nil, fmt.Errorf("%w: region %d is empty", topology.ErrInvalidParameter, a.Label)
	}
	crop, err := imaging.CropRegion(img, region.Box, a.scale(s))
	if err != nil {
		return nil, err
	}
	return &RegionCropResult{
		Label:       region.Label,
		Area:        region.Area,
		BoundingBox: region.Box,
		CropResult:  crop,
	}, nil
}

// === Skeleton Analysis Handlers ===

type imageSkeletonizeArgs struct {
	maskArgs
	Preprocess    string `json:"preprocess"`
	WindowSize    *int   `json:"window_size,omitempty"`
	MaxIterations *int   `json:"max_iterations,omitempty"`
}

// SkeletonizeResult reports the skeleton and its endpoints.
type SkeletonizeResult struct {
	*MaskResult
	Iterations    int              `json:"iterations"`
	RemovedPixels int              `json:"removed_pixels"`
	EndpointCount int              `json:"endpoint_count"`
	Endpoints     []topology.Point `json:"endpoints"`
}

func (s *Server) handleImageSkeletonize(args json.RawMessage) (interface{}, error) {
	var a imageSkeletonizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}

	switch a.Preprocess {
	case "", "none":
	case string(topology.OpOpen), string(topology.OpClose):
		window, err := s.windowSize(a.WindowSize)
		if err != nil {
			return nil, err
		}
		mask, err = topology.Apply(topology.Operation(a.Preprocess), mask, window)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown preprocess %q", topology.ErrInvalidParameter, a.Preprocess)
	}

	limit := s.cfg.GetMaxSkeletonIterations()
	if a.MaxIterations != nil {
		limit = *a.MaxIterations
	}
	sk, err := topology.SkeletonizeWithLimit(mask, limit)
	if err != nil {
		return nil, err
	}
	points, err := topology.EndpointList(sk.Skeleton)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []topology.Point{}
	}

	res, err := newMaskResult(sk.Skeleton, a.scale(s))
	if err != nil {
		return nil, err
	}
	return &SkeletonizeResult{
		MaskResult:    res,
		Iterations:    sk.Iterations,
		RemovedPixels: sk.Removed,
		EndpointCount: len(points),
		Endpoints:     points,
	}, nil
}

type imageEndpointsArgs struct {
	maskArgs
	InteriorOnly bool `json:"interior_only"`
}

// EndpointsResult lists endpoints in row-major order.
type EndpointsResult struct {
	Count     int              `json:"count"`
	Endpoints []topology.Point `json:"endpoints"`
}

func (s *Server) handleImageEndpoints(args json.RawMessage) (interface{}, error) {
	var a imageEndpointsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, mask, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}

	find := topology.Endpoints
	if a.InteriorOnly {
		find = topology.InteriorEndpoints
	}
	ends, err := find(mask)
	if err != nil {
		return nil, err
	}
	points := ends.Points()
	if points == nil {
		points = []topology.Point{}
	}
	return &EndpointsResult{Count: len(points), Endpoints: points}, nil
}
