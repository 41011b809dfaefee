package server

import "github.com/ironsheep/image-topology-mcp/internal/config"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// maskProperties returns the path/threshold/invert properties shared by every
// tool that binarizes its input, merged with the tool's own properties.
func maskProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     255,
			"description": "Minimum luminance of a foreground pixel. Default from config (127)",
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat dark pixels as foreground (dark ink on light paper). Default from config (false)",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Optional scale factor for the returned PNG. Default from config (1.0)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Binary Mask Operations
		{
			Name:        "image_binarize",
			Description: "Threshold an image into a binary mask. Returns the mask as PNG (foreground white) and the foreground pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"scale": scaleProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_morphology",
			Description: "Apply erosion, dilation, opening or closing to the binarized image over a square window.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"erode", "dilate", "open", "close"},
						"description": "Morphological operator to apply",
					},
					"window_size": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     config.MaxWindowSize,
						"description": "Window edge length; the radius is window_size/2. Default from config (3)",
					},
					"scale": scaleProperty(),
				}),
				"required": []string{"path", "operation"},
			},
		},

		// Region Analysis
		{
			Name:        "image_label_regions",
			Description: "Label 8-connected foreground regions. Returns the region count and a PNG with one color per region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"scale": scaleProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_region_props",
			Description: "List every labelled region with its area and inclusive bounding box (rows/cols), optionally with its cropped mask.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"include_masks": map[string]interface{}{
						"type":        "boolean",
						"description": "Include each region's mask as rows of '#' and '.'. Default false",
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"description": "Omit regions smaller than this many pixels. Default 0",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_region_crop",
			Description: "Crop the source image to the bounding box of one labelled region and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"label": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Region label as reported by image_region_props",
					},
					"scale": scaleProperty(),
				}),
				"required": []string{"path", "label"},
			},
		},

		// Skeleton Analysis
		{
			Name:        "image_skeletonize",
			Description: "Thin the foreground to a one-pixel-wide skeleton. Returns the skeleton PNG, iteration count and skeleton endpoints.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"preprocess": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "open", "close"},
						"description": "Optional morphology to clean the mask before thinning. Default none",
					},
					"window_size": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     config.MaxWindowSize,
						"description": "Window for the preprocess step. Default from config (3)",
					},
					"max_iterations": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"description": "Fail if no fixed point is reached within this many passes. 0 derives the cap from the image size",
					},
					"scale": scaleProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_endpoints",
			Description: "Find the endpoints of an already thin (skeleton) image: foreground pixels with one neighbor or two adjacent neighbors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": maskProperties(map[string]interface{}{
					"interior_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Ignore pixels on the image border. Default false",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
