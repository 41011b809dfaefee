// Package server implements the MCP (Model Context Protocol) server for binary
// image topology tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the topology engine
// through the MCP protocol. Every tool loads an image, binarizes it, and runs
// one of the operations in package topology on the resulting mask.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Binary Mask Operations:
//   - image_binarize: Threshold to a foreground/background mask
//   - image_morphology: Erode, dilate, open or close
//
// Region Analysis:
//   - image_label_regions: Count and color 8-connected regions
//   - image_region_props: Area and bounding box per region
//   - image_region_crop: Crop the source image to one region
//
// Skeleton Analysis:
//   - image_skeletonize: Thin to a one-pixel skeleton with endpoints
//   - image_endpoints: Endpoints of an already thin image
//
// # Binarization Parameters
//
// All mask tools accept threshold (0-255) and invert. Values omitted from a
// call come from the config loaded at startup (see package config), which in
// turn defaults to threshold 127 and no inversion. Mask coordinates are
// reported as (row, col) with row = y and col = x.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images. Images are cached
// by path and reused across tool calls, so re-running a tool with a different
// threshold does not re-read the file. Masks are rebuilt on every call.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC errors with code -32000 and the error
// text as data. Unparseable tools/call params return -32602 and unknown
// methods return -32601.
package server
