// Package topology analyzes binary raster masks.
//
// It groups foreground pixels into 8-connected regions, erodes and dilates them
// with square windows, thins them to one-pixel-wide skeletons, finds skeleton
// endpoints and derives per-region properties. Everything here works on plain
// in-memory grids; decoding and encoding images is left to package imaging.
//
// # Coordinate System
//
// Cells are addressed as (row, col) with (0, 0) at the top-left. Row increases
// downward, col increases rightward. Bounding boxes are inclusive on all sides.
//
// # Neighbor Weights
//
// Many operations reduce the 3x3 window around a pixel to an 8-bit code by
// summing one bit per foreground neighbor:
//
//	128   1   2
//	 64   .   4
//	 32  16   8
//
// Neighbors outside the mask contribute nothing.
//
// # Errors
//
// Failures wrap one of ErrDimensionMismatch, ErrInvalidParameter or
// ErrNonConvergence and can be tested with errors.Is. No operation mutates its
// inputs, so a failed call leaves nothing half-written.
//
// # Thread Safety
//
// Every operation allocates its result and holds no state between calls, so
// independent masks can be processed concurrently. Logging streams set by
// SetLogWriters are package-wide and should be configured once at startup.
package topology
