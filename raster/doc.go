// Package raster extracts a building outline from a scanned floor plan
// image.
//
// Detection is deliberately best-effort: every failure mode, from an
// unreadable file to an implausible segmentation, yields a nil outline
// rather than an error. Callers that need a hard failure wrap the nil
// themselves.
//
// # Pipeline
//
// The detector downscales the image to a bounded working resolution,
// converts to grayscale, and thresholds dark pixels into a wall mask.
// The mask is dilated to bridge door and window openings, then a border
// flood fill separates exterior from enclosed building area. After a
// plausibility check on the building fraction, the largest connected
// component is kept, interior holes are filled, and the outer contour is
// walked with Moore-neighbor tracing.
//
// The traced contour is simplified hard: two escalating Douglas-Peucker
// passes, axis snapping for scan skew, collinear merging, and short-edge
// removal. If more than 8 vertices survive, or the polygon area is
// implausibly small, the axis-aligned bounding box is returned instead,
// so the caller always gets a workable quadrilateral from a noisy scan.
//
// # Coordinates
//
// Results are [model.Outline] values: vertices as fractions (0-1) of
// image width and height, independent of the source resolution. PNG,
// JPEG, GIF, TIFF, BMP and WebP sources are decoded transparently.
package raster
