// Package planform reconstructs a building's exterior footprint from messy
// architectural input and converts it into dimensioned wall segments.
//
// Two source paths converge on the same downstream contract. Vector sources
// (CAD-extracted line work) are cleaned, assembled into a planar graph, and
// traced for the outermost closed loop. Raster sources (scanned floor plans)
// are thresholded, repaired, and contour-traced into a simplified polygon.
//
// Basic usage with vector segments:
//
//	plan, warnings, err := planform.FromSegments(segs, model.Millimeter).Walls()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", planform.FormatWarnings(warnings))
//	}
//
// With options, from a scanned drawing:
//
//	plan, _, err := planform.OpenImage("floorplan.png").
//	    ImageExtent(12000, 9000).
//	    Threshold(180).
//	    Walls()
//
// For advanced use cases the lower-level cleaner, boundary, raster, vector,
// and walls packages are also available.
package planform

import (
	"errors"
	"image"

	"github.com/ykawano/planform/model"
	"github.com/ykawano/planform/vector"
)

// ErrNoOutline reports that no plausible building shape was found in a
// raster source. The drawing may be blank, too noisy, or dominated by
// something other than a building footprint.
var ErrNoOutline = errors.New("no plausible building outline found in image")

// ErrScaleUnknown reports a raster terminal that needs real-world scale
// before it can produce measurable output. Set the drawing size with
// ImageExtent, or use Fractions for resolution-independent output.
var ErrScaleUnknown = errors.New("image scale unknown: real-world extent not configured")

// FromSegments creates a Pipeline over vector line work in the given
// drawing unit.
//
// Example:
//
//	plan, warnings, err := planform.FromSegments(segs, model.Millimeter).Walls()
func FromSegments(segs []model.Segment, unit model.Unit) *Pipeline {
	return &Pipeline{
		source:   sourceVector,
		segments: segs,
		unit:     unit,
		options:  defaultOptions(),
	}
}

// FromEntities flattens CAD entities (lines, polylines, arcs, splines) into
// segments and creates a Pipeline over them. Dimension annotations and 3D
// elevation data found among the entities are kept as height evidence for
// Walls.
//
// Example:
//
//	plan, warnings, err := planform.FromEntities(entities, model.Millimeter).Walls()
func FromEntities(entities []model.Entity, unit model.Unit) *Pipeline {
	segs, hints := vector.Extract(entities)
	return &Pipeline{
		source:   sourceVector,
		segments: segs,
		unit:     unit,
		hints:    hints,
		options:  defaultOptions(),
	}
}

// OpenImage creates a Pipeline over a raster drawing on disk. The file is
// opened and decoded lazily by the first terminal operation. PNG, JPEG,
// GIF, BMP, TIFF, and WebP are supported.
//
// Example:
//
//	outline, warnings, err := planform.OpenImage("floorplan.png").Fractions()
func OpenImage(path string) *Pipeline {
	return &Pipeline{
		source:  sourceImage,
		path:    path,
		options: defaultOptions(),
	}
}

// FromImage creates a Pipeline over an already-decoded image. This is
// useful when the image arrives from an upload handler rather than a file.
//
// Example:
//
//	outline, warnings, err := planform.FromImage(img).Fractions()
func FromImage(img image.Image) *Pipeline {
	return &Pipeline{
		source:  sourceImage,
		img:     img,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a terminal operation and panics if the error
// is non-nil. It discards warnings and returns just the value. It is
// intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	plan := planform.Must(planform.FromSegments(segs, model.Millimeter).Walls())
func Must[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
