package planform

import "github.com/ykawano/planform/walls"

// reconstructOptions holds configuration for outline reconstruction.
type reconstructOptions struct {
	// Vector cleaning thresholds (drawing units)
	minSegmentLength float64
	snapTolerance    float64

	// Raster detection
	workingSize int
	threshold   uint8

	// Real-world raster extent (millimeters)
	extentWidth  float64
	extentHeight float64

	// Height evidence override
	hints    walls.Hints
	hintsSet bool // true once HeightHints replaces source-derived hints
}

// defaultOptions returns the default reconstruction options.
func defaultOptions() reconstructOptions {
	return reconstructOptions{
		minSegmentLength: 0, // adaptive: scaled from the drawing diagonal
		snapTolerance:    0, // adaptive: scaled from the drawing diagonal
		workingSize:      0, // raster default (500 px longest side)
		threshold:        0, // raster default (200)
		extentWidth:      0, // unknown until ImageExtent is called
		extentHeight:     0,
	}
}

// clone creates a deep copy of reconstructOptions.
func (o reconstructOptions) clone() reconstructOptions {
	newOpts := o

	// Deep copy the dimension hint slice
	if o.hints.Dimensions != nil {
		newOpts.hints.Dimensions = make([]walls.DimensionHint, len(o.hints.Dimensions))
		copy(newOpts.hints.Dimensions, o.hints.Dimensions)
	}

	return newOpts
}
