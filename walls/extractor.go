package walls

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
)

// Config holds tuning for wall extraction.
type Config struct {
	// MinHeightMM and MaxHeightMM bound the plausible building heights, in
	// millimeters, accepted from an unlabeled vertical dimension. Labeled
	// heights and 3D elevation data bypass the band.
	MinHeightMM float64
	MaxHeightMM float64
}

// DefaultConfig returns sensible default configuration: anything from a low
// single story to a high-rise counts as a plausible height.
func DefaultConfig() Config {
	return Config{
		MinHeightMM: 2500,
		MaxHeightMM: 100000,
	}
}

// Extractor converts boundary loops into wall plans. An Extractor is
// stateless and safe for concurrent use.
type Extractor struct {
	config Config
}

// New creates an extractor with default configuration.
func New() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewWithConfig creates an extractor with custom configuration. Zero-valued
// bounds fall back to their defaults.
func NewWithConfig(config Config) *Extractor {
	defaults := DefaultConfig()
	if config.MinHeightMM <= 0 {
		config.MinHeightMM = defaults.MinHeightMM
	}
	if config.MaxHeightMM <= 0 {
		config.MaxHeightMM = defaults.MaxHeightMM
	}
	return &Extractor{config: config}
}

// Extract builds a wall plan from an open boundary loop in source units.
// Each consecutive point pair, wrapping around, becomes one wall segment
// with its Euclidean length and direction angle; coordinates and lengths
// are converted to millimeters.
func (e *Extractor) Extract(loop model.Loop, unit model.Unit, hints Hints) *model.WallPlan {
	factor := unit.Factor()
	plan := &model.WallPlan{Unit: model.Millimeter.String()}

	if len(loop) >= 2 {
		plan.Segments = make([]model.WallSegment, 0, len(loop))
		for i, p := range loop {
			q := loop[(i+1)%len(loop)]
			seg := model.WallSegment{
				Start:        orb.Point{p[0] * factor, p[1] * factor},
				End:          orb.Point{q[0] * factor, q[1] * factor},
				Length:       math.Hypot(q[0]-p[0], q[1]-p[1]) * factor,
				AngleDegrees: angleDegrees(p, q),
			}
			plan.Segments = append(plan.Segments, seg)
			plan.Perimeter += seg.Length
		}
	}

	plan.Height, plan.HeightNote = e.resolveHeight(hints, factor)
	return plan
}

// Extract builds a wall plan with default configuration. See
// [Extractor.Extract].
func Extract(loop model.Loop, unit model.Unit, hints Hints) *model.WallPlan {
	return New().Extract(loop, unit, hints)
}

// angleDegrees measures the direction from p to q in degrees, 0 along +X
// and increasing counter-clockwise, normalized to [0, 360).
func angleDegrees(p, q orb.Point) float64 {
	deg := math.Atan2(q[1]-p[1], q[0]-p[0]) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
