package planform

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/ykawano/planform/boundary"
	"github.com/ykawano/planform/cleaner"
	"github.com/ykawano/planform/model"
	"github.com/ykawano/planform/raster"
	"github.com/ykawano/planform/walls"
)

// sourceKind discriminates the input path a Pipeline operates on.
type sourceKind int

const (
	sourceVector sourceKind = iota
	sourceImage
)

// heavyCleaningRatio is the surviving-segment fraction below which a
// terminal operation warns that the input was unusually noisy.
const heavyCleaningRatio = 0.5

// Pipeline provides a fluent interface for reconstructing a building
// outline from vector segments or a raster drawing. Each configuration
// method returns a new Pipeline instance, making it safe for concurrent use
// and allowing method chaining.
type Pipeline struct {
	// Source (exactly one path is active)
	source   sourceKind
	segments []model.Segment // vector line work
	img      image.Image     // decoded raster drawing
	path     string          // raster drawing opened lazily by path

	// Source metadata
	unit  model.Unit
	hints walls.Hints // gathered from entities; HeightHints overrides

	// Configuration
	options reconstructOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during configuration
	warnings []Warning
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	newPipe := &Pipeline{
		source:   p.source,
		segments: p.segments,
		img:      p.img,
		path:     p.path,
		unit:     p.unit,
		hints:    p.hints,
		options:  p.options.clone(),
		err:      p.err,
		warnings: append([]Warning(nil), p.warnings...),
	}
	return newPipe
}

// ensureImage decodes the raster source if not already decoded.
func (p *Pipeline) ensureImage() error {
	if p.img != nil {
		return nil
	}
	if p.path == "" {
		return fmt.Errorf("no image specified")
	}

	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", p.path, err)
	}
	p.img = img
	return nil
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// Unit overrides the drawing unit from a label such as "mm", "cm", or "m".
// Unrecognized labels fall back to millimeters with a warning, since unit
// metadata in real CAD exports is frequently absent or wrong.
//
// Example:
//
//	plan, warnings, err := planform.FromSegments(segs, model.Millimeter).Unit("cm").Walls()
func (p *Pipeline) Unit(label string) *Pipeline {
	newPipe := p.clone()
	unit, ok := model.ParseUnit(label)
	newPipe.unit = unit
	if !ok {
		newPipe.warnings = append(newPipe.warnings, Warning{
			Code:    WarnUnknownUnit,
			Message: fmt.Sprintf("unknown drawing unit %q, assuming millimeters", label),
		})
	}
	return newPipe
}

// SnapTolerance sets the endpoint clustering distance for vector cleaning
// and graph building, in drawing units. Zero keeps the adaptive default
// (0.5% of the drawing diagonal).
//
// Example:
//
//	plan, _, err := planform.FromSegments(segs, model.Millimeter).SnapTolerance(5).Walls()
func (p *Pipeline) SnapTolerance(tolerance float64) *Pipeline {
	newPipe := p.clone()
	newPipe.options.snapTolerance = tolerance
	return newPipe
}

// MinSegmentLength sets the minimum segment length kept by vector cleaning,
// in drawing units. Zero keeps the adaptive default (0.1% of the drawing
// diagonal).
//
// Example:
//
//	plan, _, err := planform.FromSegments(segs, model.Millimeter).MinSegmentLength(50).Walls()
func (p *Pipeline) MinSegmentLength(length float64) *Pipeline {
	newPipe := p.clone()
	newPipe.options.minSegmentLength = length
	return newPipe
}

// WorkingSize sets the longest image side, in pixels, that raster detection
// downscales to before thresholding. Zero keeps the default (500).
//
// Example:
//
//	outline, _, err := planform.OpenImage("scan.png").WorkingSize(800).Fractions()
func (p *Pipeline) WorkingSize(pixels int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.workingSize = pixels
	return newPipe
}

// Threshold sets the luminance cutoff below which a pixel counts as wall
// ink. Zero keeps the default (200). Lower it for drawings with gray
// shading that should not read as walls.
//
// Example:
//
//	outline, _, err := planform.OpenImage("scan.png").Threshold(120).Fractions()
func (p *Pipeline) Threshold(level uint8) *Pipeline {
	newPipe := p.clone()
	newPipe.options.threshold = level
	return newPipe
}

// ImageExtent declares the real-world size of the raster drawing in
// millimeters. It is required before Outline or Walls can convert the
// detected fraction polygon into measurable geometry.
//
// Example:
//
//	loop, _, err := planform.OpenImage("scan.png").ImageExtent(12000, 9000).Outline()
func (p *Pipeline) ImageExtent(widthMM, heightMM float64) *Pipeline {
	newPipe := p.clone()
	newPipe.options.extentWidth = widthMM
	newPipe.options.extentHeight = heightMM
	return newPipe
}

// HeightHints supplies height evidence directly, replacing anything
// gathered from the source entities. Use it when the operator knows the
// eaves height, or to give a raster source any height evidence at all.
//
// Example:
//
//	hints := walls.Hints{Dimensions: []walls.DimensionHint{
//	    {Value: 5800, Label: "軒高", Vertical: true},
//	}}
//	plan, _, err := planform.OpenImage("scan.png").
//	    ImageExtent(12000, 9000).
//	    HeightHints(hints).
//	    Walls()
func (p *Pipeline) HeightHints(hints walls.Hints) *Pipeline {
	newPipe := p.clone()
	newPipe.options.hints = hints
	newPipe.options.hints.Dimensions = append([]walls.DimensionHint(nil), hints.Dimensions...)
	newPipe.options.hintsSet = true
	return newPipe
}

// ============================================================================
// Terminal Operations (run the pipeline and return results)
// ============================================================================

// Clean runs only the segment-cleaning stages over the vector source and
// returns the surviving segments with per-stage removal counts. It is a
// diagnostics surface; Outline and Walls run the same stages implicitly.
//
// Example:
//
//	result, warnings, err := planform.FromSegments(segs, model.Millimeter).Clean()
//	fmt.Printf("kept %d of %d segments\n", result.Stats.Output, result.Stats.Input)
func (p *Pipeline) Clean() (cleaner.Result, []Warning, error) {
	if p.err != nil {
		return cleaner.Result{}, nil, p.err
	}
	if p.source != sourceVector {
		return cleaner.Result{}, nil, fmt.Errorf("cleaning requires a vector source")
	}

	result := p.cleanSegments()

	warnings := append([]Warning(nil), p.warnings...)
	warnings = appendCleaningWarnings(warnings, result)
	return result, warnings, nil
}

// Outline reconstructs the exterior boundary polygon.
//
// For vector sources the loop is in drawing units. For image sources the
// real-world extent set via ImageExtent defines the scale, the loop is in
// millimeters with Y growing upward, and without an extent Outline fails
// with ErrScaleUnknown.
//
// Example:
//
//	loop, warnings, err := planform.FromSegments(segs, model.Millimeter).Outline()
func (p *Pipeline) Outline() (model.Loop, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	if p.source == sourceImage {
		return p.rasterLoop()
	}

	_, result, warnings, err := p.vectorBoundary()
	if err != nil {
		return nil, warnings, err
	}
	return result.Outer, warnings, nil
}

// Fractions detects the building outline in the raster source and returns
// it in image-fraction space: every coordinate is a fraction (0-1) of image
// width or height, so the result is resolution independent. It is the only
// raster terminal that works without a configured extent.
//
// Example:
//
//	outline, warnings, err := planform.OpenImage("scan.png").Fractions()
func (p *Pipeline) Fractions() (model.Outline, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if p.source != sourceImage {
		return nil, nil, fmt.Errorf("fraction output requires an image source")
	}
	if err := p.ensureImage(); err != nil {
		return nil, nil, err
	}

	outline := p.detector().DetectImage(p.img)
	warnings := append([]Warning(nil), p.warnings...)
	if outline == nil {
		return nil, warnings, ErrNoOutline
	}
	return outline, warnings, nil
}

// Walls runs the full pipeline and returns the wall plan consumed by the
// downstream quantity calculator. All coordinates and lengths are in
// millimeters regardless of source unit; a nil Height means the height
// could not be determined and must be asked of the user.
//
// Example:
//
//	plan, warnings, err := planform.FromEntities(entities, model.Millimeter).Walls()
//	plan, warnings, err := planform.OpenImage("scan.png").ImageExtent(12000, 9000).Walls()
func (p *Pipeline) Walls() (*model.WallPlan, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	if p.source == sourceImage {
		loop, warnings, err := p.rasterLoop()
		if err != nil {
			return nil, warnings, err
		}
		return walls.Extract(loop, model.Millimeter, p.heightHints()), warnings, nil
	}

	cleanResult, result, warnings, err := p.vectorBoundary()
	if err != nil {
		return nil, warnings, err
	}

	plan := walls.Extract(result.Outer, p.unit, p.heightHints())

	// Attach the cleaned geometry, rescaled to millimeters, for reference
	// rendering downstream.
	factor := p.unit.Factor()
	plan.Cleaned = make([]model.Segment, len(cleanResult.Segments))
	for i, seg := range cleanResult.Segments {
		plan.Cleaned[i] = seg.Scaled(factor)
	}

	return plan, warnings, nil
}

// ============================================================================
// Internal pipeline stages
// ============================================================================

// cleanSegments runs the cleaner with the configured thresholds.
func (p *Pipeline) cleanSegments() cleaner.Result {
	config := cleaner.DefaultConfig()
	config.MinLength = p.options.minSegmentLength
	config.SnapTolerance = p.options.snapTolerance

	// The default floors are in millimeters; rescale them into drawing
	// units so meter-scaled drawings are not over-cleaned.
	factor := p.unit.Factor()
	config.MinLengthFloor /= factor
	config.SnapToleranceFloor /= factor

	return cleaner.NewWithConfig(config).Clean(p.segments)
}

// vectorBoundary cleans the vector source and traces its boundary loops,
// translating detection outcomes into warnings.
func (p *Pipeline) vectorBoundary() (cleaner.Result, *boundary.Result, []Warning, error) {
	cleanResult := p.cleanSegments()

	warnings := append([]Warning(nil), p.warnings...)
	warnings = appendCleaningWarnings(warnings, cleanResult)

	config := boundary.DefaultConfig()
	config.SnapTolerance = cleanResult.SnapTolerance
	result, err := boundary.NewWithConfig(config).Detect(cleanResult.Segments)
	if err != nil {
		var insufficient *boundary.InsufficientGeometryError
		if errors.As(err, &insufficient) {
			insufficient.RawSegments = cleanResult.Stats.Input
		}
		return cleanResult, nil, warnings, err
	}

	if result.FromHull {
		warnings = append(warnings, Warning{
			Code:    WarnHullFallback,
			Message: "no closed boundary found; using the convex hull of the cleaned geometry",
		})
	}
	if n := len(result.Inner); n > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnInnerLoops,
			Message: fmt.Sprintf("discarded %d interior loop(s) enclosed by the exterior boundary", n),
		})
	}

	return cleanResult, result, warnings, nil
}

// rasterLoop converts the raster fraction outline into a millimeter loop
// using the configured extent.
func (p *Pipeline) rasterLoop() (model.Loop, []Warning, error) {
	if p.options.extentWidth <= 0 || p.options.extentHeight <= 0 {
		return nil, nil, ErrScaleUnknown
	}

	outline, warnings, err := p.Fractions()
	if err != nil {
		return nil, warnings, err
	}
	return outline.Loop(p.options.extentWidth, p.options.extentHeight), warnings, nil
}

// detector builds the raster detector with the configured overrides. Zero
// values keep the detector defaults.
func (p *Pipeline) detector() *raster.Detector {
	return raster.NewWithConfig(raster.Config{
		WorkingSize: p.options.workingSize,
		Threshold:   p.options.threshold,
	})
}

// heightHints returns the caller-supplied hints when set, otherwise the
// hints gathered from the source entities.
func (p *Pipeline) heightHints() walls.Hints {
	if p.options.hintsSet {
		return p.options.hints
	}
	return p.hints
}

// appendCleaningWarnings adds a warning when cleaning discarded most of the
// input.
func appendCleaningWarnings(warnings []Warning, result cleaner.Result) []Warning {
	in, out := result.Stats.Input, result.Stats.Output
	if in > 0 && float64(out) < float64(in)*heavyCleaningRatio {
		warnings = append(warnings, Warning{
			Code:    WarnHeavyCleaning,
			Message: fmt.Sprintf("cleaning kept only %d of %d segments", out, in),
		})
	}
	return warnings
}
