package raster

import (
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/paulmach/orb"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ykawano/planform/internal/mask"
	"github.com/ykawano/planform/model"
)

// Building-pixel fraction outside this band marks the segmentation
// implausible: near zero means no closed contour was found, near one
// means the threshold swallowed the whole page.
const (
	minBuildingFrac = 0.02
	maxBuildingFrac = 0.92
)

// Config adjusts outline detection.
type Config struct {
	// WorkingSize bounds the longest image side in pixels before any
	// per-pixel work happens.
	WorkingSize int

	// Threshold is the grayscale cutoff separating wall pixels (darker)
	// from background (lighter).
	Threshold uint8

	// DilateRadius is the box dilation radius in working pixels, sized to
	// bridge door and window openings that break wall lines.
	DilateRadius int
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		WorkingSize:  500,
		Threshold:    200,
		DilateRadius: 4,
	}
}

// Detector turns scanned floor plan images into building outlines.
type Detector struct {
	config Config
}

// New creates a Detector with default configuration.
func New() *Detector {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Detector with custom configuration. Zero values
// fall back to their defaults; a negative DilateRadius disables dilation.
func NewWithConfig(config Config) *Detector {
	defaults := DefaultConfig()
	if config.WorkingSize <= 0 {
		config.WorkingSize = defaults.WorkingSize
	}
	if config.Threshold == 0 {
		config.Threshold = defaults.Threshold
	}
	if config.DilateRadius == 0 {
		config.DilateRadius = defaults.DilateRadius
	} else if config.DilateRadius < 0 {
		config.DilateRadius = 0
	}
	return &Detector{config: config}
}

// DetectFile decodes the image at path and runs outline detection on it.
// An unreadable or undecodable file yields nil.
func (d *Detector) DetectFile(path string) model.Outline {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return d.DetectImage(img)
}

// DetectImage extracts the building outline from img, or nil when no
// plausible outline exists.
func (d *Detector) DetectImage(img image.Image) model.Outline {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil
	}

	// Step 1: downscale to the working resolution and convert to
	// grayscale.
	working := d.downscale(img)
	w := working.Bounds().Dx()
	h := working.Bounds().Dy()

	// Step 2: threshold dark pixels into a wall mask.
	binary := segment.Threshold(working, d.config.Threshold)
	walls := mask.FromGray(binary, 128)

	// Step 3: dilate to bridge door and window gaps.
	grown := walls.Dilate(d.config.DilateRadius)

	// Step 4: flood from the border; everything the flood cannot reach is
	// candidate building.
	building := grown.Exterior().Invert()

	// Step 5: reject implausible building fractions.
	frac := float64(building.Count()) / float64(w*h)
	if frac < minBuildingFrac || frac > maxBuildingFrac {
		return nil
	}

	// Steps 6-7: keep the largest connected component and fill its
	// interior holes.
	solid := building.LargestComponent().FillHoles()

	// Step 8: trace the outer contour.
	contour := solid.Boundary()
	if len(contour) < 3 {
		return nil
	}

	// Steps 9-12: simplify the contour to a handful of vertices.
	points := simplifyOutline(contour, w, h)

	// Step 13: bounding-box fallback for vertex counts or areas no real
	// exterior produces.
	points = applyFallback(points, w, h)
	if len(points) < 3 || model.Loop(points).Area() == 0 {
		return nil
	}
	return toFractions(points, w, h)
}

// downscale bounds the longest image side to the working size, keeping
// aspect ratio, and converts the result to grayscale.
func (d *Detector) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	size := d.config.WorkingSize

	if w > size || h > size {
		if w >= h {
			img = imaging.Resize(img, size, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, size, imaging.Lanczos)
		}
	}
	return imaging.Grayscale(img)
}

// toFractions converts working-pixel vertices to image-fraction space.
func toFractions(points []orb.Point, w, h int) model.Outline {
	out := make(model.Outline, len(points))
	for i, p := range points {
		out[i] = model.OutlinePoint{
			XFrac: p[0] / float64(w),
			YFrac: p[1] / float64(h),
		}
	}
	return out
}
