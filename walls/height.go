package walls

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// heightKeywords match dimension labels naming a building height.
// Matching happens after width folding and upper-casing, so full-width
// CAD text such as Ｈ＝5800 matches too.
var heightKeywords = []string{"軒高", "高さ", "建物高", "最高高", "GL", "FL", "H="}

// Hints carries height evidence gathered from the source drawing, in
// source units.
type Hints struct {
	// ZMin and ZMax span the geometry's elevation range when HasZ is
	// true.
	ZMin, ZMax float64
	HasZ       bool

	// Dimensions are the drawing's dimension annotations.
	Dimensions []DimensionHint
}

// DimensionHint is one dimension annotation.
type DimensionHint struct {
	// Value is the measured quantity in source units.
	Value float64

	// Label is the annotation text next to the dimension, if any.
	Label string

	// Vertical is true when the dimension runs along the vertical axis.
	Vertical bool
}

// resolveHeight picks the building height in millimeters, trying sources
// in order of reliability. It never invents a value: when every source
// fails, the height stays nil and the note says so.
func (e *Extractor) resolveHeight(hints Hints, factor float64) (*float64, string) {
	// Real elevation data wins.
	if hints.HasZ {
		if h := (hints.ZMax - hints.ZMin) * factor; h > 0 {
			return &h, "height from 3D elevation range"
		}
	}

	// A vertical dimension labeled as a height.
	for _, d := range hints.Dimensions {
		if !d.Vertical || d.Value <= 0 {
			continue
		}
		if labelNamesHeight(d.Label) {
			h := d.Value * factor
			return &h, fmt.Sprintf("height from dimension labeled %q", d.Label)
		}
	}

	// Any vertical dimension in a plausible building range.
	for _, d := range hints.Dimensions {
		if !d.Vertical || d.Value <= 0 {
			continue
		}
		if h := d.Value * factor; h >= e.config.MinHeightMM && h <= e.config.MaxHeightMM {
			return &h, "height from plausible vertical dimension"
		}
	}

	return nil, "building height not found in drawing; add a vertical dimension or 3D data"
}

// labelNamesHeight reports whether a dimension label names a building
// height.
func labelNamesHeight(label string) bool {
	folded := strings.ToUpper(width.Narrow.String(label))
	for _, kw := range heightKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
