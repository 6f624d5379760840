package model

import "github.com/paulmach/orb"

// OutlinePoint is a polygon vertex in image-fraction space: both coordinates
// are fractions (0-1) of image width and height, so the same outline
// describes the original scan at any resolution.
type OutlinePoint struct {
	XFrac float64 `json:"xFrac"`
	YFrac float64 `json:"yFrac"`
}

// Outline is the raster detector's result polygon, ordered clockwise in
// image coordinates (Y grows downward). A nil outline means no plausible
// building shape was found.
type Outline []OutlinePoint

// Loop scales the outline into a Loop spanning width × height drawing
// units. Y is flipped so the loop lives in the usual Y-up drawing plane.
func (o Outline) Loop(width, height float64) Loop {
	if len(o) == 0 {
		return nil
	}
	loop := make(Loop, len(o))
	for i, p := range o {
		loop[i] = orb.Point{p.XFrac * width, (1 - p.YFrac) * height}
	}
	return loop
}

// Bound returns the outline's fractional bounding box as min and max
// corners. Both are zero for an empty outline.
func (o Outline) Bound() (min, max OutlinePoint) {
	if len(o) == 0 {
		return OutlinePoint{}, OutlinePoint{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		if p.XFrac < min.XFrac {
			min.XFrac = p.XFrac
		}
		if p.YFrac < min.YFrac {
			min.YFrac = p.YFrac
		}
		if p.XFrac > max.XFrac {
			max.XFrac = p.XFrac
		}
		if p.YFrac > max.YFrac {
			max.YFrac = p.YFrac
		}
	}
	return min, max
}
