package model

import (
	"strings"

	"github.com/paulmach/orb"
)

// Unit identifies the drawing unit of source geometry.
type Unit int

const (
	Millimeter Unit = iota
	Centimeter
	Meter
)

// Factor returns the multiplier that converts a value in this unit to
// millimeters.
func (u Unit) Factor() float64 {
	switch u {
	case Centimeter:
		return 10
	case Meter:
		return 1000
	default:
		return 1
	}
}

// String returns the unit's conventional abbreviation.
func (u Unit) String() string {
	switch u {
	case Centimeter:
		return "cm"
	case Meter:
		return "m"
	default:
		return "mm"
	}
}

// ParseUnit maps a unit string to a Unit. Unknown strings map to Millimeter
// with ok=false so callers can report the fallback instead of hiding it.
func ParseUnit(s string) (unit Unit, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimetre":
		return Millimeter, true
	case "cm", "centimeter", "centimetre":
		return Centimeter, true
	case "m", "meter", "metre":
		return Meter, true
	}
	return Millimeter, false
}

// WallSegment is one exterior wall edge. All coordinates and lengths are in
// millimeters regardless of the source drawing unit.
type WallSegment struct {
	// Start and End are the wall endpoints in millimeters.
	Start orb.Point `json:"start"`
	End   orb.Point `json:"end"`

	// Length is the Euclidean edge length in millimeters.
	Length float64 `json:"length"`

	// AngleDegrees is the edge direction in degrees, measured from the +X
	// axis, increasing counter-clockwise, in [0, 360).
	AngleDegrees float64 `json:"angleDegrees"`
}

// WallPlan is the aggregate handed to the downstream quantity calculator.
// Callers commonly persist it as JSON; a nil Height marshals as null, which
// consumers must treat as "ask the user", never as a hidden default.
type WallPlan struct {
	// Segments are the exterior walls in loop order, wrapping around.
	Segments []WallSegment `json:"wallSegments"`

	// Perimeter is the sum of all segment lengths in millimeters.
	Perimeter float64 `json:"perimeterTotal"`

	// Height is the building height in millimeters, or nil when it could
	// not be determined from the source geometry.
	Height *float64 `json:"buildingHeight"`

	// HeightNote describes how the height was resolved, or why it is
	// unknown.
	HeightNote string `json:"heightNote"`

	// Unit is always "mm".
	Unit string `json:"unit"`

	// Cleaned optionally carries the full cleaned segment list, already in
	// millimeters, for reference rendering only.
	Cleaned []Segment `json:"cleanedSegments,omitempty"`
}
