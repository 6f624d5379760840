package model

import "github.com/paulmach/orb"

// EntityType identifies the concrete variant of an Entity.
type EntityType int

const (
	EntityTypeUnknown EntityType = iota
	EntityTypeLine
	EntityTypePolyline
	EntityTypeArc
	EntityTypeSpline
	EntityTypeDimension
)

func (et EntityType) String() string {
	switch et {
	case EntityTypeLine:
		return "Line"
	case EntityTypePolyline:
		return "Polyline"
	case EntityTypeArc:
		return "Arc"
	case EntityTypeSpline:
		return "Spline"
	case EntityTypeDimension:
		return "Dimension"
	default:
		return "Unknown"
	}
}

// Entity is the closed set of geometry variants accepted from the vector
// extraction collaborator. Each variant carries only the fields the pipeline
// consumes; richer CAD semantics (layers, styles, block references) are
// resolved upstream and never reach this core.
type Entity interface {
	Type() EntityType
}

// Line is a straight entity between two points. Sources with 3D geometry may
// carry start and end elevations; HasZ reports whether they are meaningful.
type Line struct {
	Start  orb.Point
	End    orb.Point
	StartZ float64
	EndZ   float64
	HasZ   bool
}

// Type returns EntityTypeLine.
func (l Line) Type() EntityType { return EntityTypeLine }

// Polyline is a chain of vertices. A closed polyline implies one more edge
// from the last vertex back to the first.
type Polyline struct {
	Points []orb.Point
	Closed bool
}

// Type returns EntityTypePolyline.
func (p Polyline) Type() EntityType { return EntityTypePolyline }

// Arc is a circular arc. Angles are degrees, counter-clockwise from the +X
// axis; the arc sweeps from StartDeg to EndDeg.
type Arc struct {
	Center   orb.Point
	Radius   float64
	StartDeg float64
	EndDeg   float64
}

// Type returns EntityTypeArc.
func (a Arc) Type() EntityType { return EntityTypeArc }

// Spline is a freeform curve reduced to its control polygon. True curve
// evaluation happens upstream; by the time geometry reaches this core an
// approximation by control-point chords is acceptable.
type Spline struct {
	Control []orb.Point
}

// Type returns EntityTypeSpline.
func (s Spline) Type() EntityType { return EntityTypeSpline }

// Dimension is a measurement annotation. It never contributes outline
// geometry; its value, label and orientation feed height resolution.
type Dimension struct {
	// Value is the measured distance in drawing units.
	Value float64

	// Text is the annotation label as drawn. Labels from Japanese drawings
	// frequently contain full-width characters.
	Text string

	// Start and End are the dimension's definition points; their
	// orientation decides whether the dimension measures a vertical span.
	Start orb.Point
	End   orb.Point
}

// Type returns EntityTypeDimension.
func (d Dimension) Type() EntityType { return EntityTypeDimension }

// Vertical reports whether the dimension's definition points span more
// distance vertically than horizontally.
func (d Dimension) Vertical() bool {
	dx := d.End[0] - d.Start[0]
	dy := d.End[1] - d.Start[1]
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dy > dx
}
