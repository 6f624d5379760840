package model

import (
	"math"

	"github.com/paulmach/orb"
)

// Segment is a straight wall candidate between two endpoints, in drawing
// units. Segments are treated as immutable values: cleaning stages return
// new slices rather than mutating their input.
type Segment struct {
	Start orb.Point `json:"start"`
	End   orb.Point `json:"end"`
}

// Seg creates a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: orb.Point{x1, y1}, End: orb.Point{x2, y2}}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.End[0]-s.Start[0], s.End[1]-s.Start[1])
}

// Angle returns the direction of the segment in radians, measured from the
// +X axis, counter-clockwise, in (-π, π].
func (s Segment) Angle() float64 {
	return math.Atan2(s.End[1]-s.Start[1], s.End[0]-s.Start[0])
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() orb.Point {
	return orb.Point{(s.Start[0] + s.End[0]) / 2, (s.Start[1] + s.End[1]) / 2}
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Scaled returns the segment with both endpoints multiplied by factor.
func (s Segment) Scaled(factor float64) Segment {
	return Segment{
		Start: orb.Point{s.Start[0] * factor, s.Start[1] * factor},
		End:   orb.Point{s.End[0] * factor, s.End[1] * factor},
	}
}

// Bound returns the axis-aligned bounding box of the segment.
func (s Segment) Bound() orb.Bound {
	return orb.Bound{Min: s.Start, Max: s.Start}.Extend(s.End)
}

// Extent returns the bounding box covering every endpoint in segs. The zero
// bound is returned for an empty slice.
func Extent(segs []Segment) orb.Bound {
	if len(segs) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: segs[0].Start, Max: segs[0].Start}
	for _, s := range segs {
		b = b.Extend(s.Start)
		b = b.Extend(s.End)
	}
	return b
}

// Diagonal returns the corner-to-corner length of a bound. Cleaning
// tolerances are scaled from this so they adapt to the drawing extent.
func Diagonal(b orb.Bound) float64 {
	return math.Hypot(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
}

// Loop is a closed polygon stored as an ordered point sequence in drawing
// units. The first point is not repeated at the end; closure is implicit.
type Loop []orb.Point

// SignedArea returns the enclosed area via the shoelace formula: positive
// for counter-clockwise winding, negative for clockwise.
func (l Loop) SignedArea() float64 {
	if len(l) < 3 {
		return 0
	}
	var sum float64
	for i, p := range l {
		q := l[(i+1)%len(l)]
		sum += p[0]*q[1] - q[0]*p[1]
	}
	return sum / 2
}

// Area returns the absolute enclosed area.
func (l Loop) Area() float64 {
	return math.Abs(l.SignedArea())
}

// Perimeter returns the total edge length, including the closing edge.
func (l Loop) Perimeter() float64 {
	if len(l) < 2 {
		return 0
	}
	var total float64
	for i, p := range l {
		q := l[(i+1)%len(l)]
		total += math.Hypot(q[0]-p[0], q[1]-p[1])
	}
	return total
}

// Bound returns the axis-aligned bounding box of the loop.
func (l Loop) Bound() orb.Bound {
	if len(l) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: l[0], Max: l[0]}
	for _, p := range l[1:] {
		b = b.Extend(p)
	}
	return b
}

// Ring returns the loop as an orb.Ring with the first point repeated at the
// end, the closed form most geometry libraries expect.
func (l Loop) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(l)+1)
	ring = append(ring, l...)
	if len(l) > 0 {
		ring = append(ring, l[0])
	}
	return ring
}

// Scaled returns a copy of the loop with every coordinate multiplied by
// factor.
func (l Loop) Scaled(factor float64) Loop {
	out := make(Loop, len(l))
	for i, p := range l {
		out[i] = orb.Point{p[0] * factor, p[1] * factor}
	}
	return out
}

// Segments returns the loop's edges as segments, including the closing edge
// from the last point back to the first.
func (l Loop) Segments() []Segment {
	if len(l) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(l))
	for i, p := range l {
		q := l[(i+1)%len(l)]
		segs = append(segs, Segment{Start: p, End: q})
	}
	return segs
}
