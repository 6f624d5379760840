package vector

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
	"github.com/ykawano/planform/walls"
)

const (
	// Arcs are linearized into chords of roughly this angular step.
	arcChordDeg = 15.0

	// maxArcChords bounds the chord count per arc; a full circle at the
	// default step hits it exactly.
	maxArcChords = 24
)

// Extract flattens entities into line segments and collects height
// evidence on the way. Dimensions contribute hints only.
func Extract(entities []model.Entity) ([]model.Segment, walls.Hints) {
	var segments []model.Segment
	var hints walls.Hints

	for _, entity := range entities {
		switch e := entity.(type) {
		case model.Line:
			segments = appendSegment(segments, e.Start, e.End)
			if e.HasZ {
				recordZ(&hints, e.StartZ)
				recordZ(&hints, e.EndZ)
			}
		case model.Polyline:
			segments = appendChain(segments, e.Points, e.Closed)
		case model.Arc:
			segments = appendArc(segments, e)
		case model.Spline:
			segments = appendChain(segments, e.Control, false)
		case model.Dimension:
			hints.Dimensions = append(hints.Dimensions, walls.DimensionHint{
				Value:    e.Value,
				Label:    e.Text,
				Vertical: e.Vertical(),
			})
		}
	}
	return segments, hints
}

// recordZ folds one elevation sample into the hint range.
func recordZ(hints *walls.Hints, z float64) {
	if !hints.HasZ {
		hints.HasZ = true
		hints.ZMin = z
		hints.ZMax = z
		return
	}
	if z < hints.ZMin {
		hints.ZMin = z
	}
	if z > hints.ZMax {
		hints.ZMax = z
	}
}

// appendSegment adds one segment unless it is degenerate.
func appendSegment(segments []model.Segment, start, end orb.Point) []model.Segment {
	seg := model.Segment{Start: start, End: end}
	if seg.Length() == 0 {
		return segments
	}
	return append(segments, seg)
}

// appendChain adds edges between consecutive points, plus the closing
// edge for closed chains.
func appendChain(segments []model.Segment, points []orb.Point, closed bool) []model.Segment {
	for i := 1; i < len(points); i++ {
		segments = appendSegment(segments, points[i-1], points[i])
	}
	if closed && len(points) >= 3 {
		segments = appendSegment(segments, points[len(points)-1], points[0])
	}
	return segments
}

// appendArc linearizes an arc into chords. The sweep runs
// counter-clockwise from StartDeg to EndDeg, wrapping through 0° when
// needed; coincident angles mean a full circle.
func appendArc(segments []model.Segment, arc model.Arc) []model.Segment {
	if arc.Radius <= 0 {
		return segments
	}
	sweep := math.Mod(arc.EndDeg-arc.StartDeg, 360)
	if sweep <= 0 {
		sweep += 360
	}
	chords := int(math.Ceil(sweep / arcChordDeg))
	if chords > maxArcChords {
		chords = maxArcChords
	}

	prev := arcPoint(arc, arc.StartDeg)
	for i := 1; i <= chords; i++ {
		next := arcPoint(arc, arc.StartDeg+sweep*float64(i)/float64(chords))
		segments = appendSegment(segments, prev, next)
		prev = next
	}
	return segments
}

// arcPoint evaluates the arc's circle at the given angle in degrees.
func arcPoint(arc model.Arc, deg float64) orb.Point {
	rad := deg * math.Pi / 180
	return orb.Point{
		arc.Center[0] + arc.Radius*math.Cos(rad),
		arc.Center[1] + arc.Radius*math.Sin(rad),
	}
}
