package raster

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/ykawano/planform/model"
)

const (
	// Douglas-Peucker tolerances as fractions of the shorter image side.
	// The first pass is already aggressive; the second fires only when too
	// many vertices survive. Architectural exteriors are expected to
	// reduce to a handful of corners.
	epsilonRatio        = 0.10
	epsilonRetryRatio   = 0.15
	maxSimplifiedPoints = 12

	// Axis snapping thresholds: an edge is forced flat when its minor
	// delta is small both relative to its major delta and in absolute
	// pixels.
	axisSlopeRatio     = 0.15
	axisPixelTolerance = 12.0

	// A vertex whose neighbors continue within this normalized cross
	// product is treated as collinear.
	collinearCross = 0.03

	// Edges shorter than this fraction of the shorter image side are
	// residual interior detail.
	minEdgeFrac = 0.05

	// Fallback gates: more vertices than any plausible exterior, or less
	// area, replaces the result with the bounding box.
	maxOutlineVertices = 8
	minOutlineAreaFrac = 0.05
)

// simplifyOutline reduces a traced pixel contour to polygon vertices in
// working-pixel space.
func simplifyOutline(contour []image.Point, w, h int) []orb.Point {
	ring := make(orb.LineString, 0, len(contour)+1)
	for _, p := range contour {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	// Close the ring so simplification cannot cut the wrap-around corner.
	ring = append(ring, ring[0])

	shorter := math.Min(float64(w), float64(h))

	// Step 9: two escalating simplification passes.
	points := openRing(douglasPeucker(ring, epsilonRatio*shorter))
	if len(points) > maxSimplifiedPoints {
		closed := append(orb.LineString(points), points[0])
		points = openRing(douglasPeucker(closed, epsilonRetryRatio*shorter))
	}

	// Step 10: square up nearly axis-parallel edges.
	points = snapAxes(points)

	// Step 11: drop repeated points and straight-through vertices.
	points = dropDuplicatePoints(points)
	points = mergeCollinear(points)

	// Step 12: collapse residual short edges.
	return dropShortEdges(points, minEdgeFrac*shorter)
}

// applyFallback replaces an implausible polygon with the axis-aligned
// bounding box of its points, guaranteeing a workable quadrilateral.
func applyFallback(points []orb.Point, w, h int) []orb.Point {
	if len(points) < 3 {
		return points
	}
	if len(points) > maxOutlineVertices || model.Loop(points).Area() < minOutlineAreaFrac*float64(w*h) {
		return boundingBox(points)
	}
	return points
}

// douglasPeucker simplifies a closed line string, falling back to the
// input when the result degenerates.
func douglasPeucker(ring orb.LineString, epsilon float64) orb.LineString {
	s := simplify.DouglasPeucker(epsilon).Simplify(ring.Clone())
	result, ok := s.(orb.LineString)
	if !ok || len(result) < 4 {
		return ring
	}
	return result
}

// openRing drops the closing duplicate vertex.
func openRing(ring orb.LineString) []orb.Point {
	if len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	return []orb.Point(ring)
}

// snapAxes forces nearly horizontal or vertical edges exactly flat by
// averaging the off-axis coordinate, correcting scan skew. Edges wrap
// around the polygon.
func snapAxes(points []orb.Point) []orb.Point {
	out := append([]orb.Point(nil), points...)
	n := len(out)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := math.Abs(out[j][0] - out[i][0])
		dy := math.Abs(out[j][1] - out[i][1])
		switch {
		case dy <= axisSlopeRatio*dx && dy <= axisPixelTolerance:
			mid := (out[i][1] + out[j][1]) / 2
			out[i][1] = mid
			out[j][1] = mid
		case dx <= axisSlopeRatio*dy && dx <= axisPixelTolerance:
			mid := (out[i][0] + out[j][0]) / 2
			out[i][0] = mid
			out[j][0] = mid
		}
	}
	return out
}

// dropDuplicatePoints removes consecutive repeats, including the
// wrap-around pair.
func dropDuplicatePoints(points []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && samePoint(p, out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// mergeCollinear drops vertices whose neighboring edges continue in the
// same direction, judged by a normalized cross product.
func mergeCollinear(points []orb.Point) []orb.Point {
	n := len(points)
	if n < 3 {
		return points
	}
	out := make([]orb.Point, 0, n)
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		next := points[(i+1)%n]
		if !straightThrough(prev, points[i], next) {
			out = append(out, points[i])
		}
	}
	return out
}

// straightThrough reports whether cur lies on the straight continuation
// from prev to next.
func straightThrough(prev, cur, next orb.Point) bool {
	ax := cur[0] - prev[0]
	ay := cur[1] - prev[1]
	bx := next[0] - cur[0]
	by := next[1] - cur[1]
	la := math.Hypot(ax, ay)
	lb := math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return true
	}
	if ax*bx+ay*by <= 0 {
		return false // reversal, not continuation
	}
	return math.Abs(ax*by-ay*bx)/(la*lb) < collinearCross
}

// dropShortEdges collapses polygon edges shorter than minLen by replacing
// both endpoints with their midpoint, shortest first, never going below a
// triangle.
func dropShortEdges(points []orb.Point, minLen float64) []orb.Point {
	out := append([]orb.Point(nil), points...)
	for len(out) > 3 {
		n := len(out)
		shortest := -1
		best := minLen
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if d := math.Hypot(out[j][0]-out[i][0], out[j][1]-out[i][1]); d < best {
				best = d
				shortest = i
			}
		}
		if shortest < 0 {
			break
		}
		j := (shortest + 1) % len(out)
		mid := orb.Point{(out[shortest][0] + out[j][0]) / 2, (out[shortest][1] + out[j][1]) / 2}
		out[shortest] = mid
		out = append(out[:j], out[j+1:]...)
	}
	return out
}

// boundingBox returns the axis-aligned rectangle around points, wound
// clockwise in image space.
func boundingBox(points []orb.Point) []orb.Point {
	b := orb.Bound{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return []orb.Point{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
	}
}

func samePoint(a, b orb.Point) bool {
	return math.Hypot(a[0]-b[0], a[1]-b[1]) < 1e-9
}
