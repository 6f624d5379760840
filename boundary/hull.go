package boundary

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
)

// convexHull computes the convex hull of points with a Graham scan and
// returns it as a counter-clockwise loop. Collinear boundary points are
// dropped. Degenerate input (fewer than 3 distinct points, or all points
// collinear) yields nil.
func convexHull(points []orb.Point) model.Loop {
	if len(points) < 3 {
		return nil
	}
	pts := append([]orb.Point(nil), points...)

	// Pivot: lowest Y, then lowest X.
	pivot := pts[0]
	for _, p := range pts[1:] {
		if p[1] < pivot[1] || (p[1] == pivot[1] && p[0] < pivot[0]) {
			pivot = p
		}
	}

	// Sort by polar angle around the pivot; collinear ties by distance so
	// the scan consumes them in order.
	sort.Slice(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if a == pivot {
			return b != pivot
		}
		if b == pivot {
			return false
		}
		c := cross(pivot, a, b)
		if c != 0 {
			return c > 0
		}
		return squaredDist(pivot, a) < squaredDist(pivot, b)
	})

	var stack []orb.Point
	for _, p := range pts {
		if len(stack) > 0 && p == stack[len(stack)-1] {
			continue
		}
		for len(stack) >= 2 && cross(stack[len(stack)-2], stack[len(stack)-1], p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}

	hull := model.Loop(stack)
	if len(hull) < 3 || hull.Area() == 0 {
		return nil
	}
	return hull
}

// cross returns the z component of (a-o)×(b-o): positive when o→a→b turns
// counter-clockwise.
func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func squaredDist(a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	return dx*dx + dy*dy
}
