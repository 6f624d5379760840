package mask

import "image"

// moore lists the 8 neighbor offsets in clockwise order for a y-down
// raster, starting west.
var moore = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// Boundary extracts the outer contour of the set region with
// Moore-neighbor tracing. The walk starts at the topmost-leftmost set
// pixel and proceeds clockwise, scanning each pixel's 8 neighbors
// clockwise from the direction it arrived. It stops once it leaves the
// start pixel the same way it first did, or after 4·W·H steps on
// pathological input. Thin regions legitimately revisit pixels; the walk
// runs down one side and back up the other.
//
// An empty mask yields nil. An isolated pixel yields a single point.
func (m *Mask) Boundary() []image.Point {
	start, ok := m.first()
	if !ok {
		return nil
	}

	contour := []image.Point{start}
	// Row-major scan order guarantees the west neighbor of start is unset.
	backtrack := image.Pt(start.X-1, start.Y)
	p := start
	var firstMove image.Point

	maxSteps := 4 * m.W * m.H
	for step := 0; step < maxSteps; step++ {
		next, nextBacktrack, found := m.nextBoundary(p, backtrack)
		if !found {
			return contour // isolated pixel
		}
		if step == 0 {
			firstMove = next
		} else if p == start && next == firstMove {
			break // contour closed
		}
		contour = append(contour, next)
		p, backtrack = next, nextBacktrack
	}

	// The closing step re-appended the start pixel; drop it.
	if len(contour) > 1 && contour[len(contour)-1] == start {
		contour = contour[:len(contour)-1]
	}
	return contour
}

// nextBoundary scans the neighbors of p clockwise, beginning just after
// the backtrack pixel, and returns the first set pixel along with the
// unset pixel examined immediately before it (the next backtrack).
func (m *Mask) nextBoundary(p, backtrack image.Point) (next, nextBacktrack image.Point, found bool) {
	k := neighborIndex(p, backtrack)
	for i := 1; i <= 8; i++ {
		idx := (k + i) % 8
		q := p.Add(moore[idx])
		if m.At(q.X, q.Y) {
			return q, p.Add(moore[(k+i-1)%8]), true
		}
	}
	return image.Point{}, image.Point{}, false
}

// neighborIndex returns the position of q in p's clockwise neighbor ring.
func neighborIndex(p, q image.Point) int {
	d := q.Sub(p)
	for i, offset := range moore {
		if d == offset {
			return i
		}
	}
	return 0
}

// first returns the topmost-leftmost set pixel.
func (m *Mask) first() (image.Point, bool) {
	for i, b := range m.bits {
		if b {
			return image.Pt(i%m.W, i/m.W), true
		}
	}
	return image.Point{}, false
}
