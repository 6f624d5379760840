package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

// ============================================================================
// Segment Tests
// ============================================================================

func TestSegmentLength(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		expected float64
	}{
		{"zero length", Seg(1, 1, 1, 1), 0},
		{"horizontal", Seg(0, 0, 3, 0), 3},
		{"vertical", Seg(0, 0, 0, 4), 4},
		{"diagonal 3-4-5", Seg(0, 0, 3, 4), 5},
		{"negative coords", Seg(-1, -1, 2, 3), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.seg.Length()
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Length() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSegmentAngle(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		expected float64
	}{
		{"east", Seg(0, 0, 5, 0), 0},
		{"north", Seg(0, 0, 0, 5), math.Pi / 2},
		{"west", Seg(0, 0, -5, 0), math.Pi},
		{"south", Seg(0, 0, 0, -5), -math.Pi / 2},
		{"northeast", Seg(0, 0, 1, 1), math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.seg.Angle()
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Angle() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSegmentMidpoint(t *testing.T) {
	mid := Seg(0, 0, 10, 4).Midpoint()
	if mid[0] != 5 || mid[1] != 2 {
		t.Errorf("Midpoint() = %v, want {5 2}", mid)
	}
}

func TestSegmentReversed(t *testing.T) {
	seg := Seg(1, 2, 3, 4)
	rev := seg.Reversed()
	if rev.Start != seg.End || rev.End != seg.Start {
		t.Errorf("Reversed() = %+v, want endpoints swapped", rev)
	}
	if math.Abs(rev.Length()-seg.Length()) > 1e-12 {
		t.Errorf("Reversed() changed length: %v vs %v", rev.Length(), seg.Length())
	}
}

func TestSegmentScaled(t *testing.T) {
	seg := Seg(1, 2, 3, 4).Scaled(10)
	want := Seg(10, 20, 30, 40)
	if seg != want {
		t.Errorf("Scaled(10) = %+v, want %+v", seg, want)
	}
}

func TestExtent(t *testing.T) {
	segs := []Segment{
		Seg(0, 0, 10, 0),
		Seg(10, 0, 10, 6),
		Seg(-2, 3, 4, 8),
	}
	b := Extent(segs)
	if b.Min != (orb.Point{-2, 0}) || b.Max != (orb.Point{10, 8}) {
		t.Errorf("Extent() = %+v, want min {-2 0} max {10 8}", b)
	}

	if got := Extent(nil); !got.IsZero() {
		t.Errorf("Extent(nil) = %+v, want zero bound", got)
	}
}

func TestDiagonal(t *testing.T) {
	b := Extent([]Segment{Seg(0, 0, 3, 4)})
	if got := Diagonal(b); math.Abs(got-5) > 0.0001 {
		t.Errorf("Diagonal() = %v, want 5", got)
	}
}

// ============================================================================
// Loop Tests
// ============================================================================

func TestLoopSignedArea(t *testing.T) {
	tests := []struct {
		name     string
		loop     Loop
		expected float64
	}{
		{"empty", Loop{}, 0},
		{"two points", Loop{{0, 0}, {1, 1}}, 0},
		{"ccw square", Loop{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 100},
		{"cw square", Loop{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, -100},
		{"ccw triangle", Loop{{0, 0}, {4, 0}, {0, 3}}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.loop.SignedArea()
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("SignedArea() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoopArea(t *testing.T) {
	cw := Loop{{0, 0}, {0, 6000}, {10000, 6000}, {10000, 0}}
	if got := cw.Area(); math.Abs(got-60000000) > 0.001 {
		t.Errorf("Area() = %v, want 60000000", got)
	}
}

func TestLoopPerimeter(t *testing.T) {
	loop := Loop{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}}
	if got := loop.Perimeter(); math.Abs(got-32000) > 0.0001 {
		t.Errorf("Perimeter() = %v, want 32000", got)
	}
}

func TestLoopBound(t *testing.T) {
	loop := Loop{{2, 3}, {8, 1}, {5, 9}}
	b := loop.Bound()
	if b.Min != (orb.Point{2, 1}) || b.Max != (orb.Point{8, 9}) {
		t.Errorf("Bound() = %+v, want min {2 1} max {8 9}", b)
	}
}

func TestLoopRing(t *testing.T) {
	loop := Loop{{0, 0}, {10, 0}, {10, 10}}
	ring := loop.Ring()
	if len(ring) != 4 {
		t.Fatalf("Ring() length = %d, want 4", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("Ring() not closed: first %v, last %v", ring[0], ring[len(ring)-1])
	}
}

func TestLoopSegments(t *testing.T) {
	loop := Loop{{0, 0}, {10, 0}, {10, 6}}
	segs := loop.Segments()
	if len(segs) != 3 {
		t.Fatalf("Segments() length = %d, want 3", len(segs))
	}
	last := segs[len(segs)-1]
	if last.Start != (orb.Point{10, 6}) || last.End != (orb.Point{0, 0}) {
		t.Errorf("closing segment = %+v, want {10 6} -> {0 0}", last)
	}
}

func TestLoopScaled(t *testing.T) {
	loop := Loop{{1, 2}, {3, 4}}.Scaled(10)
	if loop[0] != (orb.Point{10, 20}) || loop[1] != (orb.Point{30, 40}) {
		t.Errorf("Scaled(10) = %v", loop)
	}
}

// ============================================================================
// Outline Tests
// ============================================================================

func TestOutlineLoop(t *testing.T) {
	outline := Outline{
		{XFrac: 0.1, YFrac: 0.2},
		{XFrac: 0.9, YFrac: 0.2},
		{XFrac: 0.9, YFrac: 0.8},
		{XFrac: 0.1, YFrac: 0.8},
	}
	loop := outline.Loop(1000, 500)
	if len(loop) != 4 {
		t.Fatalf("Loop() length = %d, want 4", len(loop))
	}
	// Y flips: top of the image becomes the top of the drawing plane.
	if loop[0] != (orb.Point{100, 400}) {
		t.Errorf("Loop()[0] = %v, want {100 400}", loop[0])
	}
	wantArea := 0.8 * 1000 * 0.6 * 500
	if got := loop.Area(); math.Abs(got-wantArea) > 0.0001 {
		t.Errorf("Loop().Area() = %v, want %v", got, wantArea)
	}
}

func TestOutlineBound(t *testing.T) {
	outline := Outline{
		{XFrac: 0.3, YFrac: 0.7},
		{XFrac: 0.6, YFrac: 0.1},
		{XFrac: 0.2, YFrac: 0.5},
	}
	min, max := outline.Bound()
	if min.XFrac != 0.2 || min.YFrac != 0.1 {
		t.Errorf("Bound() min = %+v, want {0.2 0.1}", min)
	}
	if max.XFrac != 0.6 || max.YFrac != 0.7 {
		t.Errorf("Bound() max = %+v, want {0.6 0.7}", max)
	}

	min, max = Outline(nil).Bound()
	if min != (OutlinePoint{}) || max != (OutlinePoint{}) {
		t.Errorf("Bound() on nil = %+v/%+v, want zero points", min, max)
	}
}

// ============================================================================
// Unit Tests
// ============================================================================

func TestUnitFactor(t *testing.T) {
	tests := []struct {
		unit   Unit
		factor float64
	}{
		{Millimeter, 1},
		{Centimeter, 10},
		{Meter, 1000},
	}

	for _, tt := range tests {
		if got := tt.unit.Factor(); got != tt.factor {
			t.Errorf("%v.Factor() = %v, want %v", tt.unit, got, tt.factor)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input string
		unit  Unit
		ok    bool
	}{
		{"mm", Millimeter, true},
		{"MM", Millimeter, true},
		{" cm ", Centimeter, true},
		{"m", Meter, true},
		{"metre", Meter, true},
		{"inch", Millimeter, false},
		{"", Millimeter, false},
	}

	for _, tt := range tests {
		unit, ok := ParseUnit(tt.input)
		if unit != tt.unit || ok != tt.ok {
			t.Errorf("ParseUnit(%q) = %v, %v, want %v, %v", tt.input, unit, ok, tt.unit, tt.ok)
		}
	}
}

// ============================================================================
// Entity Tests
// ============================================================================

func TestEntityTypes(t *testing.T) {
	tests := []struct {
		entity Entity
		typ    EntityType
		str    string
	}{
		{Line{}, EntityTypeLine, "Line"},
		{Polyline{}, EntityTypePolyline, "Polyline"},
		{Arc{}, EntityTypeArc, "Arc"},
		{Spline{}, EntityTypeSpline, "Spline"},
		{Dimension{}, EntityTypeDimension, "Dimension"},
	}

	for _, tt := range tests {
		if got := tt.entity.Type(); got != tt.typ {
			t.Errorf("Type() = %v, want %v", got, tt.typ)
		}
		if got := tt.typ.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}

	if got := EntityTypeUnknown.String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}

func TestDimensionVertical(t *testing.T) {
	tests := []struct {
		name     string
		dim      Dimension
		vertical bool
	}{
		{"horizontal", Dimension{Start: orb.Point{0, 0}, End: orb.Point{100, 5}}, false},
		{"vertical", Dimension{Start: orb.Point{0, 0}, End: orb.Point{5, 100}}, true},
		{"vertical downward", Dimension{Start: orb.Point{0, 100}, End: orb.Point{5, 0}}, true},
		{"exact diagonal", Dimension{Start: orb.Point{0, 0}, End: orb.Point{50, 50}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dim.Vertical(); got != tt.vertical {
				t.Errorf("Vertical() = %v, want %v", got, tt.vertical)
			}
		})
	}
}

// ============================================================================
// WallPlan Tests
// ============================================================================

func TestWallPlanJSON(t *testing.T) {
	plan := WallPlan{
		Segments: []WallSegment{
			{Start: orb.Point{0, 0}, End: orb.Point{10000, 0}, Length: 10000, AngleDegrees: 0},
		},
		Perimeter:  10000,
		Height:     nil,
		HeightNote: "height not found in source geometry",
		Unit:       "mm",
	}

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)

	if !strings.Contains(s, `"buildingHeight":null`) {
		t.Errorf("JSON missing null buildingHeight: %s", s)
	}
	if !strings.Contains(s, `"unit":"mm"`) {
		t.Errorf("JSON missing unit: %s", s)
	}
	if strings.Contains(s, "cleanedSegments") {
		t.Errorf("empty cleaned list should be omitted: %s", s)
	}

	h := 5800.0
	plan.Height = &h
	data, err = json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"buildingHeight":5800`) {
		t.Errorf("JSON missing resolved height: %s", data)
	}
}
