package walls

import (
	"math"
	"strings"
	"testing"

	"github.com/ykawano/planform/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================================
// Wall Extraction Tests
// ============================================================================

func TestExtractRectangle(t *testing.T) {
	loop := model.Loop{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}}

	plan := Extract(loop, model.Millimeter, Hints{})
	if len(plan.Segments) != 4 {
		t.Fatalf("plan has %d segments, want 4", len(plan.Segments))
	}

	wantLengths := []float64{10000, 6000, 10000, 6000}
	wantAngles := []float64{0, 90, 180, 270}
	for i, seg := range plan.Segments {
		if !almostEqual(seg.Length, wantLengths[i]) {
			t.Errorf("segment %d length = %v, want %v", i, seg.Length, wantLengths[i])
		}
		if !almostEqual(seg.AngleDegrees, wantAngles[i]) {
			t.Errorf("segment %d angle = %v, want %v", i, seg.AngleDegrees, wantAngles[i])
		}
	}
	if !almostEqual(plan.Perimeter, 32000) {
		t.Errorf("Perimeter = %v, want 32000", plan.Perimeter)
	}
	if plan.Unit != "mm" {
		t.Errorf("Unit = %q, want mm", plan.Unit)
	}
	if plan.Height != nil {
		t.Errorf("Height = %v, want nil without hints", *plan.Height)
	}
	if plan.HeightNote == "" {
		t.Error("HeightNote empty, want an explanation")
	}
}

func TestExtractUnitsAgree(t *testing.T) {
	mm := model.Loop{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}}
	cm := mm.Scaled(0.1)

	fromMM := Extract(mm, model.Millimeter, Hints{})
	fromCM := Extract(cm, model.Centimeter, Hints{})

	if !almostEqual(fromMM.Perimeter, fromCM.Perimeter) {
		t.Errorf("perimeters differ: mm %v, cm %v", fromMM.Perimeter, fromCM.Perimeter)
	}
	for i := range fromMM.Segments {
		a, b := fromMM.Segments[i], fromCM.Segments[i]
		if !almostEqual(a.Length, b.Length) {
			t.Errorf("segment %d lengths differ: mm %v, cm %v", i, a.Length, b.Length)
		}
		if !almostEqual(a.Start[0], b.Start[0]) || !almostEqual(a.Start[1], b.Start[1]) {
			t.Errorf("segment %d starts differ: mm %v, cm %v", i, a.Start, b.Start)
		}
	}
}

func TestExtractDegenerateLoops(t *testing.T) {
	for _, loop := range []model.Loop{nil, {{5, 5}}} {
		plan := Extract(loop, model.Millimeter, Hints{})
		if len(plan.Segments) != 0 {
			t.Errorf("Extract(%v) produced %d segments, want 0", loop, len(plan.Segments))
		}
		if plan.Perimeter != 0 {
			t.Errorf("Extract(%v) perimeter = %v, want 0", loop, plan.Perimeter)
		}
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		name string
		p, q [2]float64
		want float64
	}{
		{"east", [2]float64{0, 0}, [2]float64{10, 0}, 0},
		{"north", [2]float64{0, 0}, [2]float64{0, 10}, 90},
		{"west", [2]float64{10, 0}, [2]float64{0, 0}, 180},
		{"south", [2]float64{0, 10}, [2]float64{0, 0}, 270},
		{"northeast", [2]float64{0, 0}, [2]float64{10, 10}, 45},
		{"southwest", [2]float64{10, 10}, [2]float64{0, 0}, 225},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := angleDegrees(tt.p, tt.q); !almostEqual(got, tt.want) {
				t.Errorf("angleDegrees(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestNewWithConfigDefaults(t *testing.T) {
	e := NewWithConfig(Config{})
	defaults := DefaultConfig()
	if e.config.MinHeightMM != defaults.MinHeightMM {
		t.Errorf("MinHeightMM = %v, want %v", e.config.MinHeightMM, defaults.MinHeightMM)
	}
	if e.config.MaxHeightMM != defaults.MaxHeightMM {
		t.Errorf("MaxHeightMM = %v, want %v", e.config.MaxHeightMM, defaults.MaxHeightMM)
	}
}

func TestCustomHeightBand(t *testing.T) {
	hints := Hints{Dimensions: []DimensionHint{{Value: 2400, Vertical: true}}}

	e := NewWithConfig(Config{MinHeightMM: 2000, MaxHeightMM: 3000})
	if got, _ := e.resolveHeight(hints, 1); got == nil || !almostEqual(*got, 2400) {
		t.Error("resolveHeight() rejected 2400 inside a widened band")
	}
	if got, _ := New().resolveHeight(hints, 1); got != nil {
		t.Errorf("resolveHeight() = %v, want nil below the default band", *got)
	}
}

// ============================================================================
// Height Resolution Tests
// ============================================================================

func TestResolveHeightOrder(t *testing.T) {
	tests := []struct {
		name       string
		hints      Hints
		factor     float64
		want       float64
		wantNil    bool
		noteSubstr string
	}{
		{
			name: "elevation range wins over dimensions",
			hints: Hints{
				HasZ: true, ZMin: 0, ZMax: 5800,
				Dimensions: []DimensionHint{{Value: 9999, Label: "軒高", Vertical: true}},
			},
			factor:     1,
			want:       5800,
			noteSubstr: "3D",
		},
		{
			name: "flat elevation falls through to labels",
			hints: Hints{
				HasZ: true, ZMin: 0, ZMax: 0,
				Dimensions: []DimensionHint{{Value: 5800, Label: "軒高", Vertical: true}},
			},
			factor:     1,
			want:       5800,
			noteSubstr: "軒高",
		},
		{
			name: "labeled height beats plausible value",
			hints: Hints{Dimensions: []DimensionHint{
				{Value: 7200, Label: "", Vertical: true},
				{Value: 5800, Label: "高さ", Vertical: true},
			}},
			factor:     1,
			want:       5800,
			noteSubstr: "高さ",
		},
		{
			name:       "horizontal dimensions never count",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 5800, Label: "軒高", Vertical: false}}},
			factor:     1,
			wantNil:    true,
			noteSubstr: "not found",
		},
		{
			name:       "unlabeled plausible vertical dimension",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 5800, Vertical: true}}},
			factor:     1,
			want:       5800,
			noteSubstr: "plausible",
		},
		{
			name:       "implausibly small value skipped",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 300, Vertical: true}}},
			factor:     1,
			wantNil:    true,
			noteSubstr: "not found",
		},
		{
			name:       "implausibly large value skipped",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 200000, Vertical: true}}},
			factor:     1,
			wantNil:    true,
			noteSubstr: "not found",
		},
		{
			name:       "no evidence at all",
			hints:      Hints{},
			factor:     1,
			wantNil:    true,
			noteSubstr: "not found",
		},
		{
			name:       "meters converted before plausibility check",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 5.8, Vertical: true}}},
			factor:     1000,
			want:       5800,
			noteSubstr: "plausible",
		},
		{
			name:       "centimeter label conversion",
			hints:      Hints{Dimensions: []DimensionHint{{Value: 580, Label: "高さ", Vertical: true}}},
			factor:     10,
			want:       5800,
			noteSubstr: "高さ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, note := New().resolveHeight(tt.hints, tt.factor)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("resolveHeight() = %v, want nil", *got)
				}
			} else {
				if got == nil {
					t.Fatalf("resolveHeight() = nil, want %v", tt.want)
				}
				if !almostEqual(*got, tt.want) {
					t.Errorf("resolveHeight() = %v, want %v", *got, tt.want)
				}
			}
			if !strings.Contains(note, tt.noteSubstr) {
				t.Errorf("note = %q, want substring %q", note, tt.noteSubstr)
			}
		})
	}
}

func TestLabelNamesHeight(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"軒高", true},
		{"最高高さ", true},
		{"建物高", true},
		{"GL+5800", true},
		{"FL", true},
		{"H=5800", true},
		{"h=5800", true},
		{"Ｈ＝５８００", true}, // full-width CAD text
		{"幅", false},
		{"", false},
		{"W=9100", false},
	}
	for _, tt := range tests {
		if got := labelNamesHeight(tt.label); got != tt.want {
			t.Errorf("labelNamesHeight(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestExtractWithHeight(t *testing.T) {
	loop := model.Loop{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}}
	hints := Hints{Dimensions: []DimensionHint{{Value: 5800, Label: "軒高", Vertical: true}}}

	plan := Extract(loop, model.Millimeter, hints)
	if plan.Height == nil {
		t.Fatal("Height = nil, want 5800")
	}
	if !almostEqual(*plan.Height, 5800) {
		t.Errorf("Height = %v, want 5800", *plan.Height)
	}
	if !strings.Contains(plan.HeightNote, "軒高") {
		t.Errorf("HeightNote = %q, want the label mentioned", plan.HeightNote)
	}
}
