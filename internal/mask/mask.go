package mask

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Mask is a binary raster stored row-major. Out-of-bounds reads return
// false, which spares callers edge checks during neighborhood scans.
type Mask struct {
	W, H int
	bits []bool
}

// New returns an empty w×h mask.
func New(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// FromGray builds a mask from a grayscale image, setting every pixel whose
// intensity is below cutoff. With a binarized input (pixels forced to 0 or
// 255) any mid-range cutoff selects exactly the dark pixels.
func FromGray(img *image.Gray, cutoff uint8) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y < cutoff {
				m.bits[y*m.W+x] = true
			}
		}
	}
	return m
}

// At reports whether (x, y) is set. Coordinates outside the mask read as
// unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set marks (x, y). Coordinates outside the mask are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = true
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	out := New(m.W, m.H)
	copy(out.bits, m.bits)
	return out
}

// Invert returns the complement mask.
func (m *Mask) Invert() *Mask {
	out := New(m.W, m.H)
	for i, b := range m.bits {
		out.bits[i] = !b
	}
	return out
}

// Dilate grows every set region by radius pixels using a separable box
// kernel: a horizontal sliding-window pass followed by a vertical one.
// Each pass keeps a running count of set pixels inside its window, so the
// total cost is O(W·H) regardless of radius. Within a pass, goroutines
// mutate disjoint rows (then disjoint columns) behind a single fork/join
// barrier.
func (m *Mask) Dilate(radius int) *Mask {
	if radius <= 0 {
		return m.Clone()
	}

	horiz := New(m.W, m.H)
	parallel.Line(m.H, func(start, end int) {
		for y := start; y < end; y++ {
			dilateRow(m.bits[y*m.W:(y+1)*m.W], horiz.bits[y*m.W:(y+1)*m.W], radius)
		}
	})

	out := New(m.W, m.H)
	parallel.Line(m.W, func(start, end int) {
		for x := start; x < end; x++ {
			dilateColumn(horiz, out, x, radius)
		}
	})
	return out
}

// dilateRow writes the horizontal dilation of src into dst. The window
// [x-radius, x+radius] slides one pixel per step, adding the leading pixel
// and dropping the trailing one.
func dilateRow(src, dst []bool, radius int) {
	count := 0
	for x := 0; x < len(src) && x <= radius; x++ {
		if src[x] {
			count++
		}
	}
	for x := range src {
		dst[x] = count > 0
		if lead := x + radius + 1; lead < len(src) && src[lead] {
			count++
		}
		if trail := x - radius; trail >= 0 && src[trail] {
			count--
		}
	}
}

// dilateColumn is dilateRow along column x.
func dilateColumn(src, dst *Mask, x, radius int) {
	count := 0
	for y := 0; y < src.H && y <= radius; y++ {
		if src.bits[y*src.W+x] {
			count++
		}
	}
	for y := 0; y < src.H; y++ {
		dst.bits[y*dst.W+x] = count > 0
		if lead := y + radius + 1; lead < src.H && src.bits[lead*src.W+x] {
			count++
		}
		if trail := y - radius; trail >= 0 && src.bits[trail*src.W+x] {
			count--
		}
	}
}
