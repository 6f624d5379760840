package mask

import "image"

// Exterior returns the pixels reachable from the image border through
// unset pixels, stepping 4-connected. Set pixels block the flood, so the
// result is the region outside every closed set contour.
func (m *Mask) Exterior() *Mask {
	out := New(m.W, m.H)
	queue := make([]image.Point, 0, 2*(m.W+m.H))
	push := func(x, y int) {
		if x < 0 || y < 0 || x >= m.W || y >= m.H {
			return
		}
		i := y*m.W + x
		if m.bits[i] || out.bits[i] {
			return
		}
		out.bits[i] = true
		queue = append(queue, image.Pt(x, y))
	}

	// Seed with every border pixel.
	for x := 0; x < m.W; x++ {
		push(x, 0)
		push(x, m.H-1)
	}
	for y := 0; y < m.H; y++ {
		push(0, y)
		push(m.W-1, y)
	}

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return out
}

// FillHoles promotes enclosed unset pockets to set: the complement is
// flooded from the border, and whatever that flood cannot reach is a
// hole. The result is exactly the complement of [Mask.Exterior].
func (m *Mask) FillHoles() *Mask {
	return m.Exterior().Invert()
}

// LargestComponent returns a mask keeping only the biggest 4-connected
// region of set pixels. Ties keep the region found first in row-major
// scan order. An empty mask stays empty.
func (m *Mask) LargestComponent() *Mask {
	labels := make([]int, len(m.bits))
	var sizes []int // sizes[k] is the pixel count of label k+1
	queue := make([]image.Point, 0, 64)

	for start, set := range m.bits {
		if !set || labels[start] != 0 {
			continue
		}
		label := len(sizes) + 1
		size := 0
		labels[start] = label
		queue = append(queue[:0], image.Pt(start%m.W, start/m.W))
		for head := 0; head < len(queue); head++ {
			p := queue[head]
			size++
			for _, d := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := p.X+d.X, p.Y+d.Y
				if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
					continue
				}
				i := ny*m.W + nx
				if m.bits[i] && labels[i] == 0 {
					labels[i] = label
					queue = append(queue, image.Pt(nx, ny))
				}
			}
		}
		sizes = append(sizes, size)
	}

	out := New(m.W, m.H)
	if len(sizes) == 0 {
		return out
	}
	best := 0
	for k, size := range sizes {
		if size > sizes[best] {
			best = k
		}
	}
	want := best + 1
	for i, label := range labels {
		out.bits[i] = label == want
	}
	return out
}
