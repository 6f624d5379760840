package cleaner

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
)

const (
	// adaptiveMinLengthRatio scales the drawing diagonal into the default
	// minimum segment length.
	adaptiveMinLengthRatio = 0.001

	// adaptiveSnapRatio scales the drawing diagonal into the default snap
	// tolerance.
	adaptiveSnapRatio = 0.005
)

// Config holds tuning for the cleaning stages.
type Config struct {
	// MinLength is the minimum segment length to keep. Zero means adaptive:
	// 0.1% of the drawing extent's diagonal, floored at MinLengthFloor.
	MinLength float64

	// SnapTolerance is the endpoint clustering distance. Zero means
	// adaptive: 0.5% of the diagonal, floored at SnapToleranceFloor.
	SnapTolerance float64

	// MinLengthFloor and SnapToleranceFloor keep adaptive thresholds from
	// collapsing on drawings in large units (meters), where the diagonal
	// is numerically tiny. Both are in drawing units.
	MinLengthFloor     float64
	SnapToleranceFloor float64

	// CollinearToleranceDeg is the maximum angular disagreement, in
	// degrees, between two segments fused by the collinear merge.
	CollinearToleranceDeg float64

	// MaxMergePasses caps the collinear-merge fixed point so hostile
	// inputs terminate.
	MaxMergePasses int
}

// DefaultConfig returns sensible default configuration for
// millimeter-scaled drawings.
func DefaultConfig() Config {
	return Config{
		MinLengthFloor:        10,
		SnapToleranceFloor:    1,
		CollinearToleranceDeg: 1,
		MaxMergePasses:        64,
	}
}

// Stats counts what each cleaning stage removed or merged.
type Stats struct {
	// Input is the raw segment count.
	Input int `json:"input"`

	// ShortRemoved counts segments dropped by the length filter, plus any
	// collapsed to zero length by snapping.
	ShortRemoved int `json:"shortRemoved"`

	// CollinearMerged counts fuse operations performed by the collinear
	// merge. Each fuse replaces two segments with one.
	CollinearMerged int `json:"collinearMerged"`

	// DuplicatesRemoved counts segments dropped as duplicates.
	DuplicatesRemoved int `json:"duplicatesRemoved"`

	// FragmentsRemoved counts segments discarded with disconnected
	// fragments.
	FragmentsRemoved int `json:"fragmentsRemoved"`

	// Output is the cleaned segment count.
	Output int `json:"output"`
}

// Result is a cleaned segment list plus diagnostics.
type Result struct {
	// Segments is the cleaned list, in input order where stages preserved
	// it.
	Segments []model.Segment

	// Stats reports per-stage removal counts.
	Stats Stats

	// MinLength and SnapTolerance are the thresholds actually used, after
	// adaptive resolution.
	MinLength     float64
	SnapTolerance float64
}

// Cleaner normalizes raw segment lists. The zero value is not usable; create
// one with New or NewWithConfig. A Cleaner is stateless and safe for
// concurrent use.
type Cleaner struct {
	config Config
}

// New creates a cleaner with default configuration.
func New() *Cleaner {
	return &Cleaner{config: DefaultConfig()}
}

// NewWithConfig creates a cleaner with custom configuration. Zero-valued
// thresholds fall back to their adaptive defaults.
func NewWithConfig(config Config) *Cleaner {
	if config.CollinearToleranceDeg <= 0 {
		config.CollinearToleranceDeg = DefaultConfig().CollinearToleranceDeg
	}
	if config.MaxMergePasses <= 0 {
		config.MaxMergePasses = DefaultConfig().MaxMergePasses
	}
	return &Cleaner{config: config}
}

// Clean runs the cleaning stages over segs and returns the surviving
// segments with per-stage counts. It never fails: an input that cleans down
// to nothing yields an empty result.
func (c *Cleaner) Clean(segs []model.Segment) Result {
	minLength, tolerance := c.thresholds(segs)
	result := Result{
		MinLength:     minLength,
		SnapTolerance: tolerance,
	}
	result.Stats.Input = len(segs)
	if len(segs) == 0 {
		return result
	}

	// Step 1: drop segments shorter than the length threshold.
	kept := make([]model.Segment, 0, len(segs))
	for _, s := range segs {
		if s.Length() >= minLength {
			kept = append(kept, s)
		}
	}
	result.Stats.ShortRemoved = len(segs) - len(kept)

	// Step 2: snap endpoints to cluster centroids. Snapping can collapse
	// sub-tolerance segments to zero length; those count as short.
	snapped := snapEndpoints(kept, tolerance)
	alive := snapped[:0]
	for _, s := range snapped {
		if s.Start != s.End {
			alive = append(alive, s)
		}
	}
	result.Stats.ShortRemoved += len(snapped) - len(alive)

	// Step 3: fuse collinear neighbors until no fuse applies.
	merged, fused := c.mergeCollinear(alive, tolerance)
	result.Stats.CollinearMerged = fused

	// Step 4: drop duplicates.
	deduped := removeDuplicates(merged, tolerance)
	result.Stats.DuplicatesRemoved = len(merged) - len(deduped)

	// Step 5: keep only the largest connected component.
	final := largestComponent(deduped, tolerance)
	result.Stats.FragmentsRemoved = len(deduped) - len(final)

	result.Segments = final
	result.Stats.Output = len(final)
	return result
}

// thresholds resolves the configured or adaptive minimum length and snap
// tolerance for the given input.
func (c *Cleaner) thresholds(segs []model.Segment) (minLength, tolerance float64) {
	minLength = c.config.MinLength
	tolerance = c.config.SnapTolerance
	if minLength > 0 && tolerance > 0 {
		return minLength, tolerance
	}

	diagonal := model.Diagonal(model.Extent(segs))
	if minLength <= 0 {
		minLength = diagonal * adaptiveMinLengthRatio
		if minLength < c.config.MinLengthFloor {
			minLength = c.config.MinLengthFloor
		}
	}
	if tolerance <= 0 {
		tolerance = diagonal * adaptiveSnapRatio
		if tolerance < c.config.SnapToleranceFloor {
			tolerance = c.config.SnapToleranceFloor
		}
	}
	return minLength, tolerance
}

// snapEndpoints clusters every segment endpoint within tolerance and moves
// each endpoint to its cluster's centroid. Assignment is single-pass
// nearest-cluster: each endpoint joins the closest existing cluster within
// tolerance, or starts a new one. Centroids are finalized after all
// endpoints are assigned, so every member of a cluster lands on the same
// point.
func snapEndpoints(segs []model.Segment, tolerance float64) []model.Segment {
	if len(segs) == 0 {
		return nil
	}

	type cluster struct {
		sumX, sumY float64
		n          int
	}
	var clusters []cluster
	centroid := func(cl cluster) orb.Point {
		return orb.Point{cl.sumX / float64(cl.n), cl.sumY / float64(cl.n)}
	}

	assign := make([]int, 2*len(segs))
	for i := 0; i < 2*len(segs); i++ {
		p := segs[i/2].Start
		if i%2 == 1 {
			p = segs[i/2].End
		}

		best := -1
		bestDist := tolerance
		for j, cl := range clusters {
			ct := centroid(cl)
			d := math.Hypot(ct[0]-p[0], ct[1]-p[1])
			if d <= bestDist {
				best = j
				bestDist = d
			}
		}
		if best < 0 {
			clusters = append(clusters, cluster{sumX: p[0], sumY: p[1], n: 1})
			assign[i] = len(clusters) - 1
			continue
		}
		clusters[best].sumX += p[0]
		clusters[best].sumY += p[1]
		clusters[best].n++
		assign[i] = best
	}

	centroids := make([]orb.Point, len(clusters))
	for i, cl := range clusters {
		centroids[i] = centroid(cl)
	}

	out := make([]model.Segment, len(segs))
	for i := range segs {
		out[i] = model.Segment{
			Start: centroids[assign[2*i]],
			End:   centroids[assign[2*i+1]],
		}
	}
	return out
}

// mergeCollinear repeatedly fuses segment pairs that share an endpoint and
// agree in direction, until a full pass makes no change or the pass cap is
// reached. Returns the surviving segments and the number of fuses applied.
func (c *Cleaner) mergeCollinear(segs []model.Segment, tolerance float64) ([]model.Segment, int) {
	current := append([]model.Segment(nil), segs...)
	minDot := math.Cos(c.config.CollinearToleranceDeg * math.Pi / 180)
	fused := 0

	for pass := 0; pass < c.config.MaxMergePasses; pass++ {
		changed := false
		for i := 0; i < len(current); i++ {
			j := i + 1
			for j < len(current) {
				merged, ok := fuseCollinear(current[i], current[j], tolerance, minDot)
				if !ok {
					j++
					continue
				}
				current[i] = merged
				current = append(current[:j], current[j+1:]...)
				fused++
				changed = true
				// The fused segment may now reach further pairs; rescan
				// its partners from scratch.
				j = i + 1
			}
		}
		if !changed {
			break
		}
	}
	return current, fused
}

// fuseCollinear fuses a and b into one segment spanning their two farthest
// endpoints, provided they share an endpoint within tolerance and their
// directions agree (forward or reversed) within the dot-product threshold.
func fuseCollinear(a, b model.Segment, tolerance, minDot float64) (model.Segment, bool) {
	if !shareEndpoint(a, b, tolerance) {
		return model.Segment{}, false
	}

	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return model.Segment{}, false
	}
	dot := ((a.End[0]-a.Start[0])*(b.End[0]-b.Start[0]) +
		(a.End[1]-a.Start[1])*(b.End[1]-b.Start[1])) / (la * lb)
	if math.Abs(dot) < minDot {
		return model.Segment{}, false
	}

	points := [4]orb.Point{a.Start, a.End, b.Start, b.End}
	best := model.Segment{Start: points[0], End: points[1]}
	bestDist := -1.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d := math.Hypot(points[j][0]-points[i][0], points[j][1]-points[i][1])
			if d > bestDist {
				bestDist = d
				best = model.Segment{Start: points[i], End: points[j]}
			}
		}
	}
	return best, true
}

// shareEndpoint reports whether any endpoint of a lies within tolerance of
// any endpoint of b.
func shareEndpoint(a, b model.Segment, tolerance float64) bool {
	for _, p := range [2]orb.Point{a.Start, a.End} {
		for _, q := range [2]orb.Point{b.Start, b.End} {
			if math.Hypot(q[0]-p[0], q[1]-p[1]) <= tolerance {
				return true
			}
		}
	}
	return false
}

// removeDuplicates drops a segment when its endpoints pairwise match an
// already-kept segment within 2×tolerance total, in either point ordering.
func removeDuplicates(segs []model.Segment, tolerance float64) []model.Segment {
	kept := make([]model.Segment, 0, len(segs))
	for _, s := range segs {
		dup := false
		for _, k := range kept {
			if isDuplicate(s, k, tolerance) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, s)
		}
	}
	return kept
}

// isDuplicate reports whether a and b describe the same wall: the sum of
// their aligned endpoint distances, in the better of the two orderings,
// falls below twice the tolerance.
func isDuplicate(a, b model.Segment, tolerance float64) bool {
	forward := pointDist(a.Start, b.Start) + pointDist(a.End, b.End)
	reversed := pointDist(a.Start, b.End) + pointDist(a.End, b.Start)
	return math.Min(forward, reversed) < 2*tolerance
}

func pointDist(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// largestComponent keeps only the segments of the largest connected
// component, where segments connect when their endpoints coincide within
// tolerance. Detached annotation and furniture geometry drops out here.
func largestComponent(segs []model.Segment, tolerance float64) []model.Segment {
	if len(segs) <= 1 {
		return segs
	}

	// Step 1: map endpoints to shared node ids by tolerance matching.
	var nodes []orb.Point
	nodeOf := func(p orb.Point) int {
		for i, n := range nodes {
			if pointDist(n, p) <= tolerance {
				return i
			}
		}
		nodes = append(nodes, p)
		return len(nodes) - 1
	}
	ends := make([][2]int, len(segs))
	for i, s := range segs {
		ends[i] = [2]int{nodeOf(s.Start), nodeOf(s.End)}
	}

	// Step 2: breadth-first search over node adjacency to label components.
	adjacency := make([][]int, len(nodes))
	for _, e := range ends {
		adjacency[e[0]] = append(adjacency[e[0]], e[1])
		adjacency[e[1]] = append(adjacency[e[1]], e[0])
	}
	component := make([]int, len(nodes))
	for i := range component {
		component[i] = -1
	}
	next := 0
	for start := range nodes {
		if component[start] >= 0 {
			continue
		}
		queue := []int{start}
		component[start] = next
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, m := range adjacency[n] {
				if component[m] < 0 {
					component[m] = next
					queue = append(queue, m)
				}
			}
		}
		next++
	}

	// Step 3: count segments per component and keep the biggest.
	counts := make([]int, next)
	for _, e := range ends {
		counts[component[e[0]]]++
	}
	biggest := 0
	for i, n := range counts {
		if n > counts[biggest] {
			biggest = i
		}
	}

	kept := make([]model.Segment, 0, counts[biggest])
	for i, s := range segs {
		if component[ends[i][0]] == biggest {
			kept = append(kept, s)
		}
	}
	return kept
}
