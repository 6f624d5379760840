package boundary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
)

const (
	// adaptiveSnapRatio matches the cleaner's default so a detector run on
	// unconfigured tolerance agrees with upstream cleaning.
	adaptiveSnapRatio = 0.005
)

// Config holds tuning for boundary detection.
type Config struct {
	// SnapTolerance merges nearby endpoints into one node. Zero means
	// adaptive: 0.5% of the drawing extent's diagonal.
	SnapTolerance float64

	// MinAreaRatio scales the drawing extent's area into the minimum
	// enclosed area for an accepted loop. Walks enclosing less are
	// degenerate noise (dead-end bounces, collinear chains) and are
	// silently discarded.
	MinAreaRatio float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinAreaRatio: 1e-4,
	}
}

// Result is the outcome of boundary detection.
type Result struct {
	// Outer is the exterior boundary: the discovered loop with the
	// largest absolute area, or the convex hull when FromHull is set.
	Outer model.Loop

	// Inner are the remaining loops (interior rooms), largest first. They
	// are reported for reference and unused downstream.
	Inner []model.Loop

	// Graph is the planar graph the loops were traced on.
	Graph *Graph

	// FromHull reports that no closed loop was found and Outer is the
	// convex hull of all graph nodes.
	FromHull bool
}

// InsufficientGeometryError reports input that cleaned down to too little
// connected geometry for any boundary: fewer than 3 nodes or 3 edges, or
// nodes that are all collinear.
type InsufficientGeometryError struct {
	// RawSegments is the segment count before cleaning, when the caller
	// knows it. Zero means unknown.
	RawSegments int

	// CleanSegments is the segment count handed to the detector.
	CleanSegments int

	// Nodes and Edges are the planar graph sizes after deduplication.
	Nodes int
	Edges int
}

func (e *InsufficientGeometryError) Error() string {
	if e.RawSegments > 0 {
		return fmt.Sprintf(
			"insufficient geometry: %d raw segments cleaned to %d, graph has %d nodes and %d edges (need at least 3 of each)",
			e.RawSegments, e.CleanSegments, e.Nodes, e.Edges)
	}
	return fmt.Sprintf(
		"insufficient geometry: %d segments produced %d nodes and %d edges (need at least 3 of each)",
		e.CleanSegments, e.Nodes, e.Edges)
}

// Detector traces boundary loops in cleaned segments. A Detector is
// stateless and safe for concurrent use.
type Detector struct {
	config Config
}

// New creates a detector with default configuration.
func New() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewWithConfig creates a detector with custom configuration. A zero
// MinAreaRatio falls back to the default.
func NewWithConfig(config Config) *Detector {
	if config.MinAreaRatio <= 0 {
		config.MinAreaRatio = DefaultConfig().MinAreaRatio
	}
	return &Detector{config: config}
}

// Detect builds the planar graph and returns the exterior boundary with any
// interior loops. It fails only with *InsufficientGeometryError; every other
// input degrades to a usable result, falling back to the convex hull when
// nothing closes.
func (d *Detector) Detect(segs []model.Segment) (*Result, error) {
	tolerance := d.config.SnapTolerance
	extent := model.Extent(segs)
	if tolerance <= 0 {
		tolerance = model.Diagonal(extent) * adaptiveSnapRatio
	}

	g := NewGraph(segs, tolerance)
	if len(g.Nodes) < 3 || len(g.Edges) < 3 {
		return nil, &InsufficientGeometryError{
			CleanSegments: len(segs),
			Nodes:         len(g.Nodes),
			Edges:         len(g.Edges),
		}
	}

	extentArea := (extent.Max[0] - extent.Min[0]) * (extent.Max[1] - extent.Min[1])
	minArea := extentArea * d.config.MinAreaRatio

	loops := d.traceLoops(g, minArea)
	if len(loops) == 0 {
		hull := convexHull(nodePoints(g))
		if len(hull) < 3 {
			return nil, &InsufficientGeometryError{
				CleanSegments: len(segs),
				Nodes:         len(g.Nodes),
				Edges:         len(g.Edges),
			}
		}
		return &Result{Outer: hull, Graph: g, FromHull: true}, nil
	}

	// Largest absolute area is the exterior; the rest are rooms.
	sort.SliceStable(loops, func(i, j int) bool {
		return loops[i].Area() > loops[j].Area()
	})
	return &Result{Outer: loops[0], Inner: loops[1:], Graph: g}, nil
}

// traceLoops enumerates the graph's faces. Every directed orientation of
// every edge not yet consumed starts a walk; accepted loops consume their
// directed edges. The walk cap guarantees termination on any input.
func (d *Detector) traceLoops(g *Graph, minArea float64) []model.Loop {
	used := make([]bool, 2*len(g.Edges))
	seen := make(map[string]bool)
	var loops []model.Loop

	for start := 0; start < 2*len(g.Edges); start++ {
		if used[start] {
			continue
		}
		nodes, dirs, ok := walkFace(g, start)
		if !ok {
			continue
		}

		loop := make(model.Loop, len(nodes))
		for i, n := range nodes {
			loop[i] = g.Nodes[n].At
		}
		if len(loop) < 3 || loop.Area() <= minArea {
			// Degenerate walk; expected noise, dropped silently.
			continue
		}

		for _, dir := range dirs {
			used[dir] = true
		}

		key := loopKey(dirs)
		if seen[key] {
			// The reverse traversal of an already-found boundary.
			continue
		}
		seen[key] = true
		loops = append(loops, loop)
	}
	return loops
}

// walkFace follows the rightmost-turn rule from the starting directed edge
// until the walk returns to its start node. It reports failure when the
// hard iteration cap is exceeded.
func walkFace(g *Graph, start int) (nodes []int, dirs []int, ok bool) {
	maxSteps := 2*len(g.Edges) + 2

	cur := start
	startNode := g.from(start)
	nodes = append(nodes, startNode)
	dirs = append(dirs, cur)

	for step := 0; step < maxSteps; step++ {
		head := g.to(cur)
		if head == startNode {
			return nodes, dirs, true
		}
		nodes = append(nodes, head)

		next := g.nextClockwise(cur)
		if next < 0 {
			return nil, nil, false
		}
		cur = next
		dirs = append(dirs, cur)
	}
	return nil, nil, false
}

// loopKey canonicalizes a loop as its sorted undirected edge ids, so a loop
// and its reverse traversal share a key.
func loopKey(dirs []int) string {
	ids := make([]int, len(dirs))
	for i, d := range dirs {
		ids[i] = d / 2
	}
	sort.Ints(ids)

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// nodePoints collects every node position.
func nodePoints(g *Graph) []orb.Point {
	pts := make([]orb.Point, len(g.Nodes))
	for i, n := range g.Nodes {
		pts[i] = n.At
	}
	return pts
}
