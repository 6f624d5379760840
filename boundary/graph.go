package boundary

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/ykawano/planform/model"
)

// Node is a deduplicated segment endpoint in the planar graph.
type Node struct {
	// ID indexes the node in Graph.Nodes.
	ID int

	// At is the node position in drawing units.
	At orb.Point
}

// Edge is an undirected connection between two nodes, derived from one
// cleaned segment.
type Edge struct {
	// ID indexes the edge in Graph.Edges.
	ID int

	// A and B are the node ids of the segment's start and end.
	A, B int

	// Length is the straight-line distance between the nodes.
	Length float64
}

// Graph is the planar graph built from cleaned segments. It is built fresh
// per detection call and holds no references to caller data.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// adjacency lists edge ids per node, in insertion order.
	adjacency [][]int

	// angles holds the direction of each directed edge: angles[2e] points
	// A→B, angles[2e+1] points B→A.
	angles []float64
}

// NewGraph builds a planar graph from segments. Endpoints within tolerance
// of an existing node reuse it (linear scan, acceptable at drawing scale).
// Segments collapsing to a single node and duplicate edges between one node
// pair are dropped.
func NewGraph(segs []model.Segment, tolerance float64) *Graph {
	g := &Graph{}

	nodeOf := func(p orb.Point) int {
		for i := range g.Nodes {
			n := g.Nodes[i].At
			if math.Hypot(n[0]-p[0], n[1]-p[1]) <= tolerance {
				return i
			}
		}
		g.Nodes = append(g.Nodes, Node{ID: len(g.Nodes), At: p})
		return len(g.Nodes) - 1
	}

	seen := make(map[[2]int]bool, len(segs))
	for _, s := range segs {
		a := nodeOf(s.Start)
		b := nodeOf(s.End)
		if a == b {
			continue
		}
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		pa, pb := g.Nodes[a].At, g.Nodes[b].At
		g.Edges = append(g.Edges, Edge{
			ID:     len(g.Edges),
			A:      a,
			B:      b,
			Length: math.Hypot(pb[0]-pa[0], pb[1]-pa[1]),
		})
	}

	g.adjacency = make([][]int, len(g.Nodes))
	g.angles = make([]float64, 2*len(g.Edges))
	for _, e := range g.Edges {
		g.adjacency[e.A] = append(g.adjacency[e.A], e.ID)
		g.adjacency[e.B] = append(g.adjacency[e.B], e.ID)
		pa, pb := g.Nodes[e.A].At, g.Nodes[e.B].At
		g.angles[2*e.ID] = math.Atan2(pb[1]-pa[1], pb[0]-pa[0])
		g.angles[2*e.ID+1] = math.Atan2(pa[1]-pb[1], pa[0]-pb[0])
	}
	return g
}

// Directed edges are indexed 2e (A→B) and 2e+1 (B→A).

func (g *Graph) from(directed int) int {
	e := g.Edges[directed/2]
	if directed%2 == 0 {
		return e.A
	}
	return e.B
}

func (g *Graph) to(directed int) int {
	e := g.Edges[directed/2]
	if directed%2 == 0 {
		return e.B
	}
	return e.A
}

// directedFrom returns the directed index of edge leaving node.
func (g *Graph) directedFrom(node, edge int) int {
	if g.Edges[edge].A == node {
		return 2 * edge
	}
	return 2*edge + 1
}

// nextClockwise picks the directed edge leaving cur's head that makes the
// smallest clockwise turn relative to the incoming direction. Going
// straight back along the twin is a last resort, taken only at dead ends.
func (g *Graph) nextClockwise(cur int) int {
	const straightBack = 1e-12

	head := g.to(cur)
	reverse := g.angles[cur^1]

	best := -1
	bestTurn := math.MaxFloat64
	for _, e := range g.adjacency[head] {
		d := g.directedFrom(head, e)
		turn := math.Mod(reverse-g.angles[d], 2*math.Pi)
		if turn < 0 {
			turn += 2 * math.Pi
		}
		if turn < straightBack {
			turn = 2 * math.Pi
		}
		if turn < bestTurn {
			bestTurn = turn
			best = d
		}
	}
	return best
}
