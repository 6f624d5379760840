// Package boundary finds a building's exterior outline in cleaned wall
// segments.
//
// The segments become a planar graph: endpoints within the snap tolerance
// collapse into shared [Node] values, each segment contributes one [Edge],
// and duplicate edges between the same node pair are discarded. [Detector]
// then enumerates the graph's closed loops and picks the exterior one.
//
// # Loop Enumeration
//
// Loops are traced with planar face traversal: starting from every directed
// orientation of every edge not yet consumed, the walk repeatedly leaves the
// current node along the edge making the smallest clockwise turn relative to
// the incoming direction (the rightmost-turn rule), until it returns to its
// start node. Ties break on the smallest positive relative angle, so
// traversal is deterministic. A walk that encloses near-zero area is the
// expected noise of this scheme (dead-end bounces, collinear chains) and is
// discarded silently. A loop and its reverse traversal describe the same
// boundary, so discovered loops are deduplicated by their undirected edge
// set.
//
// # Selection and Fallback
//
// Among the accepted loops the one with the largest absolute area is the
// exterior boundary; the rest are interior rooms, returned for reference but
// unused downstream. When no loop closes at all, the convex hull of every
// node (Graham scan) stands in as a lossy but always-available boundary.
// Only a graph too small to hold a polygon, fewer than 3 nodes or 3 edges,
// or one whose nodes are all collinear, fails with
// [InsufficientGeometryError].
package boundary
