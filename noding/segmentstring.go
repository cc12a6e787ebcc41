// Package noding turns a bag of possibly-crossing segments into a bag of
// non-crossing segments, the prerequisite every downstream relate/valid/
// overlay operation depends on. Noder is grounded in the teacher's
// Snapper interface (s2/builder_snapper.go) -- SnapRadius/MaxEdgeDeviation/
// MinVertexSeparation/SnapPoint -- generalized from single-point snapping
// to whole-SegmentString noding.
package noding

import (
	"github.com/geos-go/geos/geom"
	"github.com/google/uuid"
)

// SegmentString is an ordered, possibly-closed sequence of coordinates
// treated as a chain of line segments to be noded.
type SegmentString struct {
	Coordinates []geom.Coordinate
	Context     any
}

// NewSegmentString wraps coords (not copied) with a caller-owned context
// tag (typically the parent geometry component being noded).
func NewSegmentString(coords []geom.Coordinate, ctx any) *SegmentString {
	return &SegmentString{Coordinates: coords, Context: ctx}
}

func (s *SegmentString) Size() int { return len(s.Coordinates) }

// Segment returns the i'th edge's two endpoints.
func (s *SegmentString) Segment(i int) (geom.Coordinate, geom.Coordinate) {
	return s.Coordinates[i], s.Coordinates[i+1]
}

func (s *SegmentString) NumSegments() int {
	if len(s.Coordinates) == 0 {
		return 0
	}
	return len(s.Coordinates) - 1
}

func (s *SegmentString) IsClosed() bool {
	n := len(s.Coordinates)
	return n > 1 && s.Coordinates[0].Equals2D(s.Coordinates[n-1])
}

// NodedSegmentString is the output of a Noder: the original string's
// vertices plus every vertex introduced by intersection or snapping,
// sorted and deduplicated along the string. The DebugID exists purely
// for log/trace correlation across noder iterations and plays no role in
// noding semantics.
type NodedSegmentString struct {
	Original *SegmentString
	Vertices []geom.Coordinate
	DebugID  uuid.UUID

	pending []pendingNode
}

// NewNodedSegmentString starts a noded string from its original vertices,
// before any intersection nodes are added.
func NewNodedSegmentString(orig *SegmentString) *NodedSegmentString {
	verts := make([]geom.Coordinate, len(orig.Coordinates))
	copy(verts, orig.Coordinates)
	return &NodedSegmentString{Original: orig, Vertices: verts, DebugID: uuid.New()}
}

// AddNode inserts p as a vertex on the segment between Vertices[i] and
// Vertices[i+1], ignoring duplicates of either endpoint. Nodes are not
// re-sorted here; call Finish after all nodes for this string are added.
func (n *NodedSegmentString) AddNode(i int, p geom.Coordinate) {
	if p.Equals2D(n.Vertices[i]) || p.Equals2D(n.Vertices[i+1]) {
		return
	}
	n.pending = append(n.pending, pendingNode{segment: i, pt: p})
}

type pendingNode struct {
	segment int
	pt      geom.Coordinate
}

// Finish merges every pending node into Vertices, sorted along each
// original segment by fractional distance from its start, then clears the
// pending queue.
func (n *NodedSegmentString) Finish() {
	if len(n.pending) == 0 {
		return
	}
	bySegment := make(map[int][]geom.Coordinate, len(n.pending))
	for _, p := range n.pending {
		bySegment[p.segment] = append(bySegment[p.segment], p.pt)
	}

	out := make([]geom.Coordinate, 0, len(n.Vertices)+len(n.pending))
	for i := 0; i < len(n.Vertices)-1; i++ {
		out = append(out, n.Vertices[i])
		extra := bySegment[i]
		if len(extra) > 0 {
			sortAlongSegment(n.Vertices[i], n.Vertices[i+1], extra)
			for _, p := range extra {
				if !p.Equals2D(out[len(out)-1]) {
					out = append(out, p)
				}
			}
		}
	}
	out = append(out, n.Vertices[len(n.Vertices)-1])
	n.Vertices = out
	n.pending = nil
}

func sortAlongSegment(start, end geom.Coordinate, pts []geom.Coordinate) {
	key := func(p geom.Coordinate) float64 {
		dx, dy := end.X-start.X, end.Y-start.Y
		if dx == 0 && dy == 0 {
			return 0
		}
		// Projection parameter t such that p ~= start + t*(end-start).
		if dx*dx >= dy*dy {
			return (p.X - start.X) / dx
		}
		return (p.Y - start.Y) / dy
	}
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && key(pts[j-1]) > key(pts[j]); j-- {
			pts[j-1], pts[j] = pts[j], pts[j-1]
		}
	}
}
