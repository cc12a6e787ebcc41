// Package graph implements HalfEdgeGraph as an index-addressed arena
// rather than a pointer-cyclic structure, per DESIGN NOTES §9: HalfEdge
// pairs that point at each other, and vertices that point back at their
// outgoing edges, become integer indices into a single []halfEdgeRecord
// slice. This removes manual memory management and makes a full graph
// clone a single slice copy.
//
// Grounded in two pack sources: the teacher's builder_graph.go
// (s2/builder_graph.go), which already represents a noded edge graph as
// flat edge/vertex arrays rather than a pointer mesh, and
// other_examples/daniel-cohen-simplefeatures's doublyConnectedEdgeList
// (geom/dcel.go), which is the pointer-cyclic shape this package
// deliberately does not copy.
package graph

import (
	"math"
	"sort"

	"github.com/geos-go/geos/geom"
)

// HalfEdge is an index into a Graph's internal arena, starting at 0 for
// the first half-edge added; use Graph methods to obtain one.
type HalfEdge int

type halfEdgeRecord struct {
	orig    geom.Coordinate
	sym     HalfEdge
	next    HalfEdge // next edge around the face to the left of this edge
	oNext   HalfEdge // next edge CCW around this edge's origin
	context any
}

// vertexKey is the map key used to identify a vertex by its planar
// position. geom.Coordinate is not itself a safe map key: Z/M default to
// NaN (see geom.NewXY), and NaN never compares equal to itself, so a map
// keyed directly on Coordinate would silently fail every lookup. Vertex
// identity here is 2D-only, so only X and Y -- both always real-valued --
// go into the key.
type vertexKey struct{ x, y float64 }

func keyOf(c geom.Coordinate) vertexKey { return vertexKey{c.X, c.Y} }

// Graph is an arena of half-edge records. Each undirected edge is stored
// as a pair of HalfEdge indices that are each other's Sym.
type Graph struct {
	edges    []halfEdgeRecord
	outgoing map[vertexKey]HalfEdge // one outgoing half-edge per vertex
}

// New returns an empty half-edge graph.
func New() *Graph {
	return &Graph{outgoing: make(map[vertexKey]HalfEdge)}
}

// Sym returns e's paired opposite half-edge (same undirected edge,
// opposite direction). Invariant: e.Sym().Sym() == e.
func (g *Graph) Sym(e HalfEdge) HalfEdge { return g.edges[e].sym }

// Origin returns the vertex e points away from.
func (g *Graph) Origin(e HalfEdge) geom.Coordinate { return g.edges[e].orig }

// Destination returns the vertex e points to: Sym(e)'s origin.
func (g *Graph) Destination(e HalfEdge) geom.Coordinate { return g.edges[g.edges[e].sym].orig }

// Next walks the face to the left of e: the next half-edge of the same
// face cycle.
func (g *Graph) Next(e HalfEdge) HalfEdge { return g.edges[e].next }

// ONext walks CCW around e's origin to the next outgoing half-edge.
func (g *Graph) ONext(e HalfEdge) HalfEdge { return g.edges[e].oNext }

// Context returns the caller-owned tag attached to e via AddEdge.
func (g *Graph) Context(e HalfEdge) any { return g.edges[e].context }

// SetContext updates e's caller-owned tag.
func (g *Graph) SetContext(e HalfEdge, ctx any) { g.edges[e].context = ctx }

// AddEdge inserts an undirected edge between orig and dest, splicing both
// new half-edges into the CCW ring at their respective origins in
// polar-angle order, and returns the half-edge directed orig->dest.
func (g *Graph) AddEdge(orig, dest geom.Coordinate, ctx any) HalfEdge {
	e1 := HalfEdge(len(g.edges))
	g.edges = append(g.edges, halfEdgeRecord{orig: orig, context: ctx})
	e2 := HalfEdge(len(g.edges))
	g.edges = append(g.edges, halfEdgeRecord{orig: dest, context: ctx})

	g.edges[e1].sym = e2
	g.edges[e2].sym = e1

	g.spliceAtVertex(e1, orig, dest)
	g.spliceAtVertex(e2, dest, orig)

	return e1
}

// spliceAtVertex inserts half-edge e (origin `at`, pointing toward `to`)
// into the CCW ring of outgoing edges at `at`, maintaining the
// polar-angle-sorted oNext chain, and sets `at`'s index entry if it is the
// vertex's first recorded outgoing edge.
func (g *Graph) spliceAtVertex(e HalfEdge, at, to geom.Coordinate) {
	atKey := keyOf(at)
	first, ok := g.outgoing[atKey]
	if !ok {
		g.outgoing[atKey] = e
		g.edges[e].oNext = e
		g.fixFaceNext(e)
		g.fixIncomingNext(at)
		return
	}

	angle := polarAngle(at, to)

	// Walk the existing ring to find the insertion point that keeps
	// oNext sorted by increasing polar angle.
	cur := first
	for {
		curDest := g.Destination(cur)
		curAngle := polarAngle(at, curDest)
		nxt := g.edges[cur].oNext
		nxtDest := g.Destination(nxt)
		nxtAngle := polarAngle(at, nxtDest)

		if angleBetween(curAngle, angle, nxtAngle) || nxt == first {
			g.edges[e].oNext = nxt
			g.edges[cur].oNext = e
			if angle < polarAngle(at, g.Destination(first)) {
				g.outgoing[atKey] = e
			}
			break
		}
		cur = nxt
	}
	g.fixFaceNext(e)
	g.fixIncomingNext(at)
}

// fixIncomingNext recomputes the face-cycle Next pointer of every
// half-edge arriving at v, since splicing a new outgoing edge into v's
// ring changes which edge is clockwise-next of each arriving edge's Sym.
func (g *Graph) fixIncomingNext(v geom.Coordinate) {
	for _, o := range g.OutgoingEdges(v) {
		g.fixFaceNext(g.edges[o].sym)
	}
}

// fixFaceNext recomputes the face-cycle Next pointer for e: the next edge
// to walk the face to the left of e is Sym(e)'s CCW-previous outgoing
// edge, i.e. the edge immediately clockwise of e.Sym() around e's
// destination.
func (g *Graph) fixFaceNext(e HalfEdge) {
	dest := g.Destination(e)
	sym := g.edges[e].sym
	first, ok := g.outgoing[keyOf(dest)]
	if !ok {
		g.edges[e].next = sym
		return
	}
	// Find the edge whose oNext is sym -- that edge is CCW-previous to
	// sym, i.e. clockwise-next, which is the correct face-walk successor
	// of e.
	cur := first
	for {
		if g.edges[cur].oNext == sym {
			g.edges[e].next = cur
			return
		}
		cur = g.edges[cur].oNext
		if cur == first {
			g.edges[e].next = sym
			return
		}
	}
}

// polarAngle returns the angle of (to-at) in (-pi, pi], used to order the
// CCW ring of outgoing edges around a vertex.
func polarAngle(at, to geom.Coordinate) float64 {
	return math.Atan2(to.Y-at.Y, to.X-at.X)
}

// angleBetween reports whether angle b lies strictly between a and c when
// walking counter-clockwise from a to c (wrapping through pi/-pi).
func angleBetween(a, b, c float64) bool {
	norm := func(x float64) float64 {
		for x < a {
			x += 2 * math.Pi
		}
		return x
	}
	bb, cc := norm(b), norm(c)
	return bb < cc
}

// OutgoingEdges returns every half-edge whose origin is v, in CCW polar
// order starting from an arbitrary reference edge.
func (g *Graph) OutgoingEdges(v geom.Coordinate) []HalfEdge {
	first, ok := g.outgoing[keyOf(v)]
	if !ok {
		return nil
	}
	var out []HalfEdge
	cur := first
	for {
		out = append(out, cur)
		cur = g.edges[cur].oNext
		if cur == first {
			break
		}
	}
	return out
}

// Vertices returns every distinct vertex coordinate with at least one
// incident edge, in a deterministic (lexicographic) order.
func (g *Graph) Vertices() []geom.Coordinate {
	out := make([]geom.Coordinate, 0, len(g.outgoing))
	for _, e := range g.outgoing {
		out = append(out, g.Origin(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompareTo(out[j]) < 0 })
	return out
}

// NumEdges returns the number of half-edges in the arena (twice the
// number of undirected edges).
func (g *Graph) NumEdges() int { return len(g.edges) }

// HalfEdges returns every half-edge index, in arena order, for
// deterministic iteration over the whole graph.
func (g *Graph) HalfEdges() []HalfEdge {
	out := make([]HalfEdge, len(g.edges))
	for i := range g.edges {
		out[i] = HalfEdge(i)
	}
	return out
}

// WalkFace returns the cyclic sequence of half-edges forming the face
// reached by repeatedly applying Next starting from start.
func (g *Graph) WalkFace(start HalfEdge) []HalfEdge {
	var out []HalfEdge
	e := start
	for {
		out = append(out, e)
		e = g.edges[e].next
		if e == start {
			break
		}
		if len(out) > len(g.edges) {
			// Defensive bound: a well-formed graph can never produce a
			// face cycle longer than the number of half-edges.
			break
		}
	}
	return out
}
