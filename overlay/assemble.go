package overlay

import (
	"context"
	"math"

	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/graph"
	"github.com/geos-go/geos/predicate"
)

// classifyFaces flood-fills g into faces via graph.Next, samples one
// interior point per face, locates that point against a and b, and
// returns a per-half-edge "is this edge's left face kept by op" table
// indexed by graph.HalfEdge.
func classifyFaces(ctx context.Context, g *graph.Graph, a, b *geom.Geometry, op Operation) ([]bool, error) {
	n := g.NumEdges()
	faceOf := make([]int, n)
	for i := range faceOf {
		faceOf[i] = -1
	}

	var faces [][]graph.HalfEdge
	for _, he := range g.HalfEdges() {
		if faceOf[he] != -1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, &gerror.InterruptedError{Op: "overlay.classifyFaces"}
		}
		face := g.WalkFace(he)
		id := len(faces)
		for _, e := range face {
			faceOf[e] = id
		}
		faces = append(faces, face)
	}

	faceKeptByID := make([]bool, len(faces))
	for id, face := range faces {
		p := representativePoint(g, face)
		inA := insidePolygonal(p, a)
		inB := insidePolygonal(p, b)
		faceKeptByID[id] = op.keep(inA, inB)
	}

	keptByEdge := make([]bool, n)
	for he, id := range faceOf {
		keptByEdge[he] = faceKeptByID[id]
	}
	return keptByEdge, nil
}

// representativePoint returns a point guaranteed to lie inside face: the
// midpoint of face's longest edge, nudged a small distance toward the
// side graph.Next defines as "left of this edge" (the side WalkFace
// reports the face occupies along its whole length).
func representativePoint(g *graph.Graph, face []graph.HalfEdge) geom.Coordinate {
	var longest graph.HalfEdge
	bestLen := -1.0
	for _, he := range face {
		l := g.Origin(he).Distance(g.Destination(he))
		if l > bestLen {
			bestLen = l
			longest = he
		}
	}
	o, d := g.Origin(longest), g.Destination(longest)
	mx, my := (o.X+d.X)/2, (o.Y+d.Y)/2
	dx, dy := d.X-o.X, d.Y-o.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geom.NewXY(mx, my)
	}
	// Left-perpendicular of the edge direction.
	ux, uy := -dy/length, dx/length
	eps := length * 1e-6
	return geom.NewXY(mx+ux*eps, my+uy*eps)
}

// assembleRings walks the boundary half-edges -- those whose left face
// is kept and whose right (Sym) face is not -- into closed coordinate
// rings, skipping over interior edges between two same-kept faces by
// rotating clockwise (oPrev) around each vertex until the next boundary
// edge is found. This is the standard labelled-subdivision boundary
// trace: each kept region's merged outline, not just one graph face's
// raw cycle.
func assembleRings(ctx context.Context, g *graph.Graph, kept []bool) ([][]geom.Coordinate, error) {
	oPrev := buildOPrev(g)
	isBoundary := func(e graph.HalfEdge) bool {
		return kept[e] && !kept[g.Sym(e)]
	}

	visited := make([]bool, g.NumEdges())
	var rings [][]geom.Coordinate
	for _, start := range g.HalfEdges() {
		if visited[start] || !isBoundary(start) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, &gerror.InterruptedError{Op: "overlay.assembleRings"}
		}

		var coords []geom.Coordinate
		cur := start
		for i := 0; ; i++ {
			if i > g.NumEdges() {
				return nil, &gerror.InternalAssertionError{Message: "overlay: boundary walk failed to close"}
			}
			coords = append(coords, g.Origin(cur))
			visited[cur] = true

			next := oPrev[g.Sym(cur)]
			for !isBoundary(next) {
				next = oPrev[next]
			}
			cur = next
			if cur == start {
				break
			}
		}
		coords = append(coords, coords[0])
		rings = append(rings, coords)
	}
	return rings, nil
}

// buildOPrev returns, for every half-edge e, the half-edge immediately
// clockwise of e at e's origin: the predecessor of e in g's CCW oNext
// ring, i.e. the half-edge p with g.ONext(p) == e.
func buildOPrev(g *graph.Graph) []graph.HalfEdge {
	oPrev := make([]graph.HalfEdge, g.NumEdges())
	for _, v := range g.Vertices() {
		ring := g.OutgoingEdges(v)
		for i, e := range ring {
			next := ring[(i+1)%len(ring)]
			oPrev[next] = e
		}
	}
	return oPrev
}

// buildResult classifies each assembled ring by orientation (CCW shell,
// CW hole), nests every hole inside its smallest enclosing shell, and
// builds the final Polygon or MultiPolygon.
func buildResult(f *geom.Factory, rings [][]geom.Coordinate) (*geom.Geometry, error) {
	var shells, holes []*geom.Geometry
	var shellAreas []float64
	for _, r := range rings {
		seq := geom.NewSequence(geom.DimXY, r)
		ring, err := f.CreateLinearRing(r)
		if err != nil {
			return nil, err
		}
		if geom.IsCCW(seq) {
			shells = append(shells, ring)
			shellAreas = append(shellAreas, math.Abs(geom.SignedArea(seq)))
		} else {
			holes = append(holes, ring)
		}
	}

	if len(shells) == 0 {
		return f.CreatePolygon(nil, nil)
	}

	shellHoles := make([][]*geom.Geometry, len(shells))
	for _, hole := range holes {
		best := -1
		for i, shell := range shells {
			if ringContainsRing(shell, hole) {
				if best == -1 || shellAreas[i] < shellAreas[best] {
					best = i
				}
			}
		}
		if best >= 0 {
			shellHoles[best] = append(shellHoles[best], hole)
		}
	}

	polys := make([]*geom.Geometry, len(shells))
	for i, shell := range shells {
		p, err := f.CreatePolygon(shell, shellHoles[i])
		if err != nil {
			return nil, err
		}
		polys[i] = p
	}
	if len(polys) == 1 {
		return polys[0], nil
	}
	return f.CreateMultiPolygon(polys)
}

// ringContainsRing reports whether every vertex of hole lies inside or on
// shell, the containment test used to nest an assembled hole ring under
// its enclosing shell ring.
func ringContainsRing(shell, hole *geom.Geometry) bool {
	shellCoords := shell.Sequence().Coordinates()
	for _, c := range hole.Sequence().Coordinates() {
		if predicate.LocatePointInRing(c, shellCoords) == predicate.Exterior {
			return false
		}
	}
	return true
}
