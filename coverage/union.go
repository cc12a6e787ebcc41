package coverage

import (
	"context"
	"math"

	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/graph"
	"github.com/geos-go/geos/predicate"
)

// CoverageUnion unions an already-valid coverage (every shared boundary
// between two input polygons matches exactly) by cancelling each shared
// edge against its opposite-direction twin from the adjacent polygon and
// walking what remains: no renoding, no point-in-polygon classification,
// just the half-edge graph.Graph built directly from the surviving
// (unmatched) directed edges. This is the "walk shared-edge adjacency
// directly" path SPEC_FULL §4.8 calls for, distinct from overlay's
// general renode-and-classify pipeline.
func CoverageUnion(ctx context.Context, f *geom.Factory, polys []*geom.Geometry) (*geom.Geometry, error) {
	owners := directedEdgeOwners(polys)
	g := graph.New()
	seen := make(map[undirectedKey]bool)
	var kept []graph.HalfEdge
	for _, p := range polys {
		for _, ring := range ringCoords(p) {
			for i := 0; i < len(ring)-1; i++ {
				a, b := ring[i], ring[i+1]
				if a.Equals2D(b) {
					continue
				}
				if canceled(a, b, owners) {
					continue
				}
				uk := undirectedKeyOf(a, b)
				if seen[uk] {
					continue
				}
				seen[uk] = true
				kept = append(kept, g.AddEdge(a, b, nil))
			}
		}
	}

	// Only the surviving directed edges bound a real face of the union:
	// their Sym counterparts exist in g purely to satisfy the half-edge
	// structure and would otherwise trace the same ring backwards as a
	// spurious "exterior of everything" face.
	var rings [][]geom.Coordinate
	visited := make([]bool, g.NumEdges())
	for _, start := range kept {
		if visited[start] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, &gerror.InterruptedError{Op: "coverage.CoverageUnion"}
		}
		face := g.WalkFace(start)
		coords := make([]geom.Coordinate, 0, len(face)+1)
		for _, e := range face {
			visited[e] = true
			coords = append(coords, g.Origin(e))
		}
		coords = append(coords, coords[0])
		rings = append(rings, coords)
	}

	return assembleCoverageResult(f, rings)
}

type directedKey struct{ ax, ay, bx, by float64 }

func directedKeyOf(a, b geom.Coordinate) directedKey {
	return directedKey{a.X, a.Y, b.X, b.Y}
}

type undirectedKey struct{ ax, ay, bx, by float64 }

func undirectedKeyOf(a, b geom.Coordinate) undirectedKey {
	if a.CompareTo(b) > 0 {
		a, b = b, a
	}
	return undirectedKey{a.X, a.Y, b.X, b.Y}
}

// directedEdgeOwners maps every directed edge to the set of polygon
// indices whose ring traversal produced it.
func directedEdgeOwners(polys []*geom.Geometry) map[directedKey][]int {
	owners := make(map[directedKey][]int)
	for i, p := range polys {
		for _, ring := range ringCoords(p) {
			for j := 0; j < len(ring)-1; j++ {
				a, b := ring[j], ring[j+1]
				if a.Equals2D(b) {
					continue
				}
				k := directedKeyOf(a, b)
				owners[k] = append(owners[k], i)
			}
		}
	}
	return owners
}

// canceled reports whether a->b is an interior edge shared between two
// different polygons: present in this direction and its reverse also
// present, each owned by at least one different polygon.
func canceled(a, b geom.Coordinate, owners map[directedKey][]int) bool {
	forward := owners[directedKeyOf(a, b)]
	backward := owners[directedKeyOf(b, a)]
	if len(forward) == 0 || len(backward) == 0 {
		return false
	}
	for _, p := range forward {
		for _, q := range backward {
			if p != q {
				return true
			}
		}
	}
	return false
}

func ringCoords(g *geom.Geometry) [][]geom.Coordinate {
	if g == nil || g.IsEmpty() {
		return nil
	}
	switch g.Kind() {
	case geom.KindPolygon:
		return polygonRingCoords(g)
	case geom.KindMultiPolygon:
		var out [][]geom.Coordinate
		for i := 0; i < g.NumGeometries(); i++ {
			out = append(out, polygonRingCoords(g.GeometryN(i))...)
		}
		return out
	default:
		return nil
	}
}

func polygonRingCoords(poly *geom.Geometry) [][]geom.Coordinate {
	if poly.Shell() == nil || poly.Shell().IsEmpty() {
		return nil
	}
	out := [][]geom.Coordinate{poly.Shell().Sequence().Coordinates()}
	for _, h := range poly.Holes() {
		out = append(out, h.Sequence().Coordinates())
	}
	return out
}

// assembleCoverageResult mirrors overlay.buildResult's shell/hole nesting,
// adapted to coverage's already-final ring set (no boundary-walk skipping
// needed, since every graph edge here is already a boundary edge).
func assembleCoverageResult(f *geom.Factory, rings [][]geom.Coordinate) (*geom.Geometry, error) {
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
			if ringEnclosesHole(shell, hole) {
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

func ringEnclosesHole(shell, hole *geom.Geometry) bool {
	shellCoords := shell.Sequence().Coordinates()
	for _, c := range hole.Sequence().Coordinates() {
		if predicate.LocatePointInRing(c, shellCoords) == predicate.Exterior {
			return false
		}
	}
	return true
}
