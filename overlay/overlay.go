// Package overlay computes planar boolean set operations (intersection,
// union, difference, symmetric difference) between polygonal geometries,
// the OverlayNG-style algorithm SPEC_FULL §4.7 describes: node both
// inputs together, build a half-edge graph.Graph over the noded edges,
// classify every resulting face against both inputs, then walk the
// faces whose kept-status differs across an edge to assemble the result.
//
// Grounded in the teacher's Builder pipeline (s2/builder.go: snap ->
// graph -> layer assembly), generalized from "simplify/repair one shape"
// to "combine two shapes under a boolean operator," and in
// s2/builder_graph_edge_processor.go for the same degenerate/dangling-
// edge suppression this package's face-boundary walk needs.
package overlay

import (
	"context"

	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/graph"
	"github.com/geos-go/geos/noding"
	"github.com/geos-go/geos/predicate"
)

// Operation selects the boolean set operation OverlayOp.Compute performs.
type Operation int

const (
	Intersection Operation = iota
	Union
	Difference
	SymDifference
)

func (op Operation) String() string {
	switch op {
	case Intersection:
		return "INTERSECTION"
	case Union:
		return "UNION"
	case Difference:
		return "DIFFERENCE"
	case SymDifference:
		return "SYMDIFFERENCE"
	default:
		return "UNKNOWN"
	}
}

// keep reports whether a face located inA/inB survives op.
func (op Operation) keep(inA, inB bool) bool {
	switch op {
	case Intersection:
		return inA && inB
	case Union:
		return inA || inB
	case Difference:
		return inA && !inB
	case SymDifference:
		return inA != inB
	default:
		return false
	}
}

// OverlayOp computes a boolean operation between two polygonal
// geometries.
type OverlayOp struct {
	// Noder overrides the noder chosen from the operands' precision
	// model. Nil selects NewSnapRoundingNoder for a Fixed
	// PrecisionModel, or MCIndexNoder (exact-vertex noding) for a
	// Floating one, per SPEC_FULL §4.7.
	Noder noding.Noder
}

// Compute returns the result of applying op to a and b. Both operands
// must be a Polygon, a MultiPolygon, or empty.
func (o OverlayOp) Compute(ctx context.Context, a, b *geom.Geometry, op Operation) (*geom.Geometry, error) {
	if err := checkPolygonal(a); err != nil {
		return nil, err
	}
	if err := checkPolygonal(b); err != nil {
		return nil, err
	}
	f := resultFactory(a, b)
	if f == nil {
		return nil, &gerror.InvalidArgumentError{Op: "OverlayOp.Compute", Message: "at least one operand must carry a factory"}
	}

	if result, ok := envelopeShortcut(f, a, b, op); ok {
		return result, nil
	}

	tagged := extractRings(a, sourceA)
	tagged = append(tagged, extractRings(b, sourceB)...)
	if len(tagged) == 0 {
		return f.CreatePolygon(nil, nil)
	}

	segStrings := make([]*noding.SegmentString, len(tagged))
	for i, r := range tagged {
		segStrings[i] = noding.NewSegmentString(r.coords, r.source)
	}
	noded, err := o.noder(a, b).ComputeNodes(ctx, segStrings)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	addNodedEdges(g, noded)

	faceKept, err := classifyFaces(ctx, g, a, b, op)
	if err != nil {
		return nil, err
	}

	rings, err := assembleRings(ctx, g, faceKept)
	if err != nil {
		return nil, err
	}
	return buildResult(f, rings)
}

func (o OverlayOp) noder(a, b *geom.Geometry) noding.Noder {
	if o.Noder != nil {
		return o.Noder
	}
	pm := precisionModelOf(a, b)
	if pm != nil && pm.Type() == geom.Fixed {
		return noding.NewSnapRoundingNoder(pm)
	}
	return noding.MCIndexNoder{}
}

func precisionModelOf(a, b *geom.Geometry) *geom.PrecisionModel {
	if a != nil {
		return a.Factory().PrecisionModel()
	}
	if b != nil {
		return b.Factory().PrecisionModel()
	}
	return nil
}

func resultFactory(a, b *geom.Geometry) *geom.Factory {
	if a != nil {
		return a.Factory()
	}
	if b != nil {
		return b.Factory()
	}
	return nil
}

func checkPolygonal(g *geom.Geometry) error {
	if g == nil {
		return nil
	}
	switch g.Kind() {
	case geom.KindPolygon, geom.KindMultiPolygon:
		return nil
	default:
		if g.IsEmpty() {
			return nil
		}
		return &gerror.UnsupportedOperationError{Op: "OverlayOp.Compute", Message: "operand must be a Polygon or MultiPolygon, got " + g.Kind().String()}
	}
}

type source int

const (
	sourceA source = iota
	sourceB
)

type taggedRing struct {
	coords []geom.Coordinate
	source source
}

// extractRings collects every shell and hole ring of g (Polygon or
// MultiPolygon, possibly empty/nil), each tagged with which operand it
// came from for later dedup-free edge construction.
func extractRings(g *geom.Geometry, src source) []taggedRing {
	if g == nil || g.IsEmpty() {
		return nil
	}
	switch g.Kind() {
	case geom.KindPolygon:
		return polygonRings(g, src)
	case geom.KindMultiPolygon:
		var out []taggedRing
		for i := 0; i < g.NumGeometries(); i++ {
			out = append(out, polygonRings(g.GeometryN(i), src)...)
		}
		return out
	default:
		return nil
	}
}

func polygonRings(poly *geom.Geometry, src source) []taggedRing {
	if poly.Shell() == nil || poly.Shell().IsEmpty() {
		return nil
	}
	out := []taggedRing{{coords: poly.Shell().Sequence().Coordinates(), source: src}}
	for _, h := range poly.Holes() {
		out = append(out, taggedRing{coords: h.Sequence().Coordinates(), source: src})
	}
	return out
}

// addNodedEdges inserts every noded ring's segments into g, skipping an
// undirected edge already present (the same coordinate pair noded from
// both operands, e.g. a shared boundary) to avoid the degenerate
// multi-edge that two parallel half-edge pairs at one location would
// produce in the CCW splice order.
func addNodedEdges(g *graph.Graph, noded []*noding.NodedSegmentString) {
	seen := make(map[edgeKey]bool)
	for _, n := range noded {
		verts := n.Vertices
		for i := 0; i < len(verts)-1; i++ {
			a, b := verts[i], verts[i+1]
			if a.Equals2D(b) {
				continue
			}
			k := keyOf(a, b)
			if seen[k] {
				continue
			}
			seen[k] = true
			g.AddEdge(a, b, nil)
		}
	}
}

type edgeKey struct{ ax, ay, bx, by float64 }

func keyOf(a, b geom.Coordinate) edgeKey {
	if a.CompareTo(b) > 0 {
		a, b = b, a
	}
	return edgeKey{a.X, a.Y, b.X, b.Y}
}

// insidePolygonal reports whether p lies in the interior or on the
// boundary of the polygonal geometry g.
func insidePolygonal(p geom.Coordinate, g *geom.Geometry) bool {
	if g == nil || g.IsEmpty() {
		return false
	}
	switch g.Kind() {
	case geom.KindPolygon:
		return locateInPolygon(p, g) != predicate.Exterior
	case geom.KindMultiPolygon:
		for i := 0; i < g.NumGeometries(); i++ {
			if insidePolygonal(p, g.GeometryN(i)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func locateInPolygon(p geom.Coordinate, poly *geom.Geometry) predicate.Location {
	if poly.Shell() == nil {
		return predicate.Exterior
	}
	holes := make([][]geom.Coordinate, len(poly.Holes()))
	for i, h := range poly.Holes() {
		holes[i] = h.Sequence().Coordinates()
	}
	return predicate.LocatePointInPolygon(p, poly.Shell().Sequence().Coordinates(), holes)
}

// envelopeShortcut resolves op without noding whenever one operand is
// empty or the operands' envelopes don't intersect, the "envelope-clip"
// fast path SPEC_FULL §4.7 names.
func envelopeShortcut(f *geom.Factory, a, b *geom.Geometry, op Operation) (*geom.Geometry, bool) {
	aEmpty := a == nil || a.IsEmpty()
	bEmpty := b == nil || b.IsEmpty()
	if aEmpty && bEmpty {
		g, _ := f.CreatePolygon(nil, nil)
		return g, true
	}
	if aEmpty {
		return emptyOr(f, b, op.keep(false, true)), true
	}
	if bEmpty {
		return emptyOr(f, a, op.keep(true, false)), true
	}
	if a.Envelope().IntersectsEnvelope(b.Envelope()) {
		return nil, false
	}
	switch op {
	case Intersection:
		g, _ := f.CreatePolygon(nil, nil)
		return g, true
	case Difference:
		return a, true
	default: // Union, SymDifference: disjoint operands simply combine.
		return combinePolygons(f, a, b)
	}
}

func emptyOr(f *geom.Factory, g *geom.Geometry, keep bool) *geom.Geometry {
	if keep {
		return g
	}
	empty, _ := f.CreatePolygon(nil, nil)
	return empty
}

func combinePolygons(f *geom.Factory, a, b *geom.Geometry) (*geom.Geometry, bool) {
	parts := append(polygonParts(a), polygonParts(b)...)
	switch len(parts) {
	case 0:
		g, _ := f.CreatePolygon(nil, nil)
		return g, true
	case 1:
		return parts[0], true
	default:
		g, _ := f.CreateMultiPolygon(parts)
		return g, true
	}
}

func polygonParts(g *geom.Geometry) []*geom.Geometry {
	if g == nil || g.IsEmpty() {
		return nil
	}
	if g.Kind() == geom.KindPolygon {
		return []*geom.Geometry{g}
	}
	out := make([]*geom.Geometry, 0, g.NumGeometries())
	for i := 0; i < g.NumGeometries(); i++ {
		out = append(out, g.GeometryN(i))
	}
	return out
}
