// Package prepared implements PreparedGeometry (SPEC_FULL §4.9): a
// read-only wrapper around a base geometry that lazily builds spatial
// indexes the first time they're needed, then reuses them across many
// predicate calls against different operands. Grounded in the teacher's
// lazy ShapeIndex build and EdgeIndex.IsIndexComputed guard
// (s2/shapeindex.go, s2/edgeindex.go): both defer index construction
// until the first query, then serve every later query from the cached
// structure. sync.Once gives the same "idempotent lazy-init with a
// published acquire barrier" spec.md §5 asks for, without hand-rolling a
// double-checked-lock.
package prepared

import (
	"sync"

	"github.com/geos-go/geos/chain"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/index"
	"github.com/geos-go/geos/predicate"
	"github.com/geos-go/geos/relate"
)

// Geometry wraps base with a lazily built chain index (for edge-proximity
// pruning) and, for polygonal base geometries, a pointLocator built over
// an index.IntervalRTree (for fast repeated point-in-polygon queries).
type Geometry struct {
	base *geom.Geometry

	once       sync.Once
	envelope   geom.Envelope
	chainIndex *index.STRTree
	pointIndex *index.IntervalRTree
}

// New returns a PreparedGeometry over base. The index build is deferred
// to the first predicate call.
func New(base *geom.Geometry) *Geometry {
	return &Geometry{base: base}
}

// Base returns the wrapped geometry.
func (p *Geometry) Base() *geom.Geometry { return p.base }

type segment struct{ a, b geom.Coordinate }

func (p *Geometry) ensureIndex() {
	p.once.Do(func() {
		if p.base == nil {
			p.envelope = geom.EmptyEnvelope()
			return
		}
		p.envelope = p.base.Envelope()
		p.chainIndex = index.NewSTRTree(index.DefaultNodeCapacity)
		p.pointIndex = index.NewIntervalRTree()
		for _, ring := range p.base.Rings() {
			coords := ring.Sequence().Coordinates()
			seq := geom.NewSequence(geom.DimXY, coords)
			for _, mc := range chain.Build(seq, ring) {
				p.chainIndex.Insert(mc.Envelope(), mc)
			}
			for i := 0; i < len(coords)-1; i++ {
				a, b := coords[i], coords[i+1]
				lo, hi := a.Y, b.Y
				if lo > hi {
					lo, hi = hi, lo
				}
				p.pointIndex.Insert(index.Interval{Lo: lo, Hi: hi}, segment{a, b})
			}
		}
	})
}

// locate answers "where does c sit relative to base" using the indexed
// segment set: only candidate segments whose Y-extent brackets c.Y are
// tested, the same even-odd ray-crossing rule predicate.LocatePointInRing
// uses, applied across every ring of base at once (shell and holes
// together), which is equivalent to LocatePointInPolygon's shell-then-
// holes logic for a single polygon and extends directly to a
// non-overlapping MultiPolygon.
func (p *Geometry) locate(c geom.Coordinate) predicate.Location {
	p.ensureIndex()
	crossings := 0
	for _, item := range p.pointIndex.Query(index.Interval{Lo: c.Y, Hi: c.Y}) {
		seg := item.(segment)
		if predicate.PointOnSegment(c, seg.a, seg.b) {
			return predicate.Boundary
		}
		if rayCrosses(c, seg.a, seg.b) {
			crossings++
		}
	}
	if crossings%2 == 1 {
		return predicate.Interior
	}
	return predicate.Exterior
}

// rayCrosses mirrors predicate.LocatePointInRing's unexported
// isRayCrossing: a +x ray from p crosses segment ab, with the
// "lower-y counts, upper-y does not" endpoint convention.
func rayCrosses(p, a, b geom.Coordinate) bool {
	if a.Y == b.Y {
		return false
	}
	lo, hi := a, b
	if lo.Y > hi.Y {
		lo, hi = hi, lo
	}
	if p.Y < lo.Y || p.Y >= hi.Y {
		return false
	}
	xAtY := lo.X + (p.Y-lo.Y)/(hi.Y-lo.Y)*(hi.X-lo.X)
	return xAtY > p.X
}

// Intersects reports whether base and other share any point. The chain
// index and pointLocator prune the common case (operands nowhere near
// each other, or other strictly inside/outside base with no boundary
// crossing) without falling through to the general relate computation;
// when a candidate interaction survives pruning, relate.Intersects gives
// the authoritative answer.
func (p *Geometry) Intersects(other *geom.Geometry) bool {
	if p.base == nil || p.base.IsEmpty() || other == nil || other.IsEmpty() {
		return false
	}
	p.ensureIndex()
	if !p.envelope.IntersectsEnvelope(other.Envelope()) {
		return false
	}
	if !p.hasCandidateInteraction(other) {
		return false
	}
	return relate.Intersects(p.base, other)
}

// Disjoint is Intersects's complement.
func (p *Geometry) Disjoint(other *geom.Geometry) bool { return !p.Intersects(other) }

// Contains reports whether every point of other lies in base.
func (p *Geometry) Contains(other *geom.Geometry) bool {
	if other == nil || other.IsEmpty() {
		return false
	}
	p.ensureIndex()
	if !p.envelope.ContainsEnvelope(other.Envelope()) {
		return false
	}
	return relate.Contains(p.base, other)
}

// Covers reports whether every point of other lies in base or on its
// boundary (Contains without requiring base's interior to touch other's
// boundary).
func (p *Geometry) Covers(other *geom.Geometry) bool {
	if other == nil || other.IsEmpty() {
		return false
	}
	p.ensureIndex()
	if !p.envelope.ContainsEnvelope(other.Envelope()) {
		return false
	}
	return relate.Covers(p.base, other)
}

// ContainsProperly is the strict form of Contains: true only when other
// touches neither base's boundary nor its exterior, i.e. other lies
// entirely in base's interior.
func (p *Geometry) ContainsProperly(other *geom.Geometry) bool {
	if other == nil || other.IsEmpty() {
		return false
	}
	p.ensureIndex()
	if !p.envelope.ContainsEnvelope(other.Envelope()) {
		return false
	}
	m := relate.Compute(p.base, other)
	if !m.IsContains() {
		return false
	}
	return m.Get(predicate.Boundary, predicate.Interior) == relate.DimEmpty &&
		m.Get(predicate.Boundary, predicate.Boundary) == relate.DimEmpty
}

// hasCandidateInteraction is the fast-path used by Intersects: for
// polygonal operands, two simple polygons that share no point either
// cross edges (caught by the chain-index envelope pre-filter every noder
// in this module already uses) or sit one fully inside the other with no
// crossing at all (caught by a single vertex-containment test in either
// direction). Non-polygonal operands have no equivalent cheap proof of
// disjointness, so they always fall through to the exact computation.
func (p *Geometry) hasCandidateInteraction(other *geom.Geometry) bool {
	if !isPolygonal(p.base) || !isPolygonal(other) {
		return true
	}
	for _, ring := range other.Rings() {
		coords := ring.Sequence().Coordinates()
		seq := geom.NewSequence(geom.DimXY, coords)
		for _, mc := range chain.Build(seq, ring) {
			if len(p.chainIndex.Query(mc.Envelope())) > 0 {
				return true
			}
		}
	}

	found := false
	other.ForEachCoordinate(func(c geom.Coordinate) {
		if !found && p.locate(c) != predicate.Exterior {
			found = true
		}
	})
	if found {
		return true
	}

	p.base.ForEachCoordinate(func(c geom.Coordinate) {
		if !found && locateInPolygonal(c, other) != predicate.Exterior {
			found = true
		}
	})
	return found
}

func isPolygonal(g *geom.Geometry) bool {
	if g == nil {
		return true
	}
	switch g.Kind() {
	case geom.KindPolygon, geom.KindMultiPolygon:
		return true
	default:
		return g.IsEmpty()
	}
}

func locateInPolygonal(c geom.Coordinate, g *geom.Geometry) predicate.Location {
	if g == nil || g.IsEmpty() {
		return predicate.Exterior
	}
	switch g.Kind() {
	case geom.KindPolygon:
		if g.Shell() == nil {
			return predicate.Exterior
		}
		holes := make([][]geom.Coordinate, len(g.Holes()))
		for i, h := range g.Holes() {
			holes[i] = h.Sequence().Coordinates()
		}
		return predicate.LocatePointInPolygon(c, g.Shell().Sequence().Coordinates(), holes)
	case geom.KindMultiPolygon:
		for i := 0; i < g.NumGeometries(); i++ {
			if loc := locateInPolygonal(c, g.GeometryN(i)); loc != predicate.Exterior {
				return loc
			}
		}
		return predicate.Exterior
	default:
		return predicate.Exterior
	}
}
