// Package valid implements ValidityOp: the OGC simple-feature validity
// rules for Polygon and MultiPolygon geometries (ring simplicity,
// hole-in-shell containment, nested holes, nested shells, connected
// interior). Grounded in the teacher's s2/loop.go, whose initBound/
// turning-angle checks validate a single spherical loop's simplicity;
// this package generalizes that single-loop check to ring self-
// intersection via noding.MCIndexNoder (s2 has no holes, so the
// hole/shell containment and nesting rules here have no teacher
// analogue and are implemented directly from spec.md §4.6/§8).
package valid

import (
	"context"
	"fmt"

	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/index"
	"github.com/geos-go/geos/noding"
	"github.com/geos-go/geos/predicate"
	"github.com/geos-go/geos/relate"
)

// ErrorKind classifies why a geometry failed validation.
type ErrorKind int

const (
	SelfIntersection ErrorKind = iota
	RingSelfIntersection
	HoleOutsideShell
	NestedHoles
	DisconnectedInterior
	NestedShells
	TooFewPoints
	RingNotClosed
)

func (k ErrorKind) String() string {
	switch k {
	case SelfIntersection:
		return "self-intersection"
	case RingSelfIntersection:
		return "ring self-intersection"
	case HoleOutsideShell:
		return "hole lies outside shell"
	case NestedHoles:
		return "holes are nested"
	case DisconnectedInterior:
		return "interior is disconnected"
	case NestedShells:
		return "nested shells"
	case TooFewPoints:
		return "too few points in geometry component"
	case RingNotClosed:
		return "ring is not closed"
	default:
		return "invalid"
	}
}

// Error reports one validity failure, with the offending coordinate when
// known.
type Error struct {
	Kind       ErrorKind
	Coordinate geom.Coordinate
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind, e.Coordinate)
}

// IsValid reports whether g satisfies the OGC simple-feature validity
// rules. It is a thin wrapper over CheckValid that discards the error
// detail, for call sites that only need a boolean.
func IsValid(g *geom.Geometry) bool {
	return CheckValid(context.Background(), g) == nil
}

// CheckValid runs ValidityOp against g, returning the first violation
// found or nil. A LinearRing is checked for closure, point count and
// simplicity; Polygon and MultiPolygon carry the area-validity rules; a
// GeometryCollection is checked part by part. Other geometries (Point,
// LineString, Multi* collections of those) are always valid.
func CheckValid(ctx context.Context, g *geom.Geometry) error {
	switch g.Kind() {
	case geom.KindLinearRing:
		return checkRingValid(ctx, g)
	case geom.KindPolygon:
		return checkPolygonValid(ctx, g)
	case geom.KindMultiPolygon:
		return checkMultiPolygonValid(ctx, g)
	case geom.KindGeometryCollection:
		for i := 0; i < g.NumGeometries(); i++ {
			if err := CheckValid(ctx, g.GeometryN(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// checkRingValid reports whether ring is simple: it closes, has at least
// 4 points, and no two non-adjacent segments touch or cross.
func checkRingValid(ctx context.Context, ring *geom.Geometry) error {
	if ring.IsEmpty() {
		return nil
	}
	seq := ring.Sequence()
	if seq.Size() < 4 {
		return &Error{Kind: TooFewPoints}
	}
	if !seq.IsClosed() {
		return &Error{Kind: RingNotClosed, Coordinate: seq.Get(0)}
	}
	return checkSelfIntersection(ctx, seq.Coordinates())
}

// checkSelfIntersection nodes a single ring against itself (via
// MCIndexNoder, so an O(n log n) spatial index narrows candidate segment
// pairs rather than testing every pair) and reports a violation if any
// non-adjacent segment pair produces an intersection the ring's own
// vertex sequence doesn't already account for.
func checkSelfIntersection(ctx context.Context, coords []geom.Coordinate) error {
	ss := noding.NewSegmentString(coords, nil)
	n := noding.MCIndexNoder{}
	noded, err := n.ComputeNodes(ctx, []*noding.SegmentString{ss})
	if err != nil {
		return err
	}
	// A simple ring's noded vertex count must equal its original vertex
	// count: noding only adds vertices where segments actually cross or
	// touch away from their shared endpoints.
	if len(noded) == 1 && len(noded[0].Vertices) > len(coords) {
		for _, v := range noded[0].Vertices {
			found := false
			for _, c := range coords {
				if v.Equals2D(c) {
					found = true
					break
				}
			}
			if !found {
				return &Error{Kind: RingSelfIntersection, Coordinate: v}
			}
		}
	}
	return adjacentSegmentCrossingCheck(coords)
}

// adjacentSegmentCrossingCheck catches the self-tangency case noding
// alone misses: a ring whose non-adjacent segments touch exactly at a
// shared vertex already present in the ring (a figure-eight), which
// MCIndexNoder sees as "no new vertex needed" since the touch point is
// already a ring vertex.
func adjacentSegmentCrossingCheck(coords []geom.Coordinate) error {
	n := len(coords) - 1 // last == first
	for i := 0; i < n; i++ {
		a1, a2 := coords[i], coords[i+1]
		for j := i + 1; j < n; j++ {
			adjacent := j == i+1 || (i == 0 && j == n-1)
			b1, b2 := coords[j], coords[j+1]
			r := predicate.IntersectSegments(a1, a2, b1, b2)
			if r.Type == predicate.NoIntersection {
				continue
			}
			if adjacent {
				// Adjacent segments are expected to touch at their
				// shared endpoint; anything else (overlap, or touching
				// away from the shared vertex) is a violation. The closing
				// pair (i == 0, j == n-1) shares the ring's start vertex.
				shared := a2
				if j != i+1 {
					shared = a1
				}
				if r.Type == predicate.CollinearIntersection || len(r.Points) != 1 || !r.Points[0].Equals2D(shared) {
					return &Error{Kind: RingSelfIntersection, Coordinate: shared}
				}
				continue
			}
			return &Error{Kind: RingSelfIntersection, Coordinate: r.Points[0]}
		}
	}
	return nil
}

func checkPolygonValid(ctx context.Context, poly *geom.Geometry) error {
	if poly.IsEmpty() {
		return nil
	}
	shell := poly.Shell()
	if err := checkRingValid(ctx, shell); err != nil {
		return err
	}
	holes := poly.Holes()
	for _, h := range holes {
		if err := checkRingValid(ctx, h); err != nil {
			return err
		}
	}
	if err := checkRingAgainstOther(ctx, shell, holes); err != nil {
		return err
	}
	if err := checkHolesNotNested(holes); err != nil {
		return err
	}
	return checkInteriorConnected(poly)
}

// checkRingAgainstOther verifies every hole lies inside the shell
// (every hole vertex in the shell's interior or boundary) and that no
// hole crosses the shell or another hole, using an STR-tree over ring
// envelopes (spec.md §4.6) to skip ring pairs whose bounding boxes don't
// even overlap before running the exact crossing test.
func checkRingAgainstOther(ctx context.Context, shell *geom.Geometry, holes []*geom.Geometry) error {
	tree := index.NewSTRTree(index.DefaultNodeCapacity)
	type tagged struct {
		ring   *geom.Geometry
		isHole bool
	}
	all := make([]tagged, 0, 1+len(holes))
	all = append(all, tagged{shell, false})
	for _, h := range holes {
		all = append(all, tagged{h, true})
	}
	for i, t := range all {
		tree.Insert(t.ring.Envelope(), i)
	}

	for i, h := range holes {
		hc := h.Sequence().Coordinates()
		for _, c := range hc {
			loc := predicate.LocatePointInRing(c, shell.Sequence().Coordinates())
			if loc == predicate.Exterior {
				return &Error{Kind: HoleOutsideShell, Coordinate: c}
			}
		}
		candidates := tree.Query(h.Envelope())
		for _, cand := range candidates {
			idx := cand.(int)
			if idx == i+1 {
				continue // self
			}
			other := all[idx].ring
			if err := checkRingsDontCross(hc, other.Sequence().Coordinates()); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRingsDontCross(a, b []geom.Coordinate) error {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			r := predicate.IntersectSegments(a[i], a[i+1], b[j], b[j+1])
			switch r.Type {
			case predicate.NoIntersection:
				continue
			case predicate.CollinearIntersection:
				return &Error{Kind: RingSelfIntersection, Coordinate: r.Points[0]}
			case predicate.PointIntersection:
				p := r.Points[0]
				if isSharedVertex(p, a) && isSharedVertex(p, b) {
					continue
				}
				return &Error{Kind: RingSelfIntersection, Coordinate: p}
			}
		}
	}
	return nil
}

func isSharedVertex(p geom.Coordinate, ring []geom.Coordinate) bool {
	for _, c := range ring {
		if p.Equals2D(c) {
			return true
		}
	}
	return false
}

// checkHolesNotNested reports whether any hole's boundary lies entirely
// within another hole -- two holes may touch but a hole may not sit
// inside another hole's interior.
func checkHolesNotNested(holes []*geom.Geometry) error {
	for i, h := range holes {
		hc := h.Sequence().Coordinates()
		for j, other := range holes {
			if i == j {
				continue
			}
			oc := other.Sequence().Coordinates()
			if ringEnclosedBy(hc, oc) {
				return &Error{Kind: NestedHoles, Coordinate: hc[0]}
			}
		}
	}
	return nil
}

// ringEnclosedBy reports whether every vertex of inner lies strictly
// within outer's interior (none on outer's boundary), the condition for
// "inner is nested inside outer" rather than merely touching it.
func ringEnclosedBy(inner, outer []geom.Coordinate) bool {
	for _, c := range inner {
		if predicate.LocatePointInRing(c, outer) != predicate.Interior {
			return false
		}
	}
	return true
}

// checkInteriorConnected verifies the polygon's interior is a single
// connected region: every hole must touch the shell or another hole in
// at most isolated points, never splitting the interior into two pieces
// joined only through a hole tangency on both sides. A precise general
// check belongs to OverlayNG-grade topology; this package checks the
// practical necessary condition spec.md §4.6 calls out -- no hole is
// tangent to the shell (or another hole) at two or more distinct points,
// which is exactly the "figure-eight via a hole" disconnection pattern.
func checkInteriorConnected(poly *geom.Geometry) error {
	shell := poly.Shell().Sequence().Coordinates()
	for _, h := range poly.Holes() {
		hc := h.Sequence().Coordinates()
		touches := 0
		for _, c := range hc {
			if predicate.LocatePointInRing(c, shell) == predicate.Boundary {
				touches++
			}
		}
		if touches >= 2 {
			return &Error{Kind: DisconnectedInterior, Coordinate: hc[0]}
		}
	}
	return nil
}

func checkMultiPolygonValid(ctx context.Context, mp *geom.Geometry) error {
	n := mp.NumGeometries()
	for i := 0; i < n; i++ {
		if err := checkPolygonValid(ctx, mp.GeometryN(i)); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		pi := mp.GeometryN(i)
		if pi.IsEmpty() {
			continue
		}
		for j := i + 1; j < n; j++ {
			pj := mp.GeometryN(j)
			if pj.IsEmpty() {
				continue
			}
			if err := checkShellsDontOverlap(pi, pj); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkShellsDontOverlap enforces spec.md §4.6's element-interiors-
// disjoint rule: no two MultiPolygon elements may share interior area,
// whether by nesting (one shell entirely inside another) or by crossing.
// Sharing a boundary (touching along an edge or at a point) is allowed;
// only a non-empty interior/interior intersection is a violation, so this
// delegates to the relate engine's DE-9IM matrix rather than a bare
// ring-crossing test, which cannot distinguish "shares an edge" from
// "overlaps".
func checkShellsDontOverlap(a, b *geom.Geometry) error {
	m := relate.Compute(a, b)
	if m.Get(predicate.Interior, predicate.Interior) >= relate.Dim0 {
		return &Error{Kind: NestedShells, Coordinate: a.Shell().Sequence().Get(0)}
	}
	return nil
}

// InvalidReason returns a human-readable description of why g is
// invalid, or "" if g is valid. Mirrors the teacher's pattern of pairing
// a boolean predicate with a detail accessor (e.g. s2.Loop.FindValidationError
// alongside an implicit IsValid), adapted to this package's error type.
func InvalidReason(g *geom.Geometry) string {
	if err := CheckValid(context.Background(), g); err != nil {
		return err.Error()
	}
	return ""
}
