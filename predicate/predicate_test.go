package predicate

import (
	"testing"

	"github.com/geos-go/geos/geom"
)

func TestOrientConsistencyUnderCyclicPermutation(t *testing.T) {
	p1, p2, p3 := geom.NewXY(0, 0), geom.NewXY(10, 0), geom.NewXY(5, 5)
	a := Orient(p1, p2, p3)
	b := Orient(p2, p3, p1)
	c := Orient(p3, p1, p2)
	if a != b || b != c {
		t.Fatalf("orientation not cyclic-consistent: %v %v %v", a, b, c)
	}
	if Orient(p2, p1, p3) != -a {
		t.Fatalf("orientation not anti-symmetric under swap")
	}
}

func TestOrientCollinear(t *testing.T) {
	a, b, c := geom.NewXY(0, 0), geom.NewXY(1, 1), geom.NewXY(2, 2)
	if Orient(a, b, c) != Collinear {
		t.Fatalf("expected Collinear for points on a line")
	}
}

// Scenario 2 from spec.md §8: point (0,1) against ring
// (0 0, 2 0, 2 2, 0 2, 0 0) -> BOUNDARY.
func TestLocatePointOnBoundary(t *testing.T) {
	ring := []geom.Coordinate{
		geom.NewXY(0, 0), geom.NewXY(2, 0), geom.NewXY(2, 2), geom.NewXY(0, 2), geom.NewXY(0, 0),
	}
	loc := LocatePointInRing(geom.NewXY(0, 1), ring)
	if loc != Boundary {
		t.Fatalf("expected BOUNDARY, got %v", loc)
	}
}

func TestLocatePointInteriorAndExterior(t *testing.T) {
	ring := []geom.Coordinate{
		geom.NewXY(0, 0), geom.NewXY(2, 0), geom.NewXY(2, 2), geom.NewXY(0, 2), geom.NewXY(0, 0),
	}
	if LocatePointInRing(geom.NewXY(1, 1), ring) != Interior {
		t.Fatalf("expected INTERIOR")
	}
	if LocatePointInRing(geom.NewXY(5, 5), ring) != Exterior {
		t.Fatalf("expected EXTERIOR")
	}
}

// Scenario 4 from spec.md §8: LINESTRING(0 0, 10 10) crossing
// LINESTRING(0 10, 10 0) at (5,5).
func TestIntersectSegmentsCrossing(t *testing.T) {
	p1, p2 := geom.NewXY(0, 0), geom.NewXY(10, 10)
	q1, q2 := geom.NewXY(0, 10), geom.NewXY(10, 0)
	res := IntersectSegments(p1, p2, q1, q2)
	if res.Type != PointIntersection {
		t.Fatalf("expected PointIntersection, got %v", res.Type)
	}
	got := res.Points[0]
	if got.X != 5 || got.Y != 5 {
		t.Fatalf("expected (5,5), got %v", got)
	}
	if !res.IsProper(p1, p2, q1, q2) {
		t.Fatalf("expected proper intersection")
	}
}

func TestIntersectSegmentsDisjoint(t *testing.T) {
	res := IntersectSegments(geom.NewXY(0, 0), geom.NewXY(1, 0), geom.NewXY(0, 5), geom.NewXY(1, 5))
	if res.Type != NoIntersection {
		t.Fatalf("expected NoIntersection, got %v", res.Type)
	}
}

func TestIntersectSegmentsCollinearOverlap(t *testing.T) {
	res := IntersectSegments(geom.NewXY(0, 0), geom.NewXY(10, 0), geom.NewXY(5, 0), geom.NewXY(15, 0))
	if res.Type != CollinearIntersection {
		t.Fatalf("expected CollinearIntersection, got %v", res.Type)
	}
	if len(res.Points) != 2 {
		t.Fatalf("expected 2 overlap endpoints, got %d", len(res.Points))
	}
}

func TestIntersectSegmentsSharedEndpointIsNotProper(t *testing.T) {
	p1, p2 := geom.NewXY(0, 0), geom.NewXY(10, 0)
	q1, q2 := geom.NewXY(10, 0), geom.NewXY(10, 10)
	res := IntersectSegments(p1, p2, q1, q2)
	if res.Type != PointIntersection {
		t.Fatalf("expected PointIntersection at the shared endpoint, got %v", res.Type)
	}
	if res.IsProper(p1, p2, q1, q2) {
		t.Fatalf("a shared endpoint must not be classified as a proper intersection")
	}
}

func TestIntersectionPointWithinBothEnvelopes(t *testing.T) {
	p1, p2 := geom.NewXY(0, 0), geom.NewXY(10, 10)
	q1, q2 := geom.NewXY(0, 10), geom.NewXY(10, 0)
	res := IntersectSegments(p1, p2, q1, q2)
	envP := geom.EnvelopeFromCoordinates([]geom.Coordinate{p1, p2})
	envQ := geom.EnvelopeFromCoordinates([]geom.Coordinate{q1, q2})
	for _, pt := range res.Points {
		if !envP.ContainsPoint(pt) || !envQ.ContainsPoint(pt) {
			t.Fatalf("intersection point %v escaped segment envelopes", pt)
		}
	}
}
