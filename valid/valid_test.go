package valid

import (
	"testing"

	"github.com/geos-go/geos/geom"
)

func factory() *geom.Factory {
	return geom.NewFactory(geom.NewFloatingPrecisionModel(), geom.DimXY)
}

func xy(x, y float64) geom.Coordinate { return geom.NewXY(x, y) }

func TestValidSquareIsValid(t *testing.T) {
	f := factory()
	shell, err := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(4, 0), xy(4, 4), xy(0, 4), xy(0, 0)})
	if err != nil {
		t.Fatalf("CreateLinearRing: %v", err)
	}
	poly, err := f.CreatePolygon(shell, nil)
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	if !IsValid(poly) {
		t.Fatalf("expected square to be valid, got: %s", InvalidReason(poly))
	}
}

func TestSelfIntersectingBowtieIsInvalid(t *testing.T) {
	f := factory()
	shell, err := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(4, 4), xy(4, 0), xy(0, 4), xy(0, 0)})
	if err != nil {
		t.Fatalf("CreateLinearRing: %v", err)
	}
	poly, err := f.CreatePolygon(shell, nil)
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	if IsValid(poly) {
		t.Fatalf("expected bowtie ring to be invalid")
	}
}

func TestHoleInsideShellIsValid(t *testing.T) {
	f := factory()
	shell, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(10, 0), xy(10, 10), xy(0, 10), xy(0, 0)})
	hole, _ := f.CreateLinearRing([]geom.Coordinate{xy(2, 2), xy(2, 4), xy(4, 4), xy(4, 2), xy(2, 2)})
	poly, err := f.CreatePolygon(shell, []*geom.Geometry{hole})
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	if !IsValid(poly) {
		t.Fatalf("expected shell+hole to be valid, got: %s", InvalidReason(poly))
	}
}

func TestHoleOutsideShellIsInvalid(t *testing.T) {
	f := factory()
	shell, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(10, 0), xy(10, 10), xy(0, 10), xy(0, 0)})
	hole, _ := f.CreateLinearRing([]geom.Coordinate{xy(20, 20), xy(20, 24), xy(24, 24), xy(24, 20), xy(20, 20)})
	poly, err := f.CreatePolygon(shell, []*geom.Geometry{hole})
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	if IsValid(poly) {
		t.Fatalf("expected hole outside shell to be invalid")
	}
}

func TestNestedHolesIsInvalid(t *testing.T) {
	f := factory()
	shell, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(20, 0), xy(20, 20), xy(0, 20), xy(0, 0)})
	outerHole, _ := f.CreateLinearRing([]geom.Coordinate{xy(2, 2), xy(2, 16), xy(16, 16), xy(16, 2), xy(2, 2)})
	innerHole, _ := f.CreateLinearRing([]geom.Coordinate{xy(4, 4), xy(4, 8), xy(8, 8), xy(8, 4), xy(4, 4)})
	poly, err := f.CreatePolygon(shell, []*geom.Geometry{outerHole, innerHole})
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	if IsValid(poly) {
		t.Fatalf("expected nested holes to be invalid")
	}
}

func TestMultiPolygonNestedShellsIsInvalid(t *testing.T) {
	f := factory()
	outer, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(10, 0), xy(10, 10), xy(0, 10), xy(0, 0)})
	inner, _ := f.CreateLinearRing([]geom.Coordinate{xy(2, 2), xy(2, 4), xy(4, 4), xy(4, 2), xy(2, 2)})
	polyA, _ := f.CreatePolygon(outer, nil)
	polyB, _ := f.CreatePolygon(inner, nil)
	mp, err := f.CreateMultiPolygon([]*geom.Geometry{polyA, polyB})
	if err != nil {
		t.Fatalf("CreateMultiPolygon: %v", err)
	}
	if IsValid(mp) {
		t.Fatalf("expected nested shells to be invalid")
	}
}

func TestTouchingMultiPolygonElementsAreValid(t *testing.T) {
	f := factory()
	a, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(1, 0), xy(1, 1), xy(0, 1), xy(0, 0)})
	b, _ := f.CreateLinearRing([]geom.Coordinate{xy(1, 0), xy(2, 0), xy(2, 1), xy(1, 1), xy(1, 0)})
	polyA, _ := f.CreatePolygon(a, nil)
	polyB, _ := f.CreatePolygon(b, nil)
	mp, err := f.CreateMultiPolygon([]*geom.Geometry{polyA, polyB})
	if err != nil {
		t.Fatalf("CreateMultiPolygon: %v", err)
	}
	if !IsValid(mp) {
		t.Fatalf("expected touching rectangles to be valid, got: %s", InvalidReason(mp))
	}
}
