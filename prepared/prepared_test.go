package prepared

import (
	"testing"

	"github.com/geos-go/geos/geom"
)

func factory() *geom.Factory {
	return geom.NewFactory(geom.NewFloatingPrecisionModel(), geom.DimXY)
}

func xy(x, y float64) geom.Coordinate { return geom.NewXY(x, y) }

func square(t *testing.T, f *geom.Factory, x0, y0, x1, y1 float64) *geom.Geometry {
	t.Helper()
	shell, err := f.CreateLinearRing([]geom.Coordinate{
		xy(x0, y0), xy(x1, y0), xy(x1, y1), xy(x0, y1), xy(x0, y0),
	})
	if err != nil {
		t.Fatalf("CreateLinearRing: %v", err)
	}
	poly, err := f.CreatePolygon(shell, nil)
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}
	return poly
}

func point(t *testing.T, f *geom.Factory, x, y float64) *geom.Geometry {
	t.Helper()
	return f.CreatePoint([]geom.Coordinate{xy(x, y)})
}

func TestContainsNestedSquare(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	inner := square(t, f, 2, 2, 4, 4)

	p := New(outer)
	if !p.Contains(inner) {
		t.Fatalf("expected outer to contain inner")
	}
	if !p.ContainsProperly(inner) {
		t.Fatalf("expected outer to properly contain inner")
	}
	// Repeated queries reuse the same lazily built index.
	if !p.Contains(inner) {
		t.Fatalf("expected outer to contain inner on second query")
	}
}

func TestContainsPropertyFalseWhenTouchingBoundary(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	touching := square(t, f, 0, 0, 4, 4)

	p := New(outer)
	if !p.Contains(touching) {
		t.Fatalf("expected outer to contain touching")
	}
	if p.ContainsProperly(touching) {
		t.Fatalf("expected ContainsProperly to be false when boundaries touch")
	}
}

func TestIntersectsDisjointSquares(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 1, 1)
	b := square(t, f, 5, 5, 6, 6)

	p := New(a)
	if p.Intersects(b) {
		t.Fatalf("expected disjoint squares not to intersect")
	}
	if !p.Disjoint(b) {
		t.Fatalf("expected Disjoint to be true for disjoint squares")
	}
}

func TestIntersectsOverlappingSquares(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 2, 2)
	b := square(t, f, 1, 1, 3, 3)

	p := New(a)
	if !p.Intersects(b) {
		t.Fatalf("expected overlapping squares to intersect")
	}
	if p.Disjoint(b) {
		t.Fatalf("expected Disjoint to be false for overlapping squares")
	}
}

func TestCoversIncludesBoundary(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	onBoundary := square(t, f, 0, 0, 5, 5)

	p := New(outer)
	if !p.Covers(onBoundary) {
		t.Fatalf("expected outer to cover a square sharing its corner/edges")
	}
}

func TestIntersectsPointOperand(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	inside := point(t, f, 5, 5)
	outside := point(t, f, 20, 20)

	p := New(outer)
	if !p.Intersects(inside) {
		t.Fatalf("expected outer to intersect an interior point")
	}
	if p.Intersects(outside) {
		t.Fatalf("expected outer not to intersect a far-away point")
	}
}

func TestEmptyOperandsNeverIntersectOrContain(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	empty, _ := f.CreatePolygon(nil, nil)

	p := New(outer)
	if p.Intersects(empty) {
		t.Fatalf("expected no intersection with an empty operand")
	}
	if p.Contains(empty) {
		t.Fatalf("expected no containment of an empty operand")
	}

	pEmpty := New(empty)
	if pEmpty.Intersects(outer) {
		t.Fatalf("expected an empty base to intersect nothing")
	}
}

func TestBaseAccessor(t *testing.T) {
	f := factory()
	g := square(t, f, 0, 0, 1, 1)
	p := New(g)
	if p.Base() != g {
		t.Fatalf("expected Base to return the wrapped geometry")
	}
}
