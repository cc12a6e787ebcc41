package overlay

import (
	"context"
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

// sortedRingCoords returns poly's shell coordinates rotated so the
// lexicographically smallest coordinate comes first, for order-
// independent comparison against an expected ring.
func sortedRingCoords(t *testing.T, g *geom.Geometry) []geom.Coordinate {
	t.Helper()
	if g.Kind() != geom.KindPolygon {
		t.Fatalf("expected a Polygon result, got %s", g.Kind())
	}
	coords := g.Shell().Sequence().Coordinates()
	open := coords[:len(coords)-1]
	minIdx := 0
	for i, c := range open {
		if c.CompareTo(open[minIdx]) < 0 {
			minIdx = i
		}
	}
	rotated := append(append([]geom.Coordinate{}, open[minIdx:]...), open[:minIdx]...)
	rotated = append(rotated, rotated[0])
	return rotated
}

func coordsEqual(a, b []geom.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals2D(b[i]) {
			return false
		}
	}
	return true
}

func TestIntersectionOfOverlappingSquares(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 2, 2)
	b := square(t, f, 1, 1, 3, 3)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, Intersection)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := []geom.Coordinate{xy(1, 1), xy(2, 1), xy(2, 2), xy(1, 2), xy(1, 1)}
	got := sortedRingCoords(t, result)
	if !coordsEqual(got, want) {
		t.Fatalf("got ring %v, want %v", got, want)
	}
}

func TestUnionOfOverlappingSquares(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 2, 2)
	b := square(t, f, 1, 1, 3, 3)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, Union)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Kind() != geom.KindPolygon {
		t.Fatalf("expected single Polygon, got %s", result.Kind())
	}
	coords := result.Shell().Sequence().Coordinates()
	// A single-ring union of two overlapping squares has 8 boundary
	// vertices (the notch where the squares differ) plus the closing
	// repeat of the first.
	if len(coords) != 9 {
		t.Fatalf("expected a 9-vertex (8-edge) union ring, got %d: %v", len(coords), coords)
	}
	for _, c := range coords {
		if !insidePolygonal(c, a) && !insidePolygonal(c, b) {
			t.Fatalf("union boundary vertex %v is outside both operands", c)
		}
	}
}

func TestDifferenceRemovesOverlap(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 2, 2)
	b := square(t, f, 1, 1, 3, 3)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, Difference)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Kind() != geom.KindPolygon || result.IsEmpty() {
		t.Fatalf("expected a non-empty Polygon, got %s", result.Kind())
	}
	// No point of a-minus-b may lie in the interior of b.
	for _, c := range result.Shell().Sequence().Coordinates() {
		loc := locateInPolygon(c, b)
		if loc.String() == "INTERIOR" {
			t.Fatalf("difference result vertex %v lies inside b", c)
		}
	}
}

func TestSymDifferenceOfOverlappingSquares(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 2, 2)
	b := square(t, f, 1, 1, 3, 3)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, SymDifference)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Kind() != geom.KindMultiPolygon {
		t.Fatalf("expected two disjoint pieces (MultiPolygon), got %s", result.Kind())
	}
	if result.NumGeometries() != 2 {
		t.Fatalf("expected 2 parts, got %d", result.NumGeometries())
	}
}

func TestDisjointSquaresUnionIsMultiPolygon(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 1, 1)
	b := square(t, f, 5, 5, 6, 6)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, Union)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Kind() != geom.KindMultiPolygon || result.NumGeometries() != 2 {
		t.Fatalf("expected a 2-part MultiPolygon, got %s with %d parts", result.Kind(), result.NumGeometries())
	}
}

func TestDisjointSquaresIntersectionIsEmpty(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 1, 1)
	b := square(t, f, 5, 5, 6, 6)

	result, err := (OverlayOp{}).Compute(context.Background(), a, b, Intersection)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !result.IsEmpty() {
		t.Fatalf("expected an empty result, got %s", result.Kind())
	}
}

func TestPolygonWithHolePunchedByIntersection(t *testing.T) {
	f := factory()
	outer := square(t, f, 0, 0, 10, 10)
	shell, _ := f.CreateLinearRing([]geom.Coordinate{xy(2, 2), xy(8, 2), xy(8, 8), xy(2, 8), xy(2, 2)})
	hole, _ := f.CreateLinearRing([]geom.Coordinate{xy(4, 4), xy(6, 4), xy(6, 6), xy(4, 6), xy(4, 4)})
	withHole, err := f.CreatePolygon(shell, []*geom.Geometry{hole})
	if err != nil {
		t.Fatalf("CreatePolygon: %v", err)
	}

	result, err := (OverlayOp{}).Compute(context.Background(), outer, withHole, Intersection)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Kind() != geom.KindPolygon {
		t.Fatalf("expected a Polygon, got %s", result.Kind())
	}
	if len(result.Holes()) != 1 {
		t.Fatalf("expected the punched hole to survive, got %d holes", len(result.Holes()))
	}
}

func TestRejectsNonPolygonalOperand(t *testing.T) {
	f := factory()
	line, err := f.CreateLineString([]geom.Coordinate{xy(0, 0), xy(1, 1)})
	if err != nil {
		t.Fatalf("CreateLineString: %v", err)
	}
	poly := square(t, f, 0, 0, 1, 1)

	if _, err := (OverlayOp{}).Compute(context.Background(), line, poly, Union); err == nil {
		t.Fatalf("expected an UnsupportedOperationError")
	}
}

func TestEmptyOperandShortcuts(t *testing.T) {
	f := factory()
	a := square(t, f, 0, 0, 1, 1)
	empty, _ := f.CreatePolygon(nil, nil)

	union, err := (OverlayOp{}).Compute(context.Background(), a, empty, Union)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if union != a {
		t.Fatalf("union with empty should return the non-empty operand unchanged")
	}

	intersection, err := (OverlayOp{}).Compute(context.Background(), a, empty, Intersection)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !intersection.IsEmpty() {
		t.Fatalf("intersection with empty should be empty")
	}
}
