package coverage

import (
	"context"
	"testing"

	"github.com/geos-go/geos/geom"
)

func factory() *geom.Factory {
	return geom.NewFactory(geom.NewFloatingPrecisionModel(), geom.DimXY)
}

func xy(x, y float64) geom.Coordinate { return geom.NewXY(x, y) }

func rect(t *testing.T, f *geom.Factory, x0, y0, x1, y1 float64) *geom.Geometry {
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

func TestCoverageValidatorAcceptsEdgeMatchedTiles(t *testing.T) {
	f := factory()
	left := rect(t, f, 0, 0, 1, 1)
	right := rect(t, f, 1, 0, 2, 1)

	v := NewCoveragePolygonValidator([]*geom.Geometry{left, right})
	ok, err := v.IsValid(context.Background())
	if err != nil {
		t.Fatalf("IsValid: %v", err)
	}
	if !ok {
		t.Fatalf("expected two edge-matched tiles to form a valid coverage")
	}
}

func TestCoverageValidatorRejectsOverlappingTiles(t *testing.T) {
	f := factory()
	left := rect(t, f, 0, 0, 1.5, 1)
	right := rect(t, f, 1, 0, 2, 1)

	v := NewCoveragePolygonValidator([]*geom.Geometry{left, right})
	ok, err := v.IsValid(context.Background())
	if err != nil {
		t.Fatalf("IsValid: %v", err)
	}
	if ok {
		t.Fatalf("expected overlapping tiles to be invalid")
	}

	invalid, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(invalid[0]) == 0 || len(invalid[1]) == 0 {
		t.Fatalf("expected both overlapping polygons to report invalid segments, got %v", invalid)
	}
}

func TestCoverageValidatorAcceptsDisjointTiles(t *testing.T) {
	f := factory()
	left := rect(t, f, 0, 0, 1, 1)
	right := rect(t, f, 5, 5, 6, 6)

	v := NewCoveragePolygonValidator([]*geom.Geometry{left, right})
	ok, err := v.IsValid(context.Background())
	if err != nil {
		t.Fatalf("IsValid: %v", err)
	}
	if !ok {
		t.Fatalf("expected disjoint tiles to be a valid (trivial) coverage")
	}
}

func TestCoverageUnionOfTwoTiles(t *testing.T) {
	f := factory()
	left := rect(t, f, 0, 0, 1, 1)
	right := rect(t, f, 1, 0, 2, 1)

	result, err := CoverageUnion(context.Background(), f, []*geom.Geometry{left, right})
	if err != nil {
		t.Fatalf("CoverageUnion: %v", err)
	}
	if result.Kind() != geom.KindPolygon {
		t.Fatalf("expected a single merged Polygon, got %s", result.Kind())
	}
	coords := result.Shell().Sequence().Coordinates()
	// The shared edge (1,0)-(1,1) cancels; the outline still carries the
	// two tiles' own corner vertices (no collinear-vertex simplification),
	// giving 6 boundary edges plus the closing repeat.
	if len(coords) != 7 {
		t.Fatalf("expected a 7-vertex (6-edge) merged outline, got %d: %v", len(coords), coords)
	}
}

func TestCoverageUnionOfFourTilesLeavesNoInteriorEdges(t *testing.T) {
	f := factory()
	tiles := []*geom.Geometry{
		rect(t, f, 0, 0, 1, 1),
		rect(t, f, 1, 0, 2, 1),
		rect(t, f, 0, 1, 1, 2),
		rect(t, f, 1, 1, 2, 2),
	}

	result, err := CoverageUnion(context.Background(), f, tiles)
	if err != nil {
		t.Fatalf("CoverageUnion: %v", err)
	}
	if result.Kind() != geom.KindPolygon {
		t.Fatalf("expected a single merged Polygon, got %s", result.Kind())
	}
	if len(result.Holes()) != 0 {
		t.Fatalf("expected no holes in a clean 2x2 tiling union")
	}
	coords := result.Shell().Sequence().Coordinates()
	// All four internal "+" edges around the shared center vertex cancel;
	// the outline walks the 8 remaining boundary edges (no collinear-vertex
	// simplification), plus the closing repeat.
	if len(coords) != 9 {
		t.Fatalf("expected a 9-vertex (8-edge) outer outline, got %d: %v", len(coords), coords)
	}
}
