package geojson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/geos-go/geos/geom"
)

func factory() *geom.Factory {
	return geom.NewFactory(geom.NewFloatingPrecisionModel(), geom.DimXY)
}

func xy(x, y float64) geom.Coordinate { return geom.NewXY(x, y) }

func TestMarshalPoint(t *testing.T) {
	f := factory()
	p := f.CreatePoint([]geom.Coordinate{xy(1, 2)})

	out, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"type":"Point"`) {
		t.Fatalf("expected Point type, got %s", out)
	}

	back, err := Unmarshal(out, f)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind() != geom.KindPoint || !back.Sequence().Get(0).Equals2D(xy(1, 2)) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestMarshalPolygonWithHole(t *testing.T) {
	f := factory()
	shell, err := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(10, 0), xy(10, 10), xy(0, 10), xy(0, 0)})
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	hole, err := f.CreateLinearRing([]geom.Coordinate{xy(2, 2), xy(2, 4), xy(4, 4), xy(4, 2), xy(2, 2)})
	if err != nil {
		t.Fatalf("hole: %v", err)
	}
	poly, err := f.CreatePolygon(shell, []*geom.Geometry{hole})
	if err != nil {
		t.Fatalf("polygon: %v", err)
	}

	out, err := Marshal(poly)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := Unmarshal(out, f)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind() != geom.KindPolygon {
		t.Fatalf("expected Polygon, got %s", back.Kind())
	}
	if len(back.Holes()) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(back.Holes()))
	}
	if back.Shell().Sequence().Size() != 5 {
		t.Fatalf("expected 5 shell coordinates, got %d", back.Shell().Sequence().Size())
	}
}

func TestMarshalMultiPolygon(t *testing.T) {
	f := factory()
	a, _ := f.CreateLinearRing([]geom.Coordinate{xy(0, 0), xy(1, 0), xy(1, 1), xy(0, 1), xy(0, 0)})
	b, _ := f.CreateLinearRing([]geom.Coordinate{xy(5, 5), xy(6, 5), xy(6, 6), xy(5, 6), xy(5, 5)})
	polyA, _ := f.CreatePolygon(a, nil)
	polyB, _ := f.CreatePolygon(b, nil)
	mp, err := f.CreateMultiPolygon([]*geom.Geometry{polyA, polyB})
	if err != nil {
		t.Fatalf("CreateMultiPolygon: %v", err)
	}

	out, err := Marshal(mp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(out, f)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind() != geom.KindMultiPolygon || back.NumGeometries() != 2 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestMarshalGeometryCollection(t *testing.T) {
	f := factory()
	p := f.CreatePoint([]geom.Coordinate{xy(0, 0)})
	line, _ := f.CreateLineString([]geom.Coordinate{xy(0, 0), xy(1, 1)})
	gc := f.CreateGeometryCollection([]*geom.Geometry{p, line})

	out, err := Marshal(gc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"GeometryCollection"`) {
		t.Fatalf("expected GeometryCollection type, got %s", out)
	}

	back, err := Unmarshal(out, f)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind() != geom.KindGeometryCollection || back.NumGeometries() != 2 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestMarshalNilGeometryErrors(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Fatalf("expected an error for a nil geometry")
	}
}

func TestUnmarshalUnknownTypeErrors(t *testing.T) {
	f := factory()
	_, err := Unmarshal([]byte(`{"type":"Tetrahedron","coordinates":[]}`), f)
	if err == nil {
		t.Fatalf("expected an error for an unknown GeoJSON type")
	}
}

func TestUnmarshalMalformedJSONErrors(t *testing.T) {
	f := factory()
	_, err := Unmarshal([]byte(`not json`), f)
	if err == nil {
		t.Fatalf("expected a parse error for malformed JSON")
	}
}

func TestMarshalMultiPoint(t *testing.T) {
	f := factory()
	mp, err := f.CreateMultiPoint([]*geom.Geometry{
		f.CreatePoint([]geom.Coordinate{xy(0, 0)}),
		f.CreatePoint([]geom.Coordinate{xy(1, 1)}),
	})
	if err != nil {
		t.Fatalf("CreateMultiPoint: %v", err)
	}
	out, err := Marshal(mp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw struct {
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw.Coordinates) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(raw.Coordinates))
	}
}
