package wkt

import (
	"testing"

	"github.com/geos-go/geos/geom"
)

func roundTrip(t *testing.T, s string) string {
	t.Helper()
	g, err := Read(geom.NewFloatingPrecisionModel(), s)
	if err != nil {
		t.Fatalf("Read(%q): %v", s, err)
	}
	return Write(g, WriteOptions{})
}

func TestReadWritePoint(t *testing.T) {
	if got, want := roundTrip(t, "POINT (1 2)"), "POINT(1 2)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadWriteEmptyPoint(t *testing.T) {
	if got, want := roundTrip(t, "POINT EMPTY"), "POINT EMPTY"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadWriteLineString(t *testing.T) {
	if got, want := roundTrip(t, "LINESTRING (0 0, 10 10)"), "LINESTRING(0 0,10 10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadWritePolygonWithHole(t *testing.T) {
	in := "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2))"
	want := "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,2 4,4 4,4 2,2 2))"
	if got := roundTrip(t, in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadWriteMultiPolygon(t *testing.T) {
	in := "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)), ((2 2, 3 2, 3 3, 2 3, 2 2)))"
	want := "MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)),((2 2,3 2,3 3,2 3,2 2)))"
	if got := roundTrip(t, in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadWriteGeometryCollection(t *testing.T) {
	in := "GEOMETRYCOLLECTION (POINT (1 1), LINESTRING (0 0, 1 1))"
	want := "GEOMETRYCOLLECTION(POINT(1 1),LINESTRING(0 0,1 1))"
	if got := roundTrip(t, in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadZCoordinates(t *testing.T) {
	g, err := Read(geom.NewFloatingPrecisionModel(), "POINT Z (1 2 3)")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	c := g.Sequence().Get(0)
	if !c.HasZ() || c.Z != 3 {
		t.Fatalf("expected Z=3, got %+v", c)
	}
	if got, want := Write(g, WriteOptions{}), "POINT Z(1 2 3)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteOptionsTrimTrailingZeros(t *testing.T) {
	g, err := Read(geom.NewFloatingPrecisionModel(), "POINT (1.0 2.500)")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got := Write(g, WriteOptions{TrimTrailingZeros: true})
	want := "POINT(1 2.5)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteOptionsRoundingPrecision(t *testing.T) {
	g, err := Read(geom.NewFloatingPrecisionModel(), "POINT (1.23456 2.98765)")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got := Write(g, WriteOptions{RoundingPrecision: 2})
	want := "POINT(1.23 2.99)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadRejectsMalformed(t *testing.T) {
	cases := []string{
		"POINT (1 2",
		"POINT 1 2)",
		"BOGUS (1 2)",
		"POINT (1 NaN)",
	}
	for _, c := range cases {
		if _, err := Read(geom.NewFloatingPrecisionModel(), c); err == nil {
			t.Fatalf("Read(%q): expected error, got none", c)
		}
	}
}

func TestReadMultiPointBothForms(t *testing.T) {
	a, err := Read(geom.NewFloatingPrecisionModel(), "MULTIPOINT ((0 0), (1 1))")
	if err != nil {
		t.Fatalf("Read parenthesized form: %v", err)
	}
	b, err := Read(geom.NewFloatingPrecisionModel(), "MULTIPOINT (0 0, 1 1)")
	if err != nil {
		t.Fatalf("Read bare form: %v", err)
	}
	if Write(a, WriteOptions{}) != Write(b, WriteOptions{}) {
		t.Fatalf("both MULTIPOINT forms should normalize to the same WKT")
	}
}
