package graph

import (
	"testing"

	"github.com/geos-go/geos/geom"
)

func TestAddEdgeSymIsInvolution(t *testing.T) {
	g := New()
	a := geom.NewXY(0, 0)
	b := geom.NewXY(10, 0)
	e := g.AddEdge(a, b, "ab")
	if g.Sym(g.Sym(e)) != e {
		t.Fatalf("expected Sym(Sym(e)) == e")
	}
	if !g.Origin(e).Equals2D(a) || !g.Destination(e).Equals2D(b) {
		t.Fatalf("unexpected endpoints for e")
	}
	sym := g.Sym(e)
	if !g.Origin(sym).Equals2D(b) || !g.Destination(sym).Equals2D(a) {
		t.Fatalf("unexpected endpoints for sym")
	}
}

func TestWalkFaceOfTriangle(t *testing.T) {
	g := New()
	a := geom.NewXY(0, 0)
	b := geom.NewXY(4, 0)
	c := geom.NewXY(0, 4)

	ab := g.AddEdge(a, b, nil)
	bc := g.AddEdge(b, c, nil)
	ca := g.AddEdge(c, a, nil)

	face := g.WalkFace(ab)
	if len(face) != 3 {
		t.Fatalf("expected a 3-edge face cycle, got %d: %v", len(face), face)
	}
	want := map[HalfEdge]bool{ab: true, bc: true, ca: true}
	for _, e := range face {
		if !want[e] {
			t.Fatalf("unexpected half-edge %v in face walk", e)
		}
	}
}

func TestOutgoingEdgesOrderedAroundVertex(t *testing.T) {
	g := New()
	center := geom.NewXY(0, 0)
	east := geom.NewXY(1, 0)
	north := geom.NewXY(0, 1)
	west := geom.NewXY(-1, 0)
	south := geom.NewXY(0, -1)

	g.AddEdge(center, east, "e")
	g.AddEdge(center, north, "n")
	g.AddEdge(center, west, "w")
	g.AddEdge(center, south, "s")

	out := g.OutgoingEdges(center)
	if len(out) != 4 {
		t.Fatalf("expected 4 outgoing edges, got %d", len(out))
	}
	var order []any
	for _, e := range out {
		order = append(order, g.Context(e))
	}
	// CCW from east: east, north, west, south.
	wantOrders := [][]any{
		{"e", "n", "w", "s"},
		{"n", "w", "s", "e"},
		{"w", "s", "e", "n"},
		{"s", "e", "n", "w"},
	}
	match := false
	for _, w := range wantOrders {
		if equalAny(order, w) {
			match = true
			break
		}
	}
	if !match {
		t.Fatalf("unexpected CCW order: %v", order)
	}
}

func equalAny(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVerticesDeterministicOrder(t *testing.T) {
	g := New()
	g.AddEdge(geom.NewXY(1, 1), geom.NewXY(2, 2), nil)
	g.AddEdge(geom.NewXY(0, 0), geom.NewXY(1, 1), nil)

	v1 := g.Vertices()
	v2 := g.Vertices()
	if len(v1) != 3 {
		t.Fatalf("expected 3 distinct vertices, got %d", len(v1))
	}
	for i := range v1 {
		if !v1[i].Equals2D(v2[i]) {
			t.Fatalf("Vertices() order is not deterministic across calls")
		}
	}
}

func TestNumEdgesCountsBothHalfEdges(t *testing.T) {
	g := New()
	g.AddEdge(geom.NewXY(0, 0), geom.NewXY(1, 1), nil)
	if g.NumEdges() != 2 {
		t.Fatalf("expected 2 half-edges for one undirected edge, got %d", g.NumEdges())
	}
}
