package index

import (
	"math"
	"testing"

	"github.com/geos-go/geos/geom"
)

func TestSTRTreeCompleteness(t *testing.T) {
	tree := NewSTRTree(4)
	envs := []geom.Envelope{
		{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6},
		{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3},
		{MinX: -1, MinY: -1, MaxX: 0.5, MaxY: 0.5},
	}
	for i, e := range envs {
		tree.Insert(e, i)
	}
	q := geom.Envelope{MinX: -2, MinY: -2, MaxX: 1.5, MaxY: 1.5}
	hits := tree.Query(q)
	want := map[int]bool{0: true, 3: true}
	if len(hits) != len(want) {
		t.Fatalf("expected %d hits, got %d: %v", len(want), len(hits), hits)
	}
	for _, h := range hits {
		if !want[h.(int)] {
			t.Fatalf("unexpected hit %v", h)
		}
	}
}

func TestSTRTreeInsertAfterQueryPanics(t *testing.T) {
	tree := NewSTRTree(4)
	tree.Insert(geom.Envelope{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, 1)
	tree.Query(geom.Envelope{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting into a queried STRTree")
		}
	}()
	tree.Insert(geom.Envelope{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3}, 2)
}

// Scenario 3 from spec.md §8: nearest neighbor among many stored points.
func TestSTRTreeNearestNeighbor(t *testing.T) {
	tree := NewSTRTree(10)
	pts := []geom.Coordinate{
		geom.NewXY(10, 10), geom.NewXY(90, 90), geom.NewXY(50, 50), geom.NewXY(51, 49),
	}
	for i, p := range pts {
		tree.Insert(geom.EnvelopeFromCoordinate(p), i)
	}
	query := geom.NewXY(52, 50)
	got, ok := tree.NearestNeighbor(query)
	if !ok {
		t.Fatalf("expected a nearest neighbor result")
	}
	best := math.Inf(1)
	for _, p := range pts {
		if d := query.Distance(p); d < best {
			best = d
		}
	}
	gotDist := query.Distance(pts[got.(int)])
	if math.Abs(gotDist-best) > 1e-9 {
		t.Fatalf("nearest neighbor distance %v does not match true minimum %v", gotDist, best)
	}
}

func TestIntervalRTreeQuery(t *testing.T) {
	tree := NewIntervalRTree()
	tree.Insert(Interval{Lo: 0, Hi: 5}, "a")
	tree.Insert(Interval{Lo: 10, Hi: 15}, "b")
	tree.Insert(Interval{Lo: 4, Hi: 12}, "c")

	hits := tree.Query(Interval{Lo: 6, Hi: 6})
	if len(hits) != 1 || hits[0] != "c" {
		t.Fatalf("expected only interval c to contain 6, got %v", hits)
	}
}

func TestIntervalRTreeImmutableAfterQuery(t *testing.T) {
	tree := NewIntervalRTree()
	tree.Insert(Interval{Lo: 0, Hi: 1}, "a")
	tree.Query(Interval{Lo: 0, Hi: 1})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting after query")
		}
	}()
	tree.Insert(Interval{Lo: 2, Hi: 3}, "b")
}

func TestQuadtreeInsertQueryRemove(t *testing.T) {
	q := NewQuadtree(100, 2)
	e1 := geom.Envelope{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}
	e2 := geom.Envelope{MinX: -50, MinY: -50, MaxX: -49, MaxY: -49}
	q.Insert(e1, "a")
	q.Insert(e2, "b")

	hits := q.Query(geom.Envelope{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3})
	if len(hits) != 1 || hits[0] != "a" {
		t.Fatalf("expected to find only item a, got %v", hits)
	}

	if !q.Remove(e1, "a") {
		t.Fatalf("expected removal of a to succeed")
	}
	hits = q.Query(geom.Envelope{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3})
	if len(hits) != 0 {
		t.Fatalf("expected no hits after removal, got %v", hits)
	}
}

func TestQuadtreeGrowsRootForOutOfBoundsInsert(t *testing.T) {
	q := NewQuadtree(1, 4)
	far := geom.Envelope{MinX: 100, MinY: 100, MaxX: 101, MaxY: 101}
	q.Insert(far, "far")
	hits := q.Query(far)
	if len(hits) != 1 || hits[0] != "far" {
		t.Fatalf("expected root growth to accommodate out-of-bounds insert, got %v", hits)
	}
}
