package chain

import (
	"testing"

	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/predicate"
)

func TestBuildPartitionsSequence(t *testing.T) {
	seq := geom.NewSequence(geom.DimXY, []geom.Coordinate{
		geom.NewXY(0, 0), geom.NewXY(1, 1), geom.NewXY(2, 0), geom.NewXY(3, -1),
	})
	chains := Build(seq, "ctx")
	total := 0
	for _, c := range chains {
		total += c.End - c.Start
	}
	if total != seq.Size()-1 {
		t.Fatalf("chains should partition every segment: got %d segments, want %d", total, seq.Size()-1)
	}
	for _, c := range chains {
		if c.Context != "ctx" {
			t.Fatalf("context not propagated")
		}
	}
}

func TestMonotoneChainEnvelopeTight(t *testing.T) {
	seq := geom.NewSequence(geom.DimXY, []geom.Coordinate{geom.NewXY(0, 0), geom.NewXY(5, 5)})
	chains := Build(seq, nil)
	if len(chains) != 1 {
		t.Fatalf("expected a single chain for a 2-point monotone sequence, got %d", len(chains))
	}
	env := chains[0].Envelope()
	if env.MinX != 0 || env.MaxX != 5 || env.MinY != 0 || env.MaxY != 5 {
		t.Fatalf("envelope not tight: %+v", env)
	}
}

func TestComputeIntersectionsFindsCrossing(t *testing.T) {
	seqA := geom.NewSequence(geom.DimXY, []geom.Coordinate{geom.NewXY(0, 0), geom.NewXY(10, 10)})
	seqB := geom.NewSequence(geom.DimXY, []geom.Coordinate{geom.NewXY(0, 10), geom.NewXY(10, 0)})
	a := Build(seqA, "a")[0]
	b := Build(seqB, "b")[0]

	var found []predicate.LineIntersectionResult
	ComputeIntersections(a, b, func(chainA *MonotoneChain, segA int, chainB *MonotoneChain, segB int, result predicate.LineIntersectionResult) {
		found = append(found, result)
	})
	if len(found) != 1 {
		t.Fatalf("expected exactly one intersection, got %d", len(found))
	}
	pt := found[0].Points[0]
	if pt.X != 5 || pt.Y != 5 {
		t.Fatalf("expected intersection at (5,5), got %v", pt)
	}
}

func TestOverlapsFalseForDisjointEnvelopes(t *testing.T) {
	seqA := geom.NewSequence(geom.DimXY, []geom.Coordinate{geom.NewXY(0, 0), geom.NewXY(1, 1)})
	seqB := geom.NewSequence(geom.DimXY, []geom.Coordinate{geom.NewXY(10, 10), geom.NewXY(11, 11)})
	a := Build(seqA, nil)[0]
	b := Build(seqB, nil)[0]
	if a.Overlaps(b) {
		t.Fatalf("disjoint chains should not overlap")
	}
}
