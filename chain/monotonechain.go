// Package chain implements monotone chains: contiguous ranges of a
// coordinate sequence that are monotone in both X and Y, used to narrow
// segment-pair intersection testing from O(n^2) to near-linear. Grounded
// in the teacher's EdgeIndex cell-bucketing strategy (s2/edgeindex.go),
// which plays the same "don't test every pair" role on the sphere using
// cell covers instead of monotone runs.
package chain

import (
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/predicate"
)

// MonotoneChain is a contiguous range [Start, End] of indices into a
// CoordinateSequence such that both X and Y move monotonically across the
// range (inclusive of both ends, so a chain with Start==End-1 is a single
// segment). Context is caller-owned and opaque to this package, letting a
// noder stash the owning SegmentString without an import cycle.
type MonotoneChain struct {
	Sequence *geom.CoordinateSequence
	Start    int
	End      int
	Context  any

	env *geom.Envelope
}

// Envelope returns the chain's tight, cached bounding envelope.
func (c *MonotoneChain) Envelope() geom.Envelope {
	if c.env == nil {
		e := geom.EnvelopeFromCoordinates(c.Sequence.Coordinates()[c.Start : c.End+1])
		c.env = &e
	}
	return *c.env
}

// Build splits seq into the minimal set of monotone chains covering it.
// Each returned chain's Context is ctx, the caller-supplied owner tag.
func Build(seq *geom.CoordinateSequence, ctx any) []*MonotoneChain {
	coords := seq.Coordinates()
	n := len(coords)
	if n < 2 {
		return nil
	}
	var chains []*MonotoneChain
	start := 0
	for start < n-1 {
		end := findChainEnd(coords, start)
		chains = append(chains, &MonotoneChain{Sequence: seq, Start: start, End: end, Context: ctx})
		start = end
	}
	return chains
}

// findChainEnd returns the last index such that coords[start:end+1] is
// monotone in both X and Y.
func findChainEnd(coords []geom.Coordinate, start int) int {
	n := len(coords)
	if start >= n-1 {
		return start
	}
	xDir := direction(coords[start].X, coords[start+1].X)
	yDir := direction(coords[start].Y, coords[start+1].Y)

	end := start + 1
	for end < n-1 {
		nx := direction(coords[end].X, coords[end+1].X)
		ny := direction(coords[end].Y, coords[end+1].Y)
		if (nx != 0 && xDir != 0 && nx != xDir) || (ny != 0 && yDir != 0 && ny != yDir) {
			break
		}
		if xDir == 0 && nx != 0 {
			xDir = nx
		}
		if yDir == 0 && ny != 0 {
			yDir = ny
		}
		end++
	}
	return end
}

func direction(a, b float64) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

// Segments returns the individual segments [Start..End] of the chain as
// coordinate pairs.
func (c *MonotoneChain) Segments() [][2]geom.Coordinate {
	coords := c.Sequence.Coordinates()
	out := make([][2]geom.Coordinate, 0, c.End-c.Start)
	for i := c.Start; i < c.End; i++ {
		out = append(out, [2]geom.Coordinate{coords[i], coords[i+1]})
	}
	return out
}

// Overlaps reports whether the two chains' envelopes intersect, the cheap
// pre-filter used before ComputeIntersections does real work.
func (a *MonotoneChain) Overlaps(b *MonotoneChain) bool {
	return a.Envelope().IntersectsEnvelope(b.Envelope())
}

// IntersectionAction receives each segment-index pair that
// predicate.IntersectSegments found to intersect, together with that
// result; pairs with no intersection are not reported.
type IntersectionAction func(chainA *MonotoneChain, segA int, chainB *MonotoneChain, segB int, result predicate.LineIntersectionResult)

// ComputeIntersections recursively halves a and b's index ranges,
// bottoming out at segment-pair intersection testing, exactly as spec.md
// §4.3 describes for monotone-chain overlap. Only sub-ranges whose
// envelopes overlap are descended into.
func ComputeIntersections(a, b *MonotoneChain, action IntersectionAction) {
	computeIntersections(a, a.Start, a.End, b, b.Start, b.End, action)
}

func computeIntersections(a *MonotoneChain, aStart, aEnd int, b *MonotoneChain, bStart, bEnd int, action IntersectionAction) {
	if aEnd <= aStart || bEnd <= bStart {
		return
	}
	aEnv := subEnvelope(a, aStart, aEnd)
	bEnv := subEnvelope(b, bStart, bEnd)
	if !aEnv.IntersectsEnvelope(bEnv) {
		return
	}

	if aEnd-aStart == 1 && bEnd-bStart == 1 {
		coords := a.Sequence.Coordinates()
		otherCoords := b.Sequence.Coordinates()
		p1, p2 := coords[aStart], coords[aStart+1]
		q1, q2 := otherCoords[bStart], otherCoords[bStart+1]
		res := predicate.IntersectSegments(p1, p2, q1, q2)
		if res.Type != predicate.NoIntersection {
			action(a, aStart, b, bStart, res)
		}
		return
	}

	if aEnd-aStart > 1 {
		mid := (aStart + aEnd) / 2
		computeIntersections(a, aStart, mid, b, bStart, bEnd, action)
		computeIntersections(a, mid, aEnd, b, bStart, bEnd, action)
		return
	}

	mid := (bStart + bEnd) / 2
	computeIntersections(a, aStart, aEnd, b, bStart, mid, action)
	computeIntersections(a, aStart, aEnd, b, mid, bEnd, action)
}

func subEnvelope(c *MonotoneChain, start, end int) geom.Envelope {
	return geom.EnvelopeFromCoordinates(c.Sequence.Coordinates()[start : end+1])
}
