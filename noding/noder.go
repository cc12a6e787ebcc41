package noding

import (
	"context"

	"github.com/geos-go/geos/chain"
	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/index"
	"github.com/geos-go/geos/predicate"
)

// Noder computes the set of nodes (intersection points) a bag of
// SegmentStrings needs, returning noded copies with every required vertex
// present and no two output segments crossing except at shared endpoints.
// Mirrors the teacher's Snapper interface shape (s2/builder_snapper.go),
// generalized from snapping a single point to noding a whole string.
type Noder interface {
	ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error)
}

// SimpleNoder tests every segment pair across every input string against
// every other, with no spatial index. Spec.md describes this as the
// trivial reference noder; the teacher has no direct analogue (s2 never
// needs an unindexed noder), so this is grounded in spec.md's own
// description rather than adapted from teacher code.
type SimpleNoder struct{}

func (SimpleNoder) ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	noded := make([]*NodedSegmentString, len(strings))
	for i, s := range strings {
		noded[i] = NewNodedSegmentString(s)
	}

	for i := 0; i < len(strings); i++ {
		for si := 0; si < strings[i].NumSegments(); si++ {
			if err := ctx.Err(); err != nil {
				return nil, &gerror.InterruptedError{Op: "SimpleNoder.ComputeNodes"}
			}
			a1, a2 := strings[i].Segment(si)
			for j := i; j < len(strings); j++ {
				startSj := 0
				if j == i {
					startSj = si + 1
				}
				for sj := startSj; sj < strings[j].NumSegments(); sj++ {
					b1, b2 := strings[j].Segment(sj)
					result := predicate.IntersectSegments(a1, a2, b1, b2)
					addNodesFromResult(noded[i], si, noded[j], sj, result)
				}
			}
		}
	}
	for _, n := range noded {
		n.Finish()
	}
	return noded, nil
}

func addNodesFromResult(a *NodedSegmentString, ai int, b *NodedSegmentString, bi int, r predicate.LineIntersectionResult) {
	switch r.Type {
	case predicate.NoIntersection:
		return
	case predicate.PointIntersection, predicate.CollinearIntersection:
		for _, p := range r.Points {
			a.AddNode(ai, p)
			if a != b || ai != bi {
				b.AddNode(bi, p)
			}
		}
	}
}

// MCIndexNoder is the package's primary workhorse: it builds a
// chain.MonotoneChain per input string, inserts every chain into an
// index.STRTree, and queries chain-pairs whose envelopes overlap instead
// of testing every segment pair directly. Grounded in how the teacher's
// EdgeIndex.findCandidateCrossings (s2/edgeindex.go) narrows an O(n^2)
// edge-pair problem to candidate cells before running the exact crossing
// test -- the same shape, with a planar STR-tree standing in for the
// spherical cell cover.
type MCIndexNoder struct{}

func (MCIndexNoder) ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	noded := make([]*NodedSegmentString, len(strings))
	var chains []*chain.MonotoneChain
	tree := index.NewSTRTree(index.DefaultNodeCapacity)

	for i, s := range strings {
		noded[i] = NewNodedSegmentString(s)
		seq := geom.NewSequence(geom.DimXY, s.Coordinates)
		for _, mc := range chain.Build(seq, i) {
			chains = append(chains, mc)
			tree.Insert(mc.Envelope(), mc)
		}
	}

	seen := make(map[*chain.MonotoneChain]map[*chain.MonotoneChain]bool)
	for _, mc := range chains {
		if err := ctx.Err(); err != nil {
			return nil, &gerror.InterruptedError{Op: "MCIndexNoder.ComputeNodes"}
		}
		hits := tree.Query(mc.Envelope())
		for _, h := range hits {
			other := h.(*chain.MonotoneChain)
			if other == mc || !mc.Overlaps(other) {
				continue
			}
			if seen[mc][other] || seen[other][mc] {
				continue
			}
			if seen[mc] == nil {
				seen[mc] = make(map[*chain.MonotoneChain]bool)
			}
			seen[mc][other] = true
			chain.ComputeIntersections(mc, other, func(chainA *chain.MonotoneChain, segA int, chainB *chain.MonotoneChain, segB int, r predicate.LineIntersectionResult) {
				a := noded[chainA.Context.(int)]
				b := noded[chainB.Context.(int)]
				addNodesFromResult(a, segA, b, segB, r)
			})
		}
	}
	for _, n := range noded {
		n.Finish()
	}
	return noded, nil
}
