package noding

import "github.com/geos-go/geos/predicate"

// ValidationStatus classifies the outcome of FastNodingValidator.Validate.
type ValidationStatus int

const (
	// NodedOK reports that no two noded strings cross except at a shared
	// vertex.
	NodedOK ValidationStatus = iota
	// NonConvergence reports that an IteratedNoder exhausted its iteration
	// cap without reaching a fixed point.
	NonConvergence
	// ProperIntersection reports a genuine interior crossing between two
	// segments that noding failed to resolve into a shared vertex.
	ProperIntersection
)

// FastNodingValidator scans an already-noded set of strings for any
// surviving proper intersection, a cheap correctness check to run after
// noding rather than trusting the noder silently. It does not itself
// re-node; it only reports whether noding succeeded.
type FastNodingValidator struct{}

// Validate returns NodedOK if no two distinct segments across noded
// (including two segments of the same string) properly cross, or
// ProperIntersection with the indices of the two strings holding the
// offending segments otherwise. The indices are {-1, -1} with NodedOK.
func (FastNodingValidator) Validate(noded []*NodedSegmentString) (ValidationStatus, [2]int) {
	for i := 0; i < len(noded); i++ {
		vi := noded[i].Vertices
		for si := 0; si < len(vi)-1; si++ {
			a1, a2 := vi[si], vi[si+1]
			for j := i; j < len(noded); j++ {
				vj := noded[j].Vertices
				startSj := 0
				if j == i {
					startSj = si + 1
				}
				for sj := startSj; sj < len(vj)-1; sj++ {
					b1, b2 := vj[sj], vj[sj+1]
					r := predicate.IntersectSegments(a1, a2, b1, b2)
					if r.IsProper(a1, a2, b1, b2) {
						return ProperIntersection, [2]int{i, j}
					}
				}
			}
		}
	}
	return NodedOK, [2]int{-1, -1}
}
