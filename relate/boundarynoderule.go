// Package relate implements the DE-9IM topological relation calculus:
// IntersectionMatrix, BoundaryNodeRule, RelateOp, and the named predicate
// functions (Intersects, Contains, Covers, Touches, Crosses, Equals,
// Overlaps, Within, Disjoint). Grounded in the teacher's Loop.ContainsPoint
// boundary-vs-interior logic (s2/loop.go), generalized from "one loop
// against one cell" to "two noded, labelled geometries against each
// other", and in original_source's operation/relateng headers
// (AdjacentEdgeLocator.h, IMPredicate.h), which name the same EXTERIOR/
// EXTERIOR-always-area-dimension convention this package follows. The
// named predicates here test the fully computed matrix; there is no
// isDetermined/valueIM early exit.
package relate

// BoundaryNodeRule decides which vertices of a linear geometry count as
// its topological boundary, per spec.md §4.5. A LineString's two
// endpoints are always candidates; the rule decides what valence (number
// of incident linear components sharing that coordinate across the whole
// input) makes a candidate an actual boundary point.
type BoundaryNodeRule int

const (
	// Mod2BoundaryNodeRule: a node is on the boundary iff it is shared by
	// an odd number of curves (the OGC SFS default "mod-2" rule).
	Mod2BoundaryNodeRule BoundaryNodeRule = iota
	// EndpointBoundaryNodeRule: every endpoint of every curve is a
	// boundary point, regardless of valence.
	EndpointBoundaryNodeRule
	// MonovalentEndpointBoundaryNodeRule: only endpoints with valence
	// exactly 1 are boundary points.
	MonovalentEndpointBoundaryNodeRule
	// MultivalentEndpointBoundaryNodeRule: only endpoints with valence
	// >= 2 are boundary points.
	MultivalentEndpointBoundaryNodeRule
)

// IsBoundary reports whether a candidate endpoint with the given valence
// (how many curve-endpoints in the input geometry coincide with it) is a
// boundary point under this rule.
func (r BoundaryNodeRule) IsBoundary(valence int) bool {
	switch r {
	case EndpointBoundaryNodeRule:
		return true
	case MonovalentEndpointBoundaryNodeRule:
		return valence == 1
	case MultivalentEndpointBoundaryNodeRule:
		return valence >= 2
	default: // Mod2BoundaryNodeRule
		return valence%2 == 1
	}
}
