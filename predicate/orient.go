// Package predicate implements the robust geometric primitives spec.md
// §4.1 requires: orientation-of-three-points, point-in-ring location, and
// segment-segment intersection with a stable intersection-point
// computation. The three-tier structure (fast filter -> reordered
// floating recompute -> exact fallback) is grounded directly in the
// teacher's Sign/RobustSign/stableSign/exactSign chain (s2/predicates.go),
// adapted from the sphere's unit-vector cross product to the plane's 2D
// cross product, and with the teacher's exactSign stub (which the
// teacher's own comment says should use "an appropriate Go exact
// precision floating point library") fully implemented here using
// math/big.
package predicate

import (
	"math"
	"math/big"

	"github.com/geos-go/geos/geom"
)

// dblEpsilon is the unit roundoff for float64, matching the teacher's
// constant of the same name in s2/predicates.go.
const dblEpsilon = 2.220446049250313e-16

// orientationErrorBound is the Shewchuk-style conservative error bound for
// the fast filtered 2D cross product computed in triageOrient. It assumes
// IEEE-754 double evaluation with no FMA contraction and no extended
// (x87 80-bit) intermediates, per spec.md §9's Open Question: a
// correct re-implementation must fix this evaluation model to match the
// published constant's derivation.
const orientationErrorBound = 3.3306690738754716e-16

// Orientation is the sign of the cross product of (p2-p1) and (q-p1).
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

// Orient returns the orientation of the triple (p1, p2, q). It is
// guaranteed orientation-consistent across cyclic permutation:
// Orient(p1,p2,q) == Orient(p2,q,p1) == Orient(q,p1,p2), and
// anti-symmetric under a single swap: Orient(p1,p2,q) == -Orient(p2,p1,q).
//
// Strategy: triageOrient (fast filtered cross product) first; if its
// magnitude is within the error bound, fall back to stableOrient
// (longest-edge reordering, still float64); if that is still
// indeterminate, fall back to exactOrient (math/big.Float).
func Orient(p1, p2, q geom.Coordinate) Orientation {
	o := triageOrient(p1, p2, q)
	if o != Collinear || isDegenerate(p1, p2, q) {
		return o
	}
	o = stableOrient(p1, p2, q)
	if o != Collinear {
		return o
	}
	return exactOrient(p1, p2, q)
}

func isDegenerate(p1, p2, q geom.Coordinate) bool {
	return p1.Equals2D(p2) || p2.Equals2D(q) || q.Equals2D(p1)
}

// triageOrient computes the 2D cross product (p2-p1) x (q-p1) directly in
// float64 and compares its magnitude against a conservative error bound.
func triageOrient(p1, p2, q geom.Coordinate) Orientation {
	dx1 := p2.X - p1.X
	dy1 := p2.Y - p1.Y
	dx2 := q.X - p1.X
	dy2 := q.Y - p1.Y
	det := dx1*dy2 - dy1*dx2

	maxMag := math.Abs(dx1) * math.Abs(dy2)
	if m := math.Abs(dy1) * math.Abs(dx2); m > maxMag {
		maxMag = m
	}
	bound := orientationErrorBound * maxMag
	if det > bound {
		return CounterClockwise
	}
	if det < -bound {
		return Clockwise
	}
	return Collinear
}

// stableOrient recomputes the same determinant after translating to the
// vertex opposite the longest of the three edges, which minimizes
// cancellation in the subtraction that built dx/dy above. Grounded in the
// teacher's stableSign (s2/predicates.go), which performs the analogous
// reordering for the spherical determinant.
func stableOrient(p1, p2, q geom.Coordinate) Orientation {
	abx, aby := p2.X-p1.X, p2.Y-p1.Y
	bcx, bcy := q.X-p2.X, q.Y-p2.Y
	cax, cay := p1.X-q.X, p1.Y-q.Y

	ab2 := abx*abx + aby*aby
	bc2 := bcx*bcx + bcy*bcy
	ca2 := cax*cax + cay*cay

	var e1x, e1y, e2x, e2y float64
	switch {
	case ab2 >= bc2 && ab2 >= ca2:
		e1x, e1y, e2x, e2y = cax, cay, bcx, bcy
	case bc2 >= ca2:
		e1x, e1y, e2x, e2y = abx, aby, cax, cay
	default:
		e1x, e1y, e2x, e2y = bcx, bcy, abx, aby
	}

	det := e1x*e2y - e1y*e2x
	maxErr := orientationErrorBound * math.Sqrt((e1x*e1x+e1y*e1y)*(e2x*e2x+e2y*e2y))
	if det > maxErr {
		return CounterClockwise
	}
	if det < -maxErr {
		return Clockwise
	}
	return Collinear
}

// exactOrient recomputes the determinant using math/big.Float at a
// precision wide enough that the coordinate differences, their products
// and the final subtraction are all exact for finite float64 inputs. This
// is the fully-implemented analogue of the teacher's exactSign stub.
func exactOrient(p1, p2, q geom.Coordinate) Orientation {
	const prec = 4400 // > 2 * 2099 bits, the widest exact float64 difference
	diff := func(a, b float64) *big.Float {
		x := new(big.Float).SetPrec(prec).SetFloat64(a)
		return x.Sub(x, big.NewFloat(b))
	}
	bx, by := diff(p2.X, p1.X), diff(p2.Y, p1.Y)
	cx, cy := diff(q.X, p1.X), diff(q.Y, p1.Y)

	t1 := new(big.Float).SetPrec(prec).Mul(bx, cy)
	t2 := new(big.Float).SetPrec(prec).Mul(by, cx)
	det := new(big.Float).SetPrec(prec).Sub(t1, t2)

	switch det.Sign() {
	case 1:
		return CounterClockwise
	case -1:
		return Clockwise
	default:
		return Collinear
	}
}
