package predicate

import "github.com/geos-go/geos/geom"

// IntersectionType classifies the result of IntersectSegments,
// matching spec.md §4.1.
type IntersectionType int

const (
	NoIntersection IntersectionType = iota
	PointIntersection
	CollinearIntersection
)

// LineIntersectionResult is the outcome of intersecting two segments.
type LineIntersectionResult struct {
	Type IntersectionType

	// Points holds 0, 1 or 2 intersection coordinates: empty for
	// NoIntersection, one for PointIntersection, one or two (the overlap
	// endpoints) for CollinearIntersection.
	Points []geom.Coordinate
}

// IsProper reports whether the (single) intersection point is strictly
// interior to both segments -- i.e. not equal, in 2D, to any of the four
// segment endpoints. This resolves spec.md §9's Open Question in favor of
// the coordinate-equality definition rather than a path-dependent one.
func (r LineIntersectionResult) IsProper(p1, p2, q1, q2 geom.Coordinate) bool {
	if r.Type != PointIntersection {
		return false
	}
	pt := r.Points[0]
	return !pt.Equals2D(p1) && !pt.Equals2D(p2) && !pt.Equals2D(q1) && !pt.Equals2D(q2)
}

// IntersectSegments computes the intersection of segment p1p2 with segment
// q1q2 per spec.md §4.1: classify via orientation, then for a point
// intersection compute the coordinate using the normalized-determinant
// formula in a frame translated to p1 (reducing cancellation), clamped to
// the intersection of the two segment envelopes.
func IntersectSegments(p1, p2, q1, q2 geom.Coordinate) LineIntersectionResult {
	envP := geom.EnvelopeFromCoordinates([]geom.Coordinate{p1, p2})
	envQ := geom.EnvelopeFromCoordinates([]geom.Coordinate{q1, q2})
	if !envP.IntersectsEnvelope(envQ) {
		return LineIntersectionResult{Type: NoIntersection}
	}

	pq1 := Orient(p1, p2, q1)
	pq2 := Orient(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		return LineIntersectionResult{Type: NoIntersection}
	}

	qp1 := Orient(q1, q2, p1)
	qp2 := Orient(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		return LineIntersectionResult{Type: NoIntersection}
	}

	collinear := pq1 == Collinear && pq2 == Collinear && qp1 == Collinear && qp2 == Collinear
	if collinear {
		return intersectCollinear(p1, p2, q1, q2, envP, envQ)
	}

	// At least one endpoint lies exactly on the other segment: the
	// intersection is that shared endpoint.
	if pq1 == Collinear {
		return pointResult(q1)
	}
	if pq2 == Collinear {
		return pointResult(q2)
	}
	if qp1 == Collinear {
		return pointResult(p1)
	}
	if qp2 == Collinear {
		return pointResult(p2)
	}

	pt := computeIntersection(p1, p2, q1, q2)
	pt = clampToEnvelope(pt, envP.Intersection(envQ))
	return pointResult(pt)
}

func pointResult(c geom.Coordinate) LineIntersectionResult {
	return LineIntersectionResult{Type: PointIntersection, Points: []geom.Coordinate{c}}
}

// computeIntersection solves for the intersection of lines p1p2 and q1q2
// in a frame translated to p1, which keeps the coefficients small and
// reduces floating-point cancellation relative to working in absolute
// coordinates directly.
func computeIntersection(p1, p2, q1, q2 geom.Coordinate) geom.Coordinate {
	dx1 := p2.X - p1.X
	dy1 := p2.Y - p1.Y
	dx2 := q2.X - q1.X
	dy2 := q2.Y - q1.Y

	denom := dx1*dy2 - dy1*dx2
	if denom == 0 {
		// Numerically parallel despite a non-Collinear orientation
		// verdict; fall back to the midpoint of the shared region as the
		// least-bad stable answer.
		return geom.NewXY((p1.X+q1.X)/2, (p1.Y+q1.Y)/2)
	}

	qx := q1.X - p1.X
	qy := q1.Y - p1.Y
	t := (qx*dy2 - qy*dx2) / denom

	return geom.NewXY(p1.X+t*dx1, p1.Y+t*dy1)
}

// clampToEnvelope snaps an intersection point onto env if floating-point
// error has pushed it marginally outside: spec.md §4.1 guarantees the
// intersection coordinate lies inside the intersection of the two segment
// envelopes.
func clampToEnvelope(c geom.Coordinate, env geom.Envelope) geom.Coordinate {
	if env.IsEmpty() {
		return c
	}
	x, y := c.X, c.Y
	if x < env.MinX {
		x = env.MinX
	} else if x > env.MaxX {
		x = env.MaxX
	}
	if y < env.MinY {
		y = env.MinY
	} else if y > env.MaxY {
		y = env.MaxY
	}
	return geom.NewXY(x, y)
}

// intersectCollinear handles the case where all four orientation tests
// are Collinear: the segments lie on a common line, and the result is
// either empty, a point, or the one/two points of overlap.
func intersectCollinear(p1, p2, q1, q2 geom.Coordinate, envP, envQ geom.Envelope) LineIntersectionResult {
	overlap := envP.Intersection(envQ)
	if overlap.IsEmpty() {
		return LineIntersectionResult{Type: NoIntersection}
	}

	// Project onto the dominant axis to order the four points along the
	// shared line.
	useX := envP.Width() >= envP.Height()
	key := func(c geom.Coordinate) float64 {
		if useX {
			return c.X
		}
		return c.Y
	}

	lo := overlap.MinX
	hi := overlap.MaxX
	if !useX {
		lo = overlap.MinY
		hi = overlap.MaxY
	}

	pick := func(want float64) geom.Coordinate {
		for _, c := range []geom.Coordinate{p1, p2, q1, q2} {
			if key(c) == want {
				return c
			}
		}
		// Fall back to interpolating along p1p2 if no endpoint landed
		// exactly on the overlap boundary (can happen under rounding).
		t := (want - key(p1)) / (key(p2) - key(p1))
		return geom.NewXY(p1.X+t*(p2.X-p1.X), p1.Y+t*(p2.Y-p1.Y))
	}

	if lo == hi {
		return LineIntersectionResult{Type: PointIntersection, Points: []geom.Coordinate{pick(lo)}}
	}
	return LineIntersectionResult{Type: CollinearIntersection, Points: []geom.Coordinate{pick(lo), pick(hi)}}
}
