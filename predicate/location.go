package predicate

import "github.com/geos-go/geos/geom"

// Location classifies a point's position relative to a ring or area.
type Location int

const (
	Exterior Location = iota
	Interior
	Boundary
)

func (l Location) String() string {
	switch l {
	case Interior:
		return "INTERIOR"
	case Boundary:
		return "BOUNDARY"
	default:
		return "EXTERIOR"
	}
}

// LocatePointInRing implements spec.md §4.1's ray-crossing rule: a ray
// from p in the +x direction; INTERIOR if the crossing count is odd,
// EXTERIOR if even, BOUNDARY if p lies on a ring segment. Degenerate
// horizontal segments never contribute; the endpoint rule is
// "lower-y counts, upper-y does not", giving correct parity for rings
// that share vertices with the query ray.
func LocatePointInRing(p geom.Coordinate, ring []geom.Coordinate) Location {
	if len(ring) < 4 {
		return Exterior
	}
	crossings := 0
	for i := 0; i < len(ring)-1; i++ {
		a := ring[i]
		b := ring[i+1]

		if onSegment(p, a, b) {
			return Boundary
		}

		if isRayCrossing(p, a, b) {
			crossings++
		}
	}
	if crossings%2 == 1 {
		return Interior
	}
	return Exterior
}

// isRayCrossing reports whether the +x ray from p crosses segment ab,
// using the "lower-y counts, upper-y does not" endpoint convention so
// that a ray passing exactly through a shared vertex is not double
// counted.
func isRayCrossing(p, a, b geom.Coordinate) bool {
	if a.Y == b.Y {
		// Horizontal segments never contribute to the crossing count.
		return false
	}
	// Order endpoints so lo.Y < hi.Y.
	lo, hi := a, b
	if lo.Y > hi.Y {
		lo, hi = hi, lo
	}
	if p.Y < lo.Y || p.Y >= hi.Y {
		return false
	}
	// x-coordinate where the segment crosses the horizontal line y=p.Y.
	xAtY := lo.X + (p.Y-lo.Y)/(hi.Y-lo.Y)*(hi.X-lo.X)
	return xAtY > p.X
}

// onSegment reports whether p lies on the closed segment ab, using Orient
// for the collinearity test and a bounding-box check for the "between"
// test.
func onSegment(p, a, b geom.Coordinate) bool {
	if Orient(a, b, p) != Collinear {
		return false
	}
	return withinRange(p.X, a.X, b.X) && withinRange(p.Y, a.Y, b.Y)
}

// PointOnSegment is onSegment's exported form, for callers outside this
// package that need to test point-on-line membership directly (e.g. the
// relate engine locating a Point against a LineString).
func PointOnSegment(p, a, b geom.Coordinate) bool {
	return onSegment(p, a, b)
}

func withinRange(v, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

// LocatePointInPolygon locates p against a polygon described by a shell
// ring and zero or more hole rings: Exterior outside the shell or inside
// a hole's interior, Boundary on any ring, Interior otherwise.
func LocatePointInPolygon(p geom.Coordinate, shell []geom.Coordinate, holes [][]geom.Coordinate) Location {
	loc := LocatePointInRing(p, shell)
	if loc != Interior {
		return loc
	}
	for _, hole := range holes {
		hloc := LocatePointInRing(p, hole)
		if hloc == Boundary {
			return Boundary
		}
		if hloc == Interior {
			return Exterior
		}
	}
	return Interior
}
