package geom

// Reverse returns a new geometry with the coordinate order of every ring
// or line reversed. Polygon/MultiPolygon holes and shells are each
// reversed independently; their roles (shell vs hole) are unchanged.
func (g *Geometry) Reverse() *Geometry {
	switch g.kind {
	case KindPoint:
		return g
	case KindLineString, KindLinearRing, KindCircularString:
		if g.seq == nil {
			return g
		}
		return &Geometry{kind: g.kind, factory: g.factory, seq: g.seq.Reverse()}
	case KindPolygon, KindCurvePolygon:
		if g.shell == nil {
			return g
		}
		holes := make([]*Geometry, len(g.holes))
		for i, h := range g.holes {
			holes[i] = h.Reverse()
		}
		return &Geometry{kind: g.kind, factory: g.factory, shell: g.shell.Reverse(), holes: holes}
	default:
		parts := make([]*Geometry, len(g.parts))
		for i, p := range g.parts {
			parts[i] = p.Reverse()
		}
		return &Geometry{kind: g.kind, factory: g.factory, parts: parts}
	}
}

// IsCCW reports whether a closed ring's coordinates run counter-clockwise,
// using the shoelace (signed area) formula. An empty or degenerate ring
// (zero signed area) is reported as not CCW.
func IsCCW(ring *CoordinateSequence) bool {
	return SignedArea(ring) > 0
}

// SignedArea returns the signed area enclosed by ring (positive for CCW,
// negative for CW): the standard shoelace sum, halved.
func SignedArea(ring *CoordinateSequence) float64 {
	coords := ring.Coordinates()
	n := len(coords)
	if n < 4 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n-1; i++ {
		a, b := coords[i], coords[i+1]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Normalize returns g with every polygon shell forced counter-clockwise
// and every hole forced clockwise, the canonical orientation spec.md §4.5
// requires. Non-polygonal geometries are returned unchanged.
func (g *Geometry) Normalize() *Geometry {
	switch g.kind {
	case KindPolygon:
		if g.shell == nil {
			return g
		}
		shell := g.shell
		if !IsCCW(shell.seq) {
			shell = shell.Reverse()
		}
		holes := make([]*Geometry, len(g.holes))
		for i, h := range g.holes {
			if IsCCW(h.seq) {
				holes[i] = h.Reverse()
			} else {
				holes[i] = h
			}
		}
		return &Geometry{kind: KindPolygon, factory: g.factory, shell: shell, holes: holes}
	case KindMultiPolygon, KindGeometryCollection:
		parts := make([]*Geometry, len(g.parts))
		for i, p := range g.parts {
			parts[i] = p.Normalize()
		}
		return &Geometry{kind: g.kind, factory: g.factory, parts: parts}
	default:
		return g
	}
}
