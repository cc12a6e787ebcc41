package geom

import "math"

// Envelope is an axis-aligned rectangle with MinX <= MaxX and MinY <= MaxY.
// An Envelope may be empty (IsEmpty). Modeled on the teacher's Rect/R2Rect
// pair (s2/rect.go, s2/r2rect.go) but over a planar, unbounded coordinate
// space rather than a lat/lng box.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
	empty                  bool
}

// EmptyEnvelope returns the canonical empty envelope.
func EmptyEnvelope() Envelope {
	return Envelope{empty: true}
}

// EnvelopeFromCoordinate returns the degenerate envelope covering a single
// point.
func EnvelopeFromCoordinate(c Coordinate) Envelope {
	return Envelope{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y}
}

// EnvelopeFromCoordinates returns the tight envelope of a coordinate
// sequence. Tightness: every coordinate lies inside the result, and each
// of the four sides is touched by at least one coordinate, unless coords
// is empty.
func EnvelopeFromCoordinates(coords []Coordinate) Envelope {
	if len(coords) == 0 {
		return EmptyEnvelope()
	}
	e := EnvelopeFromCoordinate(coords[0])
	for _, c := range coords[1:] {
		e = e.ExpandToInclude(c)
	}
	return e
}

// IsEmpty reports whether the envelope contains no points.
func (e Envelope) IsEmpty() bool { return e.empty }

// Width returns MaxX - MinX, or 0 for an empty envelope.
func (e Envelope) Width() float64 {
	if e.empty {
		return 0
	}
	return e.MaxX - e.MinX
}

// Height returns MaxY - MinY, or 0 for an empty envelope.
func (e Envelope) Height() float64 {
	if e.empty {
		return 0
	}
	return e.MaxY - e.MinY
}

// ExpandToInclude returns the smallest envelope containing both e and c.
func (e Envelope) ExpandToInclude(c Coordinate) Envelope {
	if e.empty {
		return EnvelopeFromCoordinate(c)
	}
	return Envelope{
		MinX: math.Min(e.MinX, c.X),
		MaxX: math.Max(e.MaxX, c.X),
		MinY: math.Min(e.MinY, c.Y),
		MaxY: math.Max(e.MaxY, c.Y),
	}
}

// ExpandBy returns e grown by distance in all directions.
func (e Envelope) ExpandBy(distance float64) Envelope {
	if e.empty {
		return e
	}
	return Envelope{
		MinX: e.MinX - distance, MaxX: e.MaxX + distance,
		MinY: e.MinY - distance, MaxY: e.MaxY + distance,
	}
}

// Union returns the smallest envelope containing both e and o.
func (e Envelope) Union(o Envelope) Envelope {
	if e.empty {
		return o
	}
	if o.empty {
		return e
	}
	return Envelope{
		MinX: math.Min(e.MinX, o.MinX), MaxX: math.Max(e.MaxX, o.MaxX),
		MinY: math.Min(e.MinY, o.MinY), MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// Intersection returns the envelope common to e and o, or the empty
// envelope if they do not overlap.
func (e Envelope) Intersection(o Envelope) Envelope {
	if e.empty || o.empty || !e.IntersectsEnvelope(o) {
		return EmptyEnvelope()
	}
	return Envelope{
		MinX: math.Max(e.MinX, o.MinX), MaxX: math.Min(e.MaxX, o.MaxX),
		MinY: math.Max(e.MinY, o.MinY), MaxY: math.Min(e.MaxY, o.MaxY),
	}
}

// IntersectsEnvelope reports whether e and o share at least one point.
func (e Envelope) IntersectsEnvelope(o Envelope) bool {
	if e.empty || o.empty {
		return false
	}
	return e.MinX <= o.MaxX && e.MaxX >= o.MinX && e.MinY <= o.MaxY && e.MaxY >= o.MinY
}

// ContainsPoint reports whether c lies within e, inclusive of the boundary.
func (e Envelope) ContainsPoint(c Coordinate) bool {
	if e.empty {
		return false
	}
	return c.X >= e.MinX && c.X <= e.MaxX && c.Y >= e.MinY && c.Y <= e.MaxY
}

// ContainsEnvelope reports whether e entirely contains o.
func (e Envelope) ContainsEnvelope(o Envelope) bool {
	if e.empty {
		return false
	}
	if o.empty {
		return true
	}
	return o.MinX >= e.MinX && o.MaxX <= e.MaxX && o.MinY >= e.MinY && o.MaxY <= e.MaxY
}

// Distance returns the Euclidean distance between e and o, or 0 if they
// intersect.
func (e Envelope) Distance(o Envelope) float64 {
	if e.IntersectsEnvelope(o) {
		return 0
	}
	dx := gap(e.MinX, e.MaxX, o.MinX, o.MaxX)
	dy := gap(e.MinY, e.MaxY, o.MinY, o.MaxY)
	if dx == 0 {
		return dy
	}
	if dy == 0 {
		return dx
	}
	return math.Sqrt(dx*dx + dy*dy)
}

func gap(aMin, aMax, bMin, bMax float64) float64 {
	if aMax < bMin {
		return bMin - aMax
	}
	if bMax < aMin {
		return aMin - bMax
	}
	return 0
}

// CenterX returns the midpoint X, used by STR-tree bulk loading to sort
// leaves into vertical strips.
func (e Envelope) CenterX() float64 { return (e.MinX + e.MaxX) / 2 }

// CenterY returns the midpoint Y, used by STR-tree bulk loading to pack
// leaves within a strip.
func (e Envelope) CenterY() float64 { return (e.MinY + e.MaxY) / 2 }
