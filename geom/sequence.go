package geom

import (
	"math"

	"github.com/geos-go/geos/gerror"
)

// SequenceDimension identifies the ordinate layout of a
// CoordinateSequence, fixed at construction. DimXY and DimXYZ equal their
// ordinate counts; DimXYM (4) and DimXYZM (5) are distinct tags, not
// counts. This collapses the teacher's coordinate-sequence
// factory indirection (DESIGN NOTES §9) into a single parameterised type:
// there is one sequence type, not a factory hierarchy.
type SequenceDimension int

const (
	// DimXY is a 2D sequence (X, Y only).
	DimXY SequenceDimension = 2
	// DimXYZ is a 3D sequence (X, Y, Z).
	DimXYZ SequenceDimension = 3
	// DimXYM is a 2D-plus-measure sequence (X, Y, M).
	DimXYM SequenceDimension = 4
	// DimXYZM is a full 4D sequence (X, Y, Z, M).
	DimXYZM SequenceDimension = 5
)

// CoordinateSequence is an ordered, possibly-empty list of coordinates
// whose ordinate dimension is fixed for its whole lifetime: every
// coordinate in a DimXYZ sequence has a real Z, for instance.
type CoordinateSequence struct {
	dim    SequenceDimension
	coords []Coordinate
}

// NewSequence builds a sequence of the given dimension from coords. Z/M
// are cleared to "absent" on any ordinates the dimension does not include.
func NewSequence(dim SequenceDimension, coords []Coordinate) *CoordinateSequence {
	out := make([]Coordinate, len(coords))
	for i, c := range coords {
		out[i] = normalizeForDim(dim, c)
	}
	return &CoordinateSequence{dim: dim, coords: out}
}

// EmptySequence returns an empty sequence of the given dimension.
func EmptySequence(dim SequenceDimension) *CoordinateSequence {
	return &CoordinateSequence{dim: dim}
}

func normalizeForDim(dim SequenceDimension, c Coordinate) Coordinate {
	switch dim {
	case DimXY:
		return NewXY(c.X, c.Y)
	case DimXYZ:
		return NewXYZ(c.X, c.Y, c.Z)
	case DimXYM:
		return NewXYZM(c.X, c.Y, math.NaN(), c.M)
	default:
		return c
	}
}

// Dimension returns the sequence's fixed ordinate layout.
func (s *CoordinateSequence) Dimension() SequenceDimension { return s.dim }

// Size returns the number of coordinates in the sequence.
func (s *CoordinateSequence) Size() int { return len(s.coords) }

// IsEmpty reports whether the sequence holds no coordinates.
func (s *CoordinateSequence) IsEmpty() bool { return len(s.coords) == 0 }

// Get returns the i'th coordinate. It panics on out-of-range i, matching
// the teacher's unchecked slice-index style for hot-path accessors.
func (s *CoordinateSequence) Get(i int) Coordinate { return s.coords[i] }

// GetChecked returns the i'th coordinate, or an error for an out-of-range
// index, for call sites taking index values from untrusted input.
func (s *CoordinateSequence) GetChecked(i int) (Coordinate, error) {
	if i < 0 || i >= len(s.coords) {
		return Coordinate{}, &gerror.InvalidArgumentError{Op: "CoordinateSequence.Get", Message: "index out of range"}
	}
	return s.coords[i], nil
}

// Coordinates returns the sequence's backing slice. Callers must not
// mutate the result; CoordinateSequence is shared by borrow, never by
// transfer of ownership (see DATA MODEL, Lifecycle).
func (s *CoordinateSequence) Coordinates() []Coordinate { return s.coords }

// Envelope returns the tight bounding envelope of the sequence.
func (s *CoordinateSequence) Envelope() Envelope {
	return EnvelopeFromCoordinates(s.coords)
}

// Reverse returns a new sequence with coordinates in reverse order.
func (s *CoordinateSequence) Reverse() *CoordinateSequence {
	out := make([]Coordinate, len(s.coords))
	for i, c := range s.coords {
		out[len(s.coords)-1-i] = c
	}
	return &CoordinateSequence{dim: s.dim, coords: out}
}

// IsClosed reports whether the first and last coordinates are 2D-equal.
// A sequence with fewer than 2 coordinates is not closed.
func (s *CoordinateSequence) IsClosed() bool {
	if len(s.coords) < 2 {
		return false
	}
	return s.coords[0].Equals2D(s.coords[len(s.coords)-1])
}

// Clone returns an independent copy of the sequence.
func (s *CoordinateSequence) Clone() *CoordinateSequence {
	out := make([]Coordinate, len(s.coords))
	copy(out, s.coords)
	return &CoordinateSequence{dim: s.dim, coords: out}
}

// MakePrecise returns a copy of the sequence with every coordinate passed
// through pm.MakeCoordinatePrecise.
func (s *CoordinateSequence) MakePrecise(pm *PrecisionModel) *CoordinateSequence {
	out := make([]Coordinate, len(s.coords))
	for i, c := range s.coords {
		out[i] = pm.MakeCoordinatePrecise(c)
	}
	return &CoordinateSequence{dim: s.dim, coords: out}
}
