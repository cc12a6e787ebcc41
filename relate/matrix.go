package relate

import "github.com/geos-go/geos/predicate"

// numLocations is the side of IntersectionMatrix's 3x3 grid, which is
// indexed directly by predicate.Location values (Exterior, Interior and
// Boundary are 0, 1 and 2).
const numLocations = 3

// DimEmpty/Dim0/Dim1/Dim2 are the DE-9IM cell values: DimEmpty means the
// two parts do not intersect ('F'); Dim0/1/2 record the dimension of the
// highest-dimensional intersection found so far.
const (
	DimEmpty = -1
	Dim0     = 0
	Dim1     = 1
	Dim2     = 2
)

// IntersectionMatrix is the 3x3 DE-9IM grid: rows are Geometry A's
// Interior/Boundary/Exterior, columns are Geometry B's. Planar
// exterior-exterior is always Dim2 (two bounded sets in R^2 always leave
// area outside both), set at construction per the teacher-adjacent
// original_source convention (IMPredicate's constructor: "E/E is always
// dim = 2").
type IntersectionMatrix struct {
	grid [numLocations][numLocations]int
}

// NewIntersectionMatrix returns a matrix with every cell empty except
// Exterior/Exterior, which is Dim2.
func NewIntersectionMatrix() *IntersectionMatrix {
	m := &IntersectionMatrix{}
	for i := range m.grid {
		for j := range m.grid[i] {
			m.grid[i][j] = DimEmpty
		}
	}
	m.grid[predicate.Exterior][predicate.Exterior] = Dim2
	return m
}

// Set unconditionally assigns the cell (locA, locB) to dim.
func (m *IntersectionMatrix) Set(locA, locB predicate.Location, dim int) {
	m.grid[locA][locB] = dim
}

// SetAtLeast raises the cell (locA, locB) to dim if dim exceeds its
// current value, the usual way a relate scan accumulates the highest
// dimension of intersection seen for a given (location, location) pair.
func (m *IntersectionMatrix) SetAtLeast(locA, locB predicate.Location, dim int) {
	if dim > m.grid[locA][locB] {
		m.grid[locA][locB] = dim
	}
}

// SetAtLeastMatrix raises every cell of m to at least other's value,
// used to merge a GeometryCollection component's matrix into the running
// aggregate.
func (m *IntersectionMatrix) SetAtLeastMatrix(other *IntersectionMatrix) {
	for i := 0; i < numLocations; i++ {
		for j := 0; j < numLocations; j++ {
			if other.grid[i][j] > m.grid[i][j] {
				m.grid[i][j] = other.grid[i][j]
			}
		}
	}
}

// Get returns the current dimension recorded at (locA, locB).
func (m *IntersectionMatrix) Get(locA, locB predicate.Location) int {
	return m.grid[locA][locB]
}

// Transpose swaps the roles of Geometry A and B in place, turning a
// matrix computed for relate(B, A) into the matrix for relate(A, B).
func (m *IntersectionMatrix) Transpose() *IntersectionMatrix {
	var t IntersectionMatrix
	for i := 0; i < numLocations; i++ {
		for j := 0; j < numLocations; j++ {
			t.grid[j][i] = m.grid[i][j]
		}
	}
	*m = t
	return m
}

// String renders the matrix as a 9-character DE-9IM string in the
// standard row-major (II, IB, IE, BI, BB, BE, EI, EB, EE) order.
func (m *IntersectionMatrix) String() string {
	order := []predicate.Location{predicate.Interior, predicate.Boundary, predicate.Exterior}
	buf := make([]byte, 0, 9)
	for _, a := range order {
		for _, b := range order {
			buf = append(buf, dimChar(m.grid[a][b]))
		}
	}
	return string(buf)
}

func dimChar(d int) byte {
	switch d {
	case DimEmpty:
		return 'F'
	case Dim0:
		return '0'
	case Dim1:
		return '1'
	case Dim2:
		return '2'
	default:
		return 'F'
	}
}

// isTrue reports whether cell value d represents "some non-empty
// intersection exists", i.e. any dimension 0, 1 or 2.
func isTrue(d int) bool { return d >= Dim0 }

// Matches reports whether the matrix satisfies a 9-character DE-9IM
// pattern using the standard wildcards: 'T' (non-empty, any dimension),
// 'F' (empty), '0'/'1'/'2' (exact dimension), '*' (don't care).
func (m *IntersectionMatrix) Matches(pattern string) bool {
	if len(pattern) != 9 {
		return false
	}
	order := []predicate.Location{predicate.Interior, predicate.Boundary, predicate.Exterior}
	idx := 0
	for _, a := range order {
		for _, b := range order {
			if !matchesSymbol(pattern[idx], m.grid[a][b]) {
				return false
			}
			idx++
		}
	}
	return true
}

func matchesSymbol(sym byte, d int) bool {
	switch sym {
	case '*':
		return true
	case 'T':
		return isTrue(d)
	case 'F':
		return d == DimEmpty
	case '0':
		return d == Dim0
	case '1':
		return d == Dim1
	case '2':
		return d == Dim2
	default:
		return false
	}
}

// IsDisjoint reports whether the two geometries share no point at all.
func (m *IntersectionMatrix) IsDisjoint() bool {
	return m.grid[predicate.Interior][predicate.Interior] == DimEmpty &&
		m.grid[predicate.Interior][predicate.Boundary] == DimEmpty &&
		m.grid[predicate.Boundary][predicate.Interior] == DimEmpty &&
		m.grid[predicate.Boundary][predicate.Boundary] == DimEmpty
}

// IsIntersects is the negation of IsDisjoint.
func (m *IntersectionMatrix) IsIntersects() bool { return !m.IsDisjoint() }

// IsContains reports whether every point of Geometry B lies in Geometry
// A: A's interior and B share a point, and no part of B's interior or
// boundary lies in A's exterior.
func (m *IntersectionMatrix) IsContains() bool {
	return isTrue(m.grid[predicate.Interior][predicate.Interior]) &&
		m.grid[predicate.Exterior][predicate.Interior] == DimEmpty &&
		m.grid[predicate.Exterior][predicate.Boundary] == DimEmpty
}

// IsWithin is IsContains with A and B's roles reversed.
func (m *IntersectionMatrix) IsWithin() bool {
	return isTrue(m.grid[predicate.Interior][predicate.Interior]) &&
		m.grid[predicate.Interior][predicate.Exterior] == DimEmpty &&
		m.grid[predicate.Boundary][predicate.Exterior] == DimEmpty
}

// IsCovers is IsContains relaxed to allow the shared point to come from
// either geometry's boundary as well as its interior.
func (m *IntersectionMatrix) IsCovers() bool {
	hasCommonPoint := isTrue(m.grid[predicate.Interior][predicate.Interior]) ||
		isTrue(m.grid[predicate.Interior][predicate.Boundary]) ||
		isTrue(m.grid[predicate.Boundary][predicate.Interior]) ||
		isTrue(m.grid[predicate.Boundary][predicate.Boundary])
	return hasCommonPoint &&
		m.grid[predicate.Exterior][predicate.Interior] == DimEmpty &&
		m.grid[predicate.Exterior][predicate.Boundary] == DimEmpty
}

// IsCoveredBy is IsCovers with A and B's roles reversed.
func (m *IntersectionMatrix) IsCoveredBy() bool {
	hasCommonPoint := isTrue(m.grid[predicate.Interior][predicate.Interior]) ||
		isTrue(m.grid[predicate.Interior][predicate.Boundary]) ||
		isTrue(m.grid[predicate.Boundary][predicate.Interior]) ||
		isTrue(m.grid[predicate.Boundary][predicate.Boundary])
	return hasCommonPoint &&
		m.grid[predicate.Interior][predicate.Exterior] == DimEmpty &&
		m.grid[predicate.Boundary][predicate.Exterior] == DimEmpty
}

// IsEquals reports topological equality: both geometries have the same
// dimension, their interiors intersect, and neither has any part in the
// other's exterior.
func (m *IntersectionMatrix) IsEquals(dimA, dimB int) bool {
	if dimA != dimB {
		return false
	}
	return isTrue(m.grid[predicate.Interior][predicate.Interior]) &&
		m.grid[predicate.Interior][predicate.Exterior] == DimEmpty &&
		m.grid[predicate.Boundary][predicate.Exterior] == DimEmpty &&
		m.grid[predicate.Exterior][predicate.Interior] == DimEmpty &&
		m.grid[predicate.Exterior][predicate.Boundary] == DimEmpty
}

// IsTouches reports whether the geometries have at least one point in
// common but their interiors do not intersect. Only defined (per the OGC
// spec) when dimA <= dimB and the pair is not point/point.
func (m *IntersectionMatrix) IsTouches(dimA, dimB int) bool {
	if dimA > dimB {
		return m.Transposed().IsTouches(dimB, dimA)
	}
	if dimA == Dim0 && dimB == Dim0 {
		return false
	}
	return m.grid[predicate.Interior][predicate.Interior] == DimEmpty &&
		(isTrue(m.grid[predicate.Interior][predicate.Boundary]) ||
			isTrue(m.grid[predicate.Boundary][predicate.Interior]) ||
			isTrue(m.grid[predicate.Boundary][predicate.Boundary]))
}

// IsCrosses reports whether the geometries intersect in a set of lower
// dimension than the maximum of their own dimensions, with interiors
// actually intersecting.
func (m *IntersectionMatrix) IsCrosses(dimA, dimB int) bool {
	switch {
	case (dimA == Dim0 && dimB == Dim1) || (dimA == Dim0 && dimB == Dim2) || (dimA == Dim1 && dimB == Dim2):
		return isTrue(m.grid[predicate.Interior][predicate.Interior]) && isTrue(m.grid[predicate.Interior][predicate.Exterior])
	case (dimA == Dim1 && dimB == Dim0) || (dimA == Dim2 && dimB == Dim0) || (dimA == Dim2 && dimB == Dim1):
		return isTrue(m.grid[predicate.Interior][predicate.Interior]) && isTrue(m.grid[predicate.Exterior][predicate.Interior])
	case dimA == Dim1 && dimB == Dim1:
		return m.grid[predicate.Interior][predicate.Interior] == Dim0
	default:
		return false
	}
}

// IsOverlaps reports whether the geometries have the same dimension,
// their interiors intersect, and each has part of its interior outside
// the other.
func (m *IntersectionMatrix) IsOverlaps(dimA, dimB int) bool {
	if dimA != dimB {
		return false
	}
	if dimA != Dim0 && dimA != Dim1 && dimA != Dim2 {
		return false
	}
	return isTrue(m.grid[predicate.Interior][predicate.Interior]) &&
		isTrue(m.grid[predicate.Interior][predicate.Exterior]) &&
		isTrue(m.grid[predicate.Exterior][predicate.Interior])
}

// Transposed returns a copy of m with A and B's roles swapped, leaving m
// itself unmodified (unlike Transpose).
func (m *IntersectionMatrix) Transposed() *IntersectionMatrix {
	cp := *m
	return cp.Transpose()
}
