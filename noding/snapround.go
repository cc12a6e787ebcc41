package noding

import (
	"context"

	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/index"
)

// SnapRoundingNoder forces every vertex and intersection onto a fixed
// precision grid (a "hot pixel"), then re-nodes so that an edge passing
// near but not through a hot pixel is split to route through it.
// Grounded in the teacher's CellIDSnapper/IntLatLngSnapper
// (s2/builder_snapper.go): those snap vertices onto a discrete lattice
// (S2 cell centers, integer lat-lng units) exactly as hot-pixel snapping
// here snaps onto a geom.PrecisionModel grid. It makes a single rounding
// pass and does not iterate to a stable noding; it has no counterpart to
// the teacher's MinVertexSeparation/MaxEdgeDeviation bounds.
type SnapRoundingNoder struct {
	PrecisionModel *geom.PrecisionModel
	Base           Noder // noder supplying initial intersection nodes; defaults to MCIndexNoder
}

// NewSnapRoundingNoder returns a SnapRoundingNoder snapping onto pm's grid,
// using MCIndexNoder to find the initial intersection set before rounding.
func NewSnapRoundingNoder(pm *geom.PrecisionModel) *SnapRoundingNoder {
	return &SnapRoundingNoder{PrecisionModel: pm, Base: MCIndexNoder{}}
}

func (s *SnapRoundingNoder) base() Noder {
	if s.Base != nil {
		return s.Base
	}
	return MCIndexNoder{}
}

func (s *SnapRoundingNoder) ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	noded, err := s.base().ComputeNodes(ctx, strings)
	if err != nil {
		return nil, err
	}

	hotPixels := s.collectHotPixels(noded)
	tree := index.NewSTRTree(index.DefaultNodeCapacity)
	for i, p := range hotPixels {
		tree.Insert(geom.EnvelopeFromCoordinate(p), i)
	}

	out := make([]*NodedSegmentString, len(noded))
	for i, n := range noded {
		snapped := make([]geom.Coordinate, len(n.Vertices))
		for j, v := range n.Vertices {
			snapped[j] = s.PrecisionModel.MakeCoordinatePrecise(v)
		}
		rounded := &NodedSegmentString{Original: n.Original, Vertices: dedupConsecutive(snapped), DebugID: n.DebugID}
		s.routeThroughHotPixels(rounded, hotPixels, tree)
		out[i] = rounded
	}
	return out, nil
}

func (s *SnapRoundingNoder) collectHotPixels(strings []*NodedSegmentString) []geom.Coordinate {
	// geom.Coordinate is not a safe map key here: Z/M default to NaN
	// (geom.NewXY), and NaN never equals itself, so dedup keys on the
	// planar (X, Y) pair instead.
	type key struct{ x, y float64 }
	seen := make(map[key]bool)
	var pixels []geom.Coordinate
	for _, n := range strings {
		for _, v := range n.Vertices {
			p := s.PrecisionModel.MakeCoordinatePrecise(v)
			k := key{p.X, p.Y}
			if !seen[k] {
				seen[k] = true
				pixels = append(pixels, p)
			}
		}
	}
	return pixels
}

// routeThroughHotPixels inserts any hot pixel whose grid cell is crossed
// by a rounded segment but is not already one of its endpoints, ensuring
// no two rounded edges cross without a shared vertex.
func (s *SnapRoundingNoder) routeThroughHotPixels(n *NodedSegmentString, pixels []geom.Coordinate, tree *index.STRTree) {
	halfCell := s.PrecisionModel.GridSize() / 2
	if halfCell <= 0 {
		return
	}
	for i := 0; i < len(n.Vertices)-1; i++ {
		a, b := n.Vertices[i], n.Vertices[i+1]
		env := geom.EnvelopeFromCoordinates([]geom.Coordinate{a, b})
		env = env.ExpandBy(halfCell)
		for _, h := range tree.Query(env) {
			p := pixels[h.(int)]
			if p.Equals2D(a) || p.Equals2D(b) {
				continue
			}
			if distancePointToSegment(p, a, b) <= halfCell {
				n.AddNode(i, p)
			}
		}
	}
	n.Finish()
}

func distancePointToSegment(p, a, b geom.Coordinate) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := geom.NewXY(a.X+t*dx, a.Y+t*dy)
	return p.Distance(proj)
}

func dedupConsecutive(coords []geom.Coordinate) []geom.Coordinate {
	if len(coords) == 0 {
		return coords
	}
	out := coords[:1]
	for _, c := range coords[1:] {
		if !c.Equals2D(out[len(out)-1]) {
			out = append(out, c)
		}
	}
	return out
}

// SnappingNoder snaps vertices within a tolerance of each other to a
// single representative coordinate, using an index.Quadtree of point
// envelopes (which accepts inserts between queries) as the bucket
// structure in place of a vertex grid. Shares the
// teacher's Snapper lineage, but follows IdentitySnapper's "did not move
// unless necessary" semantics (s2/builder_snapper.go) rather than
// snapping onto a fixed lattice.
type SnappingNoder struct {
	Tolerance float64
	Base      Noder
}

func NewSnappingNoder(tolerance float64) *SnappingNoder {
	return &SnappingNoder{Tolerance: tolerance, Base: MCIndexNoder{}}
}

func (s *SnappingNoder) base() Noder {
	if s.Base != nil {
		return s.Base
	}
	return MCIndexNoder{}
}

func (s *SnappingNoder) ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	noded, err := s.base().ComputeNodes(ctx, strings)
	if err != nil {
		return nil, err
	}

	tree := index.NewQuadtree(1, 4)
	var reps []geom.Coordinate
	representative := func(p geom.Coordinate) geom.Coordinate {
		env := geom.Envelope{MinX: p.X - s.Tolerance, MinY: p.Y - s.Tolerance, MaxX: p.X + s.Tolerance, MaxY: p.Y + s.Tolerance}
		for _, h := range tree.Query(env) {
			r := reps[h.(int)]
			if p.Distance(r) <= s.Tolerance {
				return r
			}
		}
		idx := len(reps)
		reps = append(reps, p)
		tree.Insert(geom.EnvelopeFromCoordinate(p), idx)
		return p
	}

	out := make([]*NodedSegmentString, len(noded))
	for i, n := range noded {
		snapped := make([]geom.Coordinate, len(n.Vertices))
		for j, v := range n.Vertices {
			snapped[j] = representative(v)
		}
		out[i] = &NodedSegmentString{Original: n.Original, Vertices: dedupConsecutive(snapped), DebugID: n.DebugID}
	}
	return out, nil
}

// IteratedNoder wraps Base and re-runs it until a pass introduces no new
// vertices (a fixed point), or MaxIterations is exhausted, in which case
// ComputeNodes returns a *gerror.NonConvergenceError. Spec.md's Open
// Question left the iteration cap as an implicit teacher constant; this
// rewrite makes it a field with a sensible default rather than a
// hardcoded value.
type IteratedNoder struct {
	Base          Noder
	MaxIterations int
}

// DefaultMaxIterations is IteratedNoder's cap when MaxIterations is unset.
const DefaultMaxIterations = 5

func NewIteratedNoder(base Noder) *IteratedNoder {
	return &IteratedNoder{Base: base, MaxIterations: DefaultMaxIterations}
}

func (it *IteratedNoder) maxIterations() int {
	if it.MaxIterations > 0 {
		return it.MaxIterations
	}
	return DefaultMaxIterations
}

func (it *IteratedNoder) ComputeNodes(ctx context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	current := strings
	var noded []*NodedSegmentString
	for pass := 0; pass < it.maxIterations(); pass++ {
		var err error
		noded, err = it.Base.ComputeNodes(ctx, current)
		if err != nil {
			return nil, err
		}
		if !addedNewVertices(current, noded) {
			return noded, nil
		}
		current = toSegmentStrings(noded)
	}
	return nil, &gerror.NonConvergenceError{Iterations: it.maxIterations()}
}

func addedNewVertices(before []*SegmentString, after []*NodedSegmentString) bool {
	for i, s := range before {
		if len(after[i].Vertices) != len(s.Coordinates) {
			return true
		}
	}
	return false
}

func toSegmentStrings(noded []*NodedSegmentString) []*SegmentString {
	out := make([]*SegmentString, len(noded))
	for i, n := range noded {
		out[i] = NewSegmentString(n.Vertices, n.Original.Context)
	}
	return out
}

// SegmentExtractingNoder is an identity pass-through noder for input the
// caller asserts is already correctly noded (e.g. validated coverage
// input): it performs no intersection search at all.
type SegmentExtractingNoder struct{}

func (SegmentExtractingNoder) ComputeNodes(_ context.Context, strings []*SegmentString) ([]*NodedSegmentString, error) {
	out := make([]*NodedSegmentString, len(strings))
	for i, s := range strings {
		out[i] = NewNodedSegmentString(s)
	}
	return out, nil
}
