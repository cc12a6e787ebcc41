package index

import "github.com/geos-go/geos/geom"

// quadtreeMinExtent bounds how small a node's square can get before a
// zero-area envelope is simply kept at that node rather than triggering
// infinite subdivision, per spec.md §4.3.
const quadtreeMinExtent = 1e-9

type quadNode struct {
	env      geom.Envelope
	items    []Item
	children [4]*quadNode
}

// Quadtree is the adaptive grid spec.md §4.3 describes: rooted at the
// origin, nodes split when occupancy exceeds capacity. Intended for
// interactive insert/remove workloads rather than the STR-tree's static
// bulk loads, so unlike STRTree it supports Remove and never freezes.
// Hand-rolled: no pack repo offers an adaptive planar quadtree.
type Quadtree struct {
	capacity int
	root     *quadNode
}

// NewQuadtree returns an empty quadtree rooted at the origin with an
// initial half-extent of size (the root covers
// [-size,size] x [-size,size]) and per-node capacity before splitting.
func NewQuadtree(size float64, capacity int) *Quadtree {
	if capacity <= 0 {
		capacity = 4
	}
	return &Quadtree{
		capacity: capacity,
		root:     &quadNode{env: geom.Envelope{MinX: -size, MinY: -size, MaxX: size, MaxY: size}},
	}
}

// Insert adds an item under its envelope, growing the root if needed and
// descending/splitting nodes as occupancy requires.
func (q *Quadtree) Insert(env geom.Envelope, data any) {
	for !q.root.env.ContainsEnvelope(env) {
		q.growRoot(env)
	}
	insertInto(q.root, Item{Env: env, Data: data}, q.capacity)
}

func (q *Quadtree) growRoot(env geom.Envelope) {
	old := q.root
	e := old.env
	width := e.MaxX - e.MinX
	newEnv := geom.Envelope{MinX: e.MinX - width, MinY: e.MinY - width, MaxX: e.MaxX + width, MaxY: e.MaxY + width}
	q.root = &quadNode{env: newEnv, children: [4]*quadNode{old}}
}

func insertInto(n *quadNode, it Item, capacity int) {
	if n.children[0] == nil && n.children[1] == nil && n.children[2] == nil && n.children[3] == nil {
		n.items = append(n.items, it)
		if len(n.items) > capacity && quadExtent(n.env) > quadtreeMinExtent {
			split(n, capacity)
		}
		return
	}
	for _, c := range n.children {
		if c != nil && c.env.ContainsEnvelope(it.Env) {
			insertInto(c, it, capacity)
			return
		}
	}
	// Straddles more than one child (or no child exists yet for its
	// quadrant): keep it at this node rather than force subdivision.
	n.items = append(n.items, it)
}

func quadExtent(e geom.Envelope) float64 {
	return (e.MaxX - e.MinX) + (e.MaxY - e.MinY)
}

func split(n *quadNode, capacity int) {
	cx := (n.env.MinX + n.env.MaxX) / 2
	cy := (n.env.MinY + n.env.MaxY) / 2
	n.children[0] = &quadNode{env: geom.Envelope{MinX: n.env.MinX, MinY: n.env.MinY, MaxX: cx, MaxY: cy}}
	n.children[1] = &quadNode{env: geom.Envelope{MinX: cx, MinY: n.env.MinY, MaxX: n.env.MaxX, MaxY: cy}}
	n.children[2] = &quadNode{env: geom.Envelope{MinX: n.env.MinX, MinY: cy, MaxX: cx, MaxY: n.env.MaxY}}
	n.children[3] = &quadNode{env: geom.Envelope{MinX: cx, MinY: cy, MaxX: n.env.MaxX, MaxY: n.env.MaxY}}

	items := n.items
	n.items = nil
	for _, it := range items {
		insertInto(n, it, capacity)
	}
}

// Remove deletes the first item matching data (compared by equality, so
// data should be a comparable identity such as a pointer) whose envelope
// is env. It reports whether an item was removed.
func (q *Quadtree) Remove(env geom.Envelope, data any) bool {
	return removeFrom(q.root, env, data)
}

func removeFrom(n *quadNode, env geom.Envelope, data any) bool {
	if n == nil {
		return false
	}
	for i, it := range n.items {
		if it.Data == data && it.Env == env {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	for _, c := range n.children {
		if c != nil && c.env.IntersectsEnvelope(env) {
			if removeFrom(c, env, data) {
				return true
			}
		}
	}
	return false
}

// Query returns every item whose envelope intersects q.
func (q *Quadtree) Query(env geom.Envelope) []any {
	var out []any
	queryQuad(q.root, env, &out)
	return out
}

func queryQuad(n *quadNode, env geom.Envelope, out *[]any) {
	if n == nil || !n.env.IntersectsEnvelope(env) {
		return
	}
	for _, it := range n.items {
		if it.Env.IntersectsEnvelope(env) {
			*out = append(*out, it.Data)
		}
	}
	for _, c := range n.children {
		queryQuad(c, env, out)
	}
}
