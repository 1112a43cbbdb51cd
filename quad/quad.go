package quad

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/essentials"
)

// ItemID identifies an item in a single QuadMap. IDs are handed out in
// insertion order, starting from 0.
//
// An ItemID is meaningless to any map other than the one that issued it.
type ItemID uint64

// Result is a single item returned from a query.
type Result[T any] struct {
	Value T
	Rect  Rect
	ID    ItemID
}

// Nearest is the result of a nearest neighbour search.
type Nearest[T any] struct {
	Result[T]
	Dist float64
}

type element[T any] struct {
	value T
	rect  Rect
}

// entry is the (id, rect) pair stored within the tree nodes.
type entry struct {
	id   ItemID
	rect Rect
}

// node is either a leaf (children == nil) holding its items, or a branch
// whose elements are the items straddling its midpoint.
type node struct {
	rect     Rect
	depth    int
	elements []entry
	children *[4]*node

	// count is the number of distinct items in a branch's subtree.
	count int
}

// QuadMap maps items to bounding boxes, allowing fast lookup of items by
// area.
//
// Items may lie (partly) outside of the map's bounds; they are kept at the
// root & are still returned by queries.
type QuadMap[T any] struct {
	root     *node
	cfg      Config
	nextID   ItemID
	elements map[ItemID]*element[T]
}

// New returns an empty QuadMap covering the given bounds.
func New[T any](bounds Rect, cfg Config) *QuadMap[T] {
	if cfg.MaxChildren < 1 {
		panic(fmt.Sprintf("quad map requires max children >= 1, got %d", cfg.MaxChildren))
	}
	return &QuadMap[T]{
		root:     &node{rect: bounds},
		cfg:      cfg,
		elements: map[ItemID]*element[T]{},
	}
}

// NewDefault returns an empty QuadMap using DefaultConfig.
func NewDefault[T any](bounds Rect) *QuadMap[T] {
	return New[T](bounds, DefaultConfig())
}

// Config returns the settings the map was built with.
func (q *QuadMap[T]) Config() Config {
	return q.cfg
}

// Len returns the number of items stored.
func (q *QuadMap[T]) Len() int {
	return len(q.elements)
}

// BoundingBox returns the rect covered by the root of the tree.
func (q *QuadMap[T]) BoundingBox() Rect {
	return q.root.rect
}

// InsertWithRect adds v with the given bounds & returns its id.
//
// If duplicates are disallowed & v's rect is too close to an existing one,
// the id is still consumed but nothing is stored.
func (q *QuadMap[T]) InsertWithRect(v T, r Rect) ItemID {
	id := q.nextID
	q.nextID++

	if q.root.insert(entry{id: id, rect: r}, &q.cfg) {
		q.elements[id] = &element[T]{value: v, rect: r}
	}
	return id
}

// Insert adds v using its own AABB. v must implement Spatial.
func (q *QuadMap[T]) Insert(v T) ItemID {
	s, ok := any(v).(Spatial)
	if !ok {
		panic(fmt.Sprintf("%T does not implement quad.Spatial", v))
	}
	return q.InsertWithRect(v, s.AABB())
}

// Get returns the item with the given id.
func (q *QuadMap[T]) Get(id ItemID) (T, bool) {
	e, ok := q.elements[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetPtr returns a pointer to the stored item, or nil.
//
// Changing the item through the pointer does not move it in the tree.
func (q *QuadMap[T]) GetPtr(id ItemID) *T {
	e, ok := q.elements[id]
	if !ok {
		return nil
	}
	return &e.value
}

// Rect returns the bounds an item was stored with.
func (q *QuadMap[T]) Rect(id ItemID) (Rect, bool) {
	e, ok := q.elements[id]
	if !ok {
		return NullRect(), false
	}
	return e.rect, true
}

// Query returns every item whose rect intersects r, ordered by id.
func (q *QuadMap[T]) Query(r Rect) []Result[T] {
	found := []entry{}
	q.root.query(r, &found)
	found = sortDedup(found)

	out := make([]Result[T], 0, len(found))
	for _, f := range found {
		e, ok := q.elements[f.id]
		if !ok {
			continue
		}
		out = append(out, Result[T]{Value: e.value, Rect: e.rect, ID: f.id})
	}
	return out
}

// Nearest returns the item whose rect midpoint is closest to p, provided
// it is no further than r away. Ties go to the lowest id.
func (q *QuadMap[T]) Nearest(p r2.Point, r float64) (Nearest[T], bool) {
	res := q.Query(CenteredWithRadius(p, r))
	if len(res) == 0 {
		return Nearest[T]{}, false
	}

	best := 0
	bestD2 := distance2(res[0].Rect.Midpoint(), p)
	for i := 1; i < len(res); i++ {
		d2 := distance2(res[i].Rect.Midpoint(), p)
		if d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}

	d := math.Sqrt(bestD2)
	if d > r {
		return Nearest[T]{}, false
	}
	return Nearest[T]{Result: res[best], Dist: d}, true
}

// Remove deletes an item, returning it & the rect it was stored with.
func (q *QuadMap[T]) Remove(id ItemID) (T, Rect, bool) {
	e, ok := q.elements[id]
	if !ok {
		var zero T
		return zero, NullRect(), false
	}
	delete(q.elements, id)
	q.root.remove(entry{id: id, rect: e.rect}, &q.cfg)
	return e.value, e.rect, true
}

// Items returns all stored items in id order.
func (q *QuadMap[T]) Items() []Result[T] {
	out := make([]Result[T], 0, len(q.elements))
	q.Each(func(r Result[T]) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Each calls fn for every item in id order until fn returns false.
func (q *QuadMap[T]) Each(fn func(Result[T]) bool) {
	ids := make([]ItemID, 0, len(q.elements))
	for id := range q.elements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		e := q.elements[id]
		if !fn(Result[T]{Value: e.value, Rect: e.rect, ID: id}) {
			return
		}
	}
}

// Inspect calls fn with the rect & depth of every node in the tree, and
// whether the node is a leaf.
func (q *QuadMap[T]) Inspect(fn func(r Rect, depth int, leaf bool)) {
	q.root.inspect(fn)
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

func (n *node) inspect(fn func(Rect, int, bool)) {
	fn(n.rect, n.depth, n.isLeaf())
	if n.isLeaf() {
		return
	}
	for _, c := range n.children {
		c.inspect(fn)
	}
}

// insert places e somewhere in the subtree, returning false if it was
// rejected as a duplicate.
func (n *node) insert(e entry, cfg *Config) bool {
	if !n.isLeaf() {
		var inserted bool
		if e.rect.Contains(n.rect.Midpoint()) || !n.anyChildIntersects(e.rect) {
			inserted = n.appendEntry(e, cfg)
		} else {
			for _, c := range n.children {
				if c.rect.Intersects(e.rect) && c.insert(e, cfg) {
					inserted = true
				}
			}
		}
		if inserted {
			n.count++
		}
		return inserted
	}

	if len(n.elements) >= cfg.MaxChildren && n.depth < cfg.MaxDepth {
		n.split(cfg)
		return n.insert(e, cfg)
	}
	return n.appendEntry(e, cfg)
}

func (n *node) appendEntry(e entry, cfg *Config) bool {
	if !cfg.AllowDuplicates {
		for _, existing := range n.elements {
			if existing.rect.IsClose(e.rect, cfg.Epsilon) {
				return false
			}
		}
	}
	n.elements = append(n.elements, e)
	return true
}

// split turns a leaf into a branch & re-homes its items.
func (n *node) split(cfg *Config) {
	held := n.elements
	n.elements = nil
	n.count = 0

	quads := n.rect.SplitQuad()
	n.children = &[4]*node{}
	for i, r := range quads {
		n.children[i] = &node{rect: r, depth: n.depth + 1}
	}
	for _, e := range held {
		n.insert(e, cfg)
	}
}

func (n *node) anyChildIntersects(r Rect) bool {
	for _, c := range n.children {
		if c.rect.Intersects(r) {
			return true
		}
	}
	return false
}

func (n *node) remove(e entry, cfg *Config) bool {
	if n.isLeaf() {
		return removeEntry(&n.elements, e.id)
	}

	removed := removeEntry(&n.elements, e.id)
	if !removed {
		for _, c := range n.children {
			if c.rect.Intersects(e.rect) && c.remove(e, cfg) {
				removed = true
			}
		}
	}

	if removed {
		n.count--
		if n.count < cfg.MinChildren {
			n.compact()
		}
	}
	return removed
}

// compact collapses a branch back into a leaf holding all live items.
func (n *node) compact() {
	held := []entry{}
	n.collect(&held)
	n.elements = sortDedup(held)
	n.children = nil
	n.count = 0
}

func (n *node) collect(out *[]entry) {
	*out = append(*out, n.elements...)
	if n.isLeaf() {
		return
	}
	for _, c := range n.children {
		c.collect(out)
	}
}

func (n *node) query(r Rect, out *[]entry) {
	for _, e := range n.elements {
		if r.Intersects(e.rect) {
			*out = append(*out, e)
		}
	}
	if n.isLeaf() {
		return
	}
	for _, c := range n.children {
		if r.Intersects(c.rect) {
			c.query(r, out)
		}
	}
}

func removeEntry(entries *[]entry, id ItemID) bool {
	for i, e := range *entries {
		if e.id == id {
			essentials.UnorderedDelete(entries, i)
			return true
		}
	}
	return false
}

func sortDedup(entries []entry) []entry {
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	out := entries[:0]
	for _, e := range entries {
		if len(out) > 0 && out[len(out)-1].id == e.id {
			continue
		}
		out = append(out, e)
	}
	return out
}

func distance2(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
