package spatial

import (
	"github.com/l1jgo/tagfield/internal/geom"
)

// Quadrant names one of the four children of a quadtree node.
type Quadrant uint8

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

func (q Quadrant) String() string {
	return [...]string{"NW", "NE", "SW", "SE"}[q]
}

// QuadTree is a region quadtree holding at most one player per leaf.
//
// Every node covers a square region split at its center. A point belongs
// to NW when x <= cx and y <= cy, to SW when x <= cx and y > cy, to NE when
// x > cx and y <= cy, and to SE otherwise. A node carries a payload only
// while it has no children, and a node left with a single leaf child after
// a removal absorbs that child's payload.
type QuadTree struct {
	bounds   geom.Rect
	center   geom.Point
	name     string
	point    geom.Point
	occupied bool
	kids     [4]*QuadTree
}

// NewQuadTree returns an empty quadtree over the square (0,0)-(2cx,2cy).
// Both center coordinates must be non-negative.
func NewQuadTree(center geom.Point) *QuadTree {
	return &QuadTree{
		bounds: geom.Rect{Max: geom.Point{X: 2 * center.X, Y: 2 * center.Y}},
		center: center,
	}
}

// Center returns the split point of the node.
func (t *QuadTree) Center() geom.Point { return t.center }

// Bounds returns the square region covered by the node.
func (t *QuadTree) Bounds() geom.Rect { return t.bounds }

// Child returns the subtree for q, or nil.
func (t *QuadTree) Child(q Quadrant) *QuadTree { return t.kids[q] }

// Payload returns the player stored on a leaf.
func (t *QuadTree) Payload() (string, geom.Point, bool) {
	return t.name, t.point, t.occupied
}

func (t *QuadTree) IsLeaf() bool {
	return t.kids == [4]*QuadTree{}
}

func (t *QuadTree) IsEmpty() bool {
	return !t.occupied && t.IsLeaf()
}

func (t *QuadTree) quadrant(p geom.Point) Quadrant {
	switch {
	case p.X <= t.center.X && p.Y <= t.center.Y:
		return NW
	case p.X <= t.center.X:
		return SW
	case p.Y <= t.center.Y:
		return NE
	default:
		return SE
	}
}

// square returns the corner-to-center square of quadrant q. Children are
// sized from it, so the shared center row and column appear in more than
// one square.
func (t *QuadTree) square(q Quadrant) geom.Rect {
	b, c := t.bounds, t.center
	switch q {
	case NW:
		return geom.Rect{Min: b.Min, Max: c}
	case NE:
		return geom.Rect{Min: geom.Point{X: c.X, Y: b.Min.Y}, Max: geom.Point{X: b.Max.X, Y: c.Y}}
	case SW:
		return geom.Rect{Min: geom.Point{X: b.Min.X, Y: c.Y}, Max: geom.Point{X: c.X, Y: b.Max.Y}}
	default:
		return geom.Rect{Min: c, Max: b.Max}
	}
}

// region returns the coordinates that actually route into quadrant q.
func (t *QuadTree) region(q Quadrant) geom.Rect {
	r := t.square(q)
	if q == NE || q == SE {
		r.Min.X = t.center.X + 1
	}
	if q == SW || q == SE {
		r.Min.Y = t.center.Y + 1
	}
	return r
}

func (t *QuadTree) newChild(q Quadrant) *QuadTree {
	sq := t.square(q)
	return &QuadTree{bounds: sq, center: sq.Center()}
}

func (t *QuadTree) setPayload(name string, p geom.Point) {
	t.name, t.point, t.occupied = name, p, true
}

func (t *QuadTree) clearPayload() {
	t.name, t.point, t.occupied = "", geom.Point{}, false
}

func (t *QuadTree) Contains(name string) bool {
	_, ok := t.Locate(name)
	return ok
}

// Locate returns where name is stored. O(n).
func (t *QuadTree) Locate(name string) (geom.Point, bool) {
	if t.IsLeaf() {
		return t.point, t.occupied && t.name == name
	}
	for _, kid := range t.kids {
		if kid == nil {
			continue
		}
		if p, ok := kid.Locate(name); ok {
			return p, true
		}
	}
	return geom.Point{}, false
}

func (t *QuadTree) ContainsPoint(p geom.Point) bool {
	_, ok := t.nameAt(p)
	return ok
}

func (t *QuadTree) nameAt(p geom.Point) (string, bool) {
	n := t
	for !n.IsLeaf() {
		n = n.kids[n.quadrant(p)]
		if n == nil {
			return "", false
		}
	}
	return n.name, n.occupied && n.point == p
}

// Insert stores name at p. It fails with ErrOutOfBounds when p is outside
// the tree's square or already occupied.
func (t *QuadTree) Insert(name string, p geom.Point) error {
	if !t.bounds.Contains(p) {
		return outOfBounds("insert", p, "outside field")
	}
	if t.ContainsPoint(p) {
		return outOfBounds("insert", p, "occupied")
	}
	t.insert(name, p)
	return nil
}

// insert assumes p is inside t and not yet stored.
func (t *QuadTree) insert(name string, p geom.Point) {
	n := t
	for {
		switch {
		case n.IsEmpty():
			n.setPayload(name, p)
			return
		case n.IsLeaf():
			// Demote the occupant one level; the loop then either drops p
			// into a sibling quadrant or keeps splitting the shared one.
			q := n.quadrant(n.point)
			kid := n.newChild(q)
			kid.setPayload(n.name, n.point)
			n.clearPayload()
			n.kids[q] = kid
		default:
			q := n.quadrant(p)
			if n.kids[q] == nil {
				n.kids[q] = n.newChild(q)
			}
			n = n.kids[q]
		}
	}
}

// simplify returns n reduced after a removal somewhere below it: nil when
// nothing is left, otherwise n with a lone leaf child pulled up into it.
func simplify(n *QuadTree) *QuadTree {
	if n.IsEmpty() {
		return nil
	}
	var only *QuadTree
	for _, kid := range n.kids {
		if kid == nil {
			continue
		}
		if only != nil {
			return n
		}
		only = kid
	}
	if only != nil && only.IsLeaf() {
		n.setPayload(only.name, only.point)
		n.kids = [4]*QuadTree{}
	}
	return n
}

// Remove drops name from the tree. Missing names are ignored.
func (t *QuadTree) Remove(name string) {
	t.removeName(name)
}

func (t *QuadTree) removeName(name string) bool {
	if t.IsLeaf() {
		if t.occupied && t.name == name {
			t.clearPayload()
			return true
		}
		return false
	}
	for q, kid := range t.kids {
		if kid != nil && kid.removeName(name) {
			t.kids[q] = simplify(kid)
			simplify(t)
			return true
		}
	}
	return false
}

// RemovePoint drops whoever sits on p. Empty points are ignored.
func (t *QuadTree) RemovePoint(p geom.Point) {
	t.removePoint(p)
}

func (t *QuadTree) removePoint(p geom.Point) bool {
	if t.IsLeaf() {
		if t.occupied && t.point == p {
			t.clearPayload()
			return true
		}
		return false
	}
	q := t.quadrant(p)
	kid := t.kids[q]
	if kid == nil || !kid.removePoint(p) {
		return false
	}
	t.kids[q] = simplify(kid)
	simplify(t)
	return true
}

// Move relocates name by steps along d.
func (t *QuadTree) Move(name string, d geom.Direction, steps int) (geom.Point, bool, error) {
	p, ok := t.Locate(name)
	if !ok {
		return geom.Point{}, false, nil
	}
	return t.MovePoint(p, d, steps)
}

// MovePoint relocates the player on p by steps along d. The tree is only
// restructured below the deepest node whose region holds both the old and
// the new coordinate; a leaf that stays in its quadrant is updated in place.
func (t *QuadTree) MovePoint(p geom.Point, d geom.Direction, steps int) (geom.Point, bool, error) {
	name, ok := t.nameAt(p)
	if !ok {
		return geom.Point{}, false, nil
	}
	to := geom.Step(p, d, steps)
	if to == p {
		return p, true, nil
	}
	if !t.bounds.Contains(to) {
		return geom.Point{}, false, outOfBounds("move "+name+" to", to, "outside field")
	}
	if t.ContainsPoint(to) {
		return geom.Point{}, false, outOfBounds("move "+name+" to", to, "occupied")
	}
	t.relocate(name, p, to)
	return to, true, nil
}

func (t *QuadTree) relocate(name string, from, to geom.Point) {
	if t.IsLeaf() {
		t.point = to
		return
	}
	qf, qt := t.quadrant(from), t.quadrant(to)
	if qf == qt {
		t.kids[qf].relocate(name, from, to)
	} else {
		t.kids[qf].removePoint(from)
		t.kids[qf] = simplify(t.kids[qf])
		t.insert(name, to)
	}
	simplify(t)
}

// NamesInRange lists players in the box spanned by anchor and the point
// distance steps away along d. Quadrants whose region misses the box are
// skipped.
func (t *QuadTree) NamesInRange(anchor geom.Point, d geom.Diagonal, distance int) []string {
	return t.collect(geom.RangeRect(anchor, d, distance), nil)
}

func (t *QuadTree) collect(r geom.Rect, out []string) []string {
	if t.IsLeaf() {
		if t.occupied && r.Contains(t.point) {
			out = append(out, t.name)
		}
		return out
	}
	for q, kid := range t.kids {
		if kid != nil && t.region(Quadrant(q)).Intersects(r) {
			out = kid.collect(r, out)
		}
	}
	return out
}

// Each calls fn for every stored player.
func (t *QuadTree) Each(fn func(name string, p geom.Point)) {
	if t.occupied {
		fn(t.name, t.point)
	}
	for _, kid := range t.kids {
		if kid != nil {
			kid.Each(fn)
		}
	}
}

// Size returns the number of stored players.
func (t *QuadTree) Size() int {
	if t.IsLeaf() {
		if t.occupied {
			return 1
		}
		return 0
	}
	n := 0
	for _, kid := range t.kids {
		if kid != nil {
			n += kid.Size()
		}
	}
	return n
}

// NodeCount returns the number of nodes, internal ones included.
func (t *QuadTree) NodeCount() int {
	n := 1
	for _, kid := range t.kids {
		if kid != nil {
			n += kid.NodeCount()
		}
	}
	return n
}

func (t *QuadTree) Height() int {
	h := 0
	for _, kid := range t.kids {
		if kid != nil {
			h = max(h, kid.Height())
		}
	}
	return h + 1
}

// Depth returns the number of edges from t down to other. The walk follows
// the quadrants of any point stored under other.
func (t *QuadTree) Depth(other Index) (int, bool) {
	o, ok := other.(*QuadTree)
	if !ok || o == nil || o == t {
		return 0, false
	}
	probe, ok := o.anyPoint()
	if !ok {
		return 0, false
	}
	depth := 0
	for n := t; n != nil && !n.IsLeaf(); depth++ {
		n = n.kids[n.quadrant(probe)]
		if n == o {
			return depth + 1, true
		}
	}
	return 0, false
}

func (t *QuadTree) anyPoint() (geom.Point, bool) {
	if t.occupied {
		return t.point, true
	}
	for _, kid := range t.kids {
		if kid == nil {
			continue
		}
		if p, ok := kid.anyPoint(); ok {
			return p, true
		}
	}
	return geom.Point{}, false
}
