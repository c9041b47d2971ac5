package spatial

import (
	"sort"

	"github.com/l1jgo/tagfield/internal/geom"
)

// Axis is the coordinate a TwoDTree node splits on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

func (a Axis) other() Axis { return a ^ 1 }

func (a Axis) key(p geom.Point) int {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// TwoDTree is a 2D kd-tree. Every node holds one player; the root splits on
// x and the axis alternates with depth. Descendants whose coordinate on the
// node's axis is <= the node's go to lt, the rest to gt.
//
// The tree is not rebalanced on its own: call Balance.
type TwoDTree struct {
	bounds   geom.Rect
	name     string
	point    geom.Point
	occupied bool
	axis     Axis
	lt, gt   *TwoDTree
}

// NewTwoDTree returns an empty tree accepting points in the rectangle with
// the given north-west and south-east corners.
func NewTwoDTree(nw, se geom.Point) *TwoDTree {
	return &TwoDTree{bounds: geom.Rect{Min: nw, Max: se}, axis: AxisX}
}

func (t *TwoDTree) Bounds() geom.Rect { return t.bounds }

// Axis returns the split axis of the node.
func (t *TwoDTree) Axis() Axis { return t.axis }

// Lt returns the subtree at or below the splitter, or nil.
func (t *TwoDTree) Lt() *TwoDTree { return t.lt }

// Gt returns the subtree above the splitter, or nil.
func (t *TwoDTree) Gt() *TwoDTree { return t.gt }

// Payload returns the player stored on the node.
func (t *TwoDTree) Payload() (string, geom.Point, bool) {
	return t.name, t.point, t.occupied
}

func (t *TwoDTree) IsLeaf() bool {
	return t.lt == nil && t.gt == nil
}

func (t *TwoDTree) IsEmpty() bool {
	return !t.occupied && t.IsLeaf()
}

func (t *TwoDTree) goesLeft(p geom.Point) bool {
	return t.axis.key(p) <= t.axis.key(t.point)
}

func (t *TwoDTree) Contains(name string) bool {
	_, ok := t.Locate(name)
	return ok
}

// Locate returns where name is stored. O(n).
func (t *TwoDTree) Locate(name string) (geom.Point, bool) {
	if t == nil || !t.occupied {
		return geom.Point{}, false
	}
	if t.name == name {
		return t.point, true
	}
	if p, ok := t.lt.Locate(name); ok {
		return p, true
	}
	return t.gt.Locate(name)
}

func (t *TwoDTree) ContainsPoint(p geom.Point) bool {
	return t.holder(p) != nil
}

// holder returns the node storing p, or nil.
func (t *TwoDTree) holder(p geom.Point) *TwoDTree {
	if !t.occupied {
		return nil
	}
	for n := t; n != nil; {
		if n.point == p {
			return n
		}
		if n.goesLeft(p) {
			n = n.lt
		} else {
			n = n.gt
		}
	}
	return nil
}

// Insert stores name at p. It fails with ErrOutOfBounds when p is outside
// the tree's rectangle or already occupied.
func (t *TwoDTree) Insert(name string, p geom.Point) error {
	if !t.bounds.Contains(p) {
		return outOfBounds("insert", p, "outside field")
	}
	if t.ContainsPoint(p) {
		return outOfBounds("insert", p, "occupied")
	}
	t.attach(name, p)
	return nil
}

// attach stores a point that is known to be absent.
func (t *TwoDTree) attach(name string, p geom.Point) {
	if !t.occupied {
		t.name, t.point, t.occupied = name, p, true
		return
	}
	graft(t, name, p, t.axis, t.bounds)
}

// graft adds name at p below n and returns the subtree root. A nil n
// becomes a new leaf splitting on axis.
func graft(n *TwoDTree, name string, p geom.Point, axis Axis, bounds geom.Rect) *TwoDTree {
	if n == nil {
		return &TwoDTree{bounds: bounds, name: name, point: p, occupied: true, axis: axis}
	}
	if n.goesLeft(p) {
		n.lt = graft(n.lt, name, p, n.axis.other(), bounds)
	} else {
		n.gt = graft(n.gt, name, p, n.axis.other(), bounds)
	}
	return n
}

// Remove drops name from the tree. Missing names are ignored.
func (t *TwoDTree) Remove(name string) {
	if p, ok := t.Locate(name); ok {
		t.RemovePoint(p)
	}
}

// RemovePoint drops whoever sits on p. Empty points are ignored.
func (t *TwoDTree) RemovePoint(p geom.Point) {
	if !t.occupied {
		return
	}
	if root, ok := prune(t, p); ok && root == nil {
		t.name, t.point, t.occupied = "", geom.Point{}, false
	}
}

// prune removes p from the subtree at n and returns the subtree root, which
// is n itself or nil once its last point is gone.
func prune(n *TwoDTree, p geom.Point) (*TwoDTree, bool) {
	if n == nil {
		return nil, false
	}
	if n.point == p {
		return vacate(n), true
	}
	var ok bool
	if n.goesLeft(p) {
		n.lt, ok = prune(n.lt, p)
	} else {
		n.gt, ok = prune(n.gt, p)
	}
	return n, ok
}

// vacate drops n's payload and refills it with an extremal descendant: the
// largest of lt on n's axis, or the smallest of gt when lt is empty. It
// returns nil when n had no children.
func vacate(n *TwoDTree) *TwoDTree {
	switch {
	case n.lt != nil:
		r := maxOn(n.lt, n.axis)
		name, p := r.name, r.point
		n.lt, _ = prune(n.lt, p)
		n.name, n.point = name, p
	case n.gt != nil:
		r := minOn(n.gt, n.axis)
		name, p := r.name, r.point
		n.gt, _ = prune(n.gt, p)
		n.name, n.point = name, p
		n.shiftTies()
	default:
		return nil
	}
	return n
}

// shiftTies moves entries of gt that share n's coordinate on its axis into
// lt, where the <= rule wants them.
func (n *TwoDTree) shiftTies() {
	k := n.axis.key(n.point)
	var ties []*TwoDTree
	n.gt.walk(func(m *TwoDTree) {
		if n.axis.key(m.point) == k {
			ties = append(ties, &TwoDTree{name: m.name, point: m.point})
		}
	})
	for _, m := range ties {
		n.gt, _ = prune(n.gt, m.point)
		n.lt = graft(n.lt, m.name, m.point, n.axis.other(), n.bounds)
	}
}

// maxOn returns the node of the subtree with the largest coordinate on a.
// Subtrees split on a only need their gt side searched.
func maxOn(n *TwoDTree, a Axis) *TwoDTree {
	best := n
	consider := func(c *TwoDTree) {
		if c == nil {
			return
		}
		if m := maxOn(c, a); a.key(m.point) > a.key(best.point) {
			best = m
		}
	}
	consider(n.gt)
	if n.axis != a {
		consider(n.lt)
	}
	return best
}

// minOn returns the node of the subtree with the smallest coordinate on a.
func minOn(n *TwoDTree, a Axis) *TwoDTree {
	best := n
	consider := func(c *TwoDTree) {
		if c == nil {
			return
		}
		if m := minOn(c, a); a.key(m.point) < a.key(best.point) {
			best = m
		}
	}
	consider(n.lt)
	if n.axis != a {
		consider(n.gt)
	}
	return best
}

func (t *TwoDTree) walk(fn func(*TwoDTree)) {
	if t == nil || !t.occupied {
		return
	}
	fn(t)
	t.lt.walk(fn)
	t.gt.walk(fn)
}

// Move relocates name by steps along d.
func (t *TwoDTree) Move(name string, d geom.Direction, steps int) (geom.Point, bool, error) {
	p, ok := t.Locate(name)
	if !ok {
		return geom.Point{}, false, nil
	}
	return t.MovePoint(p, d, steps)
}

// MovePoint relocates the player on p by steps along d. The node is updated
// in place when the new coordinate still respects every ancestor and its
// own children; otherwise only the subtree of the deepest ancestor that
// still admits it is touched.
func (t *TwoDTree) MovePoint(p geom.Point, d geom.Direction, steps int) (geom.Point, bool, error) {
	h := t.holder(p)
	if h == nil {
		return geom.Point{}, false, nil
	}
	to := geom.Step(p, d, steps)
	if to == p {
		return p, true, nil
	}
	if !t.bounds.Contains(to) {
		return geom.Point{}, false, outOfBounds("move "+h.name+" to", to, "outside field")
	}
	if t.ContainsPoint(to) {
		return geom.Point{}, false, outOfBounds("move "+h.name+" to", to, "occupied")
	}
	t.relocate(h.name, p, to)
	return to, true, nil
}

func (t *TwoDTree) relocate(name string, from, to geom.Point) {
	if t.point == from {
		if t.admits(to) {
			t.point = to
			return
		}
		vacate(t)
		t.attach(name, to)
		return
	}
	left := t.goesLeft(from)
	if left != t.goesLeft(to) {
		prune(t, from)
		t.attach(name, to)
		return
	}
	if left {
		t.lt.relocate(name, from, to)
	} else {
		t.gt.relocate(name, from, to)
	}
}

// admits reports whether p could replace t's point without disturbing the
// split between its children.
func (t *TwoDTree) admits(p geom.Point) bool {
	k := t.axis.key(p)
	if t.lt != nil && t.axis.key(maxOn(t.lt, t.axis).point) > k {
		return false
	}
	if t.gt != nil && t.axis.key(minOn(t.gt, t.axis).point) <= k {
		return false
	}
	return true
}

// NamesInRange lists players in the box spanned by anchor and the point
// distance steps away along d. A side is skipped when the box lies entirely
// on the other side of the splitter.
func (t *TwoDTree) NamesInRange(anchor geom.Point, d geom.Diagonal, distance int) []string {
	if !t.occupied {
		return nil
	}
	return t.collect(geom.RangeRect(anchor, d, distance), nil)
}

func (t *TwoDTree) collect(r geom.Rect, out []string) []string {
	if r.Contains(t.point) {
		out = append(out, t.name)
	}
	k := t.axis.key(t.point)
	if t.lt != nil && t.axis.key(r.Min) <= k {
		out = t.lt.collect(r, out)
	}
	if t.gt != nil && t.axis.key(r.Max) > k {
		out = t.gt.collect(r, out)
	}
	return out
}

// Each calls fn for every stored player.
func (t *TwoDTree) Each(fn func(name string, p geom.Point)) {
	t.walk(func(n *TwoDTree) { fn(n.name, n.point) })
}

// Size returns the number of stored players. A nil subtree has size 0.
func (t *TwoDTree) Size() int {
	if t == nil || !t.occupied {
		return 0
	}
	return 1 + t.lt.Size() + t.gt.Size()
}

func (t *TwoDTree) Height() int {
	h := 0
	if t.lt != nil {
		h = t.lt.Height()
	}
	if t.gt != nil {
		h = max(h, t.gt.Height())
	}
	return h + 1
}

// Depth returns the number of edges from t down to other, following the
// splits toward other's point.
func (t *TwoDTree) Depth(other Index) (int, bool) {
	o, ok := other.(*TwoDTree)
	if !ok || o == nil || o == t || !o.occupied || !t.occupied {
		return 0, false
	}
	depth := 0
	for n := t; n != nil && n.point != o.point; depth++ {
		if n.goesLeft(o.point) {
			n = n.lt
		} else {
			n = n.gt
		}
		if n == o {
			return depth + 1, true
		}
	}
	return 0, false
}

// Balance rebuilds the tree so that, at every node, the sizes of lt and gt
// differ by at most one. A node whose sides are further apart is re-rooted
// on the entry whose coordinate splits its subtree most evenly, since all
// entries sharing the root's coordinate must sit in lt. When equal
// coordinates leave no split within one, the closest one is used.
func (t *TwoDTree) Balance() {
	if t == nil || !t.occupied {
		return
	}
	if abs(t.lt.Size()-t.gt.Size()) > 1 {
		t.resplit()
	}
	t.lt.Balance()
	t.gt.Balance()
}

type entry struct {
	name  string
	point geom.Point
}

// resplit moves t's payload to the best splitting entry of its subtree and
// regrafts everything else below it in the previous walk order.
func (t *TwoDTree) resplit() {
	var order []entry
	t.walk(func(m *TwoDTree) { order = append(order, entry{m.name, m.point}) })
	byKey := append([]entry(nil), order...)
	sort.SliceStable(byKey, func(i, j int) bool {
		return t.axis.key(byKey[i].point) < t.axis.key(byKey[j].point)
	})

	n := len(byKey)
	best, bestDiff := -1, abs(t.lt.Size()-t.gt.Size())
	for i := range byKey {
		// only the last entry of a run of equal keys gives a valid split
		if i+1 < n && t.axis.key(byKey[i+1].point) == t.axis.key(byKey[i].point) {
			continue
		}
		le := i + 1
		if d := abs(le - 1 - (n - le)); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	if best < 0 {
		return
	}

	root := byKey[best]
	t.name, t.point = root.name, root.point
	t.lt, t.gt = nil, nil
	for _, e := range order {
		if e.point != root.point {
			graft(t, e.name, e.point, t.axis, t.bounds)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
