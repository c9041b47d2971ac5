// Package spatial holds the field indexes players are stored in: a
// region quadtree and a 2D kd-tree behind one Index contract.
//
// Neither structure locks. The simulation owns its index from the game
// loop goroutine, the same way the AOI grid is owned.
package spatial

import (
	"errors"
	"fmt"

	"github.com/l1jgo/tagfield/internal/geom"
)

// ErrOutOfBounds is returned when a target coordinate lies outside the
// index extent or is already occupied. The index is left untouched.
var ErrOutOfBounds = errors.New("spatial: out of bounds")

// Index is the contract shared by QuadTree and TwoDTree.
type Index interface {
	// Contains reports whether a player named name is stored. O(n).
	Contains(name string) bool
	// ContainsPoint reports whether some player sits exactly on p.
	ContainsPoint(p geom.Point) bool
	// Insert stores name at p.
	Insert(name string, p geom.Point) error
	// Remove drops name; absent names are ignored.
	Remove(name string)
	// RemovePoint drops whoever sits on p; empty points are ignored.
	RemovePoint(p geom.Point)
	// Move relocates name by steps along d. ok is false when name is absent.
	Move(name string, d geom.Direction, steps int) (to geom.Point, ok bool, err error)
	// MovePoint relocates the player on p by steps along d.
	MovePoint(p geom.Point, d geom.Direction, steps int) (to geom.Point, ok bool, err error)
	// NamesInRange lists players inside the box spanned by anchor and the
	// point distance steps away along d, edges included.
	NamesInRange(anchor geom.Point, d geom.Diagonal, distance int) []string
	// Size is the number of stored players.
	Size() int
	// Height is the number of nodes on the longest root-to-leaf path.
	Height() int
	IsLeaf() bool
	IsEmpty() bool
	// Depth is the number of edges from the receiver down to other, when
	// other is a strict descendant of the same kind.
	Depth(other Index) (int, bool)
	// Locate returns the coordinate of name.
	Locate(name string) (geom.Point, bool)
	// Bounds is the inclusive extent accepted by Insert and Move.
	Bounds() geom.Rect
}

// Kind selects an Index implementation.
type Kind string

const (
	KindQuadTree Kind = "quadtree"
	KindTwoDTree Kind = "twodtree"
)

// Valid reports whether k names a known implementation.
func (k Kind) Valid() bool {
	return k == KindQuadTree || k == KindTwoDTree
}

// New builds an empty index of the given kind over bounds. A quadtree
// partitions a square anchored at the origin around a center point, so its
// bounds must start at (0,0) and have even extents.
func New(kind Kind, bounds geom.Rect) (Index, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("spatial: empty bounds %v-%v", bounds.Min, bounds.Max)
	}
	switch kind {
	case KindQuadTree:
		if bounds.Min != (geom.Point{}) || bounds.Max.X%2 != 0 || bounds.Max.Y%2 != 0 {
			return nil, fmt.Errorf("spatial: quadtree bounds must be (0,0)-(even,even), got %v-%v",
				bounds.Min, bounds.Max)
		}
		return NewQuadTree(bounds.Center()), nil
	case KindTwoDTree:
		return NewTwoDTree(bounds.Min, bounds.Max), nil
	}
	return nil, fmt.Errorf("spatial: unknown index kind %q", kind)
}

func outOfBounds(op string, p geom.Point, reason string) error {
	return fmt.Errorf("%s %v: %s: %w", op, p, reason, ErrOutOfBounds)
}
