package geom

// Diagonal is a compass offset used to span a range query from an anchor.
type Diagonal uint8

const (
	NorthWest Diagonal = iota
	NorthEast
	SouthWest
	SouthEast
)

// Diagonals lists every diagonal in a fixed order.
var Diagonals = [...]Diagonal{NorthWest, NorthEast, SouthWest, SouthEast}

func (d Diagonal) String() string {
	switch d {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case SouthWest:
		return "SW"
	default:
		return "SE"
	}
}

// Components splits a diagonal into its vertical and horizontal headings.
func (d Diagonal) Components() (Direction, Direction) {
	switch d {
	case NorthWest:
		return North, West
	case NorthEast:
		return North, East
	case SouthWest:
		return South, West
	default:
		return South, East
	}
}

// ParseDiagonal accepts "NW", "NE", "SW" or "SE".
func ParseDiagonal(s string) (Diagonal, bool) {
	switch s {
	case "NW", "nw":
		return NorthWest, true
	case "NE", "ne":
		return NorthEast, true
	case "SW", "sw":
		return SouthWest, true
	case "SE", "se":
		return SouthEast, true
	}
	return 0, false
}

// Rect is an axis-aligned rectangle with inclusive corners. Min is the
// north-west corner and Max the south-east one.
type Rect struct {
	Min Point
	Max Point
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o share at least one coordinate.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Empty reports whether r covers no coordinate at all.
func (r Rect) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Center returns the floored midpoint of r.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// RangeRect returns the box spanned by anchor and the point distance steps
// away along d on both axes. A negative distance flips the box.
func RangeRect(anchor Point, d Diagonal, distance int) Rect {
	v, h := d.Components()
	far := Step(Step(anchor, v, distance), h, distance)
	return Rect{
		Min: Point{min(anchor.X, far.X), min(anchor.Y, far.Y)},
		Max: Point{max(anchor.X, far.X), max(anchor.Y, far.Y)},
	}
}
