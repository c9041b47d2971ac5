package geom

import "strconv"

// Point is an integer field coordinate. X grows east, Y grows south, so
// "north" means a smaller Y.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Direction is one of the four compass headings a player can move along.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists the headings in a fixed order.
var Directions = [...]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// Reverse returns the opposite heading.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// ParseDirection accepts "N", "S", "E" or "W" (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "N", "n":
		return North, true
	case "S", "s":
		return South, true
	case "E", "e":
		return East, true
	case "W", "w":
		return West, true
	}
	return 0, false
}

// Step returns the coordinate steps away from p along d.
func Step(p Point, d Direction, steps int) Point {
	switch d {
	case North:
		return Point{p.X, p.Y - steps}
	case South:
		return Point{p.X, p.Y + steps}
	case West:
		return Point{p.X - steps, p.Y}
	default:
		return Point{p.X + steps, p.Y}
	}
}
