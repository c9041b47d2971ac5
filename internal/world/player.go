package world

import (
	"slices"

	"github.com/l1jgo/tagfield/internal/geom"
)

// Role is the part a player has in the current game.
type Role uint8

const (
	RoleRunner Role = iota // plain player
	RoleIt                 // the tagger in Tag
	RoleHuman
	RoleZombie
)

func (r Role) String() string {
	switch r {
	case RoleIt:
		return "it"
	case RoleHuman:
		return "human"
	case RoleZombie:
		return "zombie"
	}
	return "runner"
}

// Player is a named entity on the field. Location mirrors the coordinate
// stored in the field index and is only changed through State.
//
// A name is never both a target and an enemy.
type Player struct {
	Name     string
	Location geom.Point
	Vision   int // range query distance
	Speed    int // steps per move
	Heading  geom.Direction
	Points   int
	Role     Role

	targets []string
	enemies []string
}

// NewPlayer returns a player with no points, targets or enemies.
func NewPlayer(name string, at geom.Point, vision, speed int, heading geom.Direction) *Player {
	return &Player{
		Name:     name,
		Location: at,
		Vision:   max(vision, 0),
		Speed:    max(speed, 0),
		Heading:  heading,
	}
}

// SelectTarget adds name to the targets unless it is already a target or
// an enemy.
func (p *Player) SelectTarget(name string) {
	if !p.IsTarget(name) && !p.IsEnemy(name) {
		p.targets = append(p.targets, name)
	}
}

func (p *Player) IgnoreTarget(name string) {
	p.targets = slices.DeleteFunc(p.targets, func(n string) bool { return n == name })
}

// Targets returns a copy of the target list.
func (p *Player) Targets() []string {
	return slices.Clone(p.targets)
}

func (p *Player) IsTarget(name string) bool {
	return slices.Contains(p.targets, name)
}

// SelectEnemy adds name to the enemies unless it is already a target or an
// enemy.
func (p *Player) SelectEnemy(name string) {
	if !p.IsTarget(name) && !p.IsEnemy(name) {
		p.enemies = append(p.enemies, name)
	}
}

func (p *Player) IgnoreEnemy(name string) {
	p.enemies = slices.DeleteFunc(p.enemies, func(n string) bool { return n == name })
}

// Enemies returns a copy of the enemy list.
func (p *Player) Enemies() []string {
	return slices.Clone(p.enemies)
}

func (p *Player) IsEnemy(name string) bool {
	return slices.Contains(p.enemies, name)
}

// Forget drops name from both lists.
func (p *Player) Forget(name string) {
	p.IgnoreTarget(name)
	p.IgnoreEnemy(name)
}

func (p *Player) ReverseHeading() {
	p.Heading = p.Heading.Reverse()
}

// IncreasePoints adds delta; a change that would go below zero is ignored.
func (p *Player) IncreasePoints(delta int) {
	if p.Points+delta >= 0 {
		p.Points += delta
	}
}

// SetSpeed ignores negative speeds.
func (p *Player) SetSpeed(speed int) {
	if speed >= 0 {
		p.Speed = speed
	}
}
