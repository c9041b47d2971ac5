// Package game holds the tag variants played on the field.
package game

import (
	"fmt"
	"math/rand"

	"github.com/l1jgo/tagfield/internal/world"
)

// Rules is one game variant. Setup places the players, HandleCollision
// reacts to two players meeting and CheckForWinner is consulted
// periodically by the simulation.
type Rules interface {
	Name() string
	Setup(ws *world.State, spawns []Spawn) error
	HandleCollision(a, b string)
	CheckForWinner() (string, bool)
}

// New returns the rules for a [game] mode.
func New(mode string, rng *rand.Rand) (Rules, error) {
	switch mode {
	case "tag":
		return NewTag(rng), nil
	case "zombie":
		return NewZombieTag(rng), nil
	case "elimination":
		return NewEliminationTag(rng), nil
	}
	return nil, fmt.Errorf("unknown game mode %q", mode)
}

// place adds every spawn to ws and returns the players in spawn order.
func place(ws *world.State, spawns []Spawn, rng *rand.Rand) ([]*world.Player, error) {
	if len(spawns) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(spawns))
	}
	players := make([]*world.Player, 0, len(spawns))
	for _, sp := range spawns {
		p := sp.Player(rng)
		if err := ws.AddPlayer(p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func bounce(ws *world.State, names ...string) {
	for _, n := range names {
		if p := ws.Player(n); p != nil {
			p.ReverseHeading()
		}
	}
}
