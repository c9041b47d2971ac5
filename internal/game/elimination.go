package game

import (
	"math/rand"

	"github.com/l1jgo/tagfield/internal/world"
)

// EliminationTag chains the players in a ring: each hunts the next one
// and flees the previous one. Tagging your target eliminates it and you
// take over its target.
type EliminationTag struct {
	rng *rand.Rand
	ws  *world.State
}

func NewEliminationTag(rng *rand.Rand) *EliminationTag {
	return &EliminationTag{rng: rng}
}

func (g *EliminationTag) Name() string { return "elimination" }

func (g *EliminationTag) Setup(ws *world.State, spawns []Spawn) error {
	players, err := place(ws, spawns, g.rng)
	if err != nil {
		return err
	}
	g.ws = ws
	n := len(players)
	for i, p := range players {
		p.SelectTarget(players[(i+1)%n].Name)
		p.SelectEnemy(players[(i+n-1)%n].Name)
	}
	return nil
}

func (g *EliminationTag) HandleCollision(a, b string) {
	pa, pb := g.ws.Player(a), g.ws.Player(b)
	if pa == nil || pb == nil {
		return
	}
	switch {
	case pb.IsTarget(a):
		g.eliminate(pb, pa)
	case pa.IsTarget(b):
		g.eliminate(pa, pb)
	default:
		bounce(g.ws, a, b)
	}
}

func (g *EliminationTag) eliminate(hunter, prey *world.Player) {
	hunter.IgnoreTarget(prey.Name)
	for _, t := range prey.Targets() {
		if t == hunter.Name {
			continue
		}
		if next := g.ws.Player(t); next != nil {
			next.IgnoreEnemy(prey.Name)
			next.SelectEnemy(hunter.Name)
		}
		hunter.IgnoreEnemy(t)
		hunter.SelectTarget(t)
	}
	g.ws.RemovePlayer(prey.Name)
	hunter.IncreasePoints(1)
}

// CheckForWinner names the single top scorer, if there is one.
func (g *EliminationTag) CheckForWinner() (string, bool) {
	best, top := 0, []string(nil)
	for _, p := range g.ws.Players() {
		switch {
		case p.Points > best:
			best, top = p.Points, []string{p.Name}
		case p.Points == best:
			top = append(top, p.Name)
		}
	}
	if len(top) == 1 {
		return top[0], true
	}
	return "", false
}
