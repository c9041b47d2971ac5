package game

import (
	"math/rand"

	"github.com/l1jgo/tagfield/internal/world"
)

// Tag has one player who is "it" chasing everybody else. Touching "it"
// hands the role over and costs the new "it" nothing, but every tagged
// player who is not "it" at a winner check is eliminated.
type Tag struct {
	rng *rand.Rand
	ws  *world.State
	it  string
}

func NewTag(rng *rand.Rand) *Tag {
	return &Tag{rng: rng}
}

func (g *Tag) Name() string { return "tag" }

// It returns the current tagger.
func (g *Tag) It() string { return g.it }

func (g *Tag) Setup(ws *world.State, spawns []Spawn) error {
	players, err := place(ws, spawns, g.rng)
	if err != nil {
		return err
	}
	g.ws = ws
	it := players[g.rng.Intn(len(players))]
	g.it = it.Name
	it.Role = world.RoleIt
	for _, p := range players {
		if p != it {
			p.SelectEnemy(it.Name)
			it.SelectTarget(p.Name)
		}
	}
	return nil
}

func (g *Tag) HandleCollision(a, b string) {
	bounce(g.ws, a, b)
	switch g.it {
	case a:
		g.pass(a, b)
	case b:
		g.pass(b, a)
	}
}

// pass makes to the new "it". The tagged player scores a point, which is
// what marks it for elimination once it is no longer "it".
func (g *Tag) pass(from, to string) {
	old, next := g.ws.Player(from), g.ws.Player(to)
	if old == nil || next == nil {
		return
	}
	next.IncreasePoints(1)
	for _, t := range old.Targets() {
		old.IgnoreTarget(t)
	}
	next.IgnoreEnemy(from)
	old.Role, next.Role = world.RoleRunner, world.RoleIt
	g.it = to
	for _, p := range g.ws.Players() {
		if p == next {
			continue
		}
		p.IgnoreEnemy(from)
		p.SelectEnemy(to)
		next.SelectTarget(p.Name)
	}
}

// CheckForWinner ends the game once "it" faces a single opponent, or is
// alone. Otherwise it eliminates every tagged player other than "it".
func (g *Tag) CheckForWinner() (string, bool) {
	players := g.ws.Players()
	switch len(players) {
	case 0:
		return "", false
	case 1:
		return players[0].Name, true
	case 2:
		for _, p := range players {
			if p.Name != g.it {
				return p.Name, true
			}
		}
	}
	for _, p := range players {
		if p.Name != g.it && p.Points >= 1 {
			g.ws.RemovePlayer(p.Name)
		}
	}
	return "", false
}
