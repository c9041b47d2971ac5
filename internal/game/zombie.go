package game

import (
	"math/rand"

	"github.com/l1jgo/tagfield/internal/world"
)

// ZombieTag starts with one zombie. Zombies chase humans and turn every
// human they touch. The humans win if any of them is left when the game
// is decided.
type ZombieTag struct {
	rng *rand.Rand
	ws  *world.State
}

func NewZombieTag(rng *rand.Rand) *ZombieTag {
	return &ZombieTag{rng: rng}
}

func (g *ZombieTag) Name() string { return "zombie" }

func (g *ZombieTag) Setup(ws *world.State, spawns []Spawn) error {
	players, err := place(ws, spawns, g.rng)
	if err != nil {
		return err
	}
	g.ws = ws
	first := players[g.rng.Intn(len(players))]
	first.Role = world.RoleZombie
	for _, p := range players {
		if p != first {
			p.Role = world.RoleHuman
			p.SelectEnemy(first.Name)
			first.SelectTarget(p.Name)
		}
	}
	return nil
}

func (g *ZombieTag) HandleCollision(a, b string) {
	pa, pb := g.ws.Player(a), g.ws.Player(b)
	if pa == nil || pb == nil {
		return
	}
	bounce(g.ws, a, b)
	switch {
	case pa.Role == world.RoleZombie && pb.Role == world.RoleHuman:
		g.convert(pa, pb)
	case pb.Role == world.RoleZombie && pa.Role == world.RoleHuman:
		g.convert(pb, pa)
	}
}

// convert turns human into a slow zombie hunting whatever zombie hunted.
func (g *ZombieTag) convert(zombie, human *world.Player) {
	human.Role = world.RoleZombie
	human.SetSpeed(1)
	for _, e := range human.Enemies() {
		human.IgnoreEnemy(e)
	}
	zombie.IgnoreTarget(human.Name)
	for _, t := range zombie.Targets() {
		human.SelectTarget(t)
	}
	for _, p := range g.ws.Players() {
		if p.Role == world.RoleHuman {
			p.SelectEnemy(human.Name)
		}
	}
}

// Humans returns how many humans are left.
func (g *ZombieTag) Humans() int {
	n := 0
	for _, p := range g.ws.Players() {
		if p.Role == world.RoleHuman {
			n++
		}
	}
	return n
}

// CheckForWinner always decides the game: "humans" while any is left,
// otherwise "zombies".
func (g *ZombieTag) CheckForWinner() (string, bool) {
	if g.Humans() > 0 {
		return "humans", true
	}
	return "zombies", true
}
