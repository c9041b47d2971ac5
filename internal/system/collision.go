package system

import (
	"time"

	"github.com/l1jgo/tagfield/internal/core/event"
	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/world"
)

// CollisionSystem reports players standing within radius of each other on
// both axes. Every player sweeps its own square once; a pair is emitted
// only from the player whose name sorts first.
// Phase 3 (PostUpdate).
type CollisionSystem struct {
	world  *world.State
	bus    *event.Bus
	radius int
	tick   int
}

func NewCollisionSystem(ws *world.State, bus *event.Bus, radius int) *CollisionSystem {
	return &CollisionSystem{world: ws, bus: bus, radius: radius}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.tick++
	for _, p := range s.world.Players() {
		for _, other := range s.world.NearbyNames(p.Location, s.radius) {
			if other > p.Name {
				event.Emit(s.bus, event.Collision{Tick: s.tick, A: p.Name, B: other})
			}
		}
	}
}
