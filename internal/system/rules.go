package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/tagfield/internal/core/event"
	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/game"
	"github.com/l1jgo/tagfield/internal/world"
)

// RulesSystem feeds collisions to the game rules and asks them for a
// winner every duration ticks. Collisions arrive through the bus one tick
// after they were seen; pairs where a player has since left are dropped.
// Phase 3 (PostUpdate).
type RulesSystem struct {
	world    *world.State
	bus      *event.Bus
	rules    game.Rules
	duration int
	tick     int
	winner   string
	done     bool
	log      *zap.Logger
}

func NewRulesSystem(ws *world.State, bus *event.Bus, rules game.Rules, duration int, log *zap.Logger) *RulesSystem {
	s := &RulesSystem{
		world:    ws,
		bus:      bus,
		rules:    rules,
		duration: max(duration, 1),
		log:      log,
	}
	event.Subscribe(bus, s.onCollision)
	return s
}

func (s *RulesSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RulesSystem) onCollision(c event.Collision) {
	if s.done || s.world.Player(c.A) == nil || s.world.Player(c.B) == nil {
		return
	}
	s.rules.HandleCollision(c.A, c.B)
}

func (s *RulesSystem) Update(_ time.Duration) {
	s.tick++
	if s.done || s.tick%s.duration != 0 {
		return
	}
	winner, ok := s.rules.CheckForWinner()
	if !ok {
		s.log.Debug("no winner yet", zap.Int("tick", s.tick), zap.Int("players", s.world.Count()))
		return
	}
	s.done, s.winner = true, winner
	event.Emit(s.bus, event.GameOver{Tick: s.tick, Winner: winner})
	s.log.Info("game over",
		zap.String("game", s.rules.Name()),
		zap.String("winner", winner),
		zap.Int("tick", s.tick),
	)
}

// Winner returns the winner once the rules named one.
func (s *RulesSystem) Winner() (string, bool) {
	return s.winner, s.done
}

func (s *RulesSystem) Done() bool { return s.done }
