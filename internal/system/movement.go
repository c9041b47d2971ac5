package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/world"
)

// MovementSystem walks every player one move along its heading.
// Phase 2 (Update).
type MovementSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewMovementSystem(ws *world.State, log *zap.Logger) *MovementSystem {
	return &MovementSystem{world: ws, log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(_ time.Duration) {
	for _, p := range s.world.Players() {
		if err := s.world.MovePlayer(p.Name); err != nil {
			s.log.Error("move failed", zap.String("name", p.Name), zap.Error(err))
		}
	}
}
