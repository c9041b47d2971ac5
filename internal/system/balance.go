package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/world"
)

// Balancer is a field index that can be rebalanced on demand.
type Balancer interface {
	Balance()
	Height() int
}

// BalanceSystem rebalances the field every interval ticks when the index
// supports it. A quadtree field makes this a no-op.
// Phase 4 (Cleanup).
type BalanceSystem struct {
	world    *world.State
	interval int
	tick     int
	log      *zap.Logger
}

func NewBalanceSystem(ws *world.State, interval int, log *zap.Logger) *BalanceSystem {
	return &BalanceSystem{world: ws, interval: interval, log: log}
}

func (s *BalanceSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *BalanceSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.tick++
	if s.tick%s.interval != 0 {
		return
	}
	b, ok := s.world.Field().(Balancer)
	if !ok {
		return
	}
	before := b.Height()
	b.Balance()
	s.log.Debug("field balanced",
		zap.Int("tick", s.tick),
		zap.Int("height_before", before),
		zap.Int("height_after", b.Height()),
	)
}
