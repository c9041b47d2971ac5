package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/scripting"
	"github.com/l1jgo/tagfield/internal/world"
)

// RangeQuerier is the part of the field index a heading choice reads.
type RangeQuerier interface {
	NamesInRange(anchor geom.Point, d geom.Diagonal, distance int) []string
}

// HeadingScorer ranks headings from a tally. *scripting.Engine is one.
type HeadingScorer interface {
	ChooseHeading(ctx scripting.HeadingContext) []geom.Direction
}

// NextHeading looks along two random diagonals, p.Vision steps out, and
// sets p.Heading to one of the best headings found. Targets pull toward
// their side, enemies push away from theirs. It returns every heading that
// was rated equally good.
//
// The field is queried exactly twice.
func NextHeading(field RangeQuerier, p *world.Player, rng *rand.Rand, scorer HeadingScorer) []geom.Direction {
	ctx := scripting.HeadingContext{Player: p.Name}
	for _, i := range rng.Perm(len(geom.Diagonals))[:2] {
		diag := geom.Diagonals[i]
		v, h := diag.Components()
		for _, name := range field.NamesInRange(p.Location, diag, p.Vision) {
			switch {
			case p.IsTarget(name):
				ctx.Tally[v]++
				ctx.Tally[h]++
			case p.IsEnemy(name):
				ctx.Tally[v.Reverse()]++
				ctx.Tally[h.Reverse()]++
			}
		}
	}
	var best []geom.Direction
	if scorer != nil {
		best = scorer.ChooseHeading(ctx)
	}
	if len(best) == 0 {
		best = scripting.BestHeadings(ctx.Tally)
	}
	p.Heading = best[rng.Intn(len(best))]
	return best
}

// HeadingSystem picks every player's heading for the tick.
// Phase 0 (Input).
type HeadingSystem struct {
	world  *world.State
	rng    *rand.Rand
	scorer HeadingScorer
	log    *zap.Logger
}

func NewHeadingSystem(ws *world.State, rng *rand.Rand, scorer HeadingScorer, log *zap.Logger) *HeadingSystem {
	return &HeadingSystem{world: ws, rng: rng, scorer: scorer, log: log}
}

func (s *HeadingSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *HeadingSystem) Update(_ time.Duration) {
	field := s.world.Field()
	for _, p := range s.world.Players() {
		best := NextHeading(field, p, s.rng, s.scorer)
		s.log.Debug("heading chosen",
			zap.String("player", p.Name),
			zap.Stringer("heading", p.Heading),
			zap.Int("choices", len(best)),
		)
	}
}
