package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/tagfield/internal/config"
	"github.com/l1jgo/tagfield/internal/core/event"
	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/data"
	"github.com/l1jgo/tagfield/internal/game"
	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/scripting"
	"github.com/l1jgo/tagfield/internal/spatial"
	"github.com/l1jgo/tagfield/internal/system"
	"github.com/l1jgo/tagfield/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/tagfield.toml"
	if p := os.Getenv("TAGFIELD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Server.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 3. Build the field
	bounds := geom.Rect{Max: geom.Point{X: cfg.Field.Width, Y: cfg.Field.Height}}
	field, err := spatial.New(cfg.Field.Kind, bounds)
	if err != nil {
		return fmt.Errorf("field: %w", err)
	}
	ws := world.NewState(field, log)

	// 4. Players: roster if configured, random spawns otherwise
	roster, err := data.LoadRoster(cfg.Data.Roster)
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	var spawns []game.Spawn
	if roster != nil {
		spawns = game.FromRoster(roster)
	} else {
		spawns, err = game.Spawns(rng, cfg.Game.Players, bounds, cfg.Game.MaxSpeed, cfg.Game.MaxVision)
		if err != nil {
			return fmt.Errorf("spawns: %w", err)
		}
	}

	rules, err := game.New(cfg.Game.Mode, rng)
	if err != nil {
		return err
	}
	if err := rules.Setup(ws, spawns); err != nil {
		return fmt.Errorf("setup %s: %w", rules.Name(), err)
	}

	// 5. Scripting
	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()

	log.Info("simulation starting",
		zap.String("name", cfg.Server.Name),
		zap.String("game", rules.Name()),
		zap.String("field", string(cfg.Field.Kind)),
		zap.Stringer("bounds", bounds.Max),
		zap.Int("players", ws.Count()),
		zap.Int64("seed", seed),
	)

	// 6. Create systems and register with runner
	bus := event.NewBus()
	rulesSys := system.NewRulesSystem(ws, bus, rules, cfg.Game.Duration, log)
	runner := coresys.NewRunner()
	runner.Register(system.NewHeadingSystem(ws, rng, lua, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewMovementSystem(ws, log))
	runner.Register(system.NewCollisionSystem(ws, bus, cfg.Game.CollisionRadius))
	runner.Register(rulesSys)
	runner.Register(system.NewBalanceSystem(ws, cfg.Field.BalanceInterval, log))

	// 7. Tick until decided
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loop(ctx, runner, rulesSys, cfg); err != nil {
		log.Info("simulation interrupted", zap.Error(err), zap.Int("tick", runner.Ticks()))
	}

	drain(log, runner, bus)
	report(log, ws, rulesSys, runner.Ticks(), time.Unix(cfg.Server.StartTime, 0))
	return nil
}

// loop ticks the runner until the rules name a winner, max_ticks is hit or
// ctx is cancelled.
func loop(ctx context.Context, runner *coresys.Runner, rules *system.RulesSystem, cfg *config.Config) error {
	dt := cfg.Network.TickRate
	var tick <-chan time.Time
	if dt > 0 {
		ticker := time.NewTicker(dt)
		defer ticker.Stop()
		tick = ticker.C
	}
	for !rules.Done() {
		if cfg.Game.MaxTicks > 0 && runner.Ticks() >= cfg.Game.MaxTicks {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		runner.Tick(dt)
	}
	return nil
}

// drain delivers what the last tick emitted, so subscribers see it before
// the standings are reported.
func drain(log *zap.Logger, runner *coresys.Runner, bus *event.Bus) {
	log.Debug("draining events",
		zap.Int("collisions", event.Pending[event.Collision](bus)),
		zap.Int("game_over", event.Pending[event.GameOver](bus)),
	)
	runner.TickPhase(coresys.PhasePreUpdate, 0)
}

func report(log *zap.Logger, ws *world.State, rules *system.RulesSystem, ticks int, started time.Time) {
	uptime := time.Since(started).Round(time.Second)
	if winner, ok := rules.Winner(); ok {
		log.Info("winner", zap.String("name", winner), zap.Int("ticks", ticks), zap.Duration("uptime", uptime))
	} else {
		log.Info("no winner", zap.Int("ticks", ticks), zap.Int("players_left", ws.Count()), zap.Duration("uptime", uptime))
	}
	for i, p := range ws.Standings() {
		log.Info("standing",
			zap.Int("rank", i+1),
			zap.String("name", p.Name),
			zap.Int("points", p.Points),
			zap.Stringer("role", p.Role),
			zap.Stringer("at", p.Location),
		)
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
