package main

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/l1jgo/tagfield/internal/config"
	"github.com/l1jgo/tagfield/internal/core/event"
	coresys "github.com/l1jgo/tagfield/internal/core/system"
	"github.com/l1jgo/tagfield/internal/game"
	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/spatial"
	"github.com/l1jgo/tagfield/internal/system"
	"github.com/l1jgo/tagfield/internal/world"
)

// neverWins keeps the game running so only max_ticks can stop the loop.
type neverWins struct{ game.Rules }

func (neverWins) CheckForWinner() (string, bool) { return "", false }

func TestLoopStopsAtMaxTicks(t *testing.T) {
	field, err := spatial.New(spatial.KindQuadTree, geom.Rect{Max: geom.Point{X: 10, Y: 10}})
	if err != nil {
		t.Fatal(err)
	}
	ws := world.NewState(field, zap.NewNop())
	bus := event.NewBus()
	rules := system.NewRulesSystem(ws, bus, neverWins{}, 1, zap.NewNop())
	runner := coresys.NewRunner()
	runner.Register(rules)

	cfg := &config.Config{Game: config.GameConfig{MaxTicks: 7}}
	if err := loop(context.Background(), runner, rules, cfg); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if runner.Ticks() != 7 {
		t.Fatalf("ticks = %d, want 7", runner.Ticks())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg.Game.MaxTicks = 0
	if err := loop(ctx, runner, rules, cfg); err == nil {
		t.Fatalf("cancelled loop should report the context error")
	}
}

func TestDrainDeliversLastTick(t *testing.T) {
	bus := event.NewBus()
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	var over []event.GameOver
	event.Subscribe(bus, func(g event.GameOver) { over = append(over, g) })

	event.Emit(bus, event.GameOver{Tick: 4, Winner: "zombies"})
	event.Emit(bus, event.Collision{Tick: 4, A: "a", B: "b"})
	core, logs := observer.New(zapcore.DebugLevel)
	drain(zap.New(core), runner, bus)

	if len(over) != 1 || over[0].Winner != "zombies" {
		t.Fatalf("delivered %v", over)
	}
	if event.Pending[event.GameOver](bus) != 0 || event.Pending[event.Collision](bus) != 0 {
		t.Fatalf("events left behind")
	}
	if runner.Ticks() != 0 {
		t.Fatalf("draining counted as a tick")
	}
	entries := logs.FilterMessage("draining events").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d drain lines", len(entries))
	}
	if f := entries[0].ContextMap(); f["collisions"] != int64(1) || f["game_over"] != int64(1) {
		t.Fatalf("drain fields %v", f)
	}
}

func TestReportLogsUptime(t *testing.T) {
	field, err := spatial.New(spatial.KindTwoDTree, geom.Rect{Max: geom.Point{X: 10, Y: 10}})
	if err != nil {
		t.Fatal(err)
	}
	ws := world.NewState(field, zap.NewNop())
	if err := ws.AddPlayer(world.NewPlayer("a", geom.Point{X: 1, Y: 1}, 1, 1, geom.North)); err != nil {
		t.Fatal(err)
	}
	rules := system.NewRulesSystem(ws, event.NewBus(), neverWins{}, 1, zap.NewNop())
	core, logs := observer.New(zapcore.InfoLevel)
	report(zap.New(core), ws, rules, 12, time.Now().Add(-90*time.Second))

	entries := logs.FilterMessage("no winner").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d summary lines", len(entries))
	}
	f := entries[0].ContextMap()
	if up, ok := f["uptime"].(time.Duration); !ok || up < 90*time.Second {
		t.Fatalf("uptime %v", f["uptime"])
	}
	if f["ticks"] != int64(12) || f["players_left"] != int64(1) {
		t.Fatalf("summary fields %v", f)
	}
	if logs.FilterMessage("standing").Len() != 1 {
		t.Fatalf("standings not reported")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "nonsense"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		log, err := newLogger(tt.cfg)
		if err != nil {
			t.Fatalf("newLogger(%+v): %v", tt.cfg, err)
		}
		if !log.Core().Enabled(tt.want) || (tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1)) {
			t.Errorf("newLogger(%+v) level mismatch", tt.cfg)
		}
	}
}
