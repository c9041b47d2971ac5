package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/l1jgo/tagfield/internal/spatial"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Field     FieldConfig     `toml:"field"`
	Game      GameConfig      `toml:"game"`
	Network   NetworkConfig   `toml:"network"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	Seed      int64  `toml:"seed"` // 0 = seed from the clock
	StartTime int64  // set at boot, not from config
}

// FieldConfig describes the playing field. Coordinates run from (0,0) to
// (Width,Height) inclusive.
type FieldConfig struct {
	Kind            spatial.Kind `toml:"kind"` // "quadtree" or "twodtree"
	Width           int          `toml:"width"`
	Height          int          `toml:"height"`
	BalanceInterval int          `toml:"balance_interval"` // ticks between kd-tree rebalances, 0 = never
}

type GameConfig struct {
	Mode            string `toml:"mode"` // "tag", "zombie" or "elimination"
	Players         int    `toml:"players"`
	Duration        int    `toml:"duration"` // ticks between winner checks
	MaxSpeed        int    `toml:"max_speed"`
	MaxVision       int    `toml:"max_vision"`
	CollisionRadius int    `toml:"collision_radius"`
	MaxTicks        int    `toml:"max_ticks"` // 0 = until a winner or a signal
}

type NetworkConfig struct {
	TickRate time.Duration `toml:"tick_rate"` // 0 = run ticks back to back
}

type DataConfig struct {
	Roster string `toml:"roster"` // optional YAML roster, empty = random spawns
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Game modes accepted in [game] mode.
const (
	ModeTag         = "tag"
	ModeZombie      = "zombie"
	ModeElimination = "elimination"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Validate rejects settings the simulation cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !c.Field.Kind.Valid() {
		errs = append(errs, fmt.Errorf("field.kind: unknown index kind %q", c.Field.Kind))
	}
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field: size %dx%d must be positive", c.Field.Width, c.Field.Height))
	}
	// 四分樹以中心點切分，邊長必須是偶數
	if c.Field.Kind == spatial.KindQuadTree && (c.Field.Width%2 != 0 || c.Field.Height%2 != 0) {
		errs = append(errs, fmt.Errorf("field: quadtree size %dx%d must be even", c.Field.Width, c.Field.Height))
	}
	if c.Field.BalanceInterval < 0 {
		errs = append(errs, errors.New("field.balance_interval must not be negative"))
	}
	switch c.Game.Mode {
	case ModeTag, ModeZombie, ModeElimination:
	default:
		errs = append(errs, fmt.Errorf("game.mode: unknown mode %q", c.Game.Mode))
	}
	if c.Game.Players < 2 {
		errs = append(errs, fmt.Errorf("game.players: need at least 2, got %d", c.Game.Players))
	}
	if c.Game.Duration <= 0 {
		errs = append(errs, fmt.Errorf("game.duration must be positive, got %d", c.Game.Duration))
	}
	if c.Game.MaxSpeed < 1 || c.Game.MaxVision < 0 || c.Game.CollisionRadius < 0 {
		errs = append(errs, errors.New("game: max_speed must be >= 1, max_vision and collision_radius >= 0"))
	}
	if c.Game.MaxTicks < 0 || c.Network.TickRate < 0 {
		errs = append(errs, errors.New("game.max_ticks and network.tick_rate must not be negative"))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "tagfield",
		},
		Field: FieldConfig{
			Kind:            spatial.KindQuadTree,
			Width:           500,
			Height:          500,
			BalanceInterval: 50,
		},
		Game: GameConfig{
			Mode:            ModeTag,
			Players:         10,
			Duration:        20,
			MaxSpeed:        5,
			MaxVision:       30,
			CollisionRadius: 5,
			MaxTicks:        5000,
		},
		Network: NetworkConfig{
			TickRate: 50 * time.Millisecond,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
