package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/tagfield/internal/geom"
)

// Engine wraps a single gopher-lua VM for player behaviour scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HeadingContext is what a player saw this tick: for every heading, how
// many targets lie that way plus how many enemies lie the opposite way.
type HeadingContext struct {
	Player string
	Tally  [4]int // indexed by geom.Direction
}

// ChooseHeading calls the Lua choose_heading function and returns the
// headings it rates best. Without the function, or when it fails, the
// highest tallies win.
func (e *Engine) ChooseHeading(ctx HeadingContext) []geom.Direction {
	fn := e.vm.GetGlobal("choose_heading")
	if fn == lua.LNil {
		return BestHeadings(ctx.Tally)
	}

	t := e.vm.NewTable()
	t.RawSetString("player", lua.LString(ctx.Player))
	t.RawSetString("n", lua.LNumber(ctx.Tally[geom.North]))
	t.RawSetString("s", lua.LNumber(ctx.Tally[geom.South]))
	t.RawSetString("e", lua.LNumber(ctx.Tally[geom.East]))
	t.RawSetString("w", lua.LNumber(ctx.Tally[geom.West]))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua choose_heading error", zap.Error(err), zap.String("player", ctx.Player))
		return BestHeadings(ctx.Tally)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua choose_heading returned non-table", zap.String("player", ctx.Player))
		return BestHeadings(ctx.Tally)
	}

	var picked [4]bool
	rt.ForEach(func(_, v lua.LValue) {
		if d, ok := geom.ParseDirection(lua.LVAsString(v)); ok {
			picked[d] = true
		} else {
			e.log.Warn("lua choose_heading returned unknown heading", zap.String("value", v.String()))
		}
	})
	var out []geom.Direction
	for _, d := range geom.Directions {
		if picked[d] {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return BestHeadings(ctx.Tally)
	}
	return out
}

// BestHeadings returns every heading sharing the highest tally, in
// geom.Directions order. All four are returned when nothing was seen.
func BestHeadings(tally [4]int) []geom.Direction {
	best := tally[geom.Directions[0]]
	for _, d := range geom.Directions {
		best = max(best, tally[d])
	}
	var out []geom.Direction
	for _, d := range geom.Directions {
		if tally[d] == best {
			out = append(out, d)
		}
	}
	return out
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
