package scripting

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/tagfield/internal/geom"
)

func newEngine(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		if err := os.MkdirAll(filepath.Join(dir, "ai"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "ai", "heading.lua"), []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func tally(n, s, e, w int) [4]int {
	var t [4]int
	t[geom.North], t[geom.South], t[geom.East], t[geom.West] = n, s, e, w
	return t
}

func TestBestHeadings(t *testing.T) {
	tests := []struct {
		tally [4]int
		want  []geom.Direction
	}{
		{tally(0, 0, 0, 0), []geom.Direction{geom.North, geom.South, geom.East, geom.West}},
		{tally(2, 0, 1, 0), []geom.Direction{geom.North}},
		{tally(0, 3, 0, 3), []geom.Direction{geom.South, geom.West}},
	}
	for _, tt := range tests {
		if got := BestHeadings(tt.tally); !slices.Equal(got, tt.want) {
			t.Errorf("BestHeadings(%v) = %v, want %v", tt.tally, got, tt.want)
		}
	}
}

func TestSampleScriptMatchesGoScorer(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	for _, tl := range [][4]int{tally(0, 0, 0, 0), tally(1, 2, 2, 0), tally(5, 0, 0, 1)} {
		got := e.ChooseHeading(HeadingContext{Player: "p", Tally: tl})
		if want := BestHeadings(tl); !slices.Equal(got, want) {
			t.Errorf("tally %v: lua %v, go %v", tl, got, want)
		}
	}
}

func TestChooseHeadingUsesScript(t *testing.T) {
	e := newEngine(t, `
function choose_heading(ctx)
  if ctx.player == "shy" then return { "W", "E" } end
  return { "S" }
end`)
	if got := e.ChooseHeading(HeadingContext{Player: "shy"}); !slices.Equal(got, []geom.Direction{geom.East, geom.West}) {
		t.Fatalf("got %v", got)
	}
	if got := e.ChooseHeading(HeadingContext{Player: "bold", Tally: tally(9, 0, 0, 0)}); !slices.Equal(got, []geom.Direction{geom.South}) {
		t.Fatalf("got %v", got)
	}
}

func TestChooseHeadingFallsBack(t *testing.T) {
	tl := tally(0, 0, 4, 1)
	want := []geom.Direction{geom.East}
	scripts := map[string]string{
		"missing": "",
		"error":   `function choose_heading(ctx) error("boom") end`,
		"scalar":  `function choose_heading(ctx) return 3 end`,
		"unknown": `function choose_heading(ctx) return { "up" } end`,
	}
	for name, script := range scripts {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t, script)
			if got := e.ChooseHeading(HeadingContext{Player: "p", Tally: tl}); !slices.Equal(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestNewEngineReportsBadScript(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "ai"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ai", "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil || !strings.Contains(err.Error(), "load ai scripts") {
		t.Fatalf("err = %v", err)
	}
}
