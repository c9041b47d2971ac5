package world

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/spatial"
)

func newState(t *testing.T, kind spatial.Kind) *State {
	t.Helper()
	field, err := spatial.New(kind, geom.Rect{Max: geom.Point{X: 100, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	return NewState(field, zap.NewNop())
}

func TestPlayerTargetsAndEnemiesStayDisjoint(t *testing.T) {
	p := NewPlayer("a", geom.Point{}, 5, 1, geom.North)
	p.SelectTarget("b")
	p.SelectEnemy("b")
	p.SelectTarget("b")
	if !p.IsTarget("b") || p.IsEnemy("b") || len(p.Targets()) != 1 {
		t.Fatalf("targets %v enemies %v", p.Targets(), p.Enemies())
	}
	p.IgnoreTarget("b")
	p.SelectEnemy("b")
	if p.IsTarget("b") || !p.IsEnemy("b") {
		t.Fatalf("targets %v enemies %v", p.Targets(), p.Enemies())
	}

	got := p.Enemies()
	got[0] = "mutated"
	if !p.IsEnemy("b") {
		t.Fatalf("Enemies must return a copy")
	}
}

func TestPlayerPointsAndSpeed(t *testing.T) {
	p := NewPlayer("a", geom.Point{}, -3, -1, geom.East)
	if p.Vision != 0 || p.Speed != 0 {
		t.Fatalf("negative stats should clamp, got vision %d speed %d", p.Vision, p.Speed)
	}
	p.IncreasePoints(2)
	p.IncreasePoints(-5)
	if p.Points != 2 {
		t.Fatalf("points = %d, want 2", p.Points)
	}
	p.SetSpeed(4)
	p.SetSpeed(-1)
	if p.Speed != 4 {
		t.Fatalf("speed = %d, want 4", p.Speed)
	}
	p.ReverseHeading()
	if p.Heading != geom.West {
		t.Fatalf("heading = %v, want W", p.Heading)
	}
}

func TestStateAddAndRemove(t *testing.T) {
	for _, kind := range []spatial.Kind{spatial.KindQuadTree, spatial.KindTwoDTree} {
		t.Run(string(kind), func(t *testing.T) {
			s := newState(t, kind)
			a := NewPlayer("a", geom.Point{X: 10, Y: 10}, 5, 1, geom.North)
			b := NewPlayer("b", geom.Point{X: 20, Y: 10}, 5, 1, geom.North)
			if err := s.AddPlayer(a); err != nil {
				t.Fatal(err)
			}
			if err := s.AddPlayer(b); err != nil {
				t.Fatal(err)
			}
			if err := s.AddPlayer(NewPlayer("a", geom.Point{X: 1, Y: 1}, 0, 0, 0)); !errors.Is(err, ErrDuplicateName) {
				t.Fatalf("duplicate name: %v", err)
			}
			if err := s.AddPlayer(NewPlayer("c", geom.Point{X: 10, Y: 10}, 0, 0, 0)); !errors.Is(err, spatial.ErrOutOfBounds) {
				t.Fatalf("occupied point: %v", err)
			}
			if err := s.AddPlayer(NewPlayer("d", geom.Point{X: 101, Y: 0}, 0, 0, 0)); !errors.Is(err, spatial.ErrOutOfBounds) {
				t.Fatalf("outside field: %v", err)
			}
			if s.Count() != 2 || s.Field().Size() != 2 || s.Player("c") != nil {
				t.Fatalf("rejected players must not be registered")
			}

			a.SelectTarget("b")
			if s.RemovePlayer("b") != b || s.RemovePlayer("b") != nil {
				t.Fatalf("RemovePlayer mismatch")
			}
			if a.IsTarget("b") || s.Field().Contains("b") {
				t.Fatalf("removed player still referenced")
			}
		})
	}
}

func TestStateMovePlayerReversesWhenBlocked(t *testing.T) {
	s := newState(t, spatial.KindQuadTree)
	a := NewPlayer("a", geom.Point{X: 98, Y: 50}, 5, 3, geom.East)
	b := NewPlayer("b", geom.Point{X: 40, Y: 50}, 5, 10, geom.West)
	c := NewPlayer("c", geom.Point{X: 30, Y: 50}, 5, 2, geom.South)
	for _, p := range []*Player{a, b, c} {
		if err := s.AddPlayer(p); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.MovePlayer("a"); err != nil {
		t.Fatal(err)
	}
	if a.Location != (geom.Point{X: 98, Y: 50}) || a.Heading != geom.West {
		t.Fatalf("a at %v heading %v, want reversed in place", a.Location, a.Heading)
	}
	if err := s.MovePlayer("a"); err != nil {
		t.Fatal(err)
	}
	if a.Location != (geom.Point{X: 95, Y: 50}) {
		t.Fatalf("a at %v", a.Location)
	}

	// b would land on c.
	if err := s.MovePlayer("b"); err != nil {
		t.Fatal(err)
	}
	if b.Location != (geom.Point{X: 40, Y: 50}) || b.Heading != geom.East {
		t.Fatalf("b at %v heading %v", b.Location, b.Heading)
	}

	if err := s.MovePlayer("c"); err != nil {
		t.Fatal(err)
	}
	if p, _ := s.Field().Locate("c"); p != c.Location || p != (geom.Point{X: 30, Y: 52}) {
		t.Fatalf("index has c at %v, player at %v", p, c.Location)
	}
	if err := s.MovePlayer("nobody"); err != nil {
		t.Fatal(err)
	}
}

func TestStatePlayersAndStandings(t *testing.T) {
	s := newState(t, spatial.KindTwoDTree)
	for i, name := range []string{"c", "a", "b"} {
		p := NewPlayer(name, geom.Point{X: i * 10, Y: i}, 0, 0, geom.North)
		p.Points = i
		if err := s.AddPlayer(p); err != nil {
			t.Fatal(err)
		}
	}
	names := func(ps []*Player) string {
		out := ""
		for _, p := range ps {
			out += p.Name
		}
		return out
	}
	if got := names(s.Players()); got != "abc" {
		t.Fatalf("Players = %s", got)
	}
	if got := names(s.Standings()); got != "bac" {
		t.Fatalf("Standings = %s", got)
	}
	if got := s.NearbyNames(geom.Point{X: 5, Y: 0}, 5); len(got) != 2 {
		t.Fatalf("NearbyNames = %v", got)
	}
	// the occupant of the center point is part of the answer
	got := s.NearbyNames(s.Player("a").Location, 10)
	slices.Sort(got)
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("NearbyNames around a = %v", got)
	}
	if got := s.NearbyNames(s.Player("a").Location, 0); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("NearbyNames radius 0 = %v", got)
	}
}
