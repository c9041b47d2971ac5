package world

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/spatial"
)

// ErrDuplicateName is returned by AddPlayer when the name is taken.
var ErrDuplicateName = errors.New("world: duplicate player name")

// State tracks every player on the field and the index holding their
// coordinates. Single-goroutine access only (game loop).
type State struct {
	field   spatial.Index
	players map[string]*Player
	log     *zap.Logger
}

func NewState(field spatial.Index, log *zap.Logger) *State {
	return &State{
		field:   field,
		players: make(map[string]*Player),
		log:     log,
	}
}

// Field returns the spatial index backing the state.
func (s *State) Field() spatial.Index {
	return s.field
}

// AddPlayer stores p in the field at p.Location. The player is only
// registered once the index accepted it.
func (s *State) AddPlayer(p *Player) error {
	if _, dup := s.players[p.Name]; dup {
		return fmt.Errorf("add %q: %w", p.Name, ErrDuplicateName)
	}
	if err := s.field.Insert(p.Name, p.Location); err != nil {
		return fmt.Errorf("add %q: %w", p.Name, err)
	}
	s.players[p.Name] = p
	s.log.Debug("player added",
		zap.String("name", p.Name),
		zap.Stringer("at", p.Location),
		zap.Int("speed", p.Speed),
		zap.Int("vision", p.Vision),
	)
	return nil
}

// RemovePlayer takes name off the field. It returns nil when the name is
// unknown.
func (s *State) RemovePlayer(name string) *Player {
	p, ok := s.players[name]
	if !ok {
		return nil
	}
	s.field.Remove(name)
	delete(s.players, name)
	for _, other := range s.players {
		other.Forget(name)
	}
	s.log.Debug("player removed", zap.String("name", name), zap.Int("points", p.Points))
	return p
}

// MovePlayer advances name by its speed along its heading. A move that
// would leave the field or land on another player reverses the heading
// instead, and the player stays put for this tick.
func (s *State) MovePlayer(name string) error {
	p, ok := s.players[name]
	if !ok {
		return nil
	}
	to, found, err := s.field.MovePoint(p.Location, p.Heading, p.Speed)
	switch {
	case errors.Is(err, spatial.ErrOutOfBounds):
		s.log.Debug("move blocked",
			zap.String("name", name),
			zap.Stringer("heading", p.Heading),
			zap.Error(err),
		)
		p.ReverseHeading()
		return nil
	case err != nil:
		return fmt.Errorf("move %q: %w", name, err)
	case !found:
		return fmt.Errorf("move %q: not on the field at %v", name, p.Location)
	}
	p.Location = to
	return nil
}

// Player returns the player called name, or nil.
func (s *State) Player(name string) *Player {
	return s.players[name]
}

// Players returns every player sorted by name.
func (s *State) Players() []*Player {
	out := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of players on the field.
func (s *State) Count() int {
	return len(s.players)
}

// Standings returns the players ordered by points, best first, then name.
func (s *State) Standings() []*Player {
	out := s.Players()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out
}

// NearbyNames lists the players within radius of p on both axes. Whoever
// stands on p is included; callers sweeping around a player skip its name.
func (s *State) NearbyNames(p geom.Point, radius int) []string {
	corner := geom.Point{X: p.X - radius, Y: p.Y - radius}
	return s.field.NamesInRange(corner, geom.SouthEast, 2*radius)
}
