package game

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/l1jgo/tagfield/internal/data"
	"github.com/l1jgo/tagfield/internal/geom"
	"github.com/l1jgo/tagfield/internal/world"
)

// Spawn is where and how a player enters the field.
type Spawn struct {
	Name     string
	Location geom.Point
	Speed    int
	Vision   int
}

// Player builds the spawned player with a random starting heading.
func (s Spawn) Player(rng *rand.Rand) *world.Player {
	return world.NewPlayer(s.Name, s.Location, s.Vision, s.Speed, geom.Directions[rng.Intn(len(geom.Directions))])
}

// Spawns places n players named "0".."n-1" on distinct random points of
// field, with speed in [1,maxSpeed] and vision in [0,maxVision].
func Spawns(rng *rand.Rand, n int, field geom.Rect, maxSpeed, maxVision int) ([]Spawn, error) {
	w, h := field.Max.X-field.Min.X+1, field.Max.Y-field.Min.Y+1
	if n < 0 || n > w*h {
		return nil, fmt.Errorf("cannot place %d players on a %dx%d field", n, w, h)
	}
	taken := make(map[geom.Point]bool, n)
	out := make([]Spawn, 0, n)
	for len(out) < n {
		p := geom.Point{X: field.Min.X + rng.Intn(w), Y: field.Min.Y + rng.Intn(h)}
		if taken[p] {
			continue
		}
		taken[p] = true
		out = append(out, Spawn{
			Name:     strconv.Itoa(len(out)),
			Location: p,
			Speed:    1 + rng.Intn(max(maxSpeed, 1)),
			Vision:   rng.Intn(max(maxVision, 0) + 1),
		})
	}
	return out, nil
}

// FromRoster turns a loaded roster into spawns, in roster order.
func FromRoster(r *data.Roster) []Spawn {
	out := make([]Spawn, 0, r.Count())
	for _, e := range r.Entries() {
		out = append(out, Spawn{Name: e.Name, Location: e.Location(), Speed: e.Speed, Vision: e.Vision})
	}
	return out
}
