package data

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/tagfield/internal/geom"
)

// RosterEntry is one player listed in roster.yaml.
type RosterEntry struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Speed  int    `yaml:"speed"`
	Vision int    `yaml:"vision"`
}

// Location returns the spawn point of the entry.
func (e RosterEntry) Location() geom.Point {
	return geom.Point{X: e.X, Y: e.Y}
}

// Roster is a fixed line-up of players loaded from YAML. Entries keep file
// order.
type Roster struct {
	entries []RosterEntry
	byName  map[string]int
}

// LoadRoster loads roster.yaml. An empty path means no roster and returns
// nil, nil.
//
// Names are trimmed and NFC-normalised, since they key the field index:
// two spellings of the same name must not become two players.
func LoadRoster(path string) (*Roster, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var entries []RosterEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return NewRoster(entries)
}

// NewRoster validates entries and builds a roster from them.
func NewRoster(entries []RosterEntry) (*Roster, error) {
	r := &Roster{
		entries: make([]RosterEntry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	seen := make(map[geom.Point]string, len(entries))
	for i, e := range entries {
		e.Name = norm.NFC.String(strings.TrimSpace(e.Name))
		if e.Name == "" {
			return nil, fmt.Errorf("roster entry %d: empty name", i)
		}
		if _, dup := r.byName[e.Name]; dup {
			return nil, fmt.Errorf("roster entry %d: duplicate name %q", i, e.Name)
		}
		if other, dup := seen[e.Location()]; dup {
			return nil, fmt.Errorf("roster entry %d: %q shares %v with %q", i, e.Name, e.Location(), other)
		}
		if e.Speed < 0 || e.Vision < 0 {
			return nil, fmt.Errorf("roster entry %d: %q has negative speed or vision", i, e.Name)
		}
		seen[e.Location()] = e.Name
		r.byName[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Entries returns the roster in file order.
func (r *Roster) Entries() []RosterEntry {
	return r.entries
}

// Get returns the entry for name, or nil. name is normalised the same way
// roster names are.
func (r *Roster) Get(name string) *RosterEntry {
	i, ok := r.byName[norm.NFC.String(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return &r.entries[i]
}

// Count returns the number of players in the roster.
func (r *Roster) Count() int {
	return len(r.entries)
}
