package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRosterSample(t *testing.T) {
	r, err := LoadRoster(filepath.Join("..", "..", "data", "yaml", "roster.yaml"))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if r.Count() != 5 {
		t.Fatalf("count = %d, want 5", r.Count())
	}
	if e := r.Get("minnie"); e == nil || e.X != 50 || e.Y != 100 {
		t.Fatalf("minnie = %+v", e)
	}
	if r.Entries()[0].Name != "jon" {
		t.Fatalf("file order lost: %v", r.Entries()[0].Name)
	}
}

func TestLoadRosterEmptyPath(t *testing.T) {
	r, err := LoadRoster("")
	if r != nil || err != nil {
		t.Fatalf("LoadRoster(\"\") = %v, %v", r, err)
	}
}

func TestLoadRosterErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadRoster(filepath.Join(dir, "none.yaml")); err == nil || !strings.Contains(err.Error(), "read roster") {
		t.Errorf("missing file: %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRoster(bad); err == nil || !strings.Contains(err.Error(), "parse roster") {
		t.Errorf("bad yaml: %v", err)
	}
}

func TestNewRosterNormalisesNames(t *testing.T) {
	// "zoe" with a combining diaeresis, padded with spaces.
	r, err := NewRoster([]RosterEntry{{Name: "  zoe\u0308 ", X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	if got := r.Entries()[0].Name; got != "zo\u00eb" {
		t.Fatalf("name = %q, want NFC form", got)
	}
	if r.Get("zo\u00eb") == nil || r.Get("zoe\u0308") == nil {
		t.Fatalf("lookup should accept both spellings")
	}
}

func TestNewRosterRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []RosterEntry
		want    string
	}{
		{"empty name", []RosterEntry{{Name: "  "}}, "empty name"},
		{"duplicate name", []RosterEntry{{Name: "zo\u00eb", X: 1}, {Name: "zoe\u0308", X: 2}}, "duplicate name"},
		{"shared point", []RosterEntry{{Name: "a", X: 3, Y: 4}, {Name: "b", X: 3, Y: 4}}, "shares"},
		{"negative speed", []RosterEntry{{Name: "a", Speed: -1}}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.entries)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %v, want %q", err, tt.want)
			}
		})
	}
}
