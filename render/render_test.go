package render

import (
	"strings"
	"testing"

	"github.com/nathoo/realmcore/engine/outcome"
	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/engine/world"
	"github.com/nathoo/realmcore/types"
)

func snapshot() world.Snapshot {
	return world.Snapshot{
		ID:          "hall",
		Name:        "Hall",
		Description: "A draughty hall.",
		Exits:       []types.Direction{types.North, types.East},
		Neighbors:   map[string]string{"north": "Garden", "east": "Cellar"},
		Items:       []types.Item{{Name: "Apple"}, {Name: "Rock"}},
		Enemies:     []world.Enemy{{Name: "Wolf", Level: 2}},
	}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestRoom(t *testing.T) {
	lines := Room(snapshot())
	want := []string{
		"Hall",
		"A draughty hall.",
		"Enemies here: Wolf (Level 2)",
		"Items here: Apple, Rock",
		"Exits: north, east",
	}
	got := texts(lines)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Room = %q, want %q", got, want)
	}
	if lines[0].Kind != Title || lines[2].Kind != Warning || lines[4].Kind != Exits {
		t.Errorf("unexpected kinds: %+v", lines)
	}
}

func TestRoom_Empty(t *testing.T) {
	lines := Room(world.Snapshot{Name: "Void", Description: "Nothing."})
	if len(lines) != 2 {
		t.Errorf("expected title and description only, got %q", texts(lines))
	}
}

func TestRender_Move(t *testing.T) {
	lines := Render(outcome.Move{Room: snapshot()})
	if lines[0].Text != "You travel to Hall." {
		t.Errorf("first line = %q", lines[0].Text)
	}
	if lines[2].Text != "Hall" {
		t.Errorf("room title missing after travel line: %q", texts(lines))
	}
}

func TestRender_Inventory(t *testing.T) {
	empty := Render(outcome.Inventory{Capacity: 20})
	if len(empty) != 1 || empty[0].Text != "Your inventory is empty." {
		t.Errorf("empty inventory = %q", texts(empty))
	}

	full := Render(outcome.Inventory{Items: []types.Item{{Name: "Apple"}, {Name: "Rock"}}, Capacity: 20})
	want := "Inventory (2/20):|  - Apple|  - Rock"
	if got := strings.Join(texts(full), "|"); got != want {
		t.Errorf("inventory = %q, want %q", got, want)
	}
}

func TestRender_Stats(t *testing.T) {
	p := player.New("Ada")
	p.Gold = 42
	lines := Render(outcome.Stats{Player: *p, Currency: "Credits"})
	text := Text(lines)
	for _, want := range []string{"Ada - Level 1", "HP: 100/100", "MP: 50/50", "XP: 0/100", "Credits: 42"} {
		if !strings.Contains(text, want) {
			t.Errorf("stats missing %q:\n%s", want, text)
		}
	}
}

func TestRender_CombatKinds(t *testing.T) {
	tests := []struct {
		name string
		out  outcome.Combat
		want Kind
	}{
		{"exchange", outcome.Combat{Text: "a\nb"}, Combat},
		{"victory", outcome.Combat{Text: "a\nb", Victory: true}, Victory},
		{"defeat", outcome.Combat{Text: "a\nb", Defeat: true}, Defeat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Render(tt.out)
			if len(lines) != 2 {
				t.Fatalf("expected text split into 2 lines, got %d", len(lines))
			}
			for _, l := range lines {
				if l.Kind != tt.want {
					t.Errorf("kind = %v, want %v", l.Kind, tt.want)
				}
			}
		})
	}
}

func TestRender_Simple(t *testing.T) {
	tests := []struct {
		name string
		out  outcome.Outcome
		kind Kind
		text string
	}{
		{"success", outcome.Success{Text: "ok"}, Success, "ok"},
		{"error", outcome.Error{Text: "no"}, Error, "no"},
		{"examine", outcome.Examine{Text: "An apple."}, Success, "An apple."},
		{"clear", outcome.Clear{}, Clear, ""},
		{"quit", outcome.Quit{}, Quit, "Goodbye."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Render(tt.out)
			if len(lines) != 1 || lines[0].Kind != tt.kind || lines[0].Text != tt.text {
				t.Errorf("Render = %+v, want one {%v %q}", lines, tt.kind, tt.text)
			}
		})
	}
}

func TestMap(t *testing.T) {
	s := world.Snapshot{
		Name:      "Here",
		Neighbors: map[string]string{"north": "N", "south": "S", "east": "E", "west": "W"},
	}
	got := texts(Map(s))
	if len(got) != 5 {
		t.Fatalf("expected 5 map lines, got %q", got)
	}
	if got[2] != "[W]-(Here)-[E]" {
		t.Errorf("middle row = %q", got[2])
	}
	// The connector sits under the centre of the current room.
	axis := strings.Index(got[2], "(") + len("(Here)")/2
	if strings.Index(got[1], "|") != axis || strings.Index(got[3], "|") != axis {
		t.Errorf("connectors not aligned:\n%s", strings.Join(got, "\n"))
	}
	if !strings.Contains(got[0], "[N]") || !strings.Contains(got[4], "[S]") {
		t.Errorf("north/south missing:\n%s", strings.Join(got, "\n"))
	}
}

func TestMap_Isolated(t *testing.T) {
	got := texts(Map(world.Snapshot{Name: "Cell"}))
	if len(got) != 1 || got[0] != "(Cell)" {
		t.Errorf("Map = %q", got)
	}
}

func TestKind_String(t *testing.T) {
	if Victory.String() != "victory" || Diagram.String() != "diagram" {
		t.Errorf("unexpected names %q %q", Victory, Diagram)
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("got %q", Kind(99))
	}
	b, _ := Line{Kind: Error, Text: "no"}.Kind.MarshalText()
	if string(b) != "error" {
		t.Errorf("MarshalText = %q", b)
	}
	var k Kind
	if err := k.UnmarshalText([]byte("victory")); err != nil || k != Victory {
		t.Errorf("UnmarshalText = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
