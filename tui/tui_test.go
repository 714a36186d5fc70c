package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/realmcore/engine"
	"github.com/nathoo/realmcore/engine/save"
	"github.com/nathoo/realmcore/play"
	"github.com/nathoo/realmcore/render"
	"github.com/nathoo/realmcore/types"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
		{"  - Ancient Sword", 10, "  -\nAncient\nSword"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestRenderLine(t *testing.T) {
	if got := renderLine("Game saved.", render.System); !strings.Contains(got, "[Game saved.]") {
		t.Errorf("system line should be bracketed, got %q", got)
	}
	if got := renderLine("Items here: Apple, Rock", render.Plain); !strings.Contains(got, "Apple, Rock") {
		t.Errorf("item names missing, got %q", got)
	}
	if got := renderLine("A hall.", render.Kind(999)); !strings.Contains(got, "A hall.") {
		t.Errorf("unknown kind should fall back to plain, got %q", got)
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")
	h.Push("take key")

	for _, want := range []string{"take key", "go north", "look", "look"} {
		prev, ok := h.Prev()
		if !ok || prev != want {
			t.Errorf("expected %q, got %q (ok=%v)", want, prev, ok)
		}
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	for _, want := range []string{"c", "b", "b"} {
		if prev, _ := h.Prev(); prev != want {
			t.Errorf("expected %q, got %q", want, prev)
		}
	}
}

func TestHistory_SkipsDuplicatesAndRepeats(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look")
	h.Push("again")
	h.Push("G")

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %v", h.entries)
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.ResetCursor()

	// After reset, Prev starts from the end again.
	prev, ok := h.Prev()
	if !ok || prev != "go north" {
		t.Errorf("expected 'go north' after reset, got %q", prev)
	}
}

func testDef() *types.WorldDef {
	return &types.WorldDef{
		Name:           "Test World",
		CurrencyName:   "Coins",
		StartRoom:      "hall",
		WelcomeMessage: "Welcome to the test.",
		Rooms: []types.RoomDef{
			{
				ID:          "hall",
				Name:        "Great Hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"north": "garden"},
			},
			{
				ID:          "garden",
				Name:        "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
				Enemies:     []types.EnemyDef{{Name: "Wolf", Level: 1, HP: 500, Damage: 1}},
			},
		},
	}
}

// newTestModel returns a sized model with the intro already shown.
func newTestModel(t *testing.T) Model {
	t.Helper()
	eng := engine.New(testDef(), engine.Options{PackName: "test", Seed: 5, Store: save.NewMemStore()})
	m := New(play.New(eng, []string{"test"}, nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = updated.(Model)
	updated, _ = m.Update(m.initialOutput()())
	return updated.(Model)
}

func submit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func transcript(m Model) string {
	var b strings.Builder
	for _, rl := range m.rawLines {
		b.WriteString(rl.text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestModel_Intro(t *testing.T) {
	m := newTestModel(t)
	text := transcript(m)
	if !strings.Contains(text, "Welcome to the test.") || !strings.Contains(text, "A grand hall.") {
		t.Errorf("intro missing:\n%s", text)
	}
}

func TestModel_CommandEchoAndHistory(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "north")

	text := transcript(m)
	if !strings.Contains(text, "> north") {
		t.Error("expected echoed input")
	}
	if !strings.Contains(text, "You travel to Garden.") {
		t.Errorf("expected travel line:\n%s", text)
	}
	if prev, ok := m.history.Prev(); !ok || prev != "north" {
		t.Errorf("expected north in history, got %q", prev)
	}
}

func TestModel_Clear(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "look")
	m, _ = submit(t, m, "clear")
	if len(m.rawLines) != 0 {
		t.Errorf("expected empty transcript after clear, got:\n%s", transcript(m))
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := submit(t, m, "/quit")
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModel_StatusBar(t *testing.T) {
	m := newTestModel(t)
	bar := m.renderStatusBar()
	for _, want := range []string{"Great Hall", "HP 100/100", "MP 50/50", "Lv 1", "0 Coins", "Day 1 08:00"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}

	m, _ = submit(t, m, "north")
	m, _ = submit(t, m, "attack")
	if !m.ctl.Engine.InCombat() {
		t.Fatal("expected combat to start")
	}
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Fighting Wolf") {
		t.Errorf("status bar should show the fight: %q", bar)
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	eng := engine.New(testDef(), engine.Options{Seed: 5})
	m := New(play.New(eng, nil, nil))
	if m.View() != "Loading..." {
		t.Errorf("got %q", m.View())
	}
}
