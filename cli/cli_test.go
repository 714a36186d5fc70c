package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nathoo/realmcore/engine"
	"github.com/nathoo/realmcore/engine/save"
	"github.com/nathoo/realmcore/play"
	"github.com/nathoo/realmcore/types"
)

// testDef returns a minimal world for CLI testing.
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
				Items:       []types.Item{{Name: "Rusty Key", Type: "key"}},
			},
			{
				ID:          "garden",
				Name:        "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
			},
		},
	}
}

func newTestCLI(t *testing.T, store save.Store, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	if store == nil {
		store = save.NewMemStore()
	}
	eng := engine.New(testDef(), engine.Options{PackName: "test", Seed: 1, Store: store})
	var out bytes.Buffer
	c := &CLI{
		Controller: play.New(eng, []string{"test"}, nil),
		In:         strings.NewReader(input),
		Out:        &out,
	}
	return c, &out
}

func run(t *testing.T, input string) string {
	t.Helper()
	c, out := newTestCLI(t, nil, input)
	c.Run(context.Background())
	return out.String()
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	output := run(t, "/quit\n")
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A grand hall.") {
		t.Error("expected starting room description in output")
	}
	if !strings.Contains(output, "Exits: north") {
		t.Error("expected exits in output")
	}
}

func TestCLI_Navigation(t *testing.T) {
	output := run(t, "go north\n/quit\n")
	if !strings.Contains(output, "You travel to Garden.") {
		t.Error("expected travel line after going north")
	}
	if !strings.Contains(output, "A peaceful garden.") {
		t.Error("expected garden description after going north")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	output := run(t, "/help\n/quit\n")
	for _, want := range []string{"/save", "/load", "/quit", "/pack"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	store := save.NewFileStore(t.TempDir())

	// Play a bit and save.
	c, out := newTestCLI(t, store, "go north\n/save test\n/quit\n")
	c.Run(context.Background())
	if !strings.Contains(out.String(), "[Game saved to test.]") {
		t.Errorf("expected save confirmation, got:\n%s", out.String())
	}

	// Start fresh and load.
	c2, out2 := newTestCLI(t, store, "/load test\n/quit\n")
	c2.Run(context.Background())
	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "[Game loaded from test.]") {
		t.Error("expected load confirmation")
	}
	// After loading, player should be in garden (from the saved state).
	if !strings.Contains(loadOutput, "A peaceful garden.") {
		t.Error("expected garden description after loading save")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	output := run(t, "/bogus\n/quit\n")
	if !strings.Contains(output, "[Unknown command: /bogus. Type /help for available commands.]") {
		t.Errorf("expected unknown command message, got:\n%s", output)
	}
}

func TestCLI_StateCommand(t *testing.T) {
	output := run(t, "/state\n/quit\n")
	if !strings.Contains(output, "[Room: hall]") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(output, "[Pack: test]") {
		t.Error("expected pack in state output")
	}
}

func TestCLI_EmptyInputAndComments(t *testing.T) {
	output := run(t, "\n\n# just a comment\n/quit\n")
	if strings.Contains(output, "Unknown command") {
		t.Error("blank and comment lines should be silently skipped")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, nil, "look\n/quit\n")
	c.EchoInput = true
	c.Run(context.Background())
	if !strings.Contains(out.String(), "> look\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_EndOfInput(t *testing.T) {
	output := run(t, "look\n")
	if strings.Count(output, "A grand hall.") != 2 {
		t.Errorf("expected intro and look, got:\n%s", output)
	}
}

func TestCLI_QuitWord(t *testing.T) {
	output := run(t, "quit\nlook\n")
	if !strings.Contains(output, "Goodbye.") {
		t.Error("expected goodbye")
	}
	if strings.Count(output, "A grand hall.") != 1 {
		t.Error("input after quit should not be processed")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	output := run(t, "/load nonexistent\n/quit\n")
	if !strings.Contains(output, "[No saved game named nonexistent.]") {
		t.Error("expected missing save message")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, repeat := range []string{"again", "g"} {
		output := run(t, "look\n"+repeat+"\n/quit\n")
		// Intro, first look, and the repeat.
		if count := strings.Count(output, "A grand hall."); count < 3 {
			t.Errorf("%s: expected 'A grand hall.' at least 3 times, got %d", repeat, count)
		}
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	output := run(t, "again\n/quit\n")
	if !strings.Contains(output, "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
