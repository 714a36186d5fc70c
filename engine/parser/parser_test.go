package parser

import (
	"testing"

	"github.com/nathoo/realmcore/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Verb synonyms
		{"grab apple", "take apple"},
		{"pick apple", "take apple"},
		{"walk north", "go north"},
		{"travel w", "go west"},
		{"inspect sword", "look sword"},
		{"eat herb", "use herb"},
		{"drink potion", "use potion"},
		{"slay wolf", "attack wolf"},
		{"chat", "talk"},

		// Directions win over synonyms
		{"n", "north"},
		{"S", "south"},
		{"head e", "go east"},

		// Passthrough, lowercasing and whitespace collapse
		{"  Drop   The   Apple ", "drop the apple"},
		{"flee", "flee"},
		{"xyzzy", "xyzzy"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		// Movement
		{"bare direction", "north", Command{Kind: Move, Verb: "north", Dir: types.North}},
		{"abbreviated direction", "w", Command{Kind: Move, Verb: "west", Dir: types.West}},
		{"go direction", "go south", Command{Kind: Move, Verb: "go", Dir: types.South}},
		{"walk direction", "walk north", Command{Kind: Move, Verb: "go", Dir: types.North}},
		{"go abbreviation", "go e", Command{Kind: Move, Verb: "go", Dir: types.East}},
		{"bare go", "go", Command{Kind: Move, Verb: "go"}},
		{"run alone flees", "run", Command{Kind: Flee, Verb: "run"}},
		{"run direction", "run north", Command{Kind: Move, Verb: "go", Dir: types.North}},
		{"go nowhere", "go up", Command{Kind: Move, Verb: "go", Args: "up"}},

		// Observation
		{"look", "look", Command{Kind: Look, Verb: "look"}},
		{"l", "l", Command{Kind: Look, Verb: "l"}},
		{"look around", "look around", Command{Kind: Look, Verb: "look"}},
		{"look here", "l here", Command{Kind: Look, Verb: "l"}},
		{"examine becomes look then examine", "examine apple", Command{Kind: Examine, Verb: "look", Args: "apple"}},
		{"ex", "ex rusty sword", Command{Kind: Examine, Verb: "ex", Args: "rusty sword"}},
		{"ex without args", "ex", Command{Kind: Examine, Verb: "ex"}},

		// Items
		{"inventory", "i", Command{Kind: Inventory, Verb: "i"}},
		{"inv", "inv", Command{Kind: Inventory, Verb: "inv"}},
		{"grab", "grab apple", Command{Kind: Take, Verb: "take", Args: "apple"}},
		{"get", "GET Healing Herb", Command{Kind: Take, Verb: "take", Args: "healing herb"}},
		{"take nothing", "take", Command{Kind: Take, Verb: "take"}},
		{"drop", "drop apple", Command{Kind: Drop, Verb: "drop", Args: "apple"}},
		{"eat", "eat apple", Command{Kind: Use, Verb: "use", Args: "apple"}},

		// Character
		{"stats", "stats", Command{Kind: Stats, Verb: "stats"}},
		{"status", "status", Command{Kind: Stats, Verb: "status"}},
		{"rest", "rest", Command{Kind: Rest, Verb: "rest"}},

		// Combat
		{"attack", "attack", Command{Kind: Attack, Verb: "attack"}},
		{"fight", "fight", Command{Kind: Attack, Verb: "attack"}},
		{"kill wolf", "kill wolf", Command{Kind: Attack, Verb: "attack", Args: "wolf"}},
		{"flee", "flee", Command{Kind: Flee, Verb: "flee"}},

		// System
		{"help", "help", Command{Kind: Help, Verb: "help"}},
		{"save", "save", Command{Kind: Save, Verb: "save"}},
		{"clear", "clear", Command{Kind: Clear, Verb: "clear"}},
		{"quit", "quit", Command{Kind: Quit, Verb: "quit"}},
		{"map", "map", Command{Kind: Map, Verb: "map"}},
		{"talk", "speak", Command{Kind: Talk, Verb: "talk"}},

		// Unknown
		{"unknown", "dance wildly", Command{Kind: Unknown, Verb: "dance", Args: "wildly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) returned ok=false", tt.input)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) should report no command", in)
		}
	}
}

func TestKind_String(t *testing.T) {
	if Move.String() != "move" || Quit.String() != "quit" || Unknown.String() != "unknown" {
		t.Error("unexpected kind names")
	}
	if Kind(999).String() != "unknown" {
		t.Error("out of range kinds should print as unknown")
	}
}
