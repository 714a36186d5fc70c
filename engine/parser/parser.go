// Package parser converts command strings into Commands.
// Intentionally dumb: no NLP, just table lookups.
package parser

import (
	"strings"

	"github.com/nathoo/realmcore/types"
)

// Kind identifies a command. The set is closed; Unknown covers everything else.
type Kind int

const (
	Unknown Kind = iota
	Move
	Look
	Examine
	Inventory
	Take
	Drop
	Stats
	Use
	Rest
	Attack
	Flee
	Talk
	Map
	Help
	Save
	Clear
	Quit
)

var kindNames = [...]string{
	Unknown:   "unknown",
	Move:      "move",
	Look:      "look",
	Examine:   "examine",
	Inventory: "inventory",
	Take:      "take",
	Drop:      "drop",
	Stats:     "stats",
	Use:       "use",
	Rest:      "rest",
	Attack:    "attack",
	Flee:      "flee",
	Talk:      "talk",
	Map:       "map",
	Help:      "help",
	Save:      "save",
	Clear:     "clear",
	Quit:      "quit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is the parsed form of one line of player input.
type Command struct {
	Kind Kind
	Verb string          // the keyword as typed after normalization
	Dir  types.Direction // Move only; empty for a bare "go"
	Args string          // remaining words joined by single spaces
}

var directionWords = map[string]types.Direction{
	"n": types.North, "north": types.North,
	"s": types.South, "south": types.South,
	"e": types.East, "east": types.East,
	"w": types.West, "west": types.West,
}

// Canonical verb → variants collapsed onto it.
var synonyms = map[string][]string{
	"go":     {"move", "walk", "travel", "head", "run"},
	"take":   {"get", "pick", "grab", "acquire", "collect"},
	"look":   {"examine", "inspect", "view", "see", "observe", "check"},
	"use":    {"consume", "eat", "drink", "apply"},
	"attack": {"fight", "hit", "strike", "kill", "slay", "battle"},
	"talk":   {"speak", "chat", "say", "tell", "ask"},
}

// verbAliases is synonyms inverted, built once.
var verbAliases = func() map[string]string {
	m := map[string]string{}
	for base, variants := range synonyms {
		m[base] = base
		for _, v := range variants {
			m[v] = base
		}
	}
	return m
}()

// keywords maps canonical words to kinds. Synonyms never reach it.
var keywords = map[string]Kind{
	"look":      Look,
	"l":         Look,
	"ex":        Examine,
	"inventory": Inventory,
	"inv":       Inventory,
	"i":         Inventory,
	"take":      Take,
	"drop":      Drop,
	"stats":     Stats,
	"status":    Stats,
	"use":       Use,
	"rest":      Rest,
	"attack":    Attack,
	"flee":      Flee,
	"talk":      Talk,
	"map":       Map,
	"help":      Help,
	"save":      Save,
	"clear":     Clear,
	"quit":      Quit,
	"exit":      Quit,
}

// lookAround words after "look" still mean the whole room.
var lookAround = map[string]bool{"around": true, "about": true, "here": true, "room": true}

// Normalize lowercases input and collapses direction abbreviations and verb
// synonyms onto their canonical words. Unknown words pass through unchanged.
func Normalize(input string) string {
	words := strings.Fields(strings.ToLower(input))
	for i, w := range words {
		// Directions take precedence over synonyms.
		if dir, ok := directionWords[w]; ok {
			words[i] = string(dir)
			continue
		}
		if base, ok := verbAliases[w]; ok {
			words[i] = base
		}
	}
	return strings.Join(words, " ")
}

// Parse normalizes input and maps it onto a Command. Empty input yields
// ok == false.
func Parse(input string) (Command, bool) {
	words := strings.Fields(Normalize(input))
	if len(words) == 0 {
		return Command{}, false
	}

	verb := words[0]
	args := strings.Join(words[1:], " ")

	// "run" on its own is a flight; "run north" is still a move.
	if len(words) == 1 && strings.EqualFold(strings.TrimSpace(input), "run") {
		return Command{Kind: Flee, Verb: "run"}, true
	}

	// Bare direction: "north", "n".
	if dir, ok := directionWords[verb]; ok {
		return Command{Kind: Move, Verb: verb, Dir: dir, Args: args}, true
	}

	// "go north" collapses onto the direction command.
	if verb == "go" {
		cmd := Command{Kind: Move, Verb: verb, Args: args}
		if len(words) > 1 {
			if dir, ok := directionWords[words[1]]; ok {
				cmd.Dir = dir
				cmd.Args = strings.Join(words[2:], " ")
			}
		}
		return cmd, true
	}

	kind, ok := keywords[verb]
	if !ok {
		return Command{Kind: Unknown, Verb: verb, Args: args}, true
	}

	if kind == Look && lookAround[args] {
		return Command{Kind: Look, Verb: verb}, true
	}
	// "examine x" normalizes to "look x"; a look with a subject is an examine.
	if kind == Look && args != "" {
		kind = Examine
	}

	return Command{Kind: kind, Verb: verb, Args: args}, true
}
