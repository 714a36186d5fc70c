// Package render turns engine outcomes into classified text lines that each
// front end styles in its own way.
package render

import (
	"fmt"
	"strings"

	"github.com/nathoo/realmcore/engine/outcome"
	"github.com/nathoo/realmcore/engine/world"
	"github.com/nathoo/realmcore/types"
)

// Kind classifies a line for styling.
type Kind int

const (
	Plain Kind = iota
	Title
	Description
	Warning
	Exits
	Success
	Error
	Combat
	Victory
	Defeat
	Help
	System
	Input
	Diagram // preformatted; never reflowed
	Clear   // front ends wipe their transcript; Text is empty
	Quit    // front ends end the session after showing Text
)

var kindNames = [...]string{
	Plain:       "plain",
	Title:       "title",
	Description: "description",
	Warning:     "warning",
	Exits:       "exits",
	Success:     "success",
	Error:       "error",
	Combat:      "combat",
	Victory:     "victory",
	Defeat:      "defeat",
	Help:        "help",
	System:      "system",
	Input:       "input",
	Diagram:     "diagram",
	Clear:       "clear",
	Quit:        "quit",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name for network clients.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", b)
}

// Line is one classified line of output.
type Line struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Render converts an outcome to lines. The switch is exhaustive over the
// outcome variants.
func Render(o outcome.Outcome) []Line {
	switch o := o.(type) {
	case outcome.Move:
		lines := []Line{{Success, fmt.Sprintf("You travel to %s.", o.Room.Name)}, {Plain, ""}}
		return append(lines, Room(o.Room)...)
	case outcome.Look:
		return Room(o.Room)
	case outcome.Map:
		return Map(o.Room)
	case outcome.Examine:
		return []Line{{Success, o.Text}}
	case outcome.Success:
		return []Line{{Success, o.Text}}
	case outcome.Error:
		return []Line{{Error, o.Text}}
	case outcome.Inventory:
		return Inventory(o.Items, o.Capacity)
	case outcome.Stats:
		return Stats(o)
	case outcome.Combat:
		kind := Combat
		switch {
		case o.Victory:
			kind = Victory
		case o.Defeat:
			kind = Defeat
		}
		return split(kind, o.Text)
	case outcome.Help:
		return split(Help, o.Text)
	case outcome.Clear:
		return []Line{{Clear, ""}}
	case outcome.Quit:
		return []Line{{Quit, "Goodbye."}}
	}
	return nil
}

// Room describes a room snapshot the way "look" shows it.
func Room(r world.Snapshot) []Line {
	lines := []Line{{Title, r.Name}, {Description, r.Description}}
	if len(r.Enemies) > 0 {
		names := make([]string, 0, len(r.Enemies))
		for _, e := range r.Enemies {
			names = append(names, fmt.Sprintf("%s (Level %d)", e.Name, e.Level))
		}
		lines = append(lines, Line{Warning, "Enemies here: " + strings.Join(names, ", ")})
	}
	if len(r.Items) > 0 {
		lines = append(lines, Line{Plain, "Items here: " + strings.Join(world.ItemNames(r.Items), ", ")})
	}
	if len(r.Exits) > 0 {
		dirs := make([]string, 0, len(r.Exits))
		for _, d := range r.Exits {
			dirs = append(dirs, string(d))
		}
		lines = append(lines, Line{Exits, "Exits: " + strings.Join(dirs, ", ")})
	}
	return lines
}

// Inventory lists carried items.
func Inventory(items []types.Item, capacity int) []Line {
	if len(items) == 0 {
		return []Line{{Plain, "Your inventory is empty."}}
	}
	lines := []Line{{Title, fmt.Sprintf("Inventory (%d/%d):", len(items), capacity)}}
	for _, it := range items {
		lines = append(lines, Line{Plain, "  - " + it.Name})
	}
	return lines
}

// Stats renders the character sheet.
func Stats(s outcome.Stats) []Line {
	p := s.Player
	return []Line{
		{Title, fmt.Sprintf("%s - Level %d", p.Name, p.Level)},
		{Plain, fmt.Sprintf("HP: %d/%d  MP: %d/%d", p.HP, p.MaxHP, p.MP, p.MaxMP)},
		{Plain, fmt.Sprintf("XP: %d/%d", p.XP, p.XPToLevel)},
		{Plain, fmt.Sprintf("STR: %d  DEX: %d  INT: %d  WIS: %d", p.Stats.Str, p.Stats.Dex, p.Stats.Int, p.Stats.Wis)},
		{Plain, fmt.Sprintf("%s: %d", s.Currency, p.Gold)},
	}
}

// Map draws the current room and its direct neighbours.
//
//	      [Market]
//	         |
//	[West]-(Here)-[East]
//	         |
//	      [Tavern]
func Map(r world.Snapshot) []Line {
	box := func(name string) string { return "[" + name + "]" }
	here := "(" + r.Name + ")"
	west, east := "", ""
	if n, ok := r.Neighbors[string(types.West)]; ok {
		west = box(n) + "-"
	}
	if n, ok := r.Neighbors[string(types.East)]; ok {
		east = "-" + box(n)
	}
	middle := west + here + east
	// Column under the centre of the current room.
	axis := len(west) + len(here)/2

	center := func(s string) string {
		pad := axis - len(s)/2
		if pad < 0 {
			pad = 0
		}
		return strings.Repeat(" ", pad) + s
	}

	var lines []Line
	if n, ok := r.Neighbors[string(types.North)]; ok {
		lines = append(lines, Line{Diagram, center(box(n))}, Line{Diagram, center("|")})
	}
	lines = append(lines, Line{Diagram, middle})
	if n, ok := r.Neighbors[string(types.South)]; ok {
		lines = append(lines, Line{Diagram, center("|")}, Line{Diagram, center(box(n))})
	}
	return lines
}

// Text joins lines into plain text, one per line.
func Text(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

func split(kind Kind, text string) []Line {
	parts := strings.Split(text, "\n")
	lines := make([]Line, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, Line{kind, p})
	}
	return lines
}
