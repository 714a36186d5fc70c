// Package outcome defines the structured results the engine hands to
// presentation layers. Every Outcome is exactly one of the variant types below.
package outcome

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/engine/world"
	"github.com/nathoo/realmcore/types"
)

// Kind tags an Outcome variant.
type Kind string

const (
	KindMove      Kind = "move"
	KindLook      Kind = "look"
	KindExamine   Kind = "examine"
	KindSuccess   Kind = "success"
	KindError     Kind = "error"
	KindInventory Kind = "inventory"
	KindStats     Kind = "stats"
	KindCombat    Kind = "combat"
	KindMap       Kind = "map"
	KindHelp      Kind = "help"
	KindClear     Kind = "clear"
	KindQuit      Kind = "quit"
)

// Outcome is the result of interpreting one command.
type Outcome interface {
	Kind() Kind
	sealed()
}

// Move reports that the player entered a new room.
type Move struct {
	Room world.Snapshot `json:"room"`
}

// Look describes the current room.
type Look struct {
	Room world.Snapshot `json:"room"`
}

// Examine describes one item.
type Examine struct {
	Item types.Item `json:"item"`
	Text string     `json:"text"`
}

// Success is a plain confirmation.
type Success struct {
	Text string `json:"text"`
}

// Error is a recoverable, user-facing failure.
type Error struct {
	Text string `json:"text"`
}

// Inventory lists carried items.
type Inventory struct {
	Items    []types.Item `json:"items"`
	Capacity int          `json:"capacity"`
}

// Stats is a full player snapshot.
type Stats struct {
	Player   player.Player `json:"player"`
	Currency string        `json:"currency"`
}

// Combat reports engagement or one exchange.
type Combat struct {
	Text      string      `json:"text"`
	Enemy     world.Enemy `json:"enemy"`
	Victory   bool        `json:"victory,omitempty"`
	Defeat    bool        `json:"defeat,omitempty"`
	LeveledUp bool        `json:"leveledUp,omitempty"`
}

// Map is the neighbourhood of the current room.
type Map struct {
	Room world.Snapshot `json:"room"`
}

// Help carries the command reference.
type Help struct {
	Text string `json:"text"`
}

// Clear asks the front end to wipe its transcript.
type Clear struct{}

// Quit asks the front end to end the session.
type Quit struct{}

func (Move) Kind() Kind      { return KindMove }
func (Look) Kind() Kind      { return KindLook }
func (Examine) Kind() Kind   { return KindExamine }
func (Success) Kind() Kind   { return KindSuccess }
func (Error) Kind() Kind     { return KindError }
func (Inventory) Kind() Kind { return KindInventory }
func (Stats) Kind() Kind     { return KindStats }
func (Combat) Kind() Kind    { return KindCombat }
func (Map) Kind() Kind       { return KindMap }
func (Help) Kind() Kind      { return KindHelp }
func (Clear) Kind() Kind     { return KindClear }
func (Quit) Kind() Kind      { return KindQuit }

func (Move) sealed()      {}
func (Look) sealed()      {}
func (Examine) sealed()   {}
func (Success) sealed()   {}
func (Error) sealed()     {}
func (Inventory) sealed() {}
func (Stats) sealed()     {}
func (Combat) sealed()    {}
func (Map) sealed()       {}
func (Help) sealed()      {}
func (Clear) sealed()     {}
func (Quit) sealed()      {}

// Errorf builds an Error outcome.
func Errorf(format string, args ...any) Error {
	return Error{Text: fmt.Sprintf(format, args...)}
}

// Successf builds a Success outcome.
func Successf(format string, args ...any) Success {
	return Success{Text: fmt.Sprintf(format, args...)}
}

// envelope is the wire form: {"kind": "...", "data": {...}}.
type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Marshal encodes an Outcome with its kind tag.
func Marshal(o Outcome) ([]byte, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: o.Kind(), Data: data})
}

// Unmarshal decodes the wire form produced by Marshal.
func Unmarshal(b []byte) (Outcome, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	var o Outcome
	switch env.Kind {
	case KindMove:
		o = &Move{}
	case KindLook:
		o = &Look{}
	case KindExamine:
		o = &Examine{}
	case KindSuccess:
		o = &Success{}
	case KindError:
		o = &Error{}
	case KindInventory:
		o = &Inventory{}
	case KindStats:
		o = &Stats{}
	case KindCombat:
		o = &Combat{}
	case KindMap:
		o = &Map{}
	case KindHelp:
		o = &Help{}
	case KindClear:
		return Clear{}, nil
	case KindQuit:
		return Quit{}, nil
	default:
		return nil, fmt.Errorf("unknown outcome kind %q", env.Kind)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, o); err != nil {
			return nil, fmt.Errorf("decoding %s outcome: %w", env.Kind, err)
		}
	}
	return deref(o), nil
}

func deref(o Outcome) Outcome {
	switch v := o.(type) {
	case *Move:
		return *v
	case *Look:
		return *v
	case *Examine:
		return *v
	case *Success:
		return *v
	case *Error:
		return *v
	case *Inventory:
		return *v
	case *Stats:
		return *v
	case *Combat:
		return *v
	case *Map:
		return *v
	case *Help:
		return *v
	}
	return o
}
