// Package engine provides the Step() interpreter that turns one line of player
// input into a state transition over the world, the player and the combat
// session, and reports it as an outcome.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nathoo/realmcore/engine/combat"
	"github.com/nathoo/realmcore/engine/outcome"
	"github.com/nathoo/realmcore/engine/parser"
	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/engine/rng"
	"github.com/nathoo/realmcore/engine/save"
	"github.com/nathoo/realmcore/engine/world"
	"github.com/nathoo/realmcore/types"
)

// Options configures a new Engine. The zero value is usable.
type Options struct {
	PackName   string
	PlayerName string
	Seed       int64
	Store      save.Store // nil disables the save command
	SaveName   string
	Logger     *slog.Logger
	Packs      PackResolver // used by Load to switch to the saved record's pack
}

// PackResolver returns the world definition for a pack name.
type PackResolver func(name string) (*types.WorldDef, error)

// Engine is one game session: a world, a player, the combat session and the
// clock. It is not safe for concurrent use; callers serialize Step.
type Engine struct {
	World    *world.World
	Player   *player.Player
	Combat   *combat.Resolver
	Clock    types.Clock
	RNG      *rng.RNG
	Store    save.Store
	Logger   *slog.Logger
	PackName string
	SaveName string
	Packs    PackResolver

	room string
}

// New starts a fresh game in def's start room.
func New(def *types.WorldDef, opts Options) *Engine {
	if opts.PlayerName == "" {
		opts.PlayerName = "Adventurer"
	}
	if opts.SaveName == "" {
		opts.SaveName = save.DefaultName
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := rng.New(opts.Seed)
	e := &Engine{
		World:    world.New(def),
		Player:   player.New(opts.PlayerName),
		Combat:   combat.NewResolver(r),
		Clock:    types.Clock{Day: 1, Hour: 8},
		RNG:      r,
		Store:    opts.Store,
		Logger:   opts.Logger,
		PackName: opts.PackName,
		SaveName: opts.SaveName,
		Packs:    opts.Packs,
	}
	e.room = e.World.StartRoom()
	return e
}

// RoomID returns the id of the player's current room.
func (e *Engine) RoomID() string {
	return e.room
}

// Room returns the player's current room.
func (e *Engine) Room() *world.Room {
	r, _ := e.World.Room(e.room)
	return r
}

// InCombat reports whether a fight is in progress.
func (e *Engine) InCombat() bool {
	return e.Combat.Session.Active()
}

// Welcome returns the world's greeting.
func (e *Engine) Welcome() string {
	return e.World.Def.WelcomeMessage
}

// Look describes the current room without consuming a command.
func (e *Engine) Look() outcome.Look {
	return outcome.Look{Room: e.World.Snapshot(e.Room())}
}

// SwitchWorld replaces the world with a freshly instantiated def. The player
// keeps their character; combat is dropped and they start in def's start room.
func (e *Engine) SwitchWorld(packName string, def *types.WorldDef) {
	e.World = world.New(def)
	e.PackName = packName
	e.Combat.Reset()
	e.room = e.World.StartRoom()
	e.Logger.Info("world switched", "pack", packName, "room", e.room)
}

// Step interprets one line of input. Empty input yields ok == false.
func (e *Engine) Step(input string) (outcome.Outcome, bool) {
	return e.StepContext(context.Background(), input)
}

// StepContext is Step with a context for the commands that reach the store.
func (e *Engine) StepContext(ctx context.Context, input string) (outcome.Outcome, bool) {
	// 1. Parse input.
	cmd, ok := parser.Parse(input)
	if !ok {
		return nil, false
	}

	// 2. Log the command.
	e.Logger.Debug("step", "kind", cmd.Kind.String(), "args", cmd.Args, "room", e.room)

	// 3. Combat mode: a bare "go" is a flight, and leaving is blocked.
	if e.InCombat() && cmd.Kind == parser.Move {
		if cmd.Dir == "" && cmd.Args == "" {
			return e.flee(), true
		}
		name := e.Combat.Session.Enemy.Name
		return outcome.Errorf("You can't leave while fighting the %s! Attack or flee.", name), true
	}

	// 4. Dispatch.
	switch cmd.Kind {
	case parser.Move:
		return e.move(cmd), true
	case parser.Look:
		return e.Look(), true
	case parser.Examine:
		return e.examine(cmd.Args), true
	case parser.Inventory:
		return outcome.Inventory{Items: e.Player.Snapshot().Inventory, Capacity: player.MaxInventory}, true
	case parser.Take:
		return e.take(cmd.Args), true
	case parser.Drop:
		return e.drop(cmd.Args), true
	case parser.Stats:
		return outcome.Stats{Player: e.Player.Snapshot(), Currency: e.World.Currency()}, true
	case parser.Use:
		return e.use(cmd.Args), true
	case parser.Rest:
		return e.rest(), true
	case parser.Attack:
		return e.attack(), true
	case parser.Flee:
		return e.flee(), true
	case parser.Talk:
		return outcome.Error{Text: "There is no one here to talk to."}, true
	case parser.Map:
		return outcome.Map{Room: e.World.Snapshot(e.Room())}, true
	case parser.Help:
		return outcome.Help{Text: HelpText}, true
	case parser.Save:
		return e.saveCommand(ctx), true
	case parser.Clear:
		return outcome.Clear{}, true
	case parser.Quit:
		return outcome.Quit{}, true
	case parser.Unknown:
		return outcome.Errorf("Unknown command: %s. Type 'help' for available commands.", cmd.Verb), true
	}
	return outcome.Errorf("Unknown command: %s. Type 'help' for available commands.", cmd.Verb), true
}

func (e *Engine) move(cmd parser.Command) outcome.Outcome {
	if cmd.Dir == "" {
		return outcome.Error{Text: "Go where?"}
	}
	target, ok := e.Room().Exits[cmd.Dir]
	if !ok {
		return outcome.Error{Text: "You cannot go that way."}
	}
	next, ok := e.World.Room(target)
	if !ok {
		e.Logger.Warn("exit leads to unknown room", "from", e.room, "dir", cmd.Dir, "to", target)
		return outcome.Error{Text: "You cannot go that way."}
	}
	e.room = next.ID
	return outcome.Move{Room: e.World.Snapshot(next)}
}

func (e *Engine) examine(args string) outcome.Outcome {
	if args == "" {
		return outcome.Error{Text: "Examine what?"}
	}
	room := e.Room()
	i := room.FindItem(args)
	if i < 0 {
		return outcome.Errorf("You don't see any %s here.", args)
	}
	it := room.Items[i]
	return outcome.Examine{Item: it, Text: DescribeItem(it)}
}

// DescribeItem renders "<Name>: A <type> that can <effect>.".
func DescribeItem(it types.Item) string {
	if it.Effect == "" {
		return fmt.Sprintf("%s: A %s.", it.Name, it.Type)
	}
	return fmt.Sprintf("%s: A %s that can %s.", it.Name, it.Type, it.Effect)
}

func (e *Engine) take(args string) outcome.Outcome {
	if args == "" {
		return outcome.Error{Text: "Take what?"}
	}
	room := e.Room()
	i := room.FindItem(args)
	if i < 0 {
		return outcome.Errorf("You don't see any %s here.", args)
	}
	it := room.TakeItem(i)
	if !e.Player.AddItem(it) {
		room.RestoreItem(i, it)
		return outcome.Error{Text: "Your inventory is full."}
	}
	return outcome.Successf("You take the %s.", it.Name)
}

func (e *Engine) drop(args string) outcome.Outcome {
	if args == "" {
		return outcome.Error{Text: "Drop what?"}
	}
	it, ok := e.Player.RemoveItem(args)
	if !ok {
		return outcome.Errorf("You don't have any %s.", args)
	}
	e.Room().PutItem(it)
	return outcome.Successf("You drop the %s.", it.Name)
}

func (e *Engine) use(args string) outcome.Outcome {
	if args == "" {
		return outcome.Error{Text: "Use what?"}
	}
	it, ok := e.Player.FindItem(args)
	if !ok {
		return outcome.Errorf("You don't have any %s.", args)
	}
	if it.Effect != "heal" {
		return outcome.Errorf("You're not sure how to use the %s.", it.Name)
	}
	healed := e.Player.Heal(it.Value)
	e.Player.RemoveItem(it.Name)
	return outcome.Successf("You use the %s and restore %d HP!", it.Name, healed)
}

func (e *Engine) rest() outcome.Outcome {
	e.Player.Heal(20)
	e.Player.RestoreMP(10)
	e.advanceClock(1)
	return outcome.Success{Text: "You rest for a moment, recovering some health and mana."}
}

func (e *Engine) advanceClock(hours int) {
	e.Clock.Hour += hours
	for e.Clock.Hour >= 24 {
		e.Clock.Hour -= 24
		e.Clock.Day++
	}
}

func (e *Engine) saveCommand(ctx context.Context) outcome.Outcome {
	if e.Store == nil {
		return outcome.Error{Text: "Saving is not available."}
	}
	if err := e.Save(ctx); err != nil {
		e.Logger.Error("save failed", "err", err)
		return outcome.Errorf("Save failed: %v", err)
	}
	return outcome.Success{Text: "Game saved successfully!"}
}

// Record captures the session as a save record.
func (e *Engine) Record() *save.Record {
	return &save.Record{
		Version:     save.Version,
		Pack:        e.PackName,
		Player:      e.Player.Snapshot(),
		Room:        e.room,
		Clock:       e.Clock,
		RNGSeed:     e.RNG.Seed(),
		RNGPosition: e.RNG.Position(),
		SavedAt:     time.Now().UTC(),
	}
}

// Save writes the session to the store under SaveName, overwriting.
func (e *Engine) Save(ctx context.Context) error {
	if e.Store == nil {
		return errors.New("no save store configured")
	}
	data, err := save.Encode(e.Record())
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := e.Store.Put(ctx, e.SaveName, data); err != nil {
		return fmt.Errorf("writing save %q: %w", e.SaveName, err)
	}
	e.Logger.Info("game saved", "name", e.SaveName, "room", e.room)
	return nil
}

// Load reads SaveName from the store and applies it. A missing record
// returns false with no error. Corrupt data wraps save.ErrCorrupt and leaves
// the session untouched.
func (e *Engine) Load(ctx context.Context) (bool, error) {
	if e.Store == nil {
		return false, nil
	}
	data, err := e.Store.Get(ctx, e.SaveName)
	if errors.Is(err, save.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading save %q: %w", e.SaveName, err)
	}
	rec, err := save.Decode(data)
	if err != nil {
		return false, err
	}
	e.Apply(rec)
	return true, nil
}

// Apply replaces the session with rec. When rec names another pack and a
// resolver is set, that pack is loaded first. A room id the world does not
// know falls back to the start room.
func (e *Engine) Apply(rec *save.Record) {
	if rec.Pack != "" && rec.Pack != e.PackName && e.Packs != nil {
		def, err := e.Packs(rec.Pack)
		if err != nil {
			e.Logger.Warn("saved pack unavailable, keeping current world", "pack", rec.Pack, "err", err)
		} else {
			e.SwitchWorld(rec.Pack, def)
		}
	}
	p := rec.Player
	e.Player = &p
	e.Clock = rec.Clock
	e.Combat.Reset()
	if rec.RNGSeed != 0 {
		e.RNG = rng.Restore(rec.RNGSeed, rec.RNGPosition)
		e.Combat.RNG = e.RNG
	}
	if _, ok := e.World.Room(rec.Room); ok {
		e.room = rec.Room
	} else {
		e.Logger.Warn("saved room not in world, using start room", "room", rec.Room, "pack", e.PackName)
		e.room = e.World.StartRoom()
	}
}

// HelpText is the command reference shown by "help".
var HelpText = strings.TrimSpace(`
Available Commands:
Movement:  north (n), south (s), east (e), west (w)
           You can also say "go north", "walk south", etc.
Observe:   look (l), examine <item>, map
Items:     inventory (i), take/get <item>, drop <item>, use <item>
Character: stats, rest
Combat:    attack/fight - Engage or continue fighting an enemy
           flee/run - Escape from combat
System:    help, save, clear, quit

Tips:
- Some areas have enemies, be prepared to fight!
- Use items to heal during or after combat
- Rest to recover health and mana
- Natural language supported: try "grab apple" or "walk north"`)
