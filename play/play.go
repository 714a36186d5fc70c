// Package play dispatches a line of player input: slash meta-commands,
// "again" repeats and game commands. It returns rendered lines so every
// front end shares one path.
package play

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nathoo/realmcore/engine"
	"github.com/nathoo/realmcore/engine/outcome"
	"github.com/nathoo/realmcore/engine/save"
	"github.com/nathoo/realmcore/render"
)

// Controller wraps an engine session with the meta-command layer.
type Controller struct {
	Engine *engine.Engine
	Logger *slog.Logger
	// Packs lists the pack names offered by /pack. Switching uses
	// Engine.Packs to resolve them.
	Packs []string
	// FixedSlot pins /save and /load to Engine.SaveName.
	FixedSlot bool
	lastCmd   string // for "again"/"g" repeat
}

// New creates a controller around eng.
func New(eng *engine.Engine, packs []string, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{Engine: eng, Logger: log, Packs: packs}
}

// Intro is the welcome message followed by the starting room.
func (c *Controller) Intro() []render.Line {
	var lines []render.Line
	if w := c.Engine.Welcome(); w != "" {
		lines = append(lines, render.Line{Kind: render.Title, Text: w}, render.Line{})
	}
	return append(lines, render.Room(c.Engine.Look().Room)...)
}

// Result is the outcome of one line of input.
type Result struct {
	// Outcome is the engine's structured result; nil for meta-commands and
	// repeats with nothing to repeat.
	Outcome outcome.Outcome
	Lines   []render.Line
	Quit    bool
}

// Handle processes one line of input. quit reports that the session should end.
func (c *Controller) Handle(ctx context.Context, input string) (lines []render.Line, quit bool) {
	r := c.Do(ctx, input)
	return r.Lines, r.Quit
}

// Do processes one line of input and reports the engine outcome alongside
// the rendered lines.
func (c *Controller) Do(ctx context.Context, input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}
	}

	// Meta-commands start with '/'.
	if strings.HasPrefix(input, "/") {
		lines, quit := c.handleMeta(ctx, input)
		return Result{Lines: lines, Quit: quit}
	}

	// "again" / "g" repeats the last game command.
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if c.lastCmd == "" {
			return Result{Lines: []render.Line{system("Nothing to repeat.")}}
		}
		input = c.lastCmd
	} else {
		c.lastCmd = input
	}

	out, ok := c.Engine.StepContext(ctx, input)
	if !ok {
		return Result{}
	}
	_, quit := out.(outcome.Quit)
	return Result{Outcome: out, Lines: render.Render(out), Quit: quit}
}

// handleMeta dispatches meta-commands.
func (c *Controller) handleMeta(ctx context.Context, input string) ([]render.Line, bool) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []render.Line{{Kind: render.Quit, Text: "Goodbye."}}, true
	case "/save":
		return c.cmdSave(ctx, arg), false
	case "/load":
		return c.cmdLoad(ctx, arg), false
	case "/pack":
		return c.cmdPack(arg), false
	case "/state":
		return c.cmdState(), false
	case "/help":
		return c.cmdHelp(), false
	}
	return []render.Line{system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))}, false
}

// useSlot switches the active save slot when name is given.
func (c *Controller) useSlot(name string) []render.Line {
	if name == "" {
		return nil
	}
	if err := save.CheckName(name); err != nil {
		return []render.Line{system(err.Error())}
	}
	if c.FixedSlot && name != c.Engine.SaveName {
		return []render.Line{system(fmt.Sprintf("This session can only use the save slot %s.", c.Engine.SaveName))}
	}
	c.Engine.SaveName = name
	return nil
}

func (c *Controller) cmdSave(ctx context.Context, name string) []render.Line {
	if errLines := c.useSlot(name); errLines != nil {
		return errLines
	}
	if err := c.Engine.Save(ctx); err != nil {
		c.Logger.Error("save failed", "name", c.Engine.SaveName, "err", err)
		return []render.Line{system(fmt.Sprintf("Save failed: %v", err))}
	}
	return []render.Line{system(fmt.Sprintf("Game saved to %s.", c.Engine.SaveName))}
}

func (c *Controller) cmdLoad(ctx context.Context, name string) []render.Line {
	if errLines := c.useSlot(name); errLines != nil {
		return errLines
	}
	found, err := c.Engine.Load(ctx)
	if err != nil {
		c.Logger.Error("load failed", "name", c.Engine.SaveName, "err", err)
		return []render.Line{system(fmt.Sprintf("Load failed: %v", err))}
	}
	if !found {
		return []render.Line{system(fmt.Sprintf("No saved game named %s.", c.Engine.SaveName))}
	}
	lines := []render.Line{system(fmt.Sprintf("Game loaded from %s.", c.Engine.SaveName))}
	return append(lines, render.Room(c.Engine.Look().Room)...)
}

func (c *Controller) cmdPack(name string) []render.Line {
	if name == "" {
		return []render.Line{
			system(fmt.Sprintf("Current pack: %s", c.Engine.PackName)),
			system(fmt.Sprintf("Available packs: %s", strings.Join(c.Packs, ", "))),
		}
	}
	if c.Engine.Packs == nil {
		return []render.Line{system("Switching packs is not available.")}
	}
	def, err := c.Engine.Packs(name)
	if err != nil {
		return []render.Line{system(fmt.Sprintf("Cannot load pack: %v", err))}
	}
	c.Engine.SwitchWorld(name, def)
	c.lastCmd = ""
	lines := []render.Line{system(fmt.Sprintf("Switched to %s.", def.Name)), {}}
	return append(lines, c.Intro()...)
}

func (c *Controller) cmdState() []render.Line {
	e := c.Engine
	lines := []render.Line{
		system(fmt.Sprintf("Pack: %s", e.PackName)),
		system(fmt.Sprintf("Room: %s", e.RoomID())),
		system(fmt.Sprintf("Day %d, %02d:00", e.Clock.Day, e.Clock.Hour)),
		system(fmt.Sprintf("Save slot: %s", e.SaveName)),
		system(fmt.Sprintf("RNG: seed %d, position %d", e.RNG.Seed(), e.RNG.Position())),
	}
	if e.InCombat() {
		en := e.Combat.Session.Enemy
		lines = append(lines, system(fmt.Sprintf("Fighting: %s (%d/%d HP)", en.Name, en.HP, en.MaxHP)))
	}
	return lines
}

var metaHelp = []string{
	"System:",
	"  /save [name]  - Save game (default: quicksave)",
	"  /load [name]  - Load game (default: quicksave)",
	"  /pack [name]  - List packs, or switch to one",
	"  /state        - Show session details",
	"  /quit         - Exit game",
	"  /help         - Show this help",
	"  again (g)     - Repeat your last command",
	"",
}

func (c *Controller) cmdHelp() []render.Line {
	lines := make([]render.Line, 0, len(metaHelp)+16)
	for _, l := range metaHelp {
		lines = append(lines, render.Line{Kind: render.Help, Text: l})
	}
	for _, l := range strings.Split(engine.HelpText, "\n") {
		lines = append(lines, render.Line{Kind: render.Help, Text: l})
	}
	return lines
}

func system(text string) render.Line {
	return render.Line{Kind: render.System, Text: text}
}
