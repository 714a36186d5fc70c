// Package cli provides plain terminal I/O for a realmcore session: a
// line-oriented loop suitable for pipes and script playback.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/realmcore/play"
	"github.com/nathoo/realmcore/render"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Controller *play.Controller
	In         io.Reader
	Out        io.Writer
	EchoInput  bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI on stdin/stdout.
func New(c *play.Controller) *CLI {
	return &CLI{
		Controller: c,
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}

// Run shows the intro and starting room, then loops: prompt → input →
// dispatch → output, until quit or end of input.
func (c *CLI) Run(ctx context.Context) {
	c.printLines(c.Controller.Intro())

	scanner := bufio.NewScanner(c.In)
	for {
		if ctx.Err() != nil {
			return
		}
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		lines, quit := c.Controller.Handle(ctx, input)
		c.printLines(lines)
		if quit {
			return
		}
	}
}

func (c *CLI) printLines(lines []render.Line) {
	for _, l := range lines {
		switch l.Kind {
		case render.System:
			c.printSystem(l.Text)
		case render.Clear:
			// Plain output has no screen to wipe.
		default:
			c.printLine(l.Text)
		}
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
