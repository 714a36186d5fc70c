// Realmcore is a text-adventure engine: explore rooms, fight, level up and
// save, in a terminal or over HTTP.
// Run with --help for usage.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nathoo/realmcore/cli"
	"github.com/nathoo/realmcore/config"
	"github.com/nathoo/realmcore/engine"
	"github.com/nathoo/realmcore/loader"
	"github.com/nathoo/realmcore/play"
	"github.com/nathoo/realmcore/server"
	"github.com/nathoo/realmcore/tui"
	"github.com/nathoo/realmcore/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: realmcore [--version] [--plain] [--script <file>] [--serve] [--continue] " +
	"[--pack <name|path>] [--save <slot>] [--seed <n>] [--name <player>]"

type options struct {
	plain      bool
	serve      bool
	resume     bool
	scriptFile string
	pack       string
	slot       string
	seed       string
	name       string
}

func main() {
	var opts options

	args := os.Args[1:]
	value := func(i int, flag string) string {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "%s requires a value\n%s\n", flag, usage)
			os.Exit(1)
		}
		return args[i+1]
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("realmcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--help", "-h":
			fmt.Println(usage)
			fmt.Println("Built-in packs:", loader.BuiltinNames())
			return
		case "--plain":
			opts.plain = true
		case "--serve":
			opts.serve = true
		case "--continue":
			opts.resume = true
		case "--script":
			opts.scriptFile = value(i, "--script")
			i++
		case "--pack":
			opts.pack = value(i, "--pack")
			i++
		case "--save":
			opts.slot = value(i, "--save")
			i++
		case "--seed":
			opts.seed = value(i, "--seed")
			i++
		case "--name":
			opts.name = value(i, "--name")
			i++
		default:
			// A bare argument names the pack, like the game directory it replaces.
			if opts.pack == "" {
				opts.pack = args[i]
			}
		}
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.pack != "" {
		cfg.Pack = opts.pack
	}
	if opts.name != "" {
		cfg.PlayerName = opts.name
	}
	if opts.seed != "" {
		seed, err := strconv.ParseInt(opts.seed, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Seed = seed
	}

	// Interactive modes keep logs off the terminal.
	log, closeLog, err := cfg.Logger(!opts.serve)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("opening %s save store: %w", cfg.SaveBackend, err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolve := func(name string) (*types.WorldDef, error) {
		return loader.Resolve(name, log)
	}

	if opts.serve {
		// Clients name packs; only embedded ones, never server paths.
		builtin := func(name string) (*types.WorldDef, error) {
			return loader.Builtin(name, log)
		}
		if _, err := builtin(cfg.Pack); err != nil {
			return fmt.Errorf("--serve only offers built-in packs: %w", err)
		}
		srv := server.New(server.Config{
			Packs:       builtin,
			PackNames:   loader.BuiltinNames(),
			DefaultPack: cfg.Pack,
			Store:       store,
			Logger:      log,
		})
		return srv.ListenAndServe(ctx, cfg.HTTPAddr)
	}

	def, err := resolve(cfg.Pack)
	if err != nil {
		return fmt.Errorf("loading pack: %w", err)
	}
	eng := engine.New(def, engine.Options{
		PackName:   cfg.Pack,
		PlayerName: cfg.PlayerName,
		Seed:       cfg.Seed,
		Store:      store,
		SaveName:   opts.slot,
		Logger:     log,
		Packs:      resolve,
	})

	if opts.resume {
		found, err := eng.Load(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Could not load saved game, starting fresh: %v\n", err)
		case !found:
			fmt.Fprintf(os.Stderr, "No saved game named %s, starting fresh.\n", eng.SaveName)
		}
	}

	ctl := play.New(eng, loader.BuiltinNames(), log)

	// Script mode: read the file, force plain, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New(ctl)
		c.In = f
		c.EchoInput = true
		c.Run(ctx)
		return nil
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if opts.plain || !isTerminal() {
		cli.New(ctl).Run(ctx)
		return nil
	}

	return tui.Run(ctx, ctl)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
