package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nathoo/realmcore/types"
	lua "github.com/yuin/gopher-lua"
)

// ErrNoRooms is returned for a definition without any rooms.
var ErrNoRooms = errors.New("world definition has no rooms")

// collector accumulates Lua definitions during file execution.
type collector struct {
	pack  *lua.LTable
	rooms []rawRoom
}

// Load reads a world definition from path. A directory is loaded as a Lua
// pack; a .yaml, .yml or .json file is decoded directly. Warnings found during
// validation go to log, which may be nil.
func Load(p string, log *slog.Logger) (*types.WorldDef, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("reading pack %s: %w", p, err)
	}
	if info.IsDir() {
		return LoadLua(os.DirFS(p), log)
	}
	return LoadFile(p, log)
}

// LoadFile decodes a single YAML or JSON definition file.
func LoadFile(p string, log *slog.Logger) (*types.WorldDef, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported pack file %s: want .lua directory, .yaml or .json", p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading pack %s: %w", p, err)
	}
	def, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(p), err)
	}
	if err := validate(def, log); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadLua executes every .lua file at the root of fsys, compiles the
// collected tables into a world definition and validates it. The Lua VM is
// discarded after loading.
func LoadLua(fsys fs.FS, log *slog.Logger) (*types.WorldDef, error) {
	// Discover .lua files.
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading pack directory: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, errors.New("no .lua files found in pack directory")
	}

	// Sort: pack.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		src, err := readAll(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(strings.NewReader(src), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	def, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling pack: %w", err)
	}
	if err := validate(def, log); err != nil {
		return nil, err
	}
	return def, nil
}

func readAll(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(path.Clean(name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	return string(b), err
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
