package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/nathoo/realmcore/types"
)

//go:embed packs
var builtinFS embed.FS

// DefaultPack is the pack used when none is configured.
const DefaultPack = "fantasy"

// BuiltinNames lists the embedded packs, sorted.
func BuiltinNames() []string {
	entries, _ := fs.ReadDir(builtinFS, "packs")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(strings.TrimSuffix(e.Name(), ".yaml"), ".json"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads an embedded pack by name. It never touches the filesystem,
// so it is the resolver to hand to untrusted callers.
func Builtin(name string, log *slog.Logger) (*types.WorldDef, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, unknownPack(name)
	}
	if sub, err := fs.Sub(builtinFS, path.Join("packs", name)); err == nil {
		if _, err := fs.Stat(sub, "pack.lua"); err == nil {
			return LoadLua(sub, log)
		}
	}
	for _, ext := range []string{".yaml", ".json"} {
		data, err := builtinFS.ReadFile(path.Join("packs", name+ext))
		if err != nil {
			continue
		}
		def, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding built-in pack %s: %w", name, err)
		}
		if err := validate(def, log); err != nil {
			return nil, err
		}
		return def, nil
	}
	return nil, unknownPack(name)
}

func unknownPack(name string) error {
	return fmt.Errorf("unknown pack %q (built-in packs: %s)", name, strings.Join(BuiltinNames(), ", "))
}

// Resolve loads ref as a built-in pack name, or as a path when it names an
// existing file or directory. Only local front ends should use it.
func Resolve(ref string, log *slog.Logger) (*types.WorldDef, error) {
	if ref == "" {
		ref = DefaultPack
	}
	if _, err := os.Stat(ref); err == nil {
		return Load(ref, log)
	}
	return Builtin(ref, log)
}
