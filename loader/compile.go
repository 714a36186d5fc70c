// Package loader loads world definitions from Lua pack directories and from
// YAML or JSON files. The Lua VM is discarded after loading, so no Lua runs
// during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/realmcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an integer field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	m := map[string]string{}
	if tbl == nil {
		return m
	}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a world definition.
func compile(coll *collector) (*types.WorldDef, error) {
	if coll.pack == nil {
		return nil, fmt.Errorf("no Pack{} definition found")
	}
	def := compilePack(coll.pack)

	for _, raw := range coll.rooms {
		room, err := compileRoom(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling room %s: %w", raw.id, err)
		}
		def.Rooms = append(def.Rooms, room)
	}
	return def, nil
}

func compilePack(tbl *lua.LTable) *types.WorldDef {
	return &types.WorldDef{
		Name:           getString(tbl, "name"),
		CurrencyName:   getString(tbl, "currency"),
		StartRoom:      getString(tbl, "start"),
		RespawnRoom:    getString(tbl, "respawn"),
		WelcomeMessage: getString(tbl, "welcome"),
	}
}

func compileRoom(raw rawRoom) (types.RoomDef, error) {
	tbl := raw.table
	room := types.RoomDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Items:       []types.Item{},
		Enemies:     []types.EnemyDef{},
	}

	var err error
	forEachEntry(getTable(tbl, "items"), func(i int, t *lua.LTable) {
		if err == nil && getString(t, kindKey) == kindEnemy {
			err = fmt.Errorf("items[%d] is an Enemy{}", i)
		}
		room.Items = append(room.Items, compileItem(t))
	})
	forEachEntry(getTable(tbl, "enemies"), func(i int, t *lua.LTable) {
		if err == nil && getString(t, kindKey) == kindItem {
			err = fmt.Errorf("enemies[%d] is an Item{}", i)
		}
		room.Enemies = append(room.Enemies, compileEnemy(t))
	})
	return room, err
}

// forEachEntry visits the array part of tbl in order, skipping non-tables.
func forEachEntry(tbl *lua.LTable, fn func(i int, t *lua.LTable)) {
	if tbl == nil {
		return
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			fn(i, t)
		}
	}
}

func compileItem(tbl *lua.LTable) types.Item {
	return types.Item{
		Name:   getString(tbl, "name"),
		Type:   getString(tbl, "type"),
		Effect: getString(tbl, "effect"),
		Value:  getInt(tbl, "value"),
		Damage: getInt(tbl, "damage"),
	}
}

func compileEnemy(tbl *lua.LTable) types.EnemyDef {
	return types.EnemyDef{
		Name:       getString(tbl, "name"),
		Level:      getInt(tbl, "level"),
		HP:         getInt(tbl, "hp"),
		Damage:     getInt(tbl, "damage"),
		XPReward:   getInt(tbl, "xp"),
		GoldReward: getInt(tbl, "gold"),
	}
}

// sortedLuaFiles returns .lua files with pack.lua first and the rest sorted
// alphabetically.
func sortedLuaFiles(files []string) []string {
	var packFile string
	var others []string
	for _, f := range files {
		if f == "pack.lua" {
			packFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if packFile != "" {
		return append([]string{packFile}, others...)
	}
	return others
}
