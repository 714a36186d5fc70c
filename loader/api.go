package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// Marker keys set on tables built by Item{} and Enemy{}.
const (
	kindKey   = "__kind"
	kindItem  = "item"
	kindEnemy = "enemy"
)

// registerAPI registers the pack constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Pack { name = "...", currency = "...", start = "...", ... }
	L.SetGlobal("Pack", L.NewFunction(func(L *lua.LState) int {
		if coll.pack != nil {
			L.RaiseError("Pack{} defined more than once")
		}
		coll.pack = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } is curried: Room("id") returns a function that takes a table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item { ... } and Enemy { ... } tag and return their table so they can be
	// bound to locals and shared between rooms.
	L.SetGlobal("Item", taggingConstructor(L, kindItem))
	L.SetGlobal("Enemy", taggingConstructor(L, kindEnemy))
}

func taggingConstructor(L *lua.LState, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString(kindKey, lua.LString(kind))
		L.Push(tbl)
		return 1
	})
}
