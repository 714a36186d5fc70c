// Package world holds the mutable room graph instantiated from a world
// definition: rooms, their exits, and the items and enemies inside them.
package world

import (
	"slices"
	"strings"

	"github.com/nathoo/realmcore/types"
)

// Enemy is a live enemy. HP changes during combat; everything else is fixed at spawn.
type Enemy struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"maxHp"`
	Damage     int    `json:"damage"`
	XPReward   int    `json:"xpReward"`
	GoldReward int    `json:"goldReward"`
}

// Spawn creates a live enemy from its template.
func Spawn(def types.EnemyDef) *Enemy {
	return &Enemy{
		Name:       def.Name,
		Level:      def.Level,
		HP:         def.HP,
		MaxHP:      def.HP,
		Damage:     def.Damage,
		XPReward:   def.XPReward,
		GoldReward: def.GoldReward,
	}
}

// TakeDamage lowers HP, never below zero. Returns true if the enemy died.
func (e *Enemy) TakeDamage(amount int) bool {
	e.HP = max(0, e.HP-max(0, amount))
	return e.HP <= 0
}

// Room is a node of the world graph.
type Room struct {
	ID          string
	Name        string
	Description string
	Exits       map[types.Direction]string
	Items       []types.Item
	Enemies     []*Enemy
}

// World is the room graph of one loaded definition.
type World struct {
	Def   *types.WorldDef
	rooms map[string]*Room
	order []string
}

// New instantiates every room of def. Exits in unknown directions are ignored.
func New(def *types.WorldDef) *World {
	w := &World{
		Def:   def,
		rooms: make(map[string]*Room, len(def.Rooms)),
	}
	for _, rd := range def.Rooms {
		r := &Room{
			ID:          rd.ID,
			Name:        rd.Name,
			Description: rd.Description,
			Exits:       map[types.Direction]string{},
			Items:       append([]types.Item{}, rd.Items...),
		}
		for dir, target := range rd.Exits {
			if d, ok := ParseDirection(dir); ok && target != "" {
				r.Exits[d] = target
			}
		}
		for _, ed := range rd.Enemies {
			r.Enemies = append(r.Enemies, Spawn(ed))
		}
		if _, dup := w.rooms[rd.ID]; !dup {
			w.order = append(w.order, rd.ID)
		}
		w.rooms[rd.ID] = r
	}
	return w
}

// ParseDirection maps a direction name to a Direction.
func ParseDirection(s string) (types.Direction, bool) {
	switch types.Direction(strings.ToLower(s)) {
	case types.North:
		return types.North, true
	case types.South:
		return types.South, true
	case types.East:
		return types.East, true
	case types.West:
		return types.West, true
	}
	return "", false
}

// Room returns the room with the given id.
func (w *World) Room(id string) (*Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// RoomIDs returns room ids in definition order.
func (w *World) RoomIDs() []string {
	return append([]string(nil), w.order...)
}

// StartRoom returns the id of the room new games begin in.
func (w *World) StartRoom() string {
	return w.Def.StartRoom
}

// RespawnRoom returns the id of the room a defeated player wakes up in.
func (w *World) RespawnRoom() string {
	if w.Def.RespawnRoom != "" {
		return w.Def.RespawnRoom
	}
	return w.Def.StartRoom
}

// Currency returns the display name of the world's money.
func (w *World) Currency() string {
	if w.Def.CurrencyName == "" {
		return "Gold"
	}
	return w.Def.CurrencyName
}

// ExitDirections returns the room's exits in north, south, east, west order.
func (r *Room) ExitDirections() []types.Direction {
	var dirs []types.Direction
	for _, d := range types.Directions {
		if _, ok := r.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// FindItem returns the index of the first item whose name contains text, ignoring case.
func (r *Room) FindItem(text string) int {
	needle := strings.ToLower(text)
	for i, it := range r.Items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return i
		}
	}
	return -1
}

// TakeItem removes and returns the item at index i.
func (r *Room) TakeItem(i int) types.Item {
	it := r.Items[i]
	r.Items = append(r.Items[:i], r.Items[i+1:]...)
	return it
}

// RestoreItem puts it back at index i, undoing a TakeItem.
func (r *Room) RestoreItem(i int, it types.Item) {
	i = min(max(i, 0), len(r.Items))
	r.Items = slices.Insert(r.Items, i, it)
}

// PutItem appends an item to the room.
func (r *Room) PutItem(it types.Item) {
	r.Items = append(r.Items, it)
}

// RemoveEnemy removes e from the room. Returns false if it is not here.
func (r *Room) RemoveEnemy(e *Enemy) bool {
	for i, cand := range r.Enemies {
		if cand == e {
			r.Enemies = append(r.Enemies[:i], r.Enemies[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot is a read-only copy of a room for presentation.
type Snapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       []types.Direction `json:"exits"`
	Neighbors   map[string]string `json:"neighbors,omitempty"` // direction → neighbouring room name
	Items       []types.Item      `json:"items"`
	Enemies     []Enemy           `json:"enemies"`
}

// Snapshot copies the room, resolving neighbour names through w.
func (w *World) Snapshot(r *Room) Snapshot {
	s := Snapshot{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Exits:       r.ExitDirections(),
		Items:       append([]types.Item{}, r.Items...),
		Enemies:     make([]Enemy, 0, len(r.Enemies)),
	}
	for _, e := range r.Enemies {
		s.Enemies = append(s.Enemies, *e)
	}
	if len(r.Exits) > 0 {
		s.Neighbors = map[string]string{}
		for d, id := range r.Exits {
			name := id
			if n, ok := w.rooms[id]; ok {
				name = n.Name
			}
			s.Neighbors[string(d)] = name
		}
	}
	return s
}

// ItemNames returns the names of items, in order.
func ItemNames(items []types.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}
