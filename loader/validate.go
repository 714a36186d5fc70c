package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/realmcore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validDirections = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
}

// Item effects the interpreter knows how to apply.
var knownEffects = map[string]bool{
	"heal": true,
}

// validate checks def for referential integrity. Warnings are logged and do
// not fail the load.
func validate(def *types.WorldDef, log *slog.Logger) error {
	if len(def.Rooms) == 0 {
		return ErrNoRooms
	}
	ve := &ValidationError{}

	rooms := map[string]bool{}
	for i, room := range def.Rooms {
		if room.ID == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("rooms[%d] has no id", i))
			continue
		}
		if rooms[room.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate room id %q", room.ID))
		}
		rooms[room.ID] = true
	}

	// Start and respawn rooms exist.
	if def.StartRoom == "" {
		ve.Errors = append(ve.Errors, "startRoom is required")
	} else if !rooms[def.StartRoom] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", def.StartRoom))
	}
	if def.RespawnRoom != "" && !rooms[def.RespawnRoom] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"respawn room %q not found in defined rooms", def.RespawnRoom))
	}

	for _, room := range def.Rooms {
		// Exit directions and targets valid.
		for dir, target := range room.Exits {
			if !validDirections[dir] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q has exit in unknown direction %q", room.ID, dir))
			}
			if !rooms[target] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %q points to undefined room %q", room.ID, dir, target))
			}
		}

		for i, it := range room.Items {
			if it.Name == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("room %q items[%d] has no name", room.ID, i))
			}
			if it.Effect != "" && !knownEffects[it.Effect] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"item %q in room %q has effect %q which nothing can use", it.Name, room.ID, it.Effect))
			}
		}

		for i, en := range room.Enemies {
			if en.Name == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("room %q enemies[%d] has no name", room.ID, i))
			}
			if en.HP <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"enemy %q in room %q must have positive hp", en.Name, room.ID))
			}
			if en.Damage < 0 || en.XPReward < 0 || en.GoldReward < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"enemy %q in room %q has negative stats", en.Name, room.ID))
			}
		}
	}

	// Warnings: rooms the player can never walk to.
	if rooms[def.StartRoom] {
		for _, id := range unreachable(def) {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"room %q is not reachable from start room %q", id, def.StartRoom))
		}
	}

	if log != nil {
		for _, w := range ve.Warnings {
			log.Warn("pack validation", "pack", def.Name, "warning", w)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// unreachable returns room ids not reachable from the start room, in
// definition order.
func unreachable(def *types.WorldDef) []string {
	exits := map[string]map[string]string{}
	for _, r := range def.Rooms {
		exits[r.ID] = r.Exits
	}
	seen := map[string]bool{def.StartRoom: true}
	queue := []string{def.StartRoom}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range exits[id] {
			if _, ok := exits[next]; ok && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	var out []string
	for _, r := range def.Rooms {
		if !seen[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}
