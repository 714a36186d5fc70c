package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/realmcore/engine/outcome"
)

// attack engages the first enemy in the room, or runs one exchange of an
// ongoing fight.
func (e *Engine) attack() outcome.Outcome {
	if !e.InCombat() {
		room := e.Room()
		if len(room.Enemies) == 0 {
			return outcome.Error{Text: "There is nothing to fight here."}
		}
		enemy := room.Enemies[0]
		if err := e.Combat.Engage(enemy, room.ID); err != nil {
			return outcome.Error{Text: err.Error()}
		}
		e.Logger.Info("combat engaged", "enemy", enemy.Name, "room", room.ID)
		return outcome.Combat{
			Text:  fmt.Sprintf("A %s (Level %d) appears!\n   HP: %d/%d", enemy.Name, enemy.Level, enemy.HP, enemy.MaxHP),
			Enemy: *enemy,
		}
	}

	x, err := e.Combat.Attack(e.Player)
	if err != nil {
		return outcome.Error{Text: "You are not in combat!"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You strike the %s for %d damage!", x.Enemy.Name, x.PlayerDamage)

	if x.Victory {
		// The enemy leaves the room the fight began in, even if that
		// is no longer where the player stands.
		if r, ok := e.World.Room(x.RoomID); ok {
			r.RemoveEnemy(x.Defeated())
		}
		fmt.Fprintf(&b, "\n\nThe %s is defeated!", x.Enemy.Name)
		fmt.Fprintf(&b, "\n   +%d XP, +%d %s", x.Enemy.XPReward, x.Enemy.GoldReward, e.World.Currency())
		if x.LeveledUp {
			fmt.Fprintf(&b, "\n\nYou reached level %d!", e.Player.Level)
		}
		e.Logger.Info("combat won", "enemy", x.Enemy.Name, "xp", x.Enemy.XPReward, "level", e.Player.Level)
		return outcome.Combat{Text: b.String(), Enemy: x.Enemy, Victory: true, LeveledUp: x.LeveledUp}
	}

	fmt.Fprintf(&b, "\n   %s HP: %d/%d", x.Enemy.Name, x.Enemy.HP, x.Enemy.MaxHP)
	fmt.Fprintf(&b, "\n\nThe %s attacks you for %d damage!", x.Enemy.Name, x.EnemyDamage)
	fmt.Fprintf(&b, "\n   Your HP: %d/%d", x.PlayerHP, e.Player.MaxHP)

	if x.Defeat {
		e.room = e.World.RespawnRoom()
		b.WriteString("\n\nYou have been defeated! Respawning...")
		e.Logger.Info("combat lost", "enemy", x.Enemy.Name, "respawn", e.room)
		return outcome.Combat{Text: b.String(), Enemy: x.Enemy, Defeat: true}
	}
	return outcome.Combat{Text: b.String(), Enemy: x.Enemy}
}

func (e *Engine) flee() outcome.Outcome {
	enemy, err := e.Combat.Flee()
	if err != nil {
		return outcome.Error{Text: "You are not in combat!"}
	}
	e.Logger.Info("fled combat", "enemy", enemy.Name)
	return outcome.Success{Text: "You flee from combat!"}
}
