// Package combat implements the single-session, turn-based fight between the
// player and one enemy.
package combat

import (
	"errors"

	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/engine/rng"
	"github.com/nathoo/realmcore/engine/world"
)

// ErrNotInCombat is returned by Attack and Flee while idle.
var ErrNotInCombat = errors.New("not in combat")

// ErrAlreadyEngaged is returned by Engage while a fight is in progress.
var ErrAlreadyEngaged = errors.New("already in combat")

// Session is the active fight. The zero value is idle.
type Session struct {
	Enemy  *world.Enemy
	RoomID string // room the enemy was engaged in
}

// Active reports whether a fight is in progress.
func (s *Session) Active() bool {
	return s.Enemy != nil
}

// Exchange is the result of one attack step.
type Exchange struct {
	Enemy        world.Enemy // enemy state after the exchange
	RoomID       string
	PlayerDamage int // dealt by the player
	EnemyDamage  int // dealt by the enemy; zero on victory
	PlayerHP     int // player hp after the enemy's counter, before any respawn heal
	Victory      bool
	Defeat       bool
	LeveledUp    bool
	enemyRef     *world.Enemy
}

// Defeated returns the live enemy that died in this exchange, or nil.
func (x Exchange) Defeated() *world.Enemy {
	if !x.Victory {
		return nil
	}
	return x.enemyRef
}

// PlayerDamage computes floor((str*2 + level*3) * variance).
func PlayerDamage(p *player.Player, r *rng.RNG) int {
	base := float64(p.Stats.Str*2 + p.Level*3)
	return max(0, int(base*r.Variance()))
}

// EnemyDamage computes floor(damage * variance).
func EnemyDamage(e *world.Enemy, r *rng.RNG) int {
	return max(0, int(float64(e.Damage)*r.Variance()))
}

// Resolver owns the combat session and the random source.
type Resolver struct {
	Session Session
	RNG     *rng.RNG
}

// NewResolver creates an idle resolver.
func NewResolver(r *rng.RNG) *Resolver {
	return &Resolver{RNG: r}
}

// Engage binds the session to enemy. No damage is exchanged.
func (c *Resolver) Engage(enemy *world.Enemy, roomID string) error {
	if c.Session.Active() {
		return ErrAlreadyEngaged
	}
	c.Session = Session{Enemy: enemy, RoomID: roomID}
	return nil
}

// Attack runs one exchange: the player strikes, then a surviving enemy
// counter-attacks. Victory and defeat both return the session to idle.
// Respawning the player is left to the caller, which owns location.
func (c *Resolver) Attack(p *player.Player) (Exchange, error) {
	if !c.Session.Active() {
		return Exchange{}, ErrNotInCombat
	}
	enemy := c.Session.Enemy
	x := Exchange{RoomID: c.Session.RoomID, enemyRef: enemy}

	x.PlayerDamage = PlayerDamage(p, c.RNG)
	if enemy.TakeDamage(x.PlayerDamage) {
		x.Victory = true
		x.LeveledUp = p.GainXP(enemy.XPReward)
		p.Gold += enemy.GoldReward
		x.Enemy = *enemy
		x.PlayerHP = p.HP
		c.Session = Session{}
		return x, nil
	}

	x.EnemyDamage = EnemyDamage(enemy, c.RNG)
	x.Defeat = p.TakeDamage(x.EnemyDamage)
	x.PlayerHP = p.HP
	x.Enemy = *enemy
	if x.Defeat {
		p.RestoreAll()
		c.Session = Session{}
	}
	return x, nil
}

// Flee ends the fight unconditionally.
func (c *Resolver) Flee() (world.Enemy, error) {
	if !c.Session.Active() {
		return world.Enemy{}, ErrNotInCombat
	}
	e := *c.Session.Enemy
	c.Session = Session{}
	return e, nil
}

// Reset drops any fight without resolving it.
func (c *Resolver) Reset() {
	c.Session = Session{}
}
