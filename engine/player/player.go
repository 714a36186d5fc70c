// Package player implements the player character and its progression rules.
package player

import (
	"strings"

	"github.com/nathoo/realmcore/types"
)

// MaxInventory is the number of items a player can carry.
const MaxInventory = 20

// Player is the mutable player character.
type Player struct {
	Name      string          `json:"name"`
	Level     int             `json:"level"`
	HP        int             `json:"hp"`
	MaxHP     int             `json:"maxHp"`
	MP        int             `json:"mp"`
	MaxMP     int             `json:"maxMp"`
	XP        int             `json:"xp"`
	XPToLevel int             `json:"xpToLevel"`
	Gold      int             `json:"gold"`
	Stats     types.Stats     `json:"stats"`
	Inventory []types.Item    `json:"inventory"`
	Equipment types.Equipment `json:"equipment"`
}

// New creates a level 1 character.
func New(name string) *Player {
	return &Player{
		Name:      name,
		Level:     1,
		HP:        100,
		MaxHP:     100,
		MP:        50,
		MaxMP:     50,
		XPToLevel: 100,
		Stats:     types.Stats{Str: 10, Dex: 10, Int: 10, Wis: 10},
		Inventory: []types.Item{},
	}
}

// TakeDamage lowers HP, never below zero. Returns true if the hit was lethal.
func (p *Player) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	p.HP = max(0, p.HP-amount)
	return p.HP <= 0
}

// Heal raises HP up to MaxHP and returns the amount actually restored.
func (p *Player) Heal(amount int) int {
	before := p.HP
	p.HP = min(p.MaxHP, p.HP+max(0, amount))
	return p.HP - before
}

// RestoreMP raises MP up to MaxMP and returns the amount actually restored.
func (p *Player) RestoreMP(amount int) int {
	before := p.MP
	p.MP = min(p.MaxMP, p.MP+max(0, amount))
	return p.MP - before
}

// RestoreAll fills HP and MP.
func (p *Player) RestoreAll() {
	p.HP = p.MaxHP
	p.MP = p.MaxMP
}

// GainXP adds experience. Only one level-up check runs per gain, so a reward
// crossing several thresholds still yields a single level.
func (p *Player) GainXP(amount int) bool {
	p.XP += amount
	if p.XP >= p.XPToLevel {
		p.LevelUp()
		return true
	}
	return false
}

// LevelUp advances one level, resets XP and fully restores HP and MP.
func (p *Player) LevelUp() {
	p.Level++
	p.XP = 0
	p.XPToLevel = p.XPToLevel * 3 / 2
	p.MaxHP += 20
	p.MaxMP += 10
	p.RestoreAll()
	p.Stats.Str += 2
	p.Stats.Dex += 2
	p.Stats.Int += 2
	p.Stats.Wis += 2
}

// AddItem appends an item to the inventory. Returns false when full.
func (p *Player) AddItem(item types.Item) bool {
	if len(p.Inventory) >= MaxInventory {
		return false
	}
	p.Inventory = append(p.Inventory, item)
	return true
}

// RemoveItem removes the first item whose name equals name, ignoring case.
func (p *Player) RemoveItem(name string) (types.Item, bool) {
	for i, it := range p.Inventory {
		if strings.EqualFold(it.Name, name) {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return it, true
		}
	}
	return types.Item{}, false
}

// FindItem returns the first inventory item whose name contains text, ignoring case.
func (p *Player) FindItem(text string) (types.Item, bool) {
	needle := strings.ToLower(text)
	for _, it := range p.Inventory {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return it, true
		}
	}
	return types.Item{}, false
}

// Snapshot returns a deep copy safe to hand to presentation code.
func (p *Player) Snapshot() Player {
	cp := *p
	cp.Inventory = append([]types.Item(nil), p.Inventory...)
	return cp
}
