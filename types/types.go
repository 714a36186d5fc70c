// Package types defines the shared data structures for the realmcore engine.
// It holds plain data only: no logic and no methods.
package types

// Direction is one of the four cardinal exit directions.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists the cardinal directions in display order.
var Directions = []Direction{North, South, East, West}

// Item is an immutable carried or placed object.
type Item struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`                         // food, herb, weapon, armor, potion, key, treasure
	Effect string `json:"effect,omitempty" yaml:"effect,omitempty"` // "heal" or empty
	Value  int    `json:"value,omitempty" yaml:"value,omitempty"`
	Damage int    `json:"damage,omitempty" yaml:"damage,omitempty"`
}

// EnemyDef is the spawn template of an enemy.
type EnemyDef struct {
	Name       string `json:"name" yaml:"name"`
	Level      int    `json:"level" yaml:"level"`
	HP         int    `json:"hp" yaml:"hp"`
	Damage     int    `json:"damage" yaml:"damage"`
	XPReward   int    `json:"xpReward" yaml:"xpReward"`
	GoldReward int    `json:"goldReward" yaml:"goldReward"`
}

// RoomDef is the template a room is instantiated from.
type RoomDef struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Exits       map[string]string `json:"exits" yaml:"exits"` // direction → room id
	Items       []Item            `json:"items" yaml:"items"`
	Enemies     []EnemyDef        `json:"enemies" yaml:"enemies"`
}

// WorldDef is an immutable world definition (a content pack).
type WorldDef struct {
	Name           string    `json:"name" yaml:"name"`
	CurrencyName   string    `json:"currencyName" yaml:"currencyName"`
	StartRoom      string    `json:"startRoom" yaml:"startRoom"`
	RespawnRoom    string    `json:"respawnRoom,omitempty" yaml:"respawnRoom,omitempty"` // defaults to StartRoom
	WelcomeMessage string    `json:"welcomeMessage" yaml:"welcomeMessage"`
	Rooms          []RoomDef `json:"rooms" yaml:"rooms"`
}

// Stats holds the four primary attributes.
type Stats struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Int int `json:"int"`
	Wis int `json:"wis"`
}

// Equipment holds worn item slots. Nothing consumes these yet.
type Equipment struct {
	Weapon    *Item `json:"weapon"`
	Armor     *Item `json:"armor"`
	Accessory *Item `json:"accessory"`
}

// Clock is the in-game calendar.
type Clock struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}
