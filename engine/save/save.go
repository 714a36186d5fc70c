// Package save implements the versioned save record and the stores that hold it.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/types"
)

// Version is the current save schema version.
const Version = 2

// DefaultName is the record name used when none is given.
const DefaultName = "quicksave"

var (
	// ErrNotFound means no record exists under the requested name.
	ErrNotFound = errors.New("save not found")
	// ErrCorrupt means a record exists but cannot be decoded or validated.
	ErrCorrupt = errors.New("save data corrupt")
)

// Record is the JSON-serializable save format.
type Record struct {
	Version     int           `json:"version"`
	Pack        string        `json:"pack"`
	Player      player.Player `json:"player"`
	Room        string        `json:"room"`
	Clock       types.Clock   `json:"clock"`
	RNGSeed     int64         `json:"rng_seed"`
	RNGPosition int64         `json:"rng_position"`
	SavedAt     time.Time     `json:"saved_at"`
}

// legacyRecord is the version 1 layout: the player was stored as a JSON string
// inside the outer document, alongside currentRoom and time.
type legacyRecord struct {
	Player      string      `json:"player"`
	CurrentRoom string      `json:"currentRoom"`
	Time        types.Clock `json:"time"`
}

// Encode serializes a record to JSON bytes, stamping the current version.
func Encode(r *Record) ([]byte, error) {
	cp := *r
	cp.Version = Version
	return json.MarshalIndent(cp, "", "  ")
}

// Decode parses JSON bytes, migrates older layouts and validates the result.
// Any failure wraps ErrCorrupt.
func Decode(data []byte) (*Record, error) {
	var probe struct {
		Version int             `json:"version"`
		Player  json.RawMessage `json:"player"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var rec *Record
	var err error
	switch {
	case probe.Version == 0:
		rec, err = migrateV1(data)
	case probe.Version == Version:
		rec = &Record{}
		err = json.Unmarshal(data, rec)
	default:
		err = fmt.Errorf("unsupported version %d", probe.Version)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := validate(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}

func migrateV1(data []byte) (*Record, error) {
	var old legacyRecord
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, err
	}
	if old.Player == "" {
		return nil, errors.New("missing player")
	}
	rec := &Record{Version: Version, Room: old.CurrentRoom, Clock: old.Time}
	if err := json.Unmarshal([]byte(old.Player), &rec.Player); err != nil {
		return nil, fmt.Errorf("legacy player: %w", err)
	}
	return rec, nil
}

// validate rejects records that cannot describe a living character and clamps
// values that drifted out of range.
func validate(r *Record) error {
	p := &r.Player
	if p.Level < 1 {
		return fmt.Errorf("invalid level %d", p.Level)
	}
	if p.MaxHP <= 0 {
		return fmt.Errorf("invalid max hp %d", p.MaxHP)
	}
	if p.MaxMP < 0 || p.XPToLevel <= 0 {
		return errors.New("invalid progression values")
	}
	if len(p.Inventory) > player.MaxInventory {
		return fmt.Errorf("inventory holds %d items, limit is %d", len(p.Inventory), player.MaxInventory)
	}
	if p.Inventory == nil {
		p.Inventory = []types.Item{}
	}
	p.HP = min(max(p.HP, 0), p.MaxHP)
	p.MP = min(max(p.MP, 0), p.MaxMP)
	p.XP = max(p.XP, 0)
	p.Gold = max(p.Gold, 0)
	if r.Clock.Day < 1 {
		r.Clock.Day = 1
	}
	r.Clock.Hour = ((r.Clock.Hour % 24) + 24) % 24
	return nil
}
