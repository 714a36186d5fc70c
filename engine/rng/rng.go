// Package rng provides the deterministic random source used by combat.
package rng

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, enabling save/restore.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float returns a value in [0, 1).
func (r *RNG) Float() float64 {
	r.pos++
	return float64(r.src.Int63()>>10) / (1 << 53)
}

// Variance returns a damage multiplier drawn uniformly from [0.8, 1.2).
func (r *RNG) Variance() float64 {
	return 0.8 + r.Float()*0.4
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	if sides <= 1 {
		r.pos++
		r.src.Int63()
		return 1
	}
	return int(r.Float()*float64(sides)) + 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}
