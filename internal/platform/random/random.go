// Package random provides seed generation and the injectable randomness
// source used by the simulation.
//
// Core simulation code never calls the global math/rand functions. Every
// probabilistic decision flows through a Source so tests can substitute a
// scripted sequence and assert exact outcomes.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the randomness surface the simulation depends on.
// *math/rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Jitter returns a value uniformly distributed in [low, high).
func Jitter(rng Source, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

// Chance returns true with probability p (clamped to [0, 1]).
func Chance(rng Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// Between returns an int uniformly distributed in [low, high] inclusive.
func Between(rng Source, low, high int) int {
	if high <= low {
		return low
	}
	return low + rng.Intn(high-low+1)
}
