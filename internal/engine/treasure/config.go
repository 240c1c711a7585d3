// Package treasure rolls magic item drops for creature instances.
//
// Each instance gets its own gold budget. A d100 drop check decides whether
// another item drops; if it does, one affordable item is drawn from the pool
// with probability proportional to its rarity weight and removed from the
// pool. Rolling stops on the first failed check or when nothing is affordable.
package treasure

import (
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Config tunes drop chance and weighting
type Config struct {
	// DropChance is the percent chance (1-100) that a drop check succeeds
	DropChance int

	// RarityStep scales the weight for each rarity step above Common
	RarityStep float64

	// WondrousFactor further scales wondrous items
	WondrousFactor float64
}

// DefaultConfig returns a 25% drop chance, x0.1 per rarity step and x1e-4 for wondrous items
func DefaultConfig() Config {
	return Config{
		DropChance:     25,
		RarityStep:     0.1,
		WondrousFactor: 1e-4,
	}
}

// Validate checks the tuning values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("drop_chance", c.DropChance, 0, 100, vb)
	if c.RarityStep <= 0 || c.RarityStep > 1 {
		vb.Field("rarity_step", "must be in (0, 1]")
	}
	if c.WondrousFactor <= 0 || c.WondrousFactor > 1 {
		vb.Field("wondrous_factor", "must be in (0, 1]")
	}

	return vb.Build()
}
