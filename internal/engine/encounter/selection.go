package encounter

import (
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// Pick is one creature type and how many of it appear
type Pick struct {
	Creature *dnd5e.Creature `json:"creature"`
	Quantity int             `json:"quantity"`
}

// Selection is the ordered list of picks produced by a strategy
type Selection []Pick

// Count returns the total number of creatures
func (s Selection) Count() int {
	n := 0
	for _, p := range s {
		n += p.Quantity
	}
	return n
}

// BaseXP sums creature XP before the count multiplier
func (s Selection) BaseXP() int {
	xp := 0
	for _, p := range s {
		xp += p.Creature.EffectiveXP() * p.Quantity
	}
	return xp
}

// AdjustedXP applies the count multiplier to BaseXP
func (s Selection) AdjustedXP() int {
	return dnd5e.AdjustedXP(s.BaseXP(), s.Count())
}
