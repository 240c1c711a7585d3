// Package entities provides the persisted shapes of generated encounters.
package entities

import (
	"time"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// Encounter is a generated encounter as saved to history
type Encounter struct {
	ID         string            `json:"id"`
	TargetXP   int               `json:"target_xp"`
	BaseXP     int               `json:"base_xp"`
	Multiplier float64           `json:"multiplier"`
	AdjustedXP int               `json:"adjusted_xp"`
	Difficulty dnd5e.Difficulty  `json:"difficulty"`
	Strategy   string            `json:"strategy"`   // e.g. "multiple:4"
	Relaxation string            `json:"relaxation"` // "none" or "environment"
	Filters    map[string]string `json:"filters,omitempty"`

	// PartyLevels is set when the target was derived from a party
	PartyLevels []int `json:"party_levels,omitempty"`

	Creatures []*EncounterCreature `json:"creatures"`
	CreatedAt time.Time            `json:"created_at"`
}

// EncounterCreature is one creature instance in an encounter
type EncounterCreature struct {
	InstanceID      string                `json:"instance_id"`
	CreatureID      string                `json:"creature_id"`
	Name            string                `json:"name"`
	ChallengeRating dnd5e.ChallengeRating `json:"challenge_rating"`
	XP              int                   `json:"xp"`
	Ordinal         int                   `json:"ordinal"`
	Loot            *Loot                 `json:"loot,omitempty"`
}

// Loot is the treasure rolled for one creature instance
type Loot struct {
	Items         []*dnd5e.MagicItem `json:"items"`
	StartingGold  int                `json:"starting_gold"`
	RemainingGold int                `json:"remaining_gold"`
}

// CreatureCount returns the number of creature instances
func (e *Encounter) CreatureCount() int {
	if e == nil {
		return 0
	}
	return len(e.Creatures)
}
