package dnd5e

// UnknownChallengeRating marks a creature whose CR could not be read from its source
const UnknownChallengeRating ChallengeRating = -1

// EnvironmentAny matches every environment filter
const EnvironmentAny = "Any"

// Creature is immutable catalog data for one creature type
type Creature struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ChallengeRating ChallengeRating `json:"challenge_rating"`
	XP              int             `json:"xp,omitempty"` // explicit override, 0 derives from CR
	CreatureType    string          `json:"creature_type,omitempty"`
	Alignment       string          `json:"alignment,omitempty"`
	Size            string          `json:"size,omitempty"`
	Environments    []string        `json:"environments,omitempty"`
}

// EffectiveXP returns the override XP if set, otherwise the table value for the CR.
// A zero result means the creature cannot take part in XP scoring.
func (c *Creature) EffectiveXP() int {
	if c == nil {
		return 0
	}
	if c.XP > 0 {
		return c.XP
	}
	return XPForCR(c.ChallengeRating)
}
