package v1alpha1

// CreatureFilter narrows the catalog. Empty fields and "Any" match everything.
type CreatureFilter struct {
	MinCR        string `json:"min_cr,omitempty"` // "1/4", "0.5" or "3"
	MaxCR        string `json:"max_cr,omitempty"`
	Environment  string `json:"environment,omitempty"`
	Alignment    string `json:"alignment,omitempty"`
	CreatureType string `json:"creature_type,omitempty"`
	Size         string `json:"size,omitempty"`
}

// GenerateEncounterRequest asks for a new encounter
type GenerateEncounterRequest struct {
	TargetXP        int             `json:"target_xp,omitempty"`
	PartyLevels     []int           `json:"party_levels,omitempty"`
	PartyDifficulty string          `json:"party_difficulty,omitempty"`
	MaxMonsters     int             `json:"max_monsters,omitempty"`
	Filter          *CreatureFilter `json:"filter,omitempty"`
	Plan            string          `json:"plan,omitempty"` // e.g. "single,multiple:4,mixed"
	IncludeTreasure bool            `json:"include_treasure,omitempty"`
	GoldPerCreature int             `json:"gold_per_creature,omitempty"`
	Seed            *uint64         `json:"seed,omitempty"`
}

// GenerateEncounterResponse returns the saved encounter
type GenerateEncounterResponse struct {
	Encounter *Encounter `json:"encounter"`
}

// GenerateTreasureRequest asks for loot without an encounter
type GenerateTreasureRequest struct {
	Creatures int     `json:"creatures,omitempty"`
	Gold      int     `json:"gold,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"`
}

// GenerateTreasureResponse carries one loot roll per creature
type GenerateTreasureResponse struct {
	Loot []*Loot `json:"loot"`
}

// GetEncounterRequest loads a saved encounter
type GetEncounterRequest struct {
	EncounterID string `json:"encounter_id"`
}

// GetEncounterResponse carries a saved encounter
type GetEncounterResponse struct {
	Encounter *Encounter `json:"encounter"`
}

// ListEncountersRequest lists saved encounters
type ListEncountersRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListEncountersResponse carries saved encounters, newest first
type ListEncountersResponse struct {
	Encounters []*Encounter `json:"encounters"`
}

// DeleteEncounterRequest removes a saved encounter
type DeleteEncounterRequest struct {
	EncounterID string `json:"encounter_id"`
}

// DeleteEncounterResponse is empty
type DeleteEncounterResponse struct{}

// ListCreaturesRequest previews a filter
type ListCreaturesRequest struct {
	Filter *CreatureFilter `json:"filter,omitempty"`
	Limit  int             `json:"limit,omitempty"`
}

// ListCreaturesResponse carries matching creatures
type ListCreaturesResponse struct {
	Creatures []*Creature `json:"creatures"`
	Total     int         `json:"total"`
}

// Encounter is the wire form of a generated encounter
type Encounter struct {
	ID          string              `json:"id"`
	TargetXP    int                 `json:"target_xp"`
	BaseXP      int                 `json:"base_xp"`
	Multiplier  float64             `json:"multiplier"`
	AdjustedXP  int                 `json:"adjusted_xp"`
	Difficulty  string              `json:"difficulty"`
	Strategy    string              `json:"strategy"`
	Relaxation  string              `json:"relaxation"`
	Filters     map[string]string   `json:"filters,omitempty"`
	PartyLevels []int               `json:"party_levels,omitempty"`
	Creatures   []*CreatureInstance `json:"creatures"`
	CreatedAt   int64               `json:"created_at"` // unix seconds
}

// CreatureInstance is one creature on the table
type CreatureInstance struct {
	InstanceID      string `json:"instance_id"`
	CreatureID      string `json:"creature_id"`
	Name            string `json:"name"`
	ChallengeRating string `json:"challenge_rating"`
	XP              int    `json:"xp"`
	Ordinal         int    `json:"ordinal"`
	Loot            *Loot  `json:"loot,omitempty"`
}

// Creature is catalog data
type Creature struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ChallengeRating string   `json:"challenge_rating"`
	XP              int      `json:"xp"`
	CreatureType    string   `json:"creature_type,omitempty"`
	Alignment       string   `json:"alignment,omitempty"`
	Size            string   `json:"size,omitempty"`
	Environments    []string `json:"environments,omitempty"`
}

// Loot is the treasure rolled for one creature
type Loot struct {
	Items         []*MagicItem `json:"items"`
	StartingGold  int          `json:"starting_gold"`
	RemainingGold int          `json:"remaining_gold"`
}

// MagicItem is an awarded item
type MagicItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     string `json:"rarity"`
	Value      int    `json:"value"`
	Wondrous   bool   `json:"wondrous,omitempty"`
	Consumable bool   `json:"consumable,omitempty"`
	Attunement bool   `json:"attunement,omitempty"`
}
