package encounter

import (
	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// GenerateEncounterInput defines the request for generating an encounter.
// Exactly one of TargetXP or PartyLevels must be set.
type GenerateEncounterInput struct {
	TargetXP int

	// PartyLevels derives the target from the DMG per-character thresholds
	PartyLevels []int
	// PartyDifficulty picks the threshold column, Medium when empty
	PartyDifficulty dnd5e.Difficulty

	// MaxMonsters caps the creature count, the service default when zero
	MaxMonsters int
	Filter      encengine.Filter
	Plan        encengine.Plan

	IncludeTreasure bool
	// GoldPerCreature is each instance's treasure budget, the service default when zero
	GoldPerCreature int
	// Seed makes treasure rolls reproducible
	Seed *uint64
}

// GenerateEncounterOutput defines the response for generating an encounter
type GenerateEncounterOutput struct {
	Encounter *entities.Encounter
	Result    *encengine.Result
}

// GenerateTreasureInput defines the request for rolling treasure on its own
type GenerateTreasureInput struct {
	// Creatures is the number of instances to roll for, one when zero
	Creatures int
	// Gold is each instance's budget, the service default when zero
	Gold int
	Seed *uint64
}

// GenerateTreasureOutput defines the response for rolling treasure
type GenerateTreasureOutput struct {
	Loot []*entities.Loot
}

// GetEncounterInput defines the request for loading a saved encounter
type GetEncounterInput struct {
	ID string
}

// GetEncounterOutput defines the response for loading a saved encounter
type GetEncounterOutput struct {
	Encounter *entities.Encounter
}

// ListEncountersInput defines the request for listing saved encounters
type ListEncountersInput struct {
	Limit int
}

// ListEncountersOutput defines the response for listing saved encounters
type ListEncountersOutput struct {
	Encounters []*entities.Encounter
}

// DeleteEncounterInput defines the request for deleting a saved encounter
type DeleteEncounterInput struct {
	ID string
}

// DeleteEncounterOutput defines the response for deleting a saved encounter
type DeleteEncounterOutput struct{}

// ListCreaturesInput defines the request for previewing a filter
type ListCreaturesInput struct {
	Filter encengine.Filter
	// Limit caps the returned creatures; Total still counts every match
	Limit int
}

// ListCreaturesOutput defines the response for previewing a filter
type ListCreaturesOutput struct {
	Creatures []*dnd5e.Creature
	Total     int
}
