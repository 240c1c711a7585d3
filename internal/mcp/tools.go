package mcp

import (
	"context"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/handlers/encounter/v1alpha1"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
)

// FilterInput narrows the creature catalog
type FilterInput struct {
	MinCR        string `json:"min_cr,omitempty" jsonschema:"lowest challenge rating, e.g. 1/4 or 2"`
	MaxCR        string `json:"max_cr,omitempty" jsonschema:"highest challenge rating"`
	Environment  string `json:"environment,omitempty" jsonschema:"environment tag such as Forest, or Any"`
	Alignment    string `json:"alignment,omitempty" jsonschema:"alignment such as Chaotic Evil"`
	CreatureType string `json:"creature_type,omitempty" jsonschema:"creature type such as Humanoid"`
	Size         string `json:"size,omitempty" jsonschema:"size such as Medium"`
}

// GenerateEncounterInput are the generate_encounter tool arguments
type GenerateEncounterInput struct {
	TargetXP        int         `json:"target_xp,omitempty" jsonschema:"target XP budget; leave empty when party_levels is set"`
	PartyLevels     []int       `json:"party_levels,omitempty" jsonschema:"character levels used to derive the target XP"`
	Difficulty      string      `json:"difficulty,omitempty" jsonschema:"party difficulty: Easy, Medium, Hard or Deadly"`
	MaxMonsters     int         `json:"max_monsters,omitempty" jsonschema:"maximum number of creatures, at most 50"`
	Filter          FilterInput `json:"filter,omitempty" jsonschema:"creature filters"`
	Plan            string      `json:"plan,omitempty" jsonschema:"strategy plan such as single,multiple:4,mixed"`
	IncludeTreasure bool        `json:"include_treasure,omitempty" jsonschema:"roll treasure for every creature"`
	GoldPerCreature int         `json:"gold_per_creature,omitempty" jsonschema:"treasure budget per creature in gold pieces"`
	Seed            *uint64     `json:"seed,omitempty" jsonschema:"optional seed for reproducible treasure"`
}

// GenerateEncounterOutput is the saved encounter returned by generate_encounter
type GenerateEncounterOutput struct {
	Encounter *v1alpha1.Encounter `json:"encounter"`
}

// GenerateTreasureInput are the generate_treasure tool arguments
type GenerateTreasureInput struct {
	Creatures int     `json:"creatures,omitempty" jsonschema:"number of creatures to roll for"`
	Gold      int     `json:"gold,omitempty" jsonschema:"budget per creature in gold pieces"`
	Seed      *uint64 `json:"seed,omitempty" jsonschema:"optional seed for reproducible rolls"`
}

// GenerateTreasureOutput holds one loot roll per creature
type GenerateTreasureOutput struct {
	Loot []*v1alpha1.Loot `json:"loot"`
}

// ListCreaturesInput are the list_creatures tool arguments
type ListCreaturesInput struct {
	Filter FilterInput `json:"filter,omitempty" jsonschema:"creature filters"`
	Limit  int         `json:"limit,omitempty" jsonschema:"maximum creatures to return"`
}

// ListCreaturesOutput is a page of matching creatures plus the total match count
type ListCreaturesOutput struct {
	Creatures []*v1alpha1.Creature `json:"creatures"`
	Total     int                  `json:"total"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "generate_encounter",
		Description: "Build a D&D 5e encounter for a target XP or a party, optionally with treasure",
	}, s.handleGenerateEncounter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "generate_treasure",
		Description: "Roll magic item treasure within a gold budget",
	}, s.handleGenerateTreasure)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_creatures",
		Description: "List catalog creatures matching a filter",
	}, s.handleListCreatures)
}

func (s *Server) handleGenerateEncounter(
	ctx context.Context,
	_ *sdk.CallToolRequest,
	input GenerateEncounterInput,
) (*sdk.CallToolResult, GenerateEncounterOutput, error) {
	filter, err := toFilter(input.Filter)
	if err != nil {
		return nil, GenerateEncounterOutput{}, err
	}

	req := &encounter.GenerateEncounterInput{
		TargetXP:        input.TargetXP,
		PartyLevels:     input.PartyLevels,
		MaxMonsters:     input.MaxMonsters,
		Filter:          filter,
		IncludeTreasure: input.IncludeTreasure,
		GoldPerCreature: input.GoldPerCreature,
		Seed:            input.Seed,
	}
	if input.Difficulty != "" {
		d, err := dnd5e.ParseDifficulty(input.Difficulty)
		if err != nil {
			return nil, GenerateEncounterOutput{}, errors.InvalidArgument(err.Error())
		}
		req.PartyDifficulty = d
	}
	if input.Plan != "" {
		plan, err := encengine.ParsePlan(input.Plan)
		if err != nil {
			return nil, GenerateEncounterOutput{}, err
		}
		req.Plan = plan
	}

	out, err := s.service.GenerateEncounter(ctx, req)
	if err != nil {
		slog.Warn("generate_encounter failed", "error", err)
		return nil, GenerateEncounterOutput{}, err
	}

	return nil, GenerateEncounterOutput{Encounter: v1alpha1.ToEncounter(out.Encounter)}, nil
}

func (s *Server) handleGenerateTreasure(
	ctx context.Context,
	_ *sdk.CallToolRequest,
	input GenerateTreasureInput,
) (*sdk.CallToolResult, GenerateTreasureOutput, error) {
	out, err := s.service.GenerateTreasure(ctx, &encounter.GenerateTreasureInput{
		Creatures: input.Creatures,
		Gold:      input.Gold,
		Seed:      input.Seed,
	})
	if err != nil {
		return nil, GenerateTreasureOutput{}, err
	}

	loot := make([]*v1alpha1.Loot, 0, len(out.Loot))
	for _, l := range out.Loot {
		loot = append(loot, v1alpha1.ToLoot(l))
	}
	return nil, GenerateTreasureOutput{Loot: loot}, nil
}

func (s *Server) handleListCreatures(
	ctx context.Context,
	_ *sdk.CallToolRequest,
	input ListCreaturesInput,
) (*sdk.CallToolResult, ListCreaturesOutput, error) {
	filter, err := toFilter(input.Filter)
	if err != nil {
		return nil, ListCreaturesOutput{}, err
	}

	out, err := s.service.ListCreatures(ctx, &encounter.ListCreaturesInput{Filter: filter, Limit: input.Limit})
	if err != nil {
		return nil, ListCreaturesOutput{}, err
	}

	creatures := make([]*v1alpha1.Creature, 0, len(out.Creatures))
	for _, c := range out.Creatures {
		creatures = append(creatures, v1alpha1.ToCreature(c))
	}
	return nil, ListCreaturesOutput{Creatures: creatures, Total: out.Total}, nil
}

func toFilter(in FilterInput) (encengine.Filter, error) {
	return v1alpha1.ToFilter(&v1alpha1.CreatureFilter{
		MinCR:        in.MinCR,
		MaxCR:        in.MaxCR,
		Environment:  in.Environment,
		Alignment:    in.Alignment,
		CreatureType: in.CreatureType,
		Size:         in.Size,
	})
}
