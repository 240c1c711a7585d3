// Package v1alpha1 handles the encounter gRPC service interface
package v1alpha1

import (
	"context"
	"strings"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
)

// HandlerConfig holds dependencies for the encounter handler
type HandlerConfig struct {
	EncounterService encounter.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.EncounterService == nil {
		return errors.InvalidArgument("encounter service is required")
	}
	return nil
}

// Handler implements EncounterServiceServer
type Handler struct {
	encounterService encounter.Service
}

// NewHandler creates a new encounter handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{encounterService: cfg.EncounterService}, nil
}

var _ EncounterServiceServer = (*Handler)(nil)

// GenerateEncounter builds and saves a new encounter
func (h *Handler) GenerateEncounter(
	ctx context.Context,
	req *GenerateEncounterRequest,
) (*GenerateEncounterResponse, error) {
	input, err := toGenerateInput(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.encounterService.GenerateEncounter(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GenerateEncounterResponse{Encounter: ToEncounter(output.Encounter)}, nil
}

// GenerateTreasure rolls loot without an encounter
func (h *Handler) GenerateTreasure(
	ctx context.Context,
	req *GenerateTreasureRequest,
) (*GenerateTreasureResponse, error) {
	output, err := h.encounterService.GenerateTreasure(ctx, &encounter.GenerateTreasureInput{
		Creatures: req.Creatures,
		Gold:      req.Gold,
		Seed:      req.Seed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	loot := make([]*Loot, 0, len(output.Loot))
	for _, l := range output.Loot {
		loot = append(loot, ToLoot(l))
	}
	return &GenerateTreasureResponse{Loot: loot}, nil
}

// GetEncounter loads a saved encounter
func (h *Handler) GetEncounter(ctx context.Context, req *GetEncounterRequest) (*GetEncounterResponse, error) {
	if req.EncounterID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("encounter_id is required"))
	}

	output, err := h.encounterService.GetEncounter(ctx, &encounter.GetEncounterInput{ID: req.EncounterID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetEncounterResponse{Encounter: ToEncounter(output.Encounter)}, nil
}

// ListEncounters lists saved encounters
func (h *Handler) ListEncounters(ctx context.Context, req *ListEncountersRequest) (*ListEncountersResponse, error) {
	output, err := h.encounterService.ListEncounters(ctx, &encounter.ListEncountersInput{Limit: req.Limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out := make([]*Encounter, 0, len(output.Encounters))
	for _, e := range output.Encounters {
		out = append(out, ToEncounter(e))
	}
	return &ListEncountersResponse{Encounters: out}, nil
}

// DeleteEncounter removes a saved encounter
func (h *Handler) DeleteEncounter(
	ctx context.Context,
	req *DeleteEncounterRequest,
) (*DeleteEncounterResponse, error) {
	if req.EncounterID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("encounter_id is required"))
	}

	if _, err := h.encounterService.DeleteEncounter(ctx, &encounter.DeleteEncounterInput{ID: req.EncounterID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &DeleteEncounterResponse{}, nil
}

// ListCreatures previews a filter against the catalog
func (h *Handler) ListCreatures(ctx context.Context, req *ListCreaturesRequest) (*ListCreaturesResponse, error) {
	filter, err := ToFilter(req.Filter)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.encounterService.ListCreatures(ctx, &encounter.ListCreaturesInput{
		Filter: filter,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	creatures := make([]*Creature, 0, len(output.Creatures))
	for _, c := range output.Creatures {
		creatures = append(creatures, ToCreature(c))
	}
	return &ListCreaturesResponse{Creatures: creatures, Total: output.Total}, nil
}

func toGenerateInput(req *GenerateEncounterRequest) (*encounter.GenerateEncounterInput, error) {
	filter, err := ToFilter(req.Filter)
	if err != nil {
		return nil, err
	}

	input := &encounter.GenerateEncounterInput{
		TargetXP:        req.TargetXP,
		PartyLevels:     req.PartyLevels,
		MaxMonsters:     req.MaxMonsters,
		Filter:          filter,
		IncludeTreasure: req.IncludeTreasure,
		GoldPerCreature: req.GoldPerCreature,
		Seed:            req.Seed,
	}

	if req.PartyDifficulty != "" {
		d, err := dnd5e.ParseDifficulty(req.PartyDifficulty)
		if err != nil {
			return nil, errors.InvalidArgument(err.Error())
		}
		input.PartyDifficulty = d
	}

	if strings.TrimSpace(req.Plan) != "" {
		plan, err := encengine.ParsePlan(req.Plan)
		if err != nil {
			return nil, err
		}
		input.Plan = plan
	}

	return input, nil
}

// ToFilter parses a wire filter. A nil filter matches everything.
func ToFilter(f *CreatureFilter) (encengine.Filter, error) {
	if f == nil {
		return encengine.Filter{}, nil
	}

	out := encengine.Filter{
		Environment:  f.Environment,
		Alignment:    f.Alignment,
		CreatureType: f.CreatureType,
		Size:         f.Size,
	}

	vb := errors.NewValidationBuilder()
	if f.MinCR != "" {
		cr, err := dnd5e.ParseChallengeRating(f.MinCR)
		if err != nil {
			vb.InvalidField("min_cr", err.Error())
		} else {
			out.MinCR = cr.Ptr()
		}
	}
	if f.MaxCR != "" {
		cr, err := dnd5e.ParseChallengeRating(f.MaxCR)
		if err != nil {
			vb.InvalidField("max_cr", err.Error())
		} else {
			out.MaxCR = cr.Ptr()
		}
	}
	if err := vb.Build(); err != nil {
		return encengine.Filter{}, err
	}
	if err := out.Validate(); err != nil {
		return encengine.Filter{}, err
	}
	return out, nil
}

// ToEncounter converts a saved encounter to its wire form
func ToEncounter(e *entities.Encounter) *Encounter {
	if e == nil {
		return nil
	}

	creatures := make([]*CreatureInstance, 0, len(e.Creatures))
	for _, c := range e.Creatures {
		creatures = append(creatures, &CreatureInstance{
			InstanceID:      c.InstanceID,
			CreatureID:      c.CreatureID,
			Name:            c.Name,
			ChallengeRating: c.ChallengeRating.String(),
			XP:              c.XP,
			Ordinal:         c.Ordinal,
			Loot:            ToLoot(c.Loot),
		})
	}

	return &Encounter{
		ID:          e.ID,
		TargetXP:    e.TargetXP,
		BaseXP:      e.BaseXP,
		Multiplier:  e.Multiplier,
		AdjustedXP:  e.AdjustedXP,
		Difficulty:  string(e.Difficulty),
		Strategy:    e.Strategy,
		Relaxation:  e.Relaxation,
		Filters:     e.Filters,
		PartyLevels: e.PartyLevels,
		Creatures:   creatures,
		CreatedAt:   e.CreatedAt.Unix(),
	}
}

// ToLoot converts rolled treasure to its wire form
func ToLoot(l *entities.Loot) *Loot {
	if l == nil {
		return nil
	}
	items := make([]*MagicItem, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, &MagicItem{
			ID:         item.ID,
			Name:       item.Name,
			Rarity:     string(item.Rarity),
			Value:      item.Value,
			Wondrous:   item.Wondrous,
			Consumable: item.Consumable,
			Attunement: item.Attunement,
		})
	}
	return &Loot{
		Items:         items,
		StartingGold:  l.StartingGold,
		RemainingGold: l.RemainingGold,
	}
}

// ToCreature converts catalog data to its wire form
func ToCreature(c *dnd5e.Creature) *Creature {
	return &Creature{
		ID:              c.ID,
		Name:            c.Name,
		ChallengeRating: c.ChallengeRating.String(),
		XP:              c.EffectiveXP(),
		CreatureType:    c.CreatureType,
		Alignment:       c.Alignment,
		Size:            c.Size,
		Environments:    c.Environments,
	}
}
