// Package encounter implements the encounter orchestrator: it loads the
// catalog, runs the generators and keeps encounter history.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/engine/treasure"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/clock"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/encounters"
)

const tracerName = "github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"

// Defaults applied when a request leaves a field at zero
const (
	DefaultMaxMonsters = 8
	DefaultGold        = 500
	MaxTreasureRolls   = 100
)

// Service defines the interface for encounter operations
type Service interface {
	// GenerateEncounter builds, saves and returns a new encounter
	GenerateEncounter(ctx context.Context, input *GenerateEncounterInput) (*GenerateEncounterOutput, error)

	// GenerateTreasure rolls loot without an encounter
	GenerateTreasure(ctx context.Context, input *GenerateTreasureInput) (*GenerateTreasureOutput, error)

	// GetEncounter loads a saved encounter
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)

	// ListEncounters returns saved encounters, newest first
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)

	// DeleteEncounter removes a saved encounter
	DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error)

	// ListCreatures previews which catalog creatures a filter matches
	ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Catalog     catalog.Repository
	Encounters  encounters.Repository
	EncounterID idgen.Generator
	InstanceID  idgen.Generator
	Clock       clock.Clock

	Generator *encengine.Generator
	Treasure  treasure.Config

	// Roller and Rand drive unseeded treasure; nil uses the defaults
	Roller dice.Roller
	Rand   treasure.Rand

	DefaultMaxMonsters int
	DefaultGold        int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Encounters == nil {
		vb.RequiredField("Encounters")
	}
	if c.EncounterID == nil {
		vb.RequiredField("EncounterID")
	}
	if c.InstanceID == nil {
		vb.RequiredField("InstanceID")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Generator == nil {
		vb.RequiredField("Generator")
	}
	if err := c.Treasure.Validate(); err != nil {
		vb.InvalidField("Treasure", err.Error())
	}
	errors.ValidateRange("DefaultMaxMonsters", c.DefaultMaxMonsters, 0, encengine.MaxMonstersLimit, vb)
	if c.DefaultGold < 0 {
		vb.InvalidField("DefaultGold", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog     catalog.Repository
	encounters  encounters.Repository
	encounterID idgen.Generator
	instanceID  idgen.Generator
	clock       clock.Clock
	generator   *encengine.Generator
	treasure    *treasure.Generator
	treasureCfg treasure.Config
	maxMonsters int
	gold        int
	tracer      trace.Tracer
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	loot, err := treasure.NewGenerator(cfg.Treasure, cfg.Roller, cfg.Rand)
	if err != nil {
		return nil, err
	}

	maxMonsters := cfg.DefaultMaxMonsters
	if maxMonsters == 0 {
		maxMonsters = DefaultMaxMonsters
	}
	gold := cfg.DefaultGold
	if gold == 0 {
		gold = DefaultGold
	}

	return &orchestrator{
		catalog:     cfg.Catalog,
		encounters:  cfg.Encounters,
		encounterID: cfg.EncounterID,
		instanceID:  cfg.InstanceID,
		clock:       cfg.Clock,
		generator:   cfg.Generator,
		treasure:    loot,
		treasureCfg: cfg.Treasure,
		maxMonsters: maxMonsters,
		gold:        gold,
		tracer:      otel.Tracer(tracerName),
	}, nil
}

// GenerateEncounter loads the creature catalog once, runs the generator and
// expands the selection into creature instances
func (o *orchestrator) GenerateEncounter(
	ctx context.Context,
	input *GenerateEncounterInput,
) (_ *GenerateEncounterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := o.tracer.Start(ctx, "encounter.GenerateEncounter")
	defer func() { endSpan(span, err) }()

	target, err := o.resolveTarget(input)
	if err != nil {
		return nil, err
	}
	maxMonsters := input.MaxMonsters
	if maxMonsters == 0 {
		maxMonsters = o.maxMonsters
	}
	span.SetAttributes(
		attribute.Int("encounter.target_xp", target),
		attribute.Int("encounter.max_monsters", maxMonsters),
	)

	pool, err := o.catalog.ListCreatures(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load creature catalog")
	}

	result, err := o.generator.Generate(pool, &encengine.Params{
		TargetXP:    target,
		MaxMonsters: maxMonsters,
		Filter:      input.Filter,
		Plan:        input.Plan,
	})
	if err != nil {
		slog.Info("Encounter generation failed",
			"target_xp", target,
			"filters", input.Filter.Active(),
			"code", errors.GetCode(err).String(),
		)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("encounter.strategy", result.Strategy.String()),
		attribute.String("encounter.difficulty", string(result.Difficulty)),
		attribute.Int("encounter.count", result.Count),
	)

	instances := encengine.Expand(result.Selection, o.instanceID)
	creatures := make([]*entities.EncounterCreature, 0, len(instances))
	for _, inst := range instances {
		creatures = append(creatures, &entities.EncounterCreature{
			InstanceID:      inst.ID,
			CreatureID:      inst.Creature.ID,
			Name:            inst.Creature.Name,
			ChallengeRating: inst.Creature.ChallengeRating,
			XP:              inst.Creature.EffectiveXP(),
			Ordinal:         inst.Ordinal,
		})
	}

	if input.IncludeTreasure {
		gold := input.GoldPerCreature
		if gold == 0 {
			gold = o.gold
		}
		loot, err := o.rollLoot(ctx, len(creatures), gold, input.Seed)
		if err != nil {
			return nil, err
		}
		for i, l := range loot {
			creatures[i].Loot = l
		}
	}

	enc := &entities.Encounter{
		ID:          o.encounterID.Generate(),
		TargetXP:    result.TargetXP,
		BaseXP:      result.BaseXP,
		Multiplier:  result.Multiplier,
		AdjustedXP:  result.AdjustedXP,
		Difficulty:  result.Difficulty,
		Strategy:    result.Strategy.String(),
		Relaxation:  string(result.Relaxation),
		Filters:     input.Filter.Active(),
		PartyLevels: input.PartyLevels,
		Creatures:   creatures,
		CreatedAt:   o.clock.Now(),
	}

	if _, err := o.encounters.Save(ctx, &encounters.SaveInput{Encounter: enc}); err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	slog.Info("Encounter generated",
		"encounter_id", enc.ID,
		"target_xp", enc.TargetXP,
		"adjusted_xp", enc.AdjustedXP,
		"difficulty", enc.Difficulty,
		"strategy", enc.Strategy,
		"creatures", enc.CreatureCount(),
	)

	return &GenerateEncounterOutput{Encounter: enc, Result: result}, nil
}

func (o *orchestrator) resolveTarget(input *GenerateEncounterInput) (int, error) {
	hasParty := len(input.PartyLevels) > 0
	switch {
	case input.MaxMonsters < 0 || input.MaxMonsters > encengine.MaxMonstersLimit:
		return 0, errors.InvalidArgumentf("max monsters must be between 1 and %d, got %d",
			encengine.MaxMonstersLimit, input.MaxMonsters)
	case len(input.PartyLevels) > dnd5e.MaxPartySize:
		return 0, errors.InvalidArgumentf("party of %d exceeds the limit of %d",
			len(input.PartyLevels), dnd5e.MaxPartySize)
	case input.TargetXP < 0:
		return 0, errors.InvalidArgumentf("target XP must be positive, got %d", input.TargetXP)
	case input.TargetXP > 0 && hasParty:
		return 0, errors.InvalidArgument("set either target XP or party levels, not both")
	case input.TargetXP > 0:
		return input.TargetXP, nil
	case !hasParty:
		return 0, errors.InvalidArgument("target XP or party levels are required")
	}

	difficulty := input.PartyDifficulty
	if difficulty == "" {
		difficulty = dnd5e.DifficultyMedium
	}
	target, err := dnd5e.PartyThreshold(input.PartyLevels, difficulty)
	if err != nil {
		return 0, errors.InvalidArgument(err.Error()).
			WithMeta("party_levels", input.PartyLevels).
			WithMeta("difficulty", string(difficulty))
	}
	return target, nil
}

// GenerateTreasure rolls loot for a number of anonymous creature instances
func (o *orchestrator) GenerateTreasure(
	ctx context.Context,
	input *GenerateTreasureInput,
) (_ *GenerateTreasureOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := o.tracer.Start(ctx, "encounter.GenerateTreasure")
	defer func() { endSpan(span, err) }()

	count := input.Creatures
	if count == 0 {
		count = 1
	}
	gold := input.Gold
	if gold == 0 {
		gold = o.gold
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("creatures", count, 1, MaxTreasureRolls, vb)
	if gold < 0 {
		vb.InvalidField("gold", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	loot, err := o.rollLoot(ctx, count, gold, input.Seed)
	if err != nil {
		return nil, err
	}
	return &GenerateTreasureOutput{Loot: loot}, nil
}

// rollLoot loads the item catalog once and rolls for each instance in order
func (o *orchestrator) rollLoot(ctx context.Context, count, gold int, seed *uint64) ([]*entities.Loot, error) {
	items, err := o.catalog.ListMagicItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load magic item catalog")
	}

	gen := o.treasure
	if seed != nil {
		gen, err = treasure.NewSeeded(o.treasureCfg, *seed)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*entities.Loot, 0, count)
	awarded := 0
	for i := 0; i < count; i++ {
		res, err := gen.Generate(gold, items)
		if err != nil {
			return nil, err
		}
		awarded += len(res.Items)
		out = append(out, &entities.Loot{
			Items:         res.Items,
			StartingGold:  res.StartingGold,
			RemainingGold: res.RemainingGold,
		})
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("treasure.instances", count),
		attribute.Int("treasure.items", awarded),
	)
	slog.Debug("Treasure rolled",
		"instances", count,
		"gold_each", gold,
		"items", awarded,
		"pool_size", len(items),
	)
	return out, nil
}

// GetEncounter loads a saved encounter
func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.encounters.Get(ctx, &encounters.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}
	return &GetEncounterOutput{Encounter: out.Encounter}, nil
}

// ListEncounters returns saved encounters, newest first
func (o *orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil {
		input = &ListEncountersInput{}
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgumentf("limit must not be negative, got %d", input.Limit)
	}

	out, err := o.encounters.List(ctx, &encounters.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, err
	}
	return &ListEncountersOutput{Encounters: out.Encounters}, nil
}

// DeleteEncounter removes a saved encounter
func (o *orchestrator) DeleteEncounter(
	ctx context.Context,
	input *DeleteEncounterInput,
) (*DeleteEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.encounters.Delete(ctx, &encounters.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}
	slog.Info("Encounter deleted", "encounter_id", input.ID)
	return &DeleteEncounterOutput{}, nil
}

// ListCreatures applies the filter to the catalog without generating
func (o *orchestrator) ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error) {
	if input == nil {
		input = &ListCreaturesInput{}
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgumentf("limit must not be negative, got %d", input.Limit)
	}
	if err := input.Filter.Validate(); err != nil {
		return nil, err
	}

	pool, err := o.catalog.ListCreatures(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load creature catalog")
	}

	matched := input.Filter.Apply(pool)
	total := len(matched)
	if input.Limit > 0 && len(matched) > input.Limit {
		matched = matched[:input.Limit]
	}
	return &ListCreaturesOutput{Creatures: matched, Total: total}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, errors.GetMessage(err))
	}
	span.End()
}
