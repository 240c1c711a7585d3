package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/render"
)

// filterFlags binds the creature filter flags shared by several commands
type filterFlags struct {
	minCR        string
	maxCR        string
	environment  string
	alignment    string
	creatureType string
	size         string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.minCR, "min-cr", "", "Lowest challenge rating, e.g. 1/4")
	fs.StringVar(&f.maxCR, "max-cr", "", "Highest challenge rating")
	fs.StringVar(&f.environment, "environment", "", "Environment tag, or Any")
	fs.StringVar(&f.alignment, "alignment", "", "Alignment, e.g. \"Chaotic Evil\"")
	fs.StringVar(&f.creatureType, "type", "", "Creature type, e.g. Humanoid")
	fs.StringVar(&f.size, "size", "", "Creature size, e.g. Medium")
}

func (f *filterFlags) toFilter() (encengine.Filter, error) {
	out := encengine.Filter{
		Environment:  f.environment,
		Alignment:    f.alignment,
		CreatureType: f.creatureType,
		Size:         f.size,
	}

	vb := errors.NewValidationBuilder()
	if f.minCR != "" {
		cr, err := dnd5e.ParseChallengeRating(f.minCR)
		if err != nil {
			vb.InvalidField("min-cr", err.Error())
		}
		out.MinCR = cr.Ptr()
	}
	if f.maxCR != "" {
		cr, err := dnd5e.ParseChallengeRating(f.maxCR)
		if err != nil {
			vb.InvalidField("max-cr", err.Error())
		}
		out.MaxCR = cr.Ptr()
	}
	if err := vb.Build(); err != nil {
		return encengine.Filter{}, err
	}
	if err := out.Validate(); err != nil {
		return encengine.Filter{}, err
	}
	return out, nil
}

// generateFlags binds the generate command flags
type generateFlags struct {
	filter      filterFlags
	targetXP    int
	party       []int
	difficulty  string
	maxMonsters int
	plan        string
	treasure    bool
	gold        int
	seed        uint64
	seedSet     bool
	asJSON      bool
}

func (g *generateFlags) toInput() (*encounter.GenerateEncounterInput, error) {
	filter, err := g.filter.toFilter()
	if err != nil {
		return nil, err
	}

	input := &encounter.GenerateEncounterInput{
		TargetXP:        g.targetXP,
		PartyLevels:     g.party,
		MaxMonsters:     g.maxMonsters,
		Filter:          filter,
		IncludeTreasure: g.treasure,
		GoldPerCreature: g.gold,
	}
	if g.difficulty != "" {
		d, err := dnd5e.ParseDifficulty(g.difficulty)
		if err != nil {
			return nil, errors.InvalidArgument(err.Error())
		}
		input.PartyDifficulty = d
	}
	if g.plan != "" {
		plan, err := encengine.ParsePlan(g.plan)
		if err != nil {
			return nil, err
		}
		input.Plan = plan
	}
	if g.seedSet {
		seed := g.seed
		input.Seed = &seed
	}
	return input, nil
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an encounter locally",
	Long: `Generate an encounter against the configured catalog without a server.

  generate --xp 450 --environment Forest
  generate --party 3,3,4,4 --difficulty hard --treasure
  generate --xp 1200 --plan mixed:5 --max-cr 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		genFlags.seedSet = cmd.Flags().Changed("seed")
		input, err := genFlags.toInput()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.GenerateEncounter(cmd.Context(), input)
		if err != nil {
			return err
		}
		if genFlags.asJSON {
			return writeJSON(cmd.OutOrStdout(), out.Encounter)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Encounter(out.Encounter))
		return err
	},
}

var (
	treasureCreatures int
	treasureGold      int
	treasureSeed      uint64
	treasureJSON      bool
)

var treasureCmd = &cobra.Command{
	Use:   "treasure",
	Short: "Roll treasure locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &encounter.GenerateTreasureInput{
			Creatures: treasureCreatures,
			Gold:      treasureGold,
		}
		if cmd.Flags().Changed("seed") {
			seed := treasureSeed
			input.Seed = &seed
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.GenerateTreasure(cmd.Context(), input)
		if err != nil {
			return err
		}
		if treasureJSON {
			return writeJSON(cmd.OutOrStdout(), out.Loot)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Treasure(out.Loot))
		return err
	},
}

var (
	creatureFilter filterFlags
	creatureLimit  int
)

var creaturesCmd = &cobra.Command{
	Use:   "creatures",
	Short: "List catalog creatures matching a filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := creatureFilter.toFilter()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.ListCreatures(cmd.Context(), &encounter.ListCreaturesInput{
			Filter: filter,
			Limit:  creatureLimit,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Creatures(out.Creatures, out.Total))
		return err
	},
}

func init() {
	f := generateCmd.Flags()
	genFlags.filter.register(f)
	f.IntVar(&genFlags.targetXP, "xp", 0, "Target XP budget")
	f.IntSliceVar(&genFlags.party, "party", nil, "Party levels, e.g. 3,3,4")
	f.StringVar(&genFlags.difficulty, "difficulty", "", "Party difficulty: easy, medium, hard or deadly")
	f.IntVar(&genFlags.maxMonsters, "max", 0, "Maximum creatures")
	f.StringVar(&genFlags.plan, "plan", "", "Strategy plan, e.g. single,multiple:4,mixed")
	f.BoolVar(&genFlags.treasure, "treasure", false, "Roll treasure for every creature")
	f.IntVar(&genFlags.gold, "gold", 0, "Treasure budget per creature")
	f.Uint64Var(&genFlags.seed, "seed", 0, "Seed for reproducible treasure")
	f.BoolVar(&genFlags.asJSON, "json", false, "Print JSON instead of a card")

	tf := treasureCmd.Flags()
	tf.IntVar(&treasureCreatures, "creatures", 1, "Number of creatures to roll for")
	tf.IntVar(&treasureGold, "gold", 0, "Budget per creature")
	tf.Uint64Var(&treasureSeed, "seed", 0, "Seed for reproducible rolls")
	tf.BoolVar(&treasureJSON, "json", false, "Print JSON instead of cards")

	creatureFilter.register(creaturesCmd.Flags())
	creaturesCmd.Flags().IntVar(&creatureLimit, "limit", 25, "Maximum creatures to print")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
