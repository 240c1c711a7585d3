package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/internal/handlers/encounter/v1alpha1"
)

var (
	filter      v1alpha1.CreatureFilter
	targetXP    int
	party       []int
	difficulty  string
	maxMonsters int
	plan        string
	withLoot    bool
	gold        int
	seed        uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an encounter on the server",
	Long: `Generate and save an encounter. Examples:

  client generate --xp 450 --environment Forest
  client generate --party 3,3,4 --difficulty deadly --treasure`,
	RunE: runGenerate,
}

func init() {
	registerFilterFlags(generateCmd, &filter)
	f := generateCmd.Flags()
	f.IntVar(&targetXP, "xp", 0, "Target XP budget")
	f.IntSliceVar(&party, "party", nil, "Party levels, e.g. 3,3,4")
	f.StringVar(&difficulty, "difficulty", "", "Party difficulty")
	f.IntVar(&maxMonsters, "max", 0, "Maximum creatures")
	f.StringVar(&plan, "plan", "", "Strategy plan, e.g. single,multiple:4,mixed")
	f.BoolVar(&withLoot, "treasure", false, "Roll treasure for every creature")
	f.IntVar(&gold, "gold", 0, "Treasure budget per creature")
	f.Uint64Var(&seed, "seed", 0, "Seed for reproducible treasure")
}

func registerFilterFlags(cmd *cobra.Command, f *v1alpha1.CreatureFilter) {
	cmd.Flags().StringVar(&f.MinCR, "min-cr", "", "Lowest challenge rating")
	cmd.Flags().StringVar(&f.MaxCR, "max-cr", "", "Highest challenge rating")
	cmd.Flags().StringVar(&f.Environment, "environment", "", "Environment tag")
	cmd.Flags().StringVar(&f.Alignment, "alignment", "", "Alignment")
	cmd.Flags().StringVar(&f.CreatureType, "type", "", "Creature type")
	cmd.Flags().StringVar(&f.Size, "size", "", "Creature size")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createEncounterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req := &v1alpha1.GenerateEncounterRequest{
		TargetXP:        targetXP,
		PartyLevels:     party,
		PartyDifficulty: difficulty,
		MaxMonsters:     maxMonsters,
		Filter:          &filter,
		Plan:            plan,
		IncludeTreasure: withLoot,
		GoldPerCreature: gold,
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = &seed
	}

	resp, err := client.GenerateEncounter(ctx, req)
	if err != nil {
		return callError("failed to generate encounter", err)
	}

	enc := resp.Encounter
	fmt.Fprintf(cmd.OutOrStdout(), "Encounter %s: %d adjusted XP against %d (%s)\n",
		enc.ID, enc.AdjustedXP, enc.TargetXP, enc.Difficulty)
	return printJSON(cmd, enc)
}
