package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/internal/handlers/encounter/v1alpha1"
)

var (
	treasureCreatures int
	treasureGold      int
	treasureSeed      uint64
)

var treasureCmd = &cobra.Command{
	Use:   "treasure",
	Short: "Roll treasure on the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := createEncounterClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		req := &v1alpha1.GenerateTreasureRequest{Creatures: treasureCreatures, Gold: treasureGold}
		if cmd.Flags().Changed("seed") {
			req.Seed = &treasureSeed
		}

		resp, err := client.GenerateTreasure(ctx, req)
		if err != nil {
			return callError("failed to roll treasure", err)
		}
		return printJSON(cmd, resp.Loot)
	},
}

func init() {
	treasureCmd.Flags().IntVar(&treasureCreatures, "creatures", 1, "Number of creatures to roll for")
	treasureCmd.Flags().IntVar(&treasureGold, "gold", 0, "Budget per creature")
	treasureCmd.Flags().Uint64Var(&treasureSeed, "seed", 0, "Seed for reproducible rolls")
}
