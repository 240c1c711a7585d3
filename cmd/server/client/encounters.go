package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/internal/handlers/encounter/v1alpha1"
)

var getEncounterCmd = &cobra.Command{
	Use:   "get-encounter [encounter-id]",
	Short: "Get a saved encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := createEncounterClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.GetEncounter(ctx, &v1alpha1.GetEncounterRequest{EncounterID: args[0]})
		if err != nil {
			return callError("failed to get encounter", err)
		}
		return printJSON(cmd, resp.Encounter)
	},
}

var listLimit int

var listEncountersCmd = &cobra.Command{
	Use:   "list-encounters",
	Short: "List saved encounters, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := createEncounterClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.ListEncounters(ctx, &v1alpha1.ListEncountersRequest{Limit: listLimit})
		if err != nil {
			return callError("failed to list encounters", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Found %d encounters\n", len(resp.Encounters))
		for _, e := range resp.Encounters {
			fmt.Fprintf(w, "  %s  %s  %s  %d creatures\n",
				e.ID, time.Unix(e.CreatedAt, 0).Format(time.RFC3339), e.Difficulty, len(e.Creatures))
		}
		return nil
	},
}

var deleteEncounterCmd = &cobra.Command{
	Use:   "delete-encounter [encounter-id]",
	Short: "Delete a saved encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := createEncounterClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := client.DeleteEncounter(ctx, &v1alpha1.DeleteEncounterRequest{EncounterID: args[0]}); err != nil {
			return callError("failed to delete encounter", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var (
	creatureFilter v1alpha1.CreatureFilter
	creatureLimit  int
)

var creaturesCmd = &cobra.Command{
	Use:   "creatures",
	Short: "List catalog creatures matching a filter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := createEncounterClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.ListCreatures(ctx, &v1alpha1.ListCreaturesRequest{
			Filter: &creatureFilter,
			Limit:  creatureLimit,
		})
		if err != nil {
			return callError("failed to list creatures", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Showing %d of %d creatures\n", len(resp.Creatures), resp.Total)
		for _, c := range resp.Creatures {
			fmt.Fprintf(w, "  %-28s CR %-4s %5d XP\n", c.Name, c.ChallengeRating, c.XP)
		}
		return nil
	},
}

func init() {
	listEncountersCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum encounters")

	registerFilterFlags(creaturesCmd, &creatureFilter)
	creaturesCmd.Flags().IntVar(&creatureLimit, "limit", 25, "Maximum creatures")
}
