package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved encounters",
	Long: `Inspect saved encounters. History outlives a single command only with
FORGE_ENCOUNTER_STORE=redis.`,
}

var historyLimit int

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved encounters, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.ListEncounters(cmd.Context(), &encounter.ListEncountersInput{Limit: historyLimit})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(out.Encounters) == 0 {
			_, err = fmt.Fprintln(w, "no saved encounters")
			return err
		}
		for _, e := range out.Encounters {
			fmt.Fprintf(w, "%s  %s  %-6s  %d/%d XP  %d creatures\n",
				e.ID, e.CreatedAt.Format(time.RFC3339), e.Difficulty, e.AdjustedXP, e.TargetXP, e.CreatureCount())
		}
		return nil
	},
}

var historyGetCmd = &cobra.Command{
	Use:   "get [encounter-id]",
	Short: "Show a saved encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.GetEncounter(cmd.Context(), &encounter.GetEncounterInput{ID: args[0]})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Encounter(out.Encounter))
		return err
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [encounter-id]",
	Short: "Delete a saved encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.service.DeleteEncounter(cmd.Context(), &encounter.DeleteEncounterInput{ID: args[0]}); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return err
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum encounters to list")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyGetCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
