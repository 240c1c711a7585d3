// Package main is the entry point for the encounter-forge server and CLI
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/cmd/server/client"
	"github.com/KirkDiggler/encounter-forge/internal/config"
	"github.com/KirkDiggler/encounter-forge/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "encounter-forge",
	Short: "D&D 5e encounter and treasure generator",
	Long: `encounter-forge builds D&D 5e encounters that fit an XP budget and rolls
magic item treasure for them. It serves a gRPC API, MCP tools and local commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logCloser = logger.Setup(cfg.LoggerConfig())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(treasureCmd)
	rootCmd.AddCommand(creaturesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
