package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/encounter-forge/internal/clients/external"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/redis"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
)

var (
	importFrom      string
	importCreatures string
	importItems     string
	importDB        string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a catalog into the SQLite store",
	Long: `Load creatures and magic items into the SQLite catalog, then drop any
cached copy in Redis.

  import --from yaml --creatures monsters.yaml --items items.yaml
  import --from srd            # creatures from the SRD API, items embedded`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var creatures catalog.CreatureSource
		var items catalog.ItemSource
		switch importFrom {
		case "yaml":
			repo, err := catalog.NewYAML(&catalog.YAMLConfig{CreaturesPath: importCreatures, ItemsPath: importItems})
			if err != nil {
				return err
			}
			creatures, items = repo, repo
		case "srd":
			srd, err := external.New(&external.Config{BaseURL: cfg.SRDBaseURL})
			if err != nil {
				return err
			}
			repo, err := catalog.NewYAML(&catalog.YAMLConfig{ItemsPath: importItems})
			if err != nil {
				return err
			}
			creatures, items = srd, repo
		default:
			return errors.InvalidArgumentf("unknown import source %q, want yaml or srd", importFrom)
		}

		path := importDB
		if path == "" {
			path = cfg.SQLitePath
		}
		store, err := catalog.OpenSQLite(path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		result, err := catalog.Import(ctx, creatures, items, store)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d creatures and %d magic items into %s\n",
			result.Creatures, result.Items, path)

		if cfg.RedisAddr == "" {
			return nil
		}
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		cache, err := catalog.NewRedisCache(&catalog.CacheConfig{Client: client, Source: store})
		if err != nil {
			return err
		}
		if inv, ok := cache.(catalog.Invalidator); ok {
			if err := inv.Invalidate(ctx); err != nil {
				return errors.Wrap(err, "failed to invalidate catalog cache")
			}
		}
		return nil
	},
}

var (
	exportCreatures string
	exportItems     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := &app{}
		defer a.Close()

		repo, err := newCatalog(cfg, a)
		if err != nil {
			return err
		}

		creatures, err := repo.ListCreatures(cmd.Context())
		if err != nil {
			return err
		}
		items, err := repo.ListMagicItems(cmd.Context())
		if err != nil {
			return err
		}

		if err := writeFile(exportCreatures, func(f *os.File) error { return catalog.WriteCreatures(f, creatures) }); err != nil {
			return err
		}
		if err := writeFile(exportItems, func(f *os.File) error { return catalog.WriteMagicItems(f, items) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d creatures to %s and %d magic items to %s\n",
			len(creatures), exportCreatures, len(items), exportItems)
		return nil
	},
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "yaml", "Source: yaml or srd")
	importCmd.Flags().StringVar(&importCreatures, "creatures", "", "Creature YAML file (embedded catalog when empty)")
	importCmd.Flags().StringVar(&importItems, "items", "", "Magic item YAML file (embedded catalog when empty)")
	importCmd.Flags().StringVar(&importDB, "db", "", "SQLite path (overrides FORGE_SQLITE_PATH)")

	exportCmd.Flags().StringVar(&exportCreatures, "creatures", "creatures.yaml", "Creature output file")
	exportCmd.Flags().StringVar(&exportItems, "items", "magic_items.yaml", "Magic item output file")
}
