package catalog

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Writer persists catalog data
type Writer interface {
	UpsertCreatures(ctx context.Context, creatures []*dnd5e.Creature) (int, error)
	UpsertMagicItems(ctx context.Context, items []*dnd5e.MagicItem) (int, error)
}

// ImportResult counts the rows written by Import
type ImportResult struct {
	Creatures int
	Items     int
}

// Import copies creatures and items into dst. A nil source is skipped.
func Import(ctx context.Context, creatures CreatureSource, items ItemSource, dst Writer) (*ImportResult, error) {
	if dst == nil {
		return nil, errors.InvalidArgument("destination is required")
	}

	result := &ImportResult{}
	if creatures != nil {
		list, err := creatures.ListCreatures(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read creatures")
		}
		n, err := dst.UpsertCreatures(ctx, list)
		if err != nil {
			return nil, err
		}
		result.Creatures = n
	}

	if items != nil {
		list, err := items.ListMagicItems(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read magic items")
		}
		n, err := dst.UpsertMagicItems(ctx, list)
		if err != nil {
			return result, err
		}
		result.Items = n
	}

	slog.Info("catalog imported", "creatures", result.Creatures, "items", result.Items)
	return result, nil
}

var _ Writer = (*SQLiteStore)(nil)
