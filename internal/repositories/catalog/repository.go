// Package catalog provides creature and magic item reference data. Sources are
// a YAML file pair, a SQLite database and the SRD API; a Redis decorator caches
// any of them.
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/encounter-forge/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// CreatureSource lists creature reference data
type CreatureSource interface {
	ListCreatures(ctx context.Context) ([]*dnd5e.Creature, error)
}

// ItemSource lists magic item reference data
type ItemSource interface {
	ListMagicItems(ctx context.Context) ([]*dnd5e.MagicItem, error)
}

// Repository is a full catalog
type Repository interface {
	CreatureSource
	ItemSource
}

// Split serves creatures and items from different sources
type Split struct {
	Creatures CreatureSource
	Items     ItemSource
}

// ListCreatures delegates to the creature source
func (s *Split) ListCreatures(ctx context.Context) ([]*dnd5e.Creature, error) {
	return s.Creatures.ListCreatures(ctx)
}

// ListMagicItems delegates to the item source
func (s *Split) ListMagicItems(ctx context.Context) ([]*dnd5e.MagicItem, error) {
	return s.Items.ListMagicItems(ctx)
}

// Static serves fixed slices
type Static struct {
	Creatures []*dnd5e.Creature
	Items     []*dnd5e.MagicItem
}

// ListCreatures returns the fixed creatures
func (s *Static) ListCreatures(_ context.Context) ([]*dnd5e.Creature, error) {
	return s.Creatures, nil
}

// ListMagicItems returns the fixed items
func (s *Static) ListMagicItems(_ context.Context) ([]*dnd5e.MagicItem, error) {
	return s.Items, nil
}

var (
	_ Repository = (*Split)(nil)
	_ Repository = (*Static)(nil)
)
