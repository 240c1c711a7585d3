package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

type SQLiteTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *catalog.SQLiteStore
}

func (s *SQLiteTestSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := catalog.OpenSQLite(":memory:")
	s.Require().NoError(err)
	s.store = store
}

func (s *SQLiteTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *SQLiteTestSuite) TestEmptyCatalog() {
	creatures, err := s.store.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Empty(creatures)

	items, err := s.store.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *SQLiteTestSuite) TestUpsertAndListCreatures() {
	n, err := s.store.UpsertCreatures(s.ctx, testutils.SampleCreatures())
	s.Require().NoError(err)
	s.Equal(6, n)

	creatures, err := s.store.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(creatures, 6)

	// ordered by CR then name
	s.Equal("rat", creatures[0].ID)
	s.Equal("goblin", creatures[1].ID)
	s.Equal("wolf", creatures[2].ID)
	s.Equal("winter-wolf", creatures[5].ID)

	goblin := creatures[1]
	s.Equal(50, goblin.XP)
	s.Equal("Small", goblin.Size)
	s.ElementsMatch([]string{"Forest", "Grassland", "Hill", "Underdark"}, goblin.Environments)
}

func (s *SQLiteTestSuite) TestUpsertReplacesEnvironments() {
	goblin := testutils.Goblin()
	_, err := s.store.UpsertCreatures(s.ctx, []*dnd5e.Creature{goblin})
	s.Require().NoError(err)

	goblin.Name = "Goblin Boss"
	goblin.ChallengeRating = 1
	goblin.Environments = []string{"Underdark"}
	_, err = s.store.UpsertCreatures(s.ctx, []*dnd5e.Creature{goblin})
	s.Require().NoError(err)

	creatures, err := s.store.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(creatures, 1)
	s.Equal("Goblin Boss", creatures[0].Name)
	s.Equal(dnd5e.ChallengeRating(1), creatures[0].ChallengeRating)
	s.Equal([]string{"Underdark"}, creatures[0].Environments)
}

func (s *SQLiteTestSuite) TestUpsertSkipsEntriesWithoutID() {
	n, err := s.store.UpsertCreatures(s.ctx, []*dnd5e.Creature{nil, {Name: "Nameless"}, testutils.Goblin()})
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *SQLiteTestSuite) TestUpsertAndListItems() {
	n, err := s.store.UpsertMagicItems(s.ctx, testutils.SampleMagicItems())
	s.Require().NoError(err)
	s.Equal(5, n)

	items, err := s.store.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 5)

	// ordered by value then name
	s.Equal("potion-of-healing", items[0].ID)
	s.Equal("flame-tongue", items[4].ID)

	s.ElementsMatch(testutils.SampleMagicItems(), items)
}

func (s *SQLiteTestSuite) TestFileDatabaseKeepsData() {
	path := filepath.Join(s.T().TempDir(), "catalog.db")

	store, err := catalog.OpenSQLite(path)
	s.Require().NoError(err)
	_, err = store.UpsertMagicItems(s.ctx, testutils.SampleMagicItems())
	s.Require().NoError(err)
	s.Require().NoError(store.Close())

	reopened, err := catalog.OpenSQLite(path)
	s.Require().NoError(err)
	defer func() { _ = reopened.Close() }()

	items, err := reopened.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 5)
}

func (s *SQLiteTestSuite) TestEmptyPath() {
	_, err := catalog.OpenSQLite("  ")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteTestSuite) TestNilStoreClose() {
	var store *catalog.SQLiteStore
	s.NoError(store.Close())
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}
