package catalog_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

type YAMLTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *YAMLTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *YAMLTestSuite) TestReadsCreatureFile() {
	repo, err := catalog.NewYAML(&catalog.YAMLConfig{
		CreaturesPath: filepath.Join("testdata", "creatures.yaml"),
		ItemsPath:     filepath.Join("testdata", "magic_items.yaml"),
	})
	s.Require().NoError(err)

	creatures, err := repo.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(creatures, 5)

	goblin := creatures[0]
	s.Equal("goblin", goblin.ID)
	s.Equal(dnd5e.CRQuarter, goblin.ChallengeRating)
	s.Equal(50, goblin.EffectiveXP())
	s.Equal([]string{"Forest", "Hill"}, goblin.Environments)

	s.Equal("dire-wolf", creatures[1].ID, "missing id is derived from the name")
	s.Equal(dnd5e.ChallengeRating(1), creatures[1].ChallengeRating)

	s.Equal(2000, creatures[2].EffectiveXP(), "explicit xp overrides the CR table")

	s.Equal(dnd5e.UnknownChallengeRating, creatures[3].ChallengeRating)
	s.Equal(0, creatures[3].EffectiveXP())

	s.Equal(0, creatures[4].XP)
	s.Equal(100, creatures[4].EffectiveXP(), "bad xp falls back to the CR table")
}

func (s *YAMLTestSuite) TestReadsItemFile() {
	repo, err := catalog.NewYAML(&catalog.YAMLConfig{
		ItemsPath: filepath.Join("testdata", "magic_items.yaml"),
	})
	s.Require().NoError(err)

	items, err := repo.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 5)

	s.Equal(dnd5e.RarityCommon, items[0].Rarity)
	s.True(items[0].Consumable)

	s.Equal("bag-of-holding", items[1].ID)
	s.Equal(dnd5e.RarityUncommon, items[1].Rarity)
	s.Equal(400, items[1].Value)

	s.Equal(dnd5e.RarityVeryRare, items[2].Rarity)

	s.Equal(dnd5e.Rarity("mythic"), items[3].Rarity)
	s.Equal(-1, items[3].Rarity.Rank())

	s.Equal(-1, items[4].Value)
}

func (s *YAMLTestSuite) TestEmbeddedCatalog() {
	repo := catalog.NewEmbedded()

	creatures, err := repo.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(creatures)
	for _, c := range creatures {
		s.NotEmpty(c.ID)
		s.True(c.ChallengeRating.IsValid(), "creature %s has invalid CR", c.ID)
	}

	items, err := repo.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(items)
	for _, item := range items {
		s.True(item.Rarity.IsValid(), "item %s has invalid rarity", item.ID)
		s.GreaterOrEqual(item.Value, 0)
	}
}

func (s *YAMLTestSuite) TestMissingFileAtConstruction() {
	_, err := catalog.NewYAML(&catalog.YAMLConfig{CreaturesPath: "testdata/nope.yaml"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *YAMLTestSuite) TestFileRemovedAfterConstruction() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "creatures.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("creatures: []\n"), 0o600))

	repo, err := catalog.NewYAML(&catalog.YAMLConfig{CreaturesPath: path})
	s.Require().NoError(err)
	s.Require().NoError(os.Remove(path))

	_, err = repo.ListCreatures(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *YAMLTestSuite) TestMalformedDocument() {
	_, err := catalog.ReadCreatures(strings.NewReader("creatures: {not: [a list"))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *YAMLTestSuite) TestEmptyDocument() {
	creatures, err := catalog.ReadCreatures(strings.NewReader(""))
	s.Require().NoError(err)
	s.Empty(creatures)
}

func (s *YAMLTestSuite) TestWriteThenRead() {
	var buf bytes.Buffer
	s.Require().NoError(catalog.WriteCreatures(&buf, testutils.SampleCreatures()))

	creatures, err := catalog.ReadCreatures(&buf)
	s.Require().NoError(err)
	s.Require().Len(creatures, len(testutils.SampleCreatures()))
	for i, want := range testutils.SampleCreatures() {
		s.Equal(want.ID, creatures[i].ID)
		s.Equal(want.ChallengeRating, creatures[i].ChallengeRating)
		s.Equal(want.EffectiveXP(), creatures[i].EffectiveXP())
	}

	buf.Reset()
	s.Require().NoError(catalog.WriteMagicItems(&buf, testutils.SampleMagicItems()))
	items, err := catalog.ReadMagicItems(&buf)
	s.Require().NoError(err)
	s.Equal(testutils.SampleMagicItems(), items)
}

func TestYAMLTestSuite(t *testing.T) {
	suite.Run(t, new(YAMLTestSuite))
}
