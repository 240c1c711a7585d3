package dnd5e_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

type CatalogTypesTestSuite struct {
	suite.Suite
}

func TestCatalogTypesSuite(t *testing.T) {
	suite.Run(t, new(CatalogTypesTestSuite))
}

func (s *CatalogTypesTestSuite) TestEffectiveXP() {
	goblin := &dnd5e.Creature{Name: "Goblin", ChallengeRating: dnd5e.CRQuarter}
	s.Equal(50, goblin.EffectiveXP())

	boss := &dnd5e.Creature{Name: "Boss Goblin", ChallengeRating: 1, XP: 250}
	s.Equal(250, boss.EffectiveXP())

	broken := &dnd5e.Creature{Name: "Broken", ChallengeRating: dnd5e.UnknownChallengeRating}
	s.Equal(0, broken.EffectiveXP())

	var missing *dnd5e.Creature
	s.Equal(0, missing.EffectiveXP())
}

func (s *CatalogTypesTestSuite) TestRarity() {
	s.Equal(0, dnd5e.RarityCommon.Rank())
	s.Equal(5, dnd5e.RarityArtifact.Rank())
	s.Equal(-1, dnd5e.Rarity("mythic").Rank())
	s.Equal("Very Rare", dnd5e.RarityVeryRare.String())

	for _, input := range []string{"Very Rare", "very-rare", "VERY_RARE"} {
		r, err := dnd5e.ParseRarity(input)
		s.Require().NoError(err, input)
		s.Equal(dnd5e.RarityVeryRare, r)
	}

	_, err := dnd5e.ParseRarity("mythic")
	s.Error(err)
}
