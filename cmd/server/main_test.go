package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/config"
	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

type CommandTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Config
}

func (s *CommandTestSuite) SetupTest() {
	s.ctx = context.Background()

	loaded, err := config.LoadFrom(map[string]string{})
	s.Require().NoError(err)
	s.cfg = loaded
}

func (s *CommandTestSuite) TestGenerateFlagsToInput() {
	flags := generateFlags{
		filter:      filterFlags{minCR: "1/4", maxCR: "3", environment: "Forest"},
		party:       []int{3, 3},
		difficulty:  "hard",
		maxMonsters: 5,
		plan:        "mixed:3",
		treasure:    true,
		gold:        200,
		seed:        9,
		seedSet:     true,
	}

	input, err := flags.toInput()
	s.Require().NoError(err)
	s.Equal([]int{3, 3}, input.PartyLevels)
	s.Equal(dnd5e.DifficultyHard, input.PartyDifficulty)
	s.Equal(5, input.MaxMonsters)
	s.Equal(encengine.Plan{{Strategy: encengine.StrategyMixed, Cap: 3}}, input.Plan)
	s.Require().NotNil(input.Filter.MinCR)
	s.Equal(dnd5e.CRQuarter, *input.Filter.MinCR)
	s.Require().NotNil(input.Seed)
	s.Equal(uint64(9), *input.Seed)

	flags.seedSet = false
	input, err = flags.toInput()
	s.Require().NoError(err)
	s.Nil(input.Seed)
}

func (s *CommandTestSuite) TestGenerateFlagsRejectBadValues() {
	_, err := (&generateFlags{filter: filterFlags{maxCR: "big"}}).toInput()
	s.True(errors.IsInvalidArgument(err))

	_, err = (&generateFlags{difficulty: "legendary"}).toInput()
	s.True(errors.IsInvalidArgument(err))

	_, err = (&generateFlags{plan: "single:x"}).toInput()
	s.True(errors.IsInvalidArgument(err))
}

func (s *CommandTestSuite) TestNewAppWithEmbeddedCatalog() {
	a, err := newApp(s.ctx, s.cfg)
	s.Require().NoError(err)
	defer a.Close()
	s.Nil(a.cache)

	out, err := a.service.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{TargetXP: 450})
	s.Require().NoError(err)
	s.NotEmpty(out.Encounter.Creatures)

	got, err := a.service.GetEncounter(s.ctx, &encounter.GetEncounterInput{ID: out.Encounter.ID})
	s.Require().NoError(err)
	s.Equal(out.Encounter.AdjustedXP, got.Encounter.AdjustedXP)
}

func (s *CommandTestSuite) TestNewAppWithSQLiteCatalog() {
	path := filepath.Join(s.T().TempDir(), "catalog.db")
	store, err := catalog.OpenSQLite(path)
	s.Require().NoError(err)
	src := &catalog.Static{Creatures: testutils.SampleCreatures(), Items: testutils.SampleMagicItems()}
	_, err = catalog.Import(s.ctx, src, src, store)
	s.Require().NoError(err)
	s.Require().NoError(store.Close())

	s.cfg.CatalogSource = config.SourceSQLite
	s.cfg.SQLitePath = path

	a, err := newApp(s.ctx, s.cfg)
	s.Require().NoError(err)
	defer a.Close()

	out, err := a.service.ListCreatures(s.ctx, &encounter.ListCreaturesInput{})
	s.Require().NoError(err)
	s.Equal(6, out.Total)
}

func (s *CommandTestSuite) TestNewAppWithRedis() {
	_, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	defer cleanup()

	s.cfg.RedisAddr = mr.Addr()
	s.cfg.EncounterStore = config.StoreRedis

	a, err := newApp(s.ctx, s.cfg)
	s.Require().NoError(err)
	defer a.Close()
	s.NotNil(a.cache)

	out, err := a.service.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{TargetXP: 100})
	s.Require().NoError(err)
	s.True(mr.Exists("encounter:" + out.Encounter.ID))
	s.True(mr.Exists("catalog:creatures"))
}

func (s *CommandTestSuite) TestGenerateCommandJSON() {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"generate", "--xp", "45", "--environment", "Forest", "--json"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	s.Require().NoError(rootCmd.Execute())

	var enc entities.Encounter
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &enc))
	s.Equal(45, enc.TargetXP)
	s.NotEmpty(enc.Creatures)
	s.Equal("Forest", enc.Filters["environment"])
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
