package encounter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/engine/treasure"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/clock"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/idgen"
	catalogmock "github.com/KirkDiggler/encounter-forge/internal/repositories/catalog/mock"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/encounters"
	encountermock "github.com/KirkDiggler/encounter-forge/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	catalog      *catalogmock.MockRepository
	history      *encountermock.MockRepository
	roller       *testutils.ScriptedRoller
	orchestrator encounter.Service
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.catalog = catalogmock.NewMockRepository(s.ctrl)
	s.history = encountermock.NewMockRepository(s.ctrl)
	s.roller = testutils.NewScriptedRoller()
	s.orchestrator = s.newOrchestrator(s.roller)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) config() *encounter.Config {
	gen, err := encengine.NewGenerator(encengine.DefaultConfig())
	s.Require().NoError(err)

	return &encounter.Config{
		Catalog:     s.catalog,
		Encounters:  s.history,
		EncounterID: idgen.NewSequential(idgen.PrefixEncounter),
		InstanceID:  idgen.NewSequential(idgen.PrefixInstance),
		Clock:       &clock.Fixed{At: now},
		Generator:   gen,
		Treasure:    treasure.DefaultConfig(),
		Rand:        testutils.NewFixedRand(0),
	}
}

func (s *OrchestratorTestSuite) newOrchestrator(roller *testutils.ScriptedRoller) encounter.Service {
	cfg := s.config()
	cfg.Roller = roller

	svc, err := encounter.NewOrchestrator(cfg)
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) expectSave() *gomock.Call {
	return s.history.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *encounters.SaveInput) (*encounters.SaveOutput, error) {
			return &encounters.SaveOutput{Encounter: in.Encounter}, nil
		})
}

func (s *OrchestratorTestSuite) TestGenerateGoblinScenario() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return([]*dnd5e.Creature{testutils.Goblin()}, nil)
	s.expectSave()

	out, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
		TargetXP:    45,
		MaxMonsters: 4,
	})
	s.Require().NoError(err)

	enc := out.Encounter
	s.Equal("enc_1", enc.ID)
	s.Equal(45, enc.TargetXP)
	s.Equal(50, enc.AdjustedXP)
	s.Equal(dnd5e.DifficultyHard, enc.Difficulty)
	s.Equal("single", enc.Strategy)
	s.Equal("none", enc.Relaxation)
	s.Equal(now, enc.CreatedAt)
	s.Require().Len(enc.Creatures, 1)
	s.Equal("crt_1", enc.Creatures[0].InstanceID)
	s.Equal("goblin", enc.Creatures[0].CreatureID)
	s.Nil(enc.Creatures[0].Loot)
}

func (s *OrchestratorTestSuite) TestGenerateFromParty() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(testutils.SampleCreatures(), nil)
	s.expectSave()

	out, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
		PartyLevels:     []int{1, 1},
		PartyDifficulty: dnd5e.DifficultyEasy,
	})
	s.Require().NoError(err)

	// two level 1 characters at easy is 50 XP, which one goblin fills exactly
	s.Equal(50, out.Encounter.TargetXP)
	s.Equal([]int{1, 1}, out.Encounter.PartyLevels)
	s.Equal(dnd5e.DifficultyMedium, out.Encounter.Difficulty)
}

func (s *OrchestratorTestSuite) TestPartyDefaultsToMedium() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(testutils.SampleCreatures(), nil)
	s.expectSave()

	out, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
		PartyLevels: []int{3},
	})
	s.Require().NoError(err)
	s.Equal(150, out.Encounter.TargetXP)
}

func (s *OrchestratorTestSuite) TestTargetValidation() {
	cases := []struct {
		name  string
		input *encounter.GenerateEncounterInput
	}{
		{"nil", nil},
		{"neither", &encounter.GenerateEncounterInput{}},
		{"both", &encounter.GenerateEncounterInput{TargetXP: 100, PartyLevels: []int{1}}},
		{"negative", &encounter.GenerateEncounterInput{TargetXP: -5}},
		{"bad level", &encounter.GenerateEncounterInput{PartyLevels: []int{21}}},
		{"bad difficulty", &encounter.GenerateEncounterInput{PartyLevels: []int{1}, PartyDifficulty: "Brutal"}},
		{"too many monsters", &encounter.GenerateEncounterInput{TargetXP: 100, MaxMonsters: encengine.MaxMonstersLimit + 1}},
		{"negative monsters", &encounter.GenerateEncounterInput{TargetXP: 100, MaxMonsters: -1}},
		{"party too large", &encounter.GenerateEncounterInput{PartyLevels: make([]int, dnd5e.MaxPartySize+1)}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.GenerateEncounter(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerateNoMatchIsNotFound() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(testutils.SampleCreatures(), nil)

	_, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
		TargetXP: 100,
		Filter:   encengine.Filter{CreatureType: "Dragon"},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(errors.GetMeta(err), "filters")
}

func (s *OrchestratorTestSuite) TestGenerateCatalogError() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(nil, errors.Unavailable("srd down"))

	_, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{TargetXP: 100})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGenerateSaveError() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(testutils.SampleCreatures(), nil)
	s.history.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("disk full"))

	_, err := s.orchestrator.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{TargetXP: 100})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGenerateWithTreasure() {
	roller := testutils.NewScriptedRoller(10, 90)
	svc := s.newOrchestrator(roller)

	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return([]*dnd5e.Creature{testutils.Goblin()}, nil)
	s.catalog.EXPECT().ListMagicItems(gomock.Any()).Return(testutils.SampleMagicItems(), nil)
	s.expectSave()

	out, err := svc.GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
		TargetXP:        45,
		IncludeTreasure: true,
		GoldPerCreature: 100,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Encounter.Creatures, 1)

	loot := out.Encounter.Creatures[0].Loot
	s.Require().NotNil(loot)
	s.Require().Len(loot.Items, 1)
	s.Equal("potion-of-healing", loot.Items[0].ID)
	s.Equal(100, loot.StartingGold)
	s.Equal(50, loot.RemainingGold)
	s.Equal(0, roller.Remaining())
}

func (s *OrchestratorTestSuite) TestGenerateTreasureSeeded() {
	s.catalog.EXPECT().ListMagicItems(gomock.Any()).Return(testutils.SampleMagicItems(), nil).Times(2)

	seed := uint64(42)
	first, err := s.orchestrator.GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{
		Creatures: 5, Gold: 1000, Seed: &seed,
	})
	s.Require().NoError(err)
	second, err := s.orchestrator.GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{
		Creatures: 5, Gold: 1000, Seed: &seed,
	})
	s.Require().NoError(err)

	s.Require().Len(first.Loot, 5)
	s.Equal(first.Loot, second.Loot)
	for _, l := range first.Loot {
		s.Equal(1000, l.StartingGold)
		s.GreaterOrEqual(l.RemainingGold, 0)
	}
}

func (s *OrchestratorTestSuite) TestGenerateTreasureUnaffordable() {
	s.roller = testutils.NewScriptedRoller(1, 1, 1)
	svc := s.newOrchestrator(s.roller)
	s.catalog.EXPECT().ListMagicItems(gomock.Any()).Return([]*dnd5e.MagicItem{testutils.Potion()}, nil)

	out, err := svc.GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{Gold: 10})
	s.Require().NoError(err)
	s.Require().Len(out.Loot, 1)
	s.Empty(out.Loot[0].Items)
	s.Equal(10, out.Loot[0].RemainingGold)
}

func (s *OrchestratorTestSuite) TestGenerateTreasureValidation() {
	_, err := s.orchestrator.GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{Creatures: 1000})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{Gold: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.GenerateTreasure(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestHistoryDelegates() {
	saved := &entities.Encounter{ID: "enc_9", CreatedAt: now}

	s.history.EXPECT().Get(s.ctx, &encounters.GetInput{ID: "enc_9"}).
		Return(&encounters.GetOutput{Encounter: saved}, nil)
	got, err := s.orchestrator.GetEncounter(s.ctx, &encounter.GetEncounterInput{ID: "enc_9"})
	s.Require().NoError(err)
	s.Equal(saved, got.Encounter)

	s.history.EXPECT().List(s.ctx, &encounters.ListInput{Limit: 5}).
		Return(&encounters.ListOutput{Encounters: []*entities.Encounter{saved}}, nil)
	list, err := s.orchestrator.ListEncounters(s.ctx, &encounter.ListEncountersInput{Limit: 5})
	s.Require().NoError(err)
	s.Len(list.Encounters, 1)

	s.history.EXPECT().Delete(s.ctx, &encounters.DeleteInput{ID: "enc_9"}).
		Return(&encounters.DeleteOutput{}, nil)
	_, err = s.orchestrator.DeleteEncounter(s.ctx, &encounter.DeleteEncounterInput{ID: "enc_9"})
	s.Require().NoError(err)

	s.history.EXPECT().Get(s.ctx, &encounters.GetInput{ID: "enc_9"}).
		Return(nil, errors.NotFound("encounter enc_9 not found"))
	_, err = s.orchestrator.GetEncounter(s.ctx, &encounter.GetEncounterInput{ID: "enc_9"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListCreatures() {
	s.catalog.EXPECT().ListCreatures(gomock.Any()).Return(testutils.SampleCreatures(), nil)

	out, err := s.orchestrator.ListCreatures(s.ctx, &encounter.ListCreaturesInput{
		Filter: encengine.Filter{Environment: "hill"},
		Limit:  2,
	})
	s.Require().NoError(err)
	// goblin, wolf, orc, ogre and the "Any" rat all live in hills
	s.Equal(5, out.Total)
	s.Require().Len(out.Creatures, 2)
	s.Equal("goblin", out.Creatures[0].ID)
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := encounter.NewOrchestrator(&encounter.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = encounter.NewOrchestrator(nil)
	s.Require().Error(err)

	cfg := s.config()
	cfg.DefaultMaxMonsters = encengine.MaxMonstersLimit + 1
	_, err = encounter.NewOrchestrator(cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
