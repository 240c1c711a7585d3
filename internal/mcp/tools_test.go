package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	encountermock "github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter/mock"
)

type ToolsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *encountermock.MockService
	server      *Server
	ctx         context.Context

	goblinEncounter *entities.Encounter
}

func (s *ToolsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = encountermock.NewMockService(s.ctrl)

	server, err := NewServer(&Config{Service: s.mockService, Version: "test"})
	s.Require().NoError(err)
	s.server = server
	s.ctx = context.Background()

	s.goblinEncounter = &entities.Encounter{
		ID:         "enc_1",
		TargetXP:   45,
		BaseXP:     50,
		Multiplier: 1,
		AdjustedXP: 50,
		Difficulty: dnd5e.DifficultyHard,
		Strategy:   "single",
		Relaxation: "none",
		Creatures: []*entities.EncounterCreature{
			{InstanceID: "crt_1", CreatureID: "goblin", Name: "Goblin", ChallengeRating: 0.25, XP: 50, Ordinal: 1},
		},
		CreatedAt: time.Unix(1700000000, 0),
	}
}

func (s *ToolsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ToolsTestSuite) TestNewServerRequiresService() {
	_, err := NewServer(&Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ToolsTestSuite) TestGenerateEncounter() {
	s.mockService.EXPECT().
		GenerateEncounter(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *encounter.GenerateEncounterInput) (*encounter.GenerateEncounterOutput, error) {
			s.Equal(45, input.TargetXP)
			s.Equal("Forest", input.Filter.Environment)
			s.Require().NotNil(input.Filter.MaxCR)
			s.Equal(dnd5e.ChallengeRating(1), *input.Filter.MaxCR)
			s.Equal(encengine.Plan{{Strategy: encengine.StrategySingle}}, input.Plan)
			return &encounter.GenerateEncounterOutput{Encounter: s.goblinEncounter}, nil
		})

	_, out, err := s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{
		TargetXP: 45,
		Filter:   FilterInput{Environment: "Forest", MaxCR: "1"},
		Plan:     "single",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Encounter)
	s.Equal("Hard", out.Encounter.Difficulty)
	s.Equal(50, out.Encounter.AdjustedXP)
	s.Require().Len(out.Encounter.Creatures, 1)
	s.Equal("Goblin", out.Encounter.Creatures[0].Name)
}

func (s *ToolsTestSuite) TestGenerateEncounterPartyDifficulty() {
	s.mockService.EXPECT().
		GenerateEncounter(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *encounter.GenerateEncounterInput) (*encounter.GenerateEncounterOutput, error) {
			s.Equal([]int{2, 2, 3}, input.PartyLevels)
			s.Equal(dnd5e.DifficultyEasy, input.PartyDifficulty)
			return &encounter.GenerateEncounterOutput{Encounter: s.goblinEncounter}, nil
		})

	_, _, err := s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{
		PartyLevels: []int{2, 2, 3},
		Difficulty:  "easy",
	})
	s.NoError(err)
}

func (s *ToolsTestSuite) TestGenerateEncounterBadInput() {
	_, _, err := s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{
		TargetXP: 100,
		Filter:   FilterInput{MinCR: "huge"},
	})
	s.True(errors.IsInvalidArgument(err))

	_, _, err = s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{TargetXP: 100, Plan: "horde"})
	s.True(errors.IsInvalidArgument(err))

	_, _, err = s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{
		PartyLevels: []int{1},
		Difficulty:  "impossible",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ToolsTestSuite) TestGenerateEncounterServiceError() {
	s.mockService.EXPECT().
		GenerateEncounter(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no creatures match the filter"))

	_, _, err := s.server.handleGenerateEncounter(s.ctx, nil, GenerateEncounterInput{TargetXP: 100})
	s.True(errors.IsNotFound(err))
}

func (s *ToolsTestSuite) TestGenerateTreasure() {
	seed := uint64(3)
	s.mockService.EXPECT().
		GenerateTreasure(s.ctx, &encounter.GenerateTreasureInput{Creatures: 1, Gold: 100, Seed: &seed}).
		Return(&encounter.GenerateTreasureOutput{Loot: []*entities.Loot{
			{
				Items: []*dnd5e.MagicItem{
					{ID: "potion-of-healing", Name: "Potion of Healing", Rarity: dnd5e.RarityCommon, Value: 50},
				},
				StartingGold:  100,
				RemainingGold: 50,
			},
		}}, nil)

	_, out, err := s.server.handleGenerateTreasure(s.ctx, nil, GenerateTreasureInput{Creatures: 1, Gold: 100, Seed: &seed})
	s.Require().NoError(err)
	s.Require().Len(out.Loot, 1)
	s.Equal(50, out.Loot[0].RemainingGold)
	s.Require().Len(out.Loot[0].Items, 1)
	s.Equal("Potion of Healing", out.Loot[0].Items[0].Name)
}

func (s *ToolsTestSuite) TestListCreatures() {
	s.mockService.EXPECT().
		ListCreatures(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *encounter.ListCreaturesInput) (*encounter.ListCreaturesOutput, error) {
			s.Equal("Undead", input.Filter.CreatureType)
			s.Equal(10, input.Limit)
			return &encounter.ListCreaturesOutput{
				Creatures: []*dnd5e.Creature{{ID: "zombie", Name: "Zombie", ChallengeRating: 0.25}},
				Total:     1,
			}, nil
		})

	_, out, err := s.server.handleListCreatures(s.ctx, nil, ListCreaturesInput{
		Filter: FilterInput{CreatureType: "Undead"},
		Limit:  10,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Total)
	s.Require().Len(out.Creatures, 1)
	s.Equal("1/4", out.Creatures[0].ChallengeRating)
	s.Equal(50, out.Creatures[0].XP)
}

func (s *ToolsTestSuite) TestToolsOverInMemoryTransport() {
	s.mockService.EXPECT().
		GenerateEncounter(gomock.Any(), gomock.Any()).
		Return(&encounter.GenerateEncounterOutput{Encounter: s.goblinEncounter}, nil)

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	serverTransport, clientTransport := sdk.NewInMemoryTransports()
	serverSession, err := s.server.Connect(ctx, serverTransport)
	s.Require().NoError(err)
	defer func() { _ = serverSession.Close() }()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	s.Require().NoError(err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	s.Require().NoError(err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	s.ElementsMatch([]string{"generate_encounter", "generate_treasure", "list_creatures"}, names)

	result, err := session.CallTool(ctx, &sdk.CallToolParams{
		Name:      "generate_encounter",
		Arguments: map[string]any{"target_xp": 45},
	})
	s.Require().NoError(err)
	s.False(result.IsError)

	data, err := json.Marshal(result.StructuredContent)
	s.Require().NoError(err)
	var out GenerateEncounterOutput
	s.Require().NoError(json.Unmarshal(data, &out))
	s.Require().NotNil(out.Encounter)
	s.Equal("enc_1", out.Encounter.ID)
}

func TestToolsTestSuite(t *testing.T) {
	suite.Run(t, new(ToolsTestSuite))
}
