package encounters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/clock"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/encounters"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo encounters.Repository

	// setup builds a fresh repository with the given TTL and returns a
	// function that moves time forward plus a cleanup
	setup   func(t *testing.T, ttl time.Duration) (encounters.Repository, func(time.Duration), func())
	advance func(time.Duration)
	cleanup func()
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.advance, s.cleanup = s.setup(s.T(), time.Hour)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func sampleEncounter(id string, createdAt time.Time) *entities.Encounter {
	goblin := testutils.Goblin()
	return &entities.Encounter{
		ID:         id,
		TargetXP:   45,
		BaseXP:     50,
		Multiplier: 1,
		AdjustedXP: 50,
		Difficulty: dnd5e.DifficultyHard,
		Strategy:   "single",
		Relaxation: "none",
		Filters:    map[string]string{"environment": "forest"},
		Creatures: []*entities.EncounterCreature{
			{
				InstanceID:      "crt_1",
				CreatureID:      goblin.ID,
				Name:            goblin.Name,
				ChallengeRating: goblin.ChallengeRating,
				XP:              goblin.EffectiveXP(),
				Ordinal:         1,
				Loot: &entities.Loot{
					Items:         []*dnd5e.MagicItem{testutils.Potion()},
					StartingGold:  100,
					RemainingGold: 50,
				},
			},
		},
		CreatedAt: createdAt,
	}
}

func (s *RepositoryTestSuite) TestSaveAndGet() {
	enc := sampleEncounter("enc_1", baseTime)

	_, err := s.repo.Save(s.ctx, &encounters.SaveInput{Encounter: enc})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.Require().NoError(err)
	s.Equal(enc, got.Encounter)
}

func (s *RepositoryTestSuite) TestSaveCopiesEncounter() {
	enc := sampleEncounter("enc_1", baseTime)
	_, err := s.repo.Save(s.ctx, &encounters.SaveInput{Encounter: enc})
	s.Require().NoError(err)

	enc.Creatures[0].Name = "Changed"

	got, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.Require().NoError(err)
	s.Equal("Goblin", got.Encounter.Creatures[0].Name)
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Save(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &encounters.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &encounters.SaveInput{Encounter: &entities.Encounter{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &encounters.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, &encounters.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestListNewestFirst() {
	for i, id := range []string{"enc_a", "enc_b", "enc_c"} {
		_, err := s.repo.Save(s.ctx, &encounters.SaveInput{
			Encounter: sampleEncounter(id, baseTime.Add(time.Duration(i)*time.Minute)),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, &encounters.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Encounters, 3)
	s.Equal("enc_c", out.Encounters[0].ID)
	s.Equal("enc_b", out.Encounters[1].ID)
	s.Equal("enc_a", out.Encounters[2].ID)

	limited, err := s.repo.List(s.ctx, &encounters.ListInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(limited.Encounters, 2)
	s.Equal("enc_c", limited.Encounters[0].ID)
}

func (s *RepositoryTestSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(out.Encounters)
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &encounters.SaveInput{Encounter: sampleEncounter("enc_1", baseTime)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &encounters.DeleteInput{ID: "enc_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &encounters.DeleteInput{ID: "enc_1"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(out.Encounters)
}

func (s *RepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Save(s.ctx, &encounters.SaveInput{Encounter: sampleEncounter("enc_old", baseTime)})
	s.Require().NoError(err)

	s.advance(45 * time.Minute)
	_, err = s.repo.Save(s.ctx, &encounters.SaveInput{
		Encounter: sampleEncounter("enc_new", baseTime.Add(45*time.Minute)),
	})
	s.Require().NoError(err)

	s.advance(30 * time.Minute)

	_, err = s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_old"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(out.Encounters, 1)
	s.Equal("enc_new", out.Encounters[0].ID)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		setup: func(_ *testing.T, ttl time.Duration) (encounters.Repository, func(time.Duration), func()) {
			clk := &clock.Fixed{At: baseTime}
			repo := encounters.NewInMemory(clk, ttl)
			advance := func(d time.Duration) { clk.At = clk.At.Add(d) }
			return repo, advance, func() {}
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		setup: func(t *testing.T, ttl time.Duration) (encounters.Repository, func(time.Duration), func()) {
			client, mr, cleanup := testutils.CreateTestRedisServer(t)
			repo, err := encounters.NewRedis(&encounters.RedisConfig{Client: client, TTL: ttl})
			if err != nil {
				t.Fatalf("failed to create repository: %v", err)
			}
			return repo, mr.FastForward, cleanup
		},
	})
}

func TestRedisConfigValidation(t *testing.T) {
	_, err := encounters.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	_, err = encounters.NewRedis(&encounters.RedisConfig{TTL: -time.Second})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
