package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/encounter-forge/internal/repositories/catalog/mock"
	"github.com/KirkDiggler/encounter-forge/internal/testutils"
)

type ImportTestSuite struct {
	suite.Suite
	ctx   context.Context
	ctrl  *gomock.Controller
	store *catalog.SQLiteStore
}

func (s *ImportTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())

	store, err := catalog.OpenSQLite(":memory:")
	s.Require().NoError(err)
	s.store = store
}

func (s *ImportTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
	s.ctrl.Finish()
}

func (s *ImportTestSuite) TestImportEmbeddedCatalog() {
	embedded := catalog.NewEmbedded()
	wantCreatures, err := embedded.ListCreatures(s.ctx)
	s.Require().NoError(err)
	wantItems, err := embedded.ListMagicItems(s.ctx)
	s.Require().NoError(err)

	result, err := catalog.Import(s.ctx, embedded, embedded, s.store)
	s.Require().NoError(err)
	s.Equal(len(wantCreatures), result.Creatures)
	s.Equal(len(wantItems), result.Items)

	creatures, err := s.store.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Len(creatures, len(wantCreatures))

	items, err := s.store.ListMagicItems(s.ctx)
	s.Require().NoError(err)
	s.Len(items, len(wantItems))
}

func (s *ImportTestSuite) TestImportCreaturesOnly() {
	src := &catalog.Static{Creatures: testutils.SampleCreatures()}

	result, err := catalog.Import(s.ctx, src, nil, s.store)
	s.Require().NoError(err)
	s.Equal(6, result.Creatures)
	s.Zero(result.Items)
}

func (s *ImportTestSuite) TestImportIsIdempotent() {
	src := &catalog.Static{Creatures: testutils.SampleCreatures(), Items: testutils.SampleMagicItems()}

	_, err := catalog.Import(s.ctx, src, src, s.store)
	s.Require().NoError(err)
	_, err = catalog.Import(s.ctx, src, src, s.store)
	s.Require().NoError(err)

	creatures, err := s.store.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Len(creatures, 6)
}

func (s *ImportTestSuite) TestImportSourceError() {
	src := catalogmock.NewMockRepository(s.ctrl)
	src.EXPECT().ListCreatures(s.ctx).Return(nil, errors.Unavailable("srd api down"))

	_, err := catalog.Import(s.ctx, src, src, s.store)
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *ImportTestSuite) TestImportRequiresDestination() {
	_, err := catalog.Import(s.ctx, &catalog.Static{}, nil, nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestImportTestSuite(t *testing.T) {
	suite.Run(t, new(ImportTestSuite))
}
