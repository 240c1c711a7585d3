package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("xp_threshold", "must be positive")
	ve.AddFieldError("max_monsters", "is required")

	s.True(ve.HasErrors())
	s.Equal("validation failed: max_monsters: is required; xp_threshold: must be positive", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("min_cr", "must not exceed max_cr").
		RequiredField("catalog").
		InvalidField("rarity", "unknown rarity")

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "rarity: is invalid: unknown rarity")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestHelpers() {
	testCases := []struct {
		name      string
		apply     func(vb *errors.ValidationBuilder)
		shouldErr bool
	}{
		{"required ok", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("name", "Goblin", vb) }, false},
		{"required blank", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("name", "  ", vb) }, true},
		{"positive ok", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("xp", 45, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("xp", 0, vb) }, true},
		{"range ok", func(vb *errors.ValidationBuilder) { errors.ValidateRange("level", 5, 1, 20, vb) }, false},
		{"range high", func(vb *errors.ValidationBuilder) { errors.ValidateRange("level", 21, 1, 20, vb) }, true},
		{"fraction ok", func(vb *errors.ValidationBuilder) { errors.ValidateFraction("chance", 0.25, vb) }, false},
		{"fraction high", func(vb *errors.ValidationBuilder) { errors.ValidateFraction("chance", 1.5, vb) }, true},
		{"enum ok", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("source", "yaml", []string{"yaml", "sqlite"}, vb)
		}, false},
		{"enum bad", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("source", "notion", []string{"yaml", "sqlite"}, vb)
		}, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.apply(vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}
