package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
)

func TestParsePlan(t *testing.T) {
	p, err := encounter.ParsePlan("single, multiple:4 ,MIXED:3,multiple:6,mixed")
	require.NoError(t, err)
	assert.Equal(t, encounter.DefaultPlan(), p)
	assert.Equal(t, "single,multiple:4,mixed:3,multiple:6,mixed", p.String())

	for _, bad := range []string{"", " , ", "random", "multiple:0", "mixed:x"} {
		_, err := encounter.ParsePlan(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := encounter.DefaultConfig()
	require.NoError(t, cfg.Validate())

	broken := encounter.DefaultConfig()
	broken.PenaltyFactor = 0
	broken.BandHigh = 0.1
	broken.Plan = nil
	err := broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "penalty_factor")
	assert.Contains(t, err.Error(), "band_high")
	assert.Contains(t, err.Error(), "plan")

	_, err = encounter.NewGenerator(broken)
	assert.Error(t, err)
}
