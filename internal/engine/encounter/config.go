// Package encounter selects creatures for an encounter under an XP budget.
//
// Generation is a pure function of a creature pool and Params. The generator
// narrows the pool with a Filter, then walks a Plan of selection strategies
// and accepts the first one that produces a non-empty selection with positive
// XP. If the strict filter yields nothing it retries once with the environment
// constraint relaxed to "Any".
package encounter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Strategy names a selection heuristic
type Strategy string

// Selection strategies
const (
	StrategySingle   Strategy = "single"
	StrategyMultiple Strategy = "multiple"
	StrategyMixed    Strategy = "mixed"
)

// IsValid checks if the strategy is known
func (s Strategy) IsValid() bool {
	switch s {
	case StrategySingle, StrategyMultiple, StrategyMixed:
		return true
	default:
		return false
	}
}

// Step is one entry in a strategy plan. Cap bounds the creature count for
// multiple (max quantity) and mixed (max distinct creatures). A zero Cap means
// the request's MaxMonsters. Every cap is also bounded by MaxMonsters.
type Step struct {
	Strategy Strategy `json:"strategy"`
	Cap      int      `json:"cap,omitempty"`
}

// String renders the step as "multiple:4"
func (s Step) String() string {
	if s.Cap > 0 {
		return fmt.Sprintf("%s:%d", s.Strategy, s.Cap)
	}
	return string(s.Strategy)
}

// Plan is the ordered list of strategies to try
type Plan []Step

// DefaultPlan returns single, multiple(4), mixed(3), multiple(6), mixed(max)
func DefaultPlan() Plan {
	return Plan{
		{Strategy: StrategySingle},
		{Strategy: StrategyMultiple, Cap: 4},
		{Strategy: StrategyMixed, Cap: 3},
		{Strategy: StrategyMultiple, Cap: 6},
		{Strategy: StrategyMixed},
	}
}

// ParsePlan reads a comma separated plan such as "single,multiple:4,mixed"
func ParsePlan(s string) (Plan, error) {
	var plan Plan
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, capStr, hasCap := strings.Cut(part, ":")
		step := Step{Strategy: Strategy(strings.ToLower(strings.TrimSpace(name)))}
		if !step.Strategy.IsValid() {
			return nil, errors.InvalidArgumentf("unknown strategy %q", name)
		}
		if hasCap {
			n, err := strconv.Atoi(strings.TrimSpace(capStr))
			if err != nil || n < 1 {
				return nil, errors.InvalidArgumentf("invalid cap %q for strategy %s", capStr, step.Strategy)
			}
			step.Cap = n
		}
		plan = append(plan, step)
	}

	if len(plan) == 0 {
		return nil, errors.InvalidArgument("plan is empty")
	}
	return plan, nil
}

// String renders the plan in ParsePlan form
func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, step := range p {
		parts[i] = step.String()
	}
	return strings.Join(parts, ",")
}

// Config tunes the selection heuristics
type Config struct {
	// PenaltyFactor scales the score of a creature whose XP exceeds the target
	PenaltyFactor float64

	// BandLow and BandHigh bound the adjusted XP accepted by the multiple
	// strategy, as fractions of the target (inclusive)
	BandLow  float64
	BandHigh float64

	// MixedStopRatio ends mixed selection once adjusted XP reaches this
	// fraction of the target
	MixedStopRatio float64

	// DiversityBonus is added to a mixed candidate whose creature type is new
	DiversityBonus float64

	Thresholds dnd5e.DifficultyThresholds
	Plan       Plan
}

// DefaultConfig returns the canonical tuning
func DefaultConfig() Config {
	return Config{
		PenaltyFactor:  0.8,
		BandLow:        0.5,
		BandHigh:       1.6,
		MixedStopRatio: 0.9,
		DiversityBonus: 0.2,
		Thresholds:     dnd5e.DefaultDifficultyThresholds(),
		Plan:           DefaultPlan(),
	}
}

// Validate checks the tuning values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PenaltyFactor <= 0 || c.PenaltyFactor > 1 {
		vb.Field("penalty_factor", "must be in (0, 1]")
	}
	if c.BandLow <= 0 {
		vb.Field("band_low", "must be positive")
	}
	if c.BandHigh < c.BandLow {
		vb.Field("band_high", "must not be below band_low")
	}
	if c.MixedStopRatio <= 0 {
		vb.Field("mixed_stop_ratio", "must be positive")
	}
	if c.DiversityBonus < 0 {
		vb.Field("diversity_bonus", "must not be negative")
	}
	t := c.Thresholds
	if t.Easy <= 0 || t.Medium < t.Easy || t.Hard < t.Medium {
		vb.Field("thresholds", "must be positive and ascending")
	}
	if len(c.Plan) == 0 {
		vb.RequiredField("plan")
	}
	for _, step := range c.Plan {
		if !step.Strategy.IsValid() {
			vb.Fieldf("plan", "unknown strategy %q", step.Strategy)
		}
		if step.Cap < 0 {
			vb.Fieldf("plan", "negative cap for %s", step.Strategy)
		}
	}

	return vb.Build()
}
