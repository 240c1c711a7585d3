package encounter

import (
	"log/slog"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Relaxation records which loosening of the filter produced a result
type Relaxation string

// Relaxation phases, tried in order
const (
	RelaxationNone        Relaxation = "none"
	RelaxationEnvironment Relaxation = "environment"
)

// MaxMonstersLimit is the largest creature count a request may ask for
const MaxMonstersLimit = 50

// Params describe one generation request
type Params struct {
	TargetXP    int    `json:"target_xp"`
	MaxMonsters int    `json:"max_monsters"`
	Filter      Filter `json:"filter"`

	// Plan overrides the configured strategy plan when non-empty
	Plan Plan `json:"plan,omitempty"`
}

// Validate checks the request
func (p *Params) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("target_xp", p.TargetXP, vb)
	errors.ValidateRange("max_monsters", p.MaxMonsters, 1, MaxMonstersLimit, vb)
	if err := p.Filter.Validate(); err != nil {
		vb.InvalidField("filter", errors.GetMessage(err))
	}
	for _, step := range p.Plan {
		if !step.Strategy.IsValid() {
			vb.Fieldf("plan", "unknown strategy %q", step.Strategy)
		}
	}

	return vb.Build()
}

// Result is a generated encounter
type Result struct {
	Selection  Selection        `json:"selection"`
	Count      int              `json:"count"`
	BaseXP     int              `json:"base_xp"`
	Multiplier float64          `json:"multiplier"`
	AdjustedXP int              `json:"adjusted_xp"`
	TargetXP   int              `json:"target_xp"`
	Difficulty dnd5e.Difficulty `json:"difficulty"`
	Strategy   Step             `json:"strategy"`
	Relaxation Relaxation       `json:"relaxation"`
}

// Attempt records one filter phase for diagnostics
type Attempt struct {
	Relaxation Relaxation        `json:"relaxation"`
	Filters    map[string]string `json:"filters"`
	Matched    int               `json:"matched"`
	Scorable   int               `json:"scorable"`
	Strategies []string          `json:"strategies,omitempty"`
}

// Generator runs the strategy plan against a creature pool
type Generator struct {
	cfg Config
}

// NewGenerator creates a generator with validated tuning
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid encounter config")
	}
	return &Generator{cfg: cfg}, nil
}

// Config returns the generator's tuning
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate selects creatures for the request. It tries the strict filter
// first, then the filter with environment relaxed to "Any". When no phase
// matches any creature it returns NotFound; when creatures matched but no
// strategy produced a selection it returns FailedPrecondition. Both carry the
// attempts as metadata.
func (g *Generator) Generate(pool []*dnd5e.Creature, params *Params) (*Result, error) {
	if params == nil {
		return nil, errors.InvalidArgument("params are required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	plan := g.cfg.Plan
	if len(params.Plan) > 0 {
		plan = params.Plan
	}

	type phase struct {
		relaxation Relaxation
		filter     Filter
	}
	phases := []phase{{relaxation: RelaxationNone, filter: params.Filter}}
	if relaxed, ok := params.Filter.RelaxEnvironment(); ok {
		phases = append(phases, phase{relaxation: RelaxationEnvironment, filter: relaxed})
	}

	warned := make(map[*dnd5e.Creature]bool)
	attempts := make([]Attempt, 0, len(phases))
	anyMatched := false

	for _, ph := range phases {
		matched := ph.filter.Apply(pool)
		cands := scorable(matched, warned)
		attempt := Attempt{
			Relaxation: ph.relaxation,
			Filters:    ph.filter.Active(),
			Matched:    len(matched),
			Scorable:   len(cands),
		}
		if len(matched) > 0 {
			anyMatched = true
		}

		if len(cands) > 0 {
			for _, step := range plan {
				limit := step.limit(params.MaxMonsters)
				used := Step{Strategy: step.Strategy, Cap: limit}
				if step.Strategy == StrategySingle {
					used.Cap = 0
				}
				attempt.Strategies = append(attempt.Strategies, used.String())

				sel := step.run(cands, params.TargetXP, limit, g.cfg)
				if len(sel) == 0 || sel.BaseXP() <= 0 || sel.Count() > params.MaxMonsters {
					continue
				}

				if ph.relaxation != RelaxationNone {
					slog.Info("Encounter generated with relaxed filter",
						"relaxation", ph.relaxation,
						"filters", attempt.Filters,
					)
				}
				return g.result(sel, params.TargetXP, used, ph.relaxation), nil
			}
		}

		attempts = append(attempts, attempt)
	}

	if !anyMatched {
		return nil, errors.NotFound("no creatures found matching criteria").
			WithMeta("filters", params.Filter.Active()).
			WithMeta("pool_size", len(pool)).
			WithMeta("attempts", attempts)
	}

	return nil, errors.FailedPrecondition("no viable encounter for criteria").
		WithMeta("filters", params.Filter.Active()).
		WithMeta("pool_size", len(pool)).
		WithMeta("target_xp", params.TargetXP).
		WithMeta("attempts", attempts)
}

func (g *Generator) result(sel Selection, target int, step Step, relaxation Relaxation) *Result {
	count := sel.Count()
	base := sel.BaseXP()
	adjusted := dnd5e.AdjustedXP(base, count)
	return &Result{
		Selection:  sel,
		Count:      count,
		BaseXP:     base,
		Multiplier: dnd5e.MultiplierForCount(count),
		AdjustedXP: adjusted,
		TargetXP:   target,
		Difficulty: g.cfg.Thresholds.Classify(adjusted, target),
		Strategy:   step,
		Relaxation: relaxation,
	}
}

// scorable drops creatures without a usable XP value, logging each once
func scorable(creatures []*dnd5e.Creature, warned map[*dnd5e.Creature]bool) []candidate {
	out := make([]candidate, 0, len(creatures))
	for _, c := range creatures {
		xp := c.EffectiveXP()
		if xp <= 0 {
			if !warned[c] {
				warned[c] = true
				slog.Warn("Creature has no usable XP, excluded from scoring",
					"creature_id", c.ID,
					"name", c.Name,
					"challenge_rating", float64(c.ChallengeRating),
					"xp", c.XP,
				)
			}
			continue
		}
		out = append(out, candidate{creature: c, xp: xp})
	}
	return out
}
