package treasure

import (
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Result is the treasure for one creature instance
type Result struct {
	Items         []*dnd5e.MagicItem `json:"items"`
	StartingGold  int                `json:"starting_gold"`
	RemainingGold int                `json:"remaining_gold"`
	DropChecks    int                `json:"drop_checks"`
}

// SpentGold is the value of everything awarded
func (r *Result) SpentGold() int {
	return r.StartingGold - r.RemainingGold
}

// Generator rolls treasure using an injected roller and float source
type Generator struct {
	cfg    Config
	roller dice.Roller
	rng    Rand
}

// NewGenerator creates a treasure generator. A nil roller uses
// dice.DefaultRoller and a nil rng uses DefaultRand.
func NewGenerator(cfg Config, roller dice.Roller, rng Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid treasure config")
	}
	if roller == nil {
		roller = dice.DefaultRoller
	}
	if rng == nil {
		rng = DefaultRand()
	}
	return &Generator{cfg: cfg, roller: roller, rng: rng}, nil
}

// Generate rolls treasure for a single creature instance with the given gold
// budget. The pool is not modified; an awarded item is only removed from this
// instance's working copy.
func (g *Generator) Generate(gold int, pool []*dnd5e.MagicItem) (*Result, error) {
	if gold < 0 {
		return nil, errors.InvalidArgumentf("gold budget must not be negative, got %d", gold)
	}

	result := &Result{StartingGold: gold, RemainingGold: gold}
	entries := g.cfg.Entries(pool)

	for {
		roll, err := g.roller.Roll(100)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll drop check")
		}
		result.DropChecks++
		if roll > g.cfg.DropChance {
			break
		}

		affordable := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.Item.Value >= 0 && e.Item.Value <= result.RemainingGold {
				affordable = append(affordable, e)
			}
		}

		// Draw's remainder only covers the affordable subset, so drop the pick
		// from the full pool instead
		picked, _, ok := Draw(affordable, g.rng)
		if !ok {
			break
		}

		result.Items = append(result.Items, picked.Item)
		result.RemainingGold -= picked.Item.Value
		entries = without(entries, picked.Item)
	}

	return result, nil
}

func without(entries []Entry, item *dnd5e.MagicItem) []Entry {
	for i, e := range entries {
		if e.Item == item {
			out := make([]Entry, 0, len(entries)-1)
			out = append(out, entries[:i]...)
			return append(out, entries[i+1:]...)
		}
	}
	return entries
}

// SeededRoller is a dice.Roller backed by a math/rand/v2 source, for
// reproducible runs. It is not safe for concurrent use.
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a roller from rng
func NewSeededRoller(rng *rand.Rand) *SeededRoller {
	return &SeededRoller{rng: rng}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeeded builds a generator whose drop checks and draws both come from seed
func NewSeeded(cfg Config, seed uint64) (*Generator, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return NewGenerator(cfg, NewSeededRoller(rng), rng)
}
