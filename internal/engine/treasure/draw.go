package treasure

import (
	"math"
	"math/rand/v2"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// Rand is the float source used for weighted draws. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide math/rand/v2 source, which is safe
// for concurrent use
func DefaultRand() Rand {
	return globalRand{}
}

// Entry pairs an item with its selection weight
type Entry struct {
	Item   *dnd5e.MagicItem
	Weight float64
}

// Weight returns the drop weight for an item. Unknown rarities weigh as Common.
func (c Config) Weight(item *dnd5e.MagicItem) float64 {
	rank := item.Rarity.Rank()
	if rank < 0 {
		rank = 0
	}
	w := math.Pow(c.RarityStep, float64(rank))
	if item.Wondrous {
		w *= c.WondrousFactor
	}
	return w
}

// Entries weighs every item in the pool
func (c Config) Entries(items []*dnd5e.MagicItem) []Entry {
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, Entry{Item: item, Weight: c.Weight(item)})
	}
	return out
}

// Draw picks one entry with probability proportional to its weight and
// returns it with the rest of the pool. The input slice is not modified.
// ok is false when the pool is empty or carries no weight.
func Draw(pool []Entry, src Rand) (selected Entry, remaining []Entry, ok bool) {
	total := 0.0
	for _, e := range pool {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return Entry{}, pool, false
	}

	r := src.Float64() * total
	idx := -1
	cumulative := 0.0
	for i, e := range pool {
		if e.Weight <= 0 {
			continue
		}
		idx = i
		cumulative += e.Weight
		if r < cumulative {
			break
		}
	}

	remaining = make([]Entry, 0, len(pool)-1)
	remaining = append(remaining, pool[:idx]...)
	remaining = append(remaining, pool[idx+1:]...)
	return pool[idx], remaining, true
}
