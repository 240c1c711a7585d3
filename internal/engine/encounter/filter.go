package encounter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// Filter narrows a creature pool. Empty or "Any" string fields and nil CR
// bounds impose no constraint. Active constraints are ANDed.
type Filter struct {
	MinCR        *dnd5e.ChallengeRating `json:"min_cr,omitempty"`
	MaxCR        *dnd5e.ChallengeRating `json:"max_cr,omitempty"`
	Environment  string                 `json:"environment,omitempty"`
	Alignment    string                 `json:"alignment,omitempty"`
	CreatureType string                 `json:"creature_type,omitempty"`
	Size         string                 `json:"size,omitempty"`
}

// fold normalizes a string for comparison. A Caser carries state, so one is
// built per call.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func isAny(s string) bool {
	v := fold(s)
	return v == "" || v == fold(dnd5e.EnvironmentAny)
}

func matchString(want, have string) bool {
	if isAny(want) {
		return true
	}
	return fold(want) == fold(have)
}

func matchEnvironment(want string, tags []string) bool {
	if isAny(want) {
		return true
	}
	w := fold(want)
	for _, tag := range tags {
		t := fold(tag)
		if t == w || t == fold(dnd5e.EnvironmentAny) {
			return true
		}
	}
	return false
}

// Matches reports whether c satisfies every active constraint
func (f Filter) Matches(c *dnd5e.Creature) bool {
	if c == nil {
		return false
	}
	if f.MinCR != nil && c.ChallengeRating < *f.MinCR {
		return false
	}
	if f.MaxCR != nil && c.ChallengeRating > *f.MaxCR {
		return false
	}
	return matchEnvironment(f.Environment, c.Environments) &&
		matchString(f.Alignment, c.Alignment) &&
		matchString(f.CreatureType, c.CreatureType) &&
		matchString(f.Size, c.Size)
}

// Apply returns the creatures in pool that match f, preserving order
func (f Filter) Apply(pool []*dnd5e.Creature) []*dnd5e.Creature {
	out := make([]*dnd5e.Creature, 0, len(pool))
	for _, c := range pool {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// RelaxEnvironment returns a copy with the environment constraint removed.
// ok is false when there was no environment constraint to relax.
func (f Filter) RelaxEnvironment() (relaxed Filter, ok bool) {
	if isAny(f.Environment) {
		return f, false
	}
	relaxed = f
	relaxed.Environment = dnd5e.EnvironmentAny
	return relaxed, true
}

// Active lists the constraints in effect, for diagnostics
func (f Filter) Active() map[string]string {
	active := make(map[string]string)
	if f.MinCR != nil {
		active["min_cr"] = f.MinCR.String()
	}
	if f.MaxCR != nil {
		active["max_cr"] = f.MaxCR.String()
	}
	for name, v := range map[string]string{
		"environment":   f.Environment,
		"alignment":     f.Alignment,
		"creature_type": f.CreatureType,
		"size":          f.Size,
	} {
		if !isAny(v) {
			active[name] = strings.TrimSpace(v)
		}
	}
	return active
}

// Validate checks the CR bounds
func (f Filter) Validate() error {
	if f.MinCR != nil && f.MaxCR != nil && *f.MinCR > *f.MaxCR {
		return errors.InvalidArgumentf("min_cr %s exceeds max_cr %s", f.MinCR, f.MaxCR)
	}
	return nil
}
