// Package dnd5e holds the D&D 5e reference tables and catalog records used by the
// encounter and treasure engines.
package dnd5e

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ChallengeRating is a creature's CR. Fractional ratings are 1/8, 1/4 and 1/2.
type ChallengeRating float64

// Fractional challenge ratings
const (
	CREighth  ChallengeRating = 0.125
	CRQuarter ChallengeRating = 0.25
	CRHalf    ChallengeRating = 0.5
)

// MaxChallengeRating is the highest rating in the XP table
const MaxChallengeRating ChallengeRating = 30

// crXP is the DMG challenge rating to XP table
var crXP = map[ChallengeRating]int{
	0:         10,
	CREighth:  25,
	CRQuarter: 50,
	CRHalf:    100,
	1:         200,
	2:         450,
	3:         700,
	4:         1100,
	5:         1800,
	6:         2300,
	7:         2900,
	8:         3900,
	9:         5000,
	10:        5900,
	11:        7200,
	12:        8400,
	13:        10000,
	14:        11500,
	15:        13000,
	16:        15000,
	17:        18000,
	18:        20000,
	19:        22000,
	20:        25000,
	21:        33000,
	22:        41000,
	23:        50000,
	24:        62000,
	25:        75000,
	26:        90000,
	27:        105000,
	28:        120000,
	29:        135000,
	30:        155000,
}

// XPForCR returns the XP value for a challenge rating, or 0 if the rating is not in the table.
func XPForCR(cr ChallengeRating) int {
	return crXP[cr]
}

// IsValid reports whether the rating appears in the XP table
func (cr ChallengeRating) IsValid() bool {
	_, ok := crXP[cr]
	return ok
}

// Ptr returns a pointer to a copy of cr, for optional filter bounds
func (cr ChallengeRating) Ptr() *ChallengeRating {
	return &cr
}

// String renders fractional ratings as "1/8", "1/4" and "1/2"
func (cr ChallengeRating) String() string {
	switch cr {
	case CREighth:
		return "1/8"
	case CRQuarter:
		return "1/4"
	case CRHalf:
		return "1/2"
	}
	if cr == ChallengeRating(math.Trunc(float64(cr))) {
		return strconv.Itoa(int(cr))
	}
	return strconv.FormatFloat(float64(cr), 'f', -1, 64)
}

// ParseChallengeRating accepts "1/4", "0.25" or "2"
func ParseChallengeRating(s string) (ChallengeRating, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty challenge rating")
	}

	var v float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid challenge rating %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid challenge rating %q: %w", s, err)
		}
		if d == 0 {
			return 0, fmt.Errorf("invalid challenge rating %q: zero denominator", s)
		}
		v = n / d
	} else {
		var err error
		v, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid challenge rating %q: %w", s, err)
		}
	}

	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid challenge rating %q: out of range", s)
	}
	return ChallengeRating(v), nil
}

// AllChallengeRatings returns every rating in the table in ascending order
func AllChallengeRatings() []ChallengeRating {
	out := make([]ChallengeRating, 0, len(crXP))
	for cr := range crXP {
		out = append(out, cr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
