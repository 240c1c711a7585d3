package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller returns preset die results in order. It satisfies dice.Roller.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	Sizes []int // die sizes requested, in order
}

// NewScriptedRoller creates a roller that replays rolls
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Roll returns the next scripted result
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Sizes = append(r.Sizes, size)
	if len(r.rolls) == 0 {
		return 0, fmt.Errorf("scripted roller exhausted")
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v, nil
}

// RollN returns the next count scripted results
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining returns how many scripted results are unused
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rolls)
}

// FixedRand returns preset floats in order, repeating the last one
type FixedRand struct {
	mu     sync.Mutex
	values []float64
}

// NewFixedRand creates a float source that replays values
func NewFixedRand(values ...float64) *FixedRand {
	return &FixedRand{values: values}
}

// Float64 returns the next preset value
func (r *FixedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v
}
