package encounters

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/clock"
)

type storedEncounter struct {
	data      []byte
	createdAt time.Time
	expiresAt time.Time
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*storedEncounter
	clock clock.Clock
	ttl   time.Duration
}

// NewInMemory creates a new in-memory repository. A zero ttl uses DefaultTTL
// and a nil clock uses the system clock.
func NewInMemory(clk clock.Clock, ttl time.Duration) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryRepository{
		store: make(map[string]*storedEncounter),
		clock: clk,
		ttl:   ttl,
	}
}

// Save stores an encounter
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	// stored as JSON so callers cannot mutate history through shared pointers
	data, err := json.Marshal(input.Encounter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal encounter")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Encounter.ID] = &storedEncounter{
		data:      data,
		createdAt: input.Encounter.CreatedAt,
		expiresAt: r.clock.Now().Add(r.ttl),
	}

	return &SaveOutput{Encounter: input.Encounter}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	stored, exists := r.store[input.ID]
	r.mu.RUnlock()

	if !exists || r.expired(stored) {
		return nil, errors.NotFoundf("encounter %s not found", input.ID)
	}

	enc, err := decode(stored.data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Encounter: enc}, nil
}

// List returns live encounters, newest first
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	r.mu.Lock()
	live := make([]*storedEncounter, 0, len(r.store))
	for id, stored := range r.store {
		if r.expired(stored) {
			delete(r.store, id)
			continue
		}
		live = append(live, stored)
	}
	r.mu.Unlock()

	sort.SliceStable(live, func(i, j int) bool {
		return live[i].createdAt.After(live[j].createdAt)
	})
	if input.Limit > 0 && len(live) > input.Limit {
		live = live[:input.Limit]
	}

	out := make([]*entities.Encounter, 0, len(live))
	for _, stored := range live {
		enc, err := decode(stored.data)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return &ListOutput{Encounters: out}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.store[input.ID]
	if !exists || r.expired(stored) {
		return nil, errors.NotFoundf("encounter %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

func (r *InMemoryRepository) expired(s *storedEncounter) bool {
	return !r.clock.Now().Before(s.expiresAt)
}

func decode(data []byte) (*entities.Encounter, error) {
	var enc entities.Encounter
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal encounter")
	}
	return &enc, nil
}

var _ Repository = (*InMemoryRepository)(nil)
