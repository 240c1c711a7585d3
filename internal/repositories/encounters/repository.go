// Package encounters stores generated encounters for later recall
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/encounter-forge/internal/repositories/encounters Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
)

// DefaultTTL is how long a saved encounter is kept when no TTL is configured
const DefaultTTL = 7 * 24 * time.Hour

// Repository defines the storage interface for encounter history
type Repository interface {
	// Save stores an encounter, replacing any with the same ID
	// Returns errors.InvalidArgument for a nil encounter or empty ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves an encounter by ID
	// Returns errors.NotFound if it does not exist or has expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns saved encounters, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Delete removes an encounter
	// Returns errors.NotFound if it does not exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving an encounter
type SaveInput struct {
	Encounter *entities.Encounter
}

// SaveOutput defines the response for saving an encounter
type SaveOutput struct {
	Encounter *entities.Encounter
}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Encounter *entities.Encounter
}

// ListInput defines the request for listing encounters
type ListInput struct {
	// Limit caps the result; zero or negative returns everything
	Limit int
}

// ListOutput defines the response for listing encounters
type ListOutput struct {
	Encounters []*entities.Encounter
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct{}

const (
	errInputNil     = "input is required"
	errEncounterNil = "encounter is required"
	errIDEmpty      = "encounter ID is required"
)
