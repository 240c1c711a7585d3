// Package external is the location for the dnd5e-api client. It serves SRD
// monsters as catalog creatures.
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/encounter-forge/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"

	internalDnd5e "github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// slugPattern matches characters that should be replaced in slugs
var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

var hyphenRun = regexp.MustCompile(`-+`)

// generateSlug creates a URL-safe slug from a string
func generateSlug(s string) string {
	slug := strings.ToLower(s)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Client defines the interface for external API interactions
type Client interface {
	// ListCreatures loads every SRD monster with full details
	ListCreatures(ctx context.Context) ([]*internalDnd5e.Creature, error)

	// GetCreature fetches one monster by its API key, e.g. "adult-red-dragon"
	GetCreature(ctx context.Context, key string) (*internalDnd5e.Creature, error)
}

type client struct {
	dnd5eClient dnd5e.Interface
	concurrency int
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds parallel detail requests (optional, defaults to 8)
	Concurrency int
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 8
	}

	vb := errors.NewValidationBuilder()
	if cfg.HTTPTimeout < 0 {
		vb.InvalidField("http_timeout", "must not be negative")
	}
	if cfg.CacheTTL < 0 {
		vb.InvalidField("cache_ttl", "must not be negative")
	}
	if cfg.Concurrency < 0 {
		vb.InvalidField("concurrency", "must not be negative")
	}
	return vb.Build()
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	// Wrap with caching; monster details never change between calls
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
		concurrency: cfg.Concurrency,
	}, nil
}

func (c *client) GetCreature(ctx context.Context, key string) (*internalDnd5e.Creature, error) {
	if key == "" {
		return nil, errors.InvalidArgument("monster key is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	monster, err := c.dnd5eClient.GetMonster(key)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get monster "+key)
	}
	if monster == nil {
		return nil, errors.NotFoundf("monster %s not found", key)
	}

	return convertMonster(key, "", monster)
}

func (c *client) ListCreatures(ctx context.Context) ([]*internalDnd5e.Creature, error) {
	slog.Info("Calling D&D 5e API to list monsters")
	refs, err := c.dnd5eClient.ListMonsters()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list monsters from D&D 5e API")
	}
	slog.Info("Got monster references", "count", len(refs))

	creatures := make([]*internalDnd5e.Creature, len(refs))
	errChan := make(chan error, len(refs))
	sem := make(chan struct{}, c.workers())
	var wg sync.WaitGroup

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		wg.Add(1)
		go func(idx int, key, name string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			// cached after first call
			monster, err := c.dnd5eClient.GetMonster(key)
			if err != nil {
				slog.Error("Failed to get monster details", "monster", key, "error", err)
				errChan <- errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get monster "+key)
				return
			}

			creature, err := convertMonster(key, name, monster)
			if err != nil {
				errChan <- err
				return
			}
			creatures[idx] = creature
			slog.Debug("Loaded monster details", "monster", name, "cr", creature.ChallengeRating.String())
		}(i, ref.Key, ref.Name)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	out := creatures[:0]
	for _, cr := range creatures {
		if cr != nil {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (c *client) workers() int {
	if c.concurrency <= 0 {
		return 1
	}
	return c.concurrency
}
