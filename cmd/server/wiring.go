package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/encounter-forge/internal/clients/external"
	"github.com/KirkDiggler/encounter-forge/internal/config"
	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/clock"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/encounter-forge/internal/redis"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/encounters"
)

// app holds the wired service and everything that must be closed with it
type app struct {
	service encounter.Service
	cache   catalog.Invalidator
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}

// newApp wires the catalog source, optional Redis cache and encounter store
// selected by cfg into an encounter orchestrator
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var redisClient redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisClient.Close)
		if err := redis.Ping(ctx, redisClient); err != nil {
			return nil, err
		}
	}

	repo, err := newCatalog(cfg, a)
	if err != nil {
		return nil, err
	}

	if redisClient != nil {
		cached, err := catalog.NewRedisCache(&catalog.CacheConfig{
			Client: redisClient,
			Source: repo,
			TTL:    cfg.CacheTTL,
		})
		if err != nil {
			return nil, err
		}
		repo = cached
		if inv, ok := cached.(catalog.Invalidator); ok {
			a.cache = inv
		}
	}

	var store encounters.Repository
	switch cfg.EncounterStore {
	case config.StoreRedis:
		store, err = encounters.NewRedis(&encounters.RedisConfig{Client: redisClient, TTL: cfg.EncounterTTL})
		if err != nil {
			return nil, err
		}
	default:
		store = encounters.NewInMemory(clock.New(), cfg.EncounterTTL)
	}

	gen, err := encengine.NewGenerator(cfg.EncounterConfig())
	if err != nil {
		return nil, err
	}

	a.service, err = encounter.NewOrchestrator(&encounter.Config{
		Catalog:            repo,
		Encounters:         store,
		EncounterID:        idgen.NewUUID("enc"),
		InstanceID:         idgen.NewUUID("crt"),
		Clock:              clock.New(),
		Generator:          gen,
		Treasure:           cfg.TreasureConfig(),
		DefaultMaxMonsters: cfg.DefaultMaxMonsters,
		DefaultGold:        cfg.DefaultGold,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("service wired",
		"catalog", cfg.CatalogSource,
		"cache", redisClient != nil,
		"encounter_store", cfg.EncounterStore)
	return a, nil
}

func newCatalog(cfg *config.Config, a *app) (catalog.Repository, error) {
	switch cfg.CatalogSource {
	case config.SourceSQLite:
		store, err := catalog.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil

	case config.SourceSRD:
		srd, err := external.New(&external.Config{BaseURL: cfg.SRDBaseURL})
		if err != nil {
			return nil, err
		}
		items, err := catalog.NewYAML(&catalog.YAMLConfig{ItemsPath: cfg.ItemsPath})
		if err != nil {
			return nil, err
		}
		return &catalog.Split{Creatures: srd, Items: items}, nil

	case config.SourceYAML:
		return catalog.NewYAML(&catalog.YAMLConfig{
			CreaturesPath: cfg.CreaturesPath,
			ItemsPath:     cfg.ItemsPath,
		})
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}
