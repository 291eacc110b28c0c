package cmd

import (
	"context"
	"fmt"
	"log"

	"asset-forecast/config"
	"asset-forecast/repository"
	"asset-forecast/service"
)

// app holds the wired service and the resources to release on exit.
type app struct {
	cfg     config.Config
	service *service.ForecastService
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	engine, err := service.NewForecastEngine(engineCfg)
	if err != nil {
		return nil, err
	}

	history, err := a.openHistory(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	cache := a.openCache(ctx)

	advisor := service.NewAdvisorService(service.AdvisorOptions{
		Provider: cfg.Advisor.Provider,
		APIKey:   cfg.AdvisorAPIKey(),
		Model:    cfg.Advisor.Model,
		APIURL:   cfg.Advisor.APIURL,
	})

	a.service = service.NewForecastService(engine, history, repository.NewScenarioCatalogMemory(), cache, advisor)
	a.service.SetCacheTTL(cfg.CacheTTL())
	a.service.SetLookbackMonths(cfg.History.LookbackMonths)
	return a, nil
}

func (a *app) openHistory(ctx context.Context) (repository.HistoryRepository, error) {
	switch a.cfg.History.Backend {
	case "sqlite":
		repo, err := repository.OpenSQLiteHistory(a.cfg.History.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = repo.Close() })
		return repo, nil
	case "postgres":
		repo, err := repository.NewPostgresHistoryRepository(ctx, a.cfg.History.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case "memory":
		return repository.NewHistoryRepositoryMemory(), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", a.cfg.History.Backend)
	}
}

// openCache falls back to the in-memory cache when Redis is unreachable.
func (a *app) openCache(ctx context.Context) repository.CacheRepository {
	if a.cfg.Cache.Backend != "redis" {
		return repository.NewMemoryCache()
	}

	cache := repository.NewRedisCache(a.cfg.Cache.RedisAddr)
	if err := cache.Ping(ctx); err != nil {
		log.Printf("Warning: redis unavailable, using in-memory cache: %v", err)
		_ = cache.Close()
		return repository.NewMemoryCache()
	}
	a.closers = append(a.closers, func() { _ = cache.Close() })
	return cache
}
