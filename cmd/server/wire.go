package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/a2a"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/api"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/config"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/history"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/images"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/intake"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/session"
)

type app struct {
	router  *gin.Engine
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{}
	built := false
	defer func() {
		if !built {
			a.close()
		}
	}()

	var rdb *redis.Client
	if cfg.Storage.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	designs, err := newHistoryStore(cfg.Storage, rdb, a)
	if err != nil {
		return nil, err
	}
	var sessions session.Store = session.NewMemoryStore(cfg.Storage.SessionTTL)
	if cfg.Storage.Sessions == "redis" {
		sessions = session.NewRedisStore(rdb, cfg.Storage.SessionTTL)
	}

	router, err := newCompletionRouter(ctx, cfg.Completion, log, a)
	if err != nil {
		return nil, err
	}

	resolver := images.NewResolver(images.Config{
		UnsplashAccessKey: cfg.Images.UnsplashAccessKey,
		UnsplashBaseURL:   cfg.Images.UnsplashBaseURL,
		SearchProvider:    cfg.Images.SearchProvider,
		SearchAPIKey:      cfg.Images.SearchAPIKey(),
		SearchBaseURL:     cfg.Images.SearchBaseURL,
		Timeout:           cfg.Images.Timeout,
		SecondaryBatch:    cfg.Images.SecondaryBatch,
	}, log)

	genOpts := []pipeline.Option{
		pipeline.WithTimeout(cfg.Generation.Timeout),
		pipeline.WithImageSlots(cfg.Generation.ImageSlots),
	}
	var engineOpts []intake.Option
	var chat completion.Client
	if router.Enabled() {
		chat = router
		genOpts = append(genOpts, pipeline.WithCopywriter(router))
		engineOpts = append(engineOpts, intake.WithInterpreter(intake.NewCompletionInterpreter(router)))
	} else {
		log.Warn("no completion providers configured, using local intake rules and default copy")
	}
	generator := pipeline.New(resolver, nil, log, genOpts...)
	manager := session.NewManager(sessions, intake.NewEngine(log, engineOpts...))

	a.router = api.NewRouter(api.RouterConfig{
		Mode:        cfg.Server.Mode,
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         log,
	})
	api.NewHandler(api.Deps{
		Images:     resolver,
		Generator:  generator,
		Completion: chat,
		Sessions:   manager,
		Designs:    designs,
		Log:        log,
	}).Register(a.router)
	a2a.NewA2AHandler(manager, generator, cfg.Server.PublicURL, log).Register(a.router)
	built = true
	return a, nil
}

func newHistoryStore(cfg config.StorageConfig, rdb *redis.Client, a *app) (history.Store, error) {
	switch cfg.History {
	case "redis":
		return history.NewRedisStore(rdb), nil
	case "sqlite", "postgres":
		dsn := cfg.SQLitePath
		if cfg.History == "postgres" {
			dsn = cfg.PostgresDSN
		}
		db, err := history.OpenDB(cfg.History, dsn)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		return history.NewSQLStore(db)
	}
	return history.NewMemoryStore(), nil
}

func newCompletionRouter(ctx context.Context, cfg config.CompletionConfig, log *logger.Logger, a *app) (*completion.Router, error) {
	var routes []completion.Weighted
	for _, p := range cfg.Providers {
		var client completion.Client
		switch p.Type {
		case "gemini":
			g, err := completion.NewGeminiClient(ctx, p.APIKey, p.Model)
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, g.Close)
			client = g
		default:
			oc := completion.OpenAIConfig{
				Name:    p.Name,
				APIKey:  p.APIKey,
				BaseURL: p.BaseURL,
				Model:   p.Model,
				Timeout: cfg.Timeout,
			}
			if p.Name == "deepseek" {
				if oc.BaseURL == "" {
					oc.BaseURL = completion.DeepSeekBaseURL
				}
				if oc.Model == "" {
					oc.Model = completion.DefaultDeepSeekModel
				}
			}
			client = completion.NewOpenAIClient(oc)
		}
		routes = append(routes, completion.Weighted{Client: client, Weight: p.Weight})
		log.Info("completion provider configured", "provider", p.Name, "type", p.Type, "weight", p.Weight)
	}
	return completion.NewRouter(routes, log,
		completion.WithRetry(cfg.MaxRetries, cfg.RetryDelay),
		completion.WithDefaults(cfg.Temperature, cfg.MaxTokens),
	), nil
}
