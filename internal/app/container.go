package app

import (
	"context"
	"log"
	"time"

	"career-studio/internal/acquire"
	"career-studio/internal/analyze"
	"career-studio/internal/config"
	"career-studio/internal/database"
	"career-studio/internal/database/migration"
	dbpostgres "career-studio/internal/database/postgres"
	"career-studio/internal/extract"
	"career-studio/internal/infrastructure/cache"
	"career-studio/internal/repository"
	"career-studio/internal/retention"
	"career-studio/internal/usecase"
	"career-studio/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Analyses usecase.AnalysisUsecase
	Sweeper  *retention.Sweeper
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	acquirer := acquire.New(logger,
		acquire.NewHTTPScraper(cfg.Scrape.FetchTimeout, logger),
		acquire.NewBrowserScraper(cfg.Scrape.NavTimeout, cfg.Scrape.SettleDelay, logger),
	)

	structured := extract.NewStructuredClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout, logger)
	insight := extract.NewInsightClient(cfg.Anthropic.BaseURL, cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.Timeout, logger)

	callTimeout := cfg.OpenAI.Timeout
	if cfg.Anthropic.Timeout > callTimeout {
		callTimeout = cfg.Anthropic.Timeout
	}
	engine := analyze.NewEngine(acquirer, structured, insight, callTimeout, logger)

	repo := repository.NewPostgresAnalysisRepository(db)
	analyses := usecase.NewAnalysisUsecase(engine, repo, redisCache, ws.NotifyAnalysisCompleted, logger)

	sweeper := retention.NewSweeper(repo, redisCache, cfg.Retention.MaxAge, cfg.Retention.Schedule, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    redisCache,
		Hub:      hub,
		Analyses: analyses,
		Sweeper:  sweeper,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Sweeper != nil {
		c.Sweeper.Stop()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
