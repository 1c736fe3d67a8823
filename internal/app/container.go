package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillsift/internal/config"
	"skillsift/internal/database"
	dbpostgres "skillsift/internal/database/postgres"
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/recommendation"
	"skillsift/internal/domain/skill"
	"skillsift/internal/infrastructure/cache"
	"skillsift/internal/infrastructure/document"
	"skillsift/internal/infrastructure/jobfetch"
	"skillsift/internal/infrastructure/messaging"
	"skillsift/internal/infrastructure/metrics"
	"skillsift/internal/pkg/jwt"
	"skillsift/internal/repository"
	"skillsift/internal/usecase"
	analysisuc "skillsift/internal/usecase/analysis"
	industryuc "skillsift/internal/usecase/industry"
	marketuc "skillsift/internal/usecase/market"
	"skillsift/internal/ws"
)

// Container owns every long-lived dependency. Database, Redis and RabbitMQ
// are optional; their absence disables the features built on them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB        database.DB
	Cache     *cache.Redis
	Publisher *messaging.RabbitPublisher
	Metrics   *metrics.Metrics
	Hub       *ws.Hub
	JWT       *jwt.HMACService

	Industry *industryuc.Service
	Market   *marketuc.Service
	Analysis *analysisuc.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Hub:     ws.NewHub(logger),
		JWT:     jwt.NewHMACService(cfg.JWT.AdminSecret, cfg.JWT.AdminExpiresIn),
	}

	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(dbCtx, cfg.Database)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db
	} else {
		logger.Printf("[App] database is not configured, running without persistence")
	}

	var jsonCache usecase.JSONCache
	if cfg.Redis.Host != "" {
		c.Cache = cache.NewRedis(cfg.Redis, logger)
		jsonCache = c.Cache
	}

	pub, err := messaging.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
	if err != nil {
		logger.Printf("[Events] RabbitMQ unavailable, event publishing is disabled | err=%v", err)
		pub, _ = messaging.NewRabbitPublisher("", cfg.RabbitMQ.Exchange, logger)
	}
	c.Publisher = pub

	if err := c.buildServices(jsonCache); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) buildServices(jsonCache usecase.JSONCache) error {
	var (
		industryRepo repository.IndustrySkillRepository
		marketRepo   repository.MarketDataRepository
		analysisRepo repository.AnalysisRepository
	)
	if c.DB != nil {
		industryRepo = repository.NewPostgresIndustrySkillRepository(c.DB)
		marketRepo = repository.NewPostgresMarketDataRepository(c.DB)
		analysisRepo = repository.NewPostgresAnalysisRepository(c.DB)
	}

	c.Industry = industryuc.NewService(industryRepo, jsonCache, c.Publisher, c.Logger)
	c.Market = marketuc.NewService(marketRepo, jsonCache, c.Metrics, c.Logger)

	catalog := skill.DefaultCatalog()
	extractor, err := skill.NewExtractor(catalog)
	if err != nil {
		return fmt.Errorf("build skill extractor: %w", err)
	}
	requirements, err := skill.NewRequirementExtractor(catalog)
	if err != nil {
		return fmt.Errorf("build requirement extractor: %w", err)
	}

	scorer := matching.NewScorer(c.Industry, c.Market, c.Logger).
		OnLookupFailure(c.Metrics.EnrichmentFailed).
		Canonicalize(catalog.Canonical)

	ac := c.Config.Analysis
	c.Analysis, err = analysisuc.NewService(analysisuc.Deps{
		Catalog:      catalog,
		Skills:       extractor,
		Requirements: requirements,
		Scorer:       scorer,
		Engine:       recommendation.NewEngine(),
		Documents:    document.NewExtractor(ac.MaxFileSize, ac.SupportedFileTypes),
		Fetcher: jobfetch.NewPageFetcher(jobfetch.Options{
			Timeout:      ac.JobFetchTimeout,
			Headless:     ac.JobFetchHeadless,
			AllowPrivate: ac.JobFetchAllowPrivate,
			Logger:       c.Logger,
		}),
		Repo:         analysisRepo,
		Publisher:    c.Publisher,
		Notifier:     ws.NewNotifier(c.Hub),
		Metrics:      c.Metrics,
		Logger:       c.Logger,
		MaxSkills:    ac.MaxExtractedSkills,
		BatchWorkers: ac.BatchWorkers,
	})
	return err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Printf("[Events] close failed | err=%v", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("[Cache] close failed | err=%v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
