package api

import (
	"os"

	"github.com/cscruggs10/autointel/internal/common"
	"github.com/cscruggs10/autointel/internal/db"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/logging"
	"github.com/cscruggs10/autointel/internal/metrics"
	"github.com/cscruggs10/autointel/internal/services"
)

type Repositories struct {
	Runlists *repositories.RunlistRepository
	Vehicles *repositories.RunlistVehicleRepository
	Sales    *repositories.HistoricalSalesRepository
	Keys     *repositories.KeysRepo
}

type Services struct {
	Cache       common.CacheInterface
	Registry    *services.FormatRegistry
	Normalizer  *services.NormalizerService
	Match       *services.MatchService
	Runlist     *services.RunlistService
	SalesImport *services.SalesImportService
	URLSigner   *common.URLSignerService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Runlists: repositories.NewRunlistRepository(db.PgDB),
		Vehicles: repositories.NewRunlistVehicleRepository(db.DB),
		Sales:    repositories.NewHistoricalSalesRepository(db.DB),
		Keys:     repositories.NewApiKeysRepo(db.DB),
	}

	// Redis backs the cache when configured; the in-memory cache is the
	// default for single-instance deployments
	var cacheSvc common.CacheInterface
	redisClient := common.NewRedisClient()
	if os.Getenv("CACHE_BACKEND") == "redis" {
		cacheSvc = common.NewRedisCacheService(redisClient)
		logging.Info("Using Redis cache backend")
	} else {
		cacheSvc = common.NewCacheService(300, 600)
	}

	secret := os.Getenv("SHARE_LINK_SECRET")
	if secret == "" {
		secret = "autointel-dev-secret-change-in-production"
	}

	registry := services.NewFormatRegistry()
	normalizer := services.NewNormalizerService()
	matchSvc := services.NewMatchService(repos.Sales, cacheSvc)
	runlistSvc := services.NewRunlistService(registry, normalizer, matchSvc, repos.Runlists, repos.Vehicles, metricsReg)

	svcs := &Services{
		Cache:       cacheSvc,
		Registry:    registry,
		Normalizer:  normalizer,
		Match:       matchSvc,
		Runlist:     runlistSvc,
		SalesImport: services.NewSalesImportService(repos.Sales, metricsReg),
		URLSigner:   common.NewURLSignerService([]byte(secret), redisClient),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
