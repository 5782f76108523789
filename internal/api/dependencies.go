package api

import (
	"os"
	"time"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/logging"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/services"
)

type Repositories struct {
	Blob    *repositories.BlobRepository
	Keys    *repositories.KeysRepo
	Uploads *repositories.UploadRepository
}

type Services struct {
	Cache        common.CacheInterface
	Snapshots    *common.ReportCache
	Correlator   *services.CorrelatorService
	Reports      *services.ReportService
	Routes       *services.RoutesService
	WorkingTimes *services.WorkingTimesService
	VanChecks    *services.VanChecksService
	Ingest       *services.IngestService
	LinkSigner   *common.LinkSignerService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Blob:    repositories.NewBlobRepository(db.DB),
		Keys:    repositories.NewApiKeysRepo(db.DB),
		Uploads: repositories.NewUploadRepository(db.PgDB),
	}

	// In-memory cache by default; CACHE_BACKEND=redis switches the general
	// cache to Redis so several instances share van-assignment maps and
	// share-token markers. Report snapshots always stay process-local.
	var cacheSvc common.CacheInterface
	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisSvc, err := common.NewRedisCacheService()
		if err != nil {
			return nil, err
		}
		cacheSvc = redisSvc
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	snapshots := common.NewReportCache(constants.ReportCacheCapacity, constants.ReportCacheTTLSeconds*time.Second)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "opsboard-dev-secret"
		logging.Warn("JWT_SECRET not set, using development secret")
	}

	correlatorSvc := services.NewCorrelatorService(repos.Blob, cacheSvc)

	svcs := &Services{
		Cache:        cacheSvc,
		Snapshots:    snapshots,
		Correlator:   correlatorSvc,
		Reports:      services.NewReportService(repos.Blob, correlatorSvc, metricsReg),
		Routes:       services.NewRoutesService(repos.Blob, correlatorSvc, metricsReg),
		WorkingTimes: services.NewWorkingTimesService(repos.Blob, metricsReg),
		VanChecks:    services.NewVanChecksService(repos.Blob, correlatorSvc),
		Ingest:       services.NewIngestService(repos.Blob, repos.Uploads, metricsReg),
		LinkSigner:   common.NewLinkSignerService([]byte(secret), cacheSvc),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
