package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/victorgomez09/fantasy-manager/internal/config"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/account/janus"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/postgres"
	"github.com/victorgomez09/fantasy-manager/internal/interfaces/httpapi"
	"github.com/victorgomez09/fantasy-manager/internal/platform/cache"
	idgen "github.com/victorgomez09/fantasy-manager/internal/platform/id"
	"github.com/victorgomez09/fantasy-manager/internal/platform/resilience"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	uow, err := newUnitOfWork(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	formationRepo := memory.NewFormationRepository(memory.SeedFormations())

	var marketView *cache.Store
	if cfg.CacheEnabled {
		marketView = cache.NewStore(cfg.CacheTTL)
	}

	idGen := idgen.NewRandomGenerator()

	marketSvc := usecase.NewMarketService(uow, idGen, marketView, logger)
	bidSvc := usecase.NewBidService(uow, marketView, logger)
	squadSvc := usecase.NewSquadService(formationRepo, uow, logger)
	teamSvc := usecase.NewTeamService(uow, logger)
	sweepSvc := usecase.NewSweepService(uow, marketSvc, logger)
	refreshSvc := usecase.NewRefreshService(uow, idGen, logger)

	janusClient := janus.NewClient(
		&http.Client{Timeout: cfg.JanusTimeout},
		cfg.JanusBaseURL,
		cfg.JanusIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.JanusCircuitEnabled,
			FailureThreshold: cfg.JanusCircuitFailureCount,
			OpenTimeout:      cfg.JanusCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.JanusCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(marketSvc, bidSvc, squadSvc, teamSvc, sweepSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, janusClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newUnitOfWork(ctx context.Context, cfg config.Config, logger *slog.Logger) (usecase.UnitOfWork, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

		db, err := otelsqlx.Open("postgres", dbURL,
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}

		logger.Info("storage ready", "driver", cfg.StorageDriver, "database", dbNameFromURL(cfg.DBURL))

		return postgres.NewStore(db), nil
	case config.StorageMemory:
		logger.Info("storage ready", "driver", cfg.StorageDriver)

		return memory.NewStore(memory.DefaultSeed()), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
