package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/external/ncaa"
	"github.com/riskibarqy/fantasy-madness/internal/config"
	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	cacherepo "github.com/riskibarqy/fantasy-madness/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-madness/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-madness/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-madness/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
	"github.com/riskibarqy/fantasy-madness/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	leagues   league.Repository
	teams     team.Repository
	players   player.Repository
	games     game.Repository
	drafts    draft.Repository
	standings standing.Repository
	close     func() error
}

// NewHTTPServer wires the store, services and router. The returned cleanup
// releases the database pool and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	leagueRepo := repos.leagues
	if cfg.CacheEnabled {
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, cfg.CacheTTL)
	}

	ids := idgen.NewUUIDGenerator()
	leagueSvc := usecase.NewLeagueService(leagueRepo, repos.teams, ids, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, ids, logger)
	draftSvc := usecase.NewDraftService(leagueRepo, repos.teams, repos.players, repos.drafts, ids, cfg.DraftDefaultRounds, logger)
	scoringSvc := usecase.NewScoringService(repos.players, repos.games, ids, logger)
	standingSvc := usecase.NewStandingService(leagueRepo, repos.teams, repos.players, repos.standings, logger)
	ingestionSvc := usecase.NewIngestionService(buildGameFeed(cfg, logger), repos.players, scoringSvc, cfg.IngestionWorkers, logger)

	handler := httpapi.NewHandler(leagueSvc, playerSvc, draftSvc, scoringSvc, standingSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = repos.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("roster store ready", "driver", config.StorePostgres, "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			leagues:   postgres.NewLeagueRepository(db),
			teams:     postgres.NewTeamRepository(db),
			players:   postgres.NewPlayerRepository(db),
			games:     postgres.NewGameRepository(db),
			drafts:    postgres.NewDraftRepository(db),
			standings: postgres.NewStandingRepository(db),
			close:     db.Close,
		}, nil
	default:
		store := memory.NewStore()
		if cfg.MemorySeedDemo {
			memory.SeedDemo(store, time.Now().UTC())
		}
		logger.Info("roster store ready", "driver", config.StoreMemory, "seeded", cfg.MemorySeedDemo)
		return repositories{
			leagues:   memory.NewLeagueRepository(store),
			teams:     memory.NewTeamRepository(store),
			players:   memory.NewPlayerRepository(store),
			games:     memory.NewGameRepository(store),
			drafts:    memory.NewDraftRepository(store),
			standings: memory.NewStandingRepository(store),
			close:     func() error { return nil },
		}, nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", DatabaseURL(cfg),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// buildGameFeed returns a nil interface when the feed is disabled so the
// ingestion service reports it as unavailable.
func buildGameFeed(cfg config.Config, logger *logging.Logger) usecase.GameFeed {
	if !cfg.NCAAEnabled {
		logger.Info("ncaa feed disabled", "reason", "NCAA_ENABLED=false")
		return nil
	}

	return ncaa.NewClient(ncaa.ClientConfig{
		BaseURL:             cfg.NCAABaseURL,
		Timeout:             cfg.NCAATimeout,
		MaxRetries:          cfg.NCAAMaxRetries,
		BoxScoreConcurrency: cfg.NCAABoxScoreConcurrency,
		Logger:              logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.NCAACircuitEnabled,
			FailureThreshold: cfg.NCAACircuitFailureCount,
			OpenTimeout:      cfg.NCAACircuitOpenTimeout,
			HalfOpenProbes:   cfg.NCAACircuitHalfOpenMax,
		},
	})
}
