package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/config"
	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/notifier"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/realtime"
	cacherepo "github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/storage"
	"github.com/riskibarqy/championship-organizer/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/championship-organizer/internal/platform/cache"
	idgen "github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

type repositories struct {
	championships championship.Repository
	teams         team.Repository
	players       player.Repository
	tournaments   tournament.Repository
	matches       match.Repository
	events        matchevent.Repository
	standings     standing.Repository
	playerStats   playerstat.Repository
	predictions   prediction.Repository
	tx            usecase.Transactor
}

// App owns the HTTP server and every background resource behind it.
type App struct {
	Server *http.Server

	logger  *logging.Logger
	db      *sqlx.DB
	clock   *usecase.MatchClock
	hub     *realtime.Hub
	webhook *notifier.Webhook
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.Close(context.Background())
		}
	}()

	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	a.hub = realtime.NewHub(cfg.CORSAllowedOrigins, logger.Named("live"))
	publishers := usecase.MultiPublisher{a.hub}
	if cfg.WebhookEnabled {
		a.webhook, err = notifier.NewWebhook(notifier.WebhookConfig{
			URL:     cfg.WebhookURL,
			Secret:  cfg.WebhookSecret,
			Timeout: cfg.WebhookTimeout,
			Workers: cfg.WebhookWorkers,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger.Named("webhook"))
		if err != nil {
			return nil, fmt.Errorf("build webhook notifier: %w", err)
		}
		publishers = append(publishers, a.webhook)
	}

	var logos usecase.LogoStorage
	if cfg.LogoStorageEnabled {
		s3Logos, err := storage.NewS3LogoStorage(ctx, storage.S3Config{
			Endpoint:        cfg.LogoS3Endpoint,
			Region:          cfg.LogoS3Region,
			Bucket:          cfg.LogoS3Bucket,
			AccessKeyID:     cfg.LogoS3AccessKeyID,
			SecretAccessKey: cfg.LogoS3SecretKey,
			PublicBaseURL:   cfg.LogoPublicBaseURL,
		}, logger.Named("logos"))
		if err != nil {
			return nil, fmt.Errorf("build logo storage: %w", err)
		}
		logos = s3Logos
	}

	locks := &resilience.KeyedMutex{}
	a.clock = usecase.NewMatchClock(repos.matches, locks, publishers, cfg.MatchClockTick, logger.Named("clock"))

	ids := idgen.NewUUIDGenerator()
	aggregator := usecase.NewStandingsAggregator(repos.standings, repos.playerStats, repos.events)

	services := httpapi.Services{
		Championships: usecase.NewChampionshipService(repos.championships, repos.teams, logos, ids, int64(cfg.LogoMaxBytes), logger),
		Teams:         usecase.NewTeamService(repos.championships, repos.teams, repos.players, ids),
		Fixtures: usecase.NewFixtureService(usecase.FixtureDeps{
			Championships: repos.championships,
			Teams:         repos.teams,
			Tournaments:   repos.tournaments,
			Matches:       repos.matches,
			Events:        repos.events,
			Predictions:   repos.predictions,
			Standings:     repos.standings,
			Aggregator:    aggregator,
			Tx:            repos.tx,
			Clock:         a.clock,
			Locks:         locks,
			IDs:           ids,
			Logger:        logger,
			RoundInterval: cfg.FixtureRoundInterval,
		}),
		Matches: usecase.NewMatchService(usecase.MatchDeps{
			Championships:     repos.championships,
			Players:           repos.players,
			Matches:           repos.matches,
			Events:            repos.events,
			Aggregator:        aggregator,
			Tx:                repos.tx,
			Clock:             a.clock,
			Publisher:         publishers,
			Locks:             locks,
			IDs:               ids,
			Logger:            logger,
			StoppageTolerance: cfg.MatchStoppageTolerance,
		}),
		Standings: usecase.NewStandingService(usecase.StandingDeps{
			Championships: repos.championships,
			Teams:         repos.teams,
			Tournaments:   repos.tournaments,
			Matches:       repos.matches,
			Events:        repos.events,
			Standings:     repos.standings,
			PlayerStats:   repos.playerStats,
			Tx:            repos.tx,
			Clock:         a.clock,
			Publisher:     publishers,
			Locks:         locks,
			Logger:        logger,
		}),
		Predictions: usecase.NewPredictionService(repos.matches, repos.predictions, ids),
		Live:        a.hub,
	}

	if _, err := a.clock.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore match clocks: %w", err)
	}

	handler := httpapi.NewHandler(services, int64(cfg.LogoMaxBytes), logger.Named("http"))
	router := httpapi.NewRouter(handler, verifier, logger.Named("http"), httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	ok = true
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		if cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				return repositories{}, fmt.Errorf("seed demo data: %w", err)
			}
		}
		repos = repositories{
			championships: postgres.NewChampionshipRepository(db),
			teams:         postgres.NewTeamRepository(db),
			players:       postgres.NewPlayerRepository(db),
			tournaments:   postgres.NewTournamentRepository(db),
			matches:       postgres.NewMatchRepository(db),
			events:        postgres.NewMatchEventRepository(db),
			standings:     postgres.NewStandingRepository(db),
			playerStats:   postgres.NewPlayerStatRepository(db),
			predictions:   postgres.NewPredictionRepository(db),
			tx:            postgres.NewTransactor(db),
		}
	default:
		db := memory.NewDB()
		if err := memory.Seed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("seed demo data: %w", err)
		}
		repos = repositories{
			championships: memory.NewChampionshipRepository(db),
			teams:         memory.NewTeamRepository(db),
			players:       memory.NewPlayerRepository(db),
			tournaments:   memory.NewTournamentRepository(db),
			matches:       memory.NewMatchRepository(db),
			events:        memory.NewMatchEventRepository(db),
			standings:     memory.NewStandingRepository(db),
			playerStats:   memory.NewPlayerStatRepository(db),
			predictions:   memory.NewPredictionRepository(db),
			tx:            db,
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.championships = cacherepo.NewChampionshipRepository(repos.championships, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	a.logger.InfoContext(ctx, "repositories ready", "driver", cfg.StorageDriver, "cache", cfg.CacheEnabled)
	return repos, nil
}

func buildVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthAnubis:
		return anubis.NewClient(
			&http.Client{Timeout: cfg.AnubisTimeout},
			cfg.AnubisBaseURL,
			cfg.AnubisIntrospectURL,
			cfg.AnubisAdminKey,
			resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
			logger.Named("anubis"),
		), nil
	case config.AuthJWT:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required for AUTH_PROVIDER=%s", config.AuthJWT)
		}
		return jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.AuthProvider)
	}
}

// Close stops background work in dependency order: clocks first so no
// more updates are produced, then the subscribers, then storage.
func (a *App) Close(ctx context.Context) {
	if a.clock != nil {
		a.clock.Close()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.webhook != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err := a.webhook.Close(timeout); err != nil {
			a.logger.Warn("webhook pool did not drain", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("close database", "error", err)
		}
	}
}
