package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/application"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/cache/memory"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/cache/redis"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/oauth/github"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/persistence"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/persistence/postgres"
	apphttp "github.com/inf25dw2g02/MindPool/internal/interfaces/http"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

func run() error {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, auditSink, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()
	logger.SetDefault(log)

	log.Info("Starting MindPool server...",
		logger.Component("main"),
	)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Connected to PostgreSQL",
		logger.Component("infrastructure"),
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
	)

	if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Migrations applied", logger.Component("infrastructure"))

	sessionStore, redisClient, err := initSessionStore(cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	if auditSink != nil {
		auditSink.StartCleanupJob(ctx)
		log.Info("Audit log cleanup job started", logger.Component("main"))
	}

	provider := github.NewClient(&cfg.GitHub)

	repos := persistence.NewRepositories(db)
	deps := application.NewDependencies(cfg)
	svcs := application.NewServices(repos, sessionStore, provider, deps, cfg, log)

	server := newServer(cfg, svcs, db, redisClient, log)
	return startServer(server, log)
}

func initLogger(cfg *config.Config) (logger.Logger, *logger.SQLiteSink, error) {
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Environment = cfg.Logging.Environment
	logCfg.EnableAudit = cfg.Logging.AuditEnabled
	logCfg.AuditDBPath = cfg.Logging.AuditDBPath

	var sink *logger.SQLiteSink
	var err error

	// Hand New an untyped nil when audit is off; a typed-nil *SQLiteSink
	// would pass the interface nil checks downstream.
	var s logger.Sink
	if logCfg.EnableAudit {
		sink, err = logger.NewSQLiteSink(logCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create audit log sink: %w", err)
		}
		s = sink
	}

	log, err := logger.New(logCfg, s)
	if err != nil {
		if sink != nil {
			sink.Close()
		}
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, sink, nil
}

func initSessionStore(cfg *config.Config, log logger.Logger) (session.Store, *redis.Client, error) {
	if cfg.Session.Store == "memory" {
		log.Warn("Using in-memory session store; sessions will not survive restarts",
			logger.Component("infrastructure"),
		)
		return memory.NewSessionStore(), nil, nil
	}

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Connected to Redis",
		logger.Component("infrastructure"),
		logger.String("host", cfg.Redis.Host),
		logger.Int("port", cfg.Redis.Port),
	)

	return redis.NewSessionStore(redisClient), redisClient, nil
}

func newServer(
	cfg *config.Config,
	svcs *application.Services,
	db *postgres.DB,
	redisClient *redis.Client,
	log logger.Logger,
) *http.Server {
	routerDeps := &apphttp.RouterDeps{
		Services:   svcs,
		Logger:     log,
		DBHealther: db,
	}
	if redisClient != nil {
		routerDeps.RedisHealther = redisClient
	}

	router := apphttp.NewRouter(cfg, routerDeps)
	server := apphttp.NewServer(cfg, router)

	return &http.Server{
		Addr:         server.ListenAddr(),
		Handler:      server.Handler(),
		ReadTimeout:  server.ReadTimeout(),
		WriteTimeout: server.WriteTimeout(),
		IdleTimeout:  server.IdleTimeout(),
	}
}

func startServer(server *http.Server, log logger.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			logger.Component("server"),
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server...",
			logger.Component("server"),
			logger.String("signal", sig.String()),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited", logger.Component("server"))
	return nil
}
