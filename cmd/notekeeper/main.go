package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpServer "notekeeper/internal/notekeeper/adapters/http"
	"notekeeper/internal/notekeeper/adapters/localstore"
	pgstore "notekeeper/internal/notekeeper/adapters/postgres"
	"notekeeper/internal/notekeeper/adapters/services"
	"notekeeper/internal/notekeeper/adapters/sessioncache"
	"notekeeper/internal/notekeeper/adapters/storage"
	"notekeeper/internal/notekeeper/app"
	"notekeeper/internal/notekeeper/config"
	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/internal/notekeeper/session"
	"notekeeper/pkg/db/postgres"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEKEEPER_ENV"
	EnvLoggerLevel = "NOTEKEEPER_LOG_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrInitRepository       = "failed to initialize note repository"
	ErrInitGuard            = "failed to initialize session guard"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notekeeper service started"
	LogServiceShutdownDone = "notekeeper service shutdown complete"
	LogRemoteDisabled      = "remote store disabled by configuration"
	LogRemoteUnreachable   = "remote store unreachable, continuing in local-only mode"
	LogInitStores          = "initializing note stores"
	LogInitSessions        = "initializing session store"
	LogInitRepository      = "initializing note repository"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogFlushingNotes       = "flushing pending note edits"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStores)
		localStore := localstore.NewFileStore(cfg.Storage.NotesPath())
		credentialStore := localstore.NewCredentialFile(cfg.Storage.CredentialPath())

		// Недоступность удаленного хранилища не мешает запуску:
		// сервис стартует в режиме local-only.
		var remoteStore repositories.NoteStore
		var database *postgres.Database
		if cfg.Storage.RemoteEnabled {
			database, err = postgres.New(ctx, cfg.Postgres.GetDSN(),
				int(cfg.Postgres.MinConns), int(cfg.Postgres.MaxConns))
			if err != nil {
				log.Warn(ctx, LogRemoteUnreachable, zap.Error(err))
				database = nil
			} else if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MigrationsPath); err != nil {
				log.Warn(ctx, LogRemoteUnreachable, zap.Error(err))
				database.Close(ctx)
				database = nil
			} else {
				remoteStore = pgstore.NewNoteStore(database.Pool())
			}
		} else {
			log.Info(ctx, LogRemoteDisabled)
		}

		log.Info(ctx, LogInitSessions)
		sessionStore, err := sessioncache.New(ctx, cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		adapter := storage.NewAdapter(ctx, localStore, remoteStore, storage.DefaultCircuitBreakerConfig())

		log.Info(ctx, LogInitRepository)
		repository, err := app.NewRepository(ctx, adapter, cfg.Storage.SaveDebounce)
		if err != nil {
			log.Error(ctx, ErrInitRepository, zap.Error(err))
			exitCode = 1
			return
		}

		passwordService := services.NewBcryptService(cfg.Session.BcryptCost)
		tokenService := services.NewJWTService(cfg.Session.Secret, cfg.Session.TokenTTL)

		guard, err := session.NewGuard(ctx, credentialStore, sessionStore, tokenService, passwordService, cfg.Session.InactivityTimeout)
		if err != nil {
			log.Error(ctx, ErrInitGuard, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New()

		httpServer.SetupRouter(fiberApp, guard, repository, func() string {
			return string(adapter.CurrentMode())
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.Address()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.Address()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.Timeout,
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Запись несохраненных правок.
			func(ctx context.Context) error {
				log.Info(ctx, LogFlushingNotes)
				if err := repository.Close(ctx); err != nil {
					return err
				}
				adapter.Close()
				return nil
			},
			// Закрытие хранилища сессий.
			func(ctx context.Context) error {
				return sessionStore.Close()
			},
			// Закрытие пула Postgres.
			func(ctx context.Context) error {
				if database != nil {
					database.Close(ctx)
				}
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
