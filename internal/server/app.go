// Package server initializes and runs the credential core server. It
// validates configuration, opens the database, runs migrations, builds the
// credential and session services, and starts the gRPC endpoint with
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"authcore/internal/logging"
	"authcore/internal/server/auth"
	"authcore/internal/server/config"
	gs "authcore/internal/server/grpc"
	"authcore/internal/server/guard"
	"authcore/internal/server/repositories/storemanager"
	"authcore/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials *services.CredentialService
	sessions    *services.SessionService
	guard       *guard.Guard
}

func NewApp(cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	stores := storemanager.NewPostgresStoreManager()
	if err := stores.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	signer := auth.NewTokenSigner([]byte(cfg.SecretKey), cfg.TokenValidityDuration)

	credentials := services.NewCredentialService(db, stores, signer)
	sessions := services.NewSessionService(db, stores, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		credentials: credentials,
		sessions:    sessions,
		guard:       guard.New(sessions, logger),
	}, nil
}

// Credentials exposes the credential service to the surrounding
// application (registration, login, password reset).
func (app *App) Credentials() *services.CredentialService {
	return app.credentials
}

// Sessions exposes the session service (authorization checks, logout).
func (app *App) Sessions() *services.SessionService {
	return app.sessions
}

// Guard exposes the HTTP middleware protecting handlers mounted by the
// surrounding application.
func (app *App) Guard() *guard.Guard {
	return app.guard
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessions)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
