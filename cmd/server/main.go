// Command server runs the timesheets HTTP API.
//
// @title                       Timesheets API
// @version                     1.0
// @description                 Contractor timesheet submission, approval and payroll export.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/siteledger/timesheets/internal/api"
	"github.com/siteledger/timesheets/internal/api/handler"
	"github.com/siteledger/timesheets/internal/core/ports"
	"github.com/siteledger/timesheets/internal/core/service"
	"github.com/siteledger/timesheets/internal/infrastructure/config"
	mongostore "github.com/siteledger/timesheets/internal/infrastructure/db/mongo"
	pgstore "github.com/siteledger/timesheets/internal/infrastructure/db/postgres"
	redisstore "github.com/siteledger/timesheets/internal/infrastructure/db/redis"
	"github.com/siteledger/timesheets/internal/infrastructure/export"
	"github.com/siteledger/timesheets/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// store bundles the repositories of the selected backend.
type store struct {
	accounts   ports.AccountRepository
	timesheets ports.TimesheetRepository
	name       string
	ping       handler.Pinger
	close      func()
}

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "timesheets",
		Env:     cfg.Env,
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	policy, err := cfg.PayPolicy()
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	log.Info().Str("driver", st.name).Msg("record store connected")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	revoker := redisstore.NewTokenRevoker(rdb)
	authService := service.NewAuthService(st.accounts, revoker, cfg.JWTSecret, cfg.TokenTTL, log.With().Str("component", "auth").Logger())
	timesheetService := service.NewTimesheetService(st.timesheets, st.accounts, policy, log.With().Str("component", "timesheets").Logger())
	writer := export.NewXLSXWriter()
	exportService := service.NewExportService(timesheetService, writer, log.With().Str("component", "export").Logger())

	if cfg.Seed.Enabled() {
		if _, err := authService.EnsureManager(ctx, cfg.Seed.ManagerUsername, cfg.Seed.ManagerEmail, cfg.Seed.ManagerPassword); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Dependencies{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		Auth:        authService,
		Timesheets:  timesheetService,
		Exports:     exportService,
		Format:      writer,
		Revocations: revoker,
		Health: map[string]handler.Pinger{
			st.name: st.ping,
			"redis": redisstore.Pinger(rdb),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Msg("timesheets API listening")
		if err := e.Start(cfg.HTTPAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return &store{
			accounts:   pgstore.NewAccountRepository(pool),
			timesheets: pgstore.NewTimesheetRepository(pool),
			name:       "postgres",
			ping:       pgstore.Pinger(pool),
			close:      pool.Close,
		}, nil
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		accounts := mongostore.NewAccountRepository(db)
		timesheets := mongostore.NewTimesheetRepository(db)
		if err := mongostore.EnsureIndexes(ctx, accounts, timesheets); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			accounts:   accounts,
			timesheets: timesheets,
			name:       "mongodb",
			ping:       mongostore.Pinger(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil
	}
}
