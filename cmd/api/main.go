package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/marketdex/economy/internal/api"
	"github.com/marketdex/economy/internal/infra/logging"
	"github.com/marketdex/economy/internal/infra/pgutils"
	pgassets "github.com/marketdex/economy/internal/repos/assets/postgres"
	"github.com/marketdex/economy/internal/services/economy"
	"github.com/marketdex/economy/internal/services/shop"
	"github.com/marketdex/economy/pkg/envconf"
	"github.com/marketdex/economy/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.AddNamed("postgres", func(context.Context) error {
		return db.Close()
	})

	// --- Core wiring ---
	adminIDs, err := cfg.adminIDs()
	if err != nil {
		return fmt.Errorf("parse admin ids: %w", err)
	}

	rotation := shop.NewRotation(pgassets.New(db), cfg.Shop)
	auth := economy.NewStaticAuthorizer(adminIDs)
	svc := economy.New(db, rotation, auth, cfg.Economy)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, svc)

	shutdownqueue.AddNamed("http server", func(c context.Context) error {
		slog.Info("Shut down server")

		return srv.Shutdown(c)
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
