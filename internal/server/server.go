// Package server boots the backing services and runs the HTTP server until
// the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/database/seeders"
	"github.com/sheshine/backoffice/internal/kernel"
	"github.com/sheshine/backoffice/pkg/cache"
	"github.com/sheshine/backoffice/pkg/database"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/migration"
	"github.com/sheshine/backoffice/pkg/storage"

	_ "github.com/sheshine/backoffice/database/migrations"
)

const shutdownGrace = 10 * time.Second

// Options controls what Start does before listening.
type Options struct {
	Migrate bool
	Seed    bool
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests.
func Start(ctx context.Context, opts Options) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}

	flush := logger.Boot()
	defer flush()

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close(database.DB) //nolint:errcheck

	if opts.Migrate {
		if _, err := migration.New(database.DB).Run(); err != nil {
			return err
		}
	}
	if opts.Seed {
		if _, err := seeders.RunAll(ctx, database.DB); err != nil {
			return err
		}
	}

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("server: cache disabled", "error", err)
	}
	defer cache.Close() //nolint:errcheck

	if err := storage.Connect(ctx); err != nil {
		return err
	}
	disk, err := storage.Default()
	if err != nil {
		return err
	}

	k, err := kernel.NewHTTPKernel(database.DB, disk)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go k.Hub().Run(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	drain, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(drain)
}
