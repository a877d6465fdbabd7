package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/checkpoint"
	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/config"
	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/identity"
	"github.com/goran-ethernal/ChainPaywall/internal/ledger"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/metrics"
	"github.com/goran-ethernal/ChainPaywall/internal/migrations"
	"github.com/goran-ethernal/ChainPaywall/internal/paywall"
	"github.com/goran-ethernal/ChainPaywall/internal/rpc"
	"github.com/goran-ethernal/ChainPaywall/internal/store"
	"github.com/goran-ethernal/ChainPaywall/internal/watcher"
	"github.com/goran-ethernal/ChainPaywall/pkg/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the payment watcher and the API server",
	RunE:  runPaywall,
}

func runPaywall(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentWatcher, cfg.Logging)
	logger.SetDefaultLogger(log)

	metricsServer := metrics.NewServer(cfg.Metrics, log)
	if err := metricsServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	defer func() {
		if err := metricsServer.Stop(context.WithoutCancel(ctx)); err != nil {
			log.Warnf("Failed to stop metrics server: %v", err)
		}
	}()

	database, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(log, database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	maintenance := db.NewMaintenanceCoordinator(
		cfg.DB.Path,
		database,
		cfg.Maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentMaintenance, cfg.Logging),
	)

	marketStore := store.New(database, maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging))
	invoiceLedger := ledger.New(database, maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentLedger, cfg.Logging))

	checkpoints, err := checkpoint.New(cfg.Watcher.Checkpoint, database, maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentCheckpoint, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create checkpoint store: %w", err)
	}

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Chain.RPCURL, cfg.Chain.Retry,
		logger.NewComponentLoggerFromConfig(common.ComponentRPC, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()
	log.Infof("Connected to Ethereum node: %s", cfg.Chain.RPCURL)

	w, err := watcher.New(cfg.Chain, cfg.Watcher, ethClient, checkpoints, marketStore, invoiceLedger,
		logger.NewComponentLoggerFromConfig(common.ComponentWatcher, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := maintenance.Start(ctx); err != nil {
			return fmt.Errorf("failed to start maintenance: %w", err)
		}
		<-ctx.Done()
		return maintenance.Stop()
	})

	g.Go(func() error {
		return runWatcher(ctx, w, cfg.Watcher.PollInterval.Duration, log)
	})

	if cfg.API != nil && cfg.API.Enabled {
		apiLog := logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging)
		resolver := identity.NewHubResolver(cfg.Identity,
			logger.NewComponentLoggerFromConfig(common.ComponentIdentity, cfg.Logging))
		service := paywall.New(marketStore, invoiceLedger, resolver, cfg.Chain.TokenDecimals, apiLog)

		apiServer := api.NewServer(cfg.API, service, w, apiLog)
		g.Go(func() error {
			return apiServer.Start(ctx)
		})
	}

	log.Info("Starting ChainPaywall...")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("ChainPaywall stopped successfully")
	return nil
}

// runWatcher restarts the watcher after infrastructure failures. Every restart
// resumes from the persisted checkpoint.
func runWatcher(ctx context.Context, w *watcher.Watcher, retryDelay time.Duration, log *logger.Logger) error {
	for {
		err := w.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}

		log.Errorf("watcher stopped with error, restarting in %s: %v", retryDelay, err)
		metrics.ErrorsInc(common.ComponentWatcher, "restart")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
		}
	}
}
