package main

import (
	"fmt"
	"strconv"

	"github.com/goran-ethernal/ChainPaywall/internal/checkpoint"
	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/config"
	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/migrations"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or move the payment watcher checkpoint",
}

var checkpointShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the next block the watcher will scan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCheckpoint(func(store pkgcheckpoint.Store, startBlock uint64) error {
			next, found, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if !found {
				cmd.Printf("no checkpoint saved, the watcher starts at block %d\n", startBlock)
				return nil
			}

			cmd.Printf("next block: %d\n", next)
			return nil
		})
	},
}

var checkpointSetCmd = &cobra.Command{
	Use:   "set <block>",
	Short: "Set the next block the watcher will scan",
	Long: `Set the next block the watcher will scan. Run this while the service is stopped.
Moving the checkpoint back re-scans blocks; already paid invoices are not paid twice.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid block %q: %w", args[0], err)
		}

		return withCheckpoint(func(store pkgcheckpoint.Store, _ uint64) error {
			if err := store.Save(cmd.Context(), next); err != nil {
				return err
			}

			cmd.Printf("next block set to %d\n", next)
			return nil
		})
	},
}

func init() {
	checkpointCmd.AddCommand(checkpointShowCmd, checkpointSetCmd)
}

// withCheckpoint opens the configured checkpoint store for the duration of fn.
func withCheckpoint(fn func(store pkgcheckpoint.Store, startBlock uint64) error) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewComponentLoggerFromConfig(common.ComponentCheckpoint, cfg.Logging)

	database, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	if err := migrations.RunMigrations(log, database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := checkpoint.New(cfg.Watcher.Checkpoint, database, nil, log)
	if err != nil {
		return err
	}

	return fn(store, cfg.Watcher.FirstBlock())
}
