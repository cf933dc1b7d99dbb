package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brk3/cadence/internal/config"
	"github.com/brk3/cadence/internal/logger"
	"github.com/brk3/cadence/internal/server"
	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/internal/storage/bolt"
	"github.com/brk3/cadence/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func openStore(c *config.Config) (storage.Store, error) {
	switch c.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.Open(c.Storage.Path)
	case config.DriverBolt:
		return bolt.Open(c.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
}

func startServer(ctx context.Context, c *config.Config) error {
	store, err := openStore(c)
	if err != nil {
		return fmt.Errorf("open %s store at %s: %w", c.Storage.Driver, c.Storage.Path, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	s, err := server.New(c, store)
	if err != nil {
		return err
	}
	return s.ListenAndServe(ctx)
}
