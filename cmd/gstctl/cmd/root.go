package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gst-invoicing-api/pkg/config"
	"github.com/jhoicas/gst-invoicing-api/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "gstctl",
	Short: "Maintenance CLI of the GST invoicing API",
	Long: `gstctl applies database migrations, previews invoice numbers and issues
development identity tokens. Settings are read from the environment and
from a .env file in the working directory, the same way the API does.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every subcommand starts from.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) openPool(ctx context.Context) (poolCloser, error) {
	if e.cfg.Storage.Driver != config.StoragePostgres {
		return poolCloser{}, fmt.Errorf("STORAGE_DRIVER=%s: gstctl needs %s", e.cfg.Storage.Driver, config.StoragePostgres)
	}
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return poolCloser{}, err
	}
	return poolCloser{Pool: pool}, nil
}
