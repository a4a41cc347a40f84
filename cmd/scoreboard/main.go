package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kothscore/helios/pkg/server"
	"github.com/kothscore/helios/pkg/services/codec"
	"github.com/kothscore/helios/pkg/services/conditions"
	"github.com/kothscore/helios/pkg/services/config"
	"github.com/kothscore/helios/pkg/services/loader"
	"github.com/kothscore/helios/pkg/services/scoreboard"
	"github.com/kothscore/helios/pkg/store/duckdb"
	duckdbsubmission "github.com/kothscore/helios/pkg/store/duckdb/submission"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var envPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "scoreboard",
		Short:        "Collect and rank reports submitted by scored hosts",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&envPath, "env", "e", ".env", "Path to an optional .env file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	cfg, err := config.ParseScoreboardEnv()
	if err != nil {
		return err
	}

	registry, err := config.NewKeyRegistry(cfg.KeysFile)
	if err != nil {
		return err
	}
	keys, err := registry.GetKeys(ctx, cfg.KeyProfile)
	if err != nil {
		return err
	}
	c, err := codec.New(keys)
	if err != nil {
		return err
	}

	src, err := loader.NewSource(ctx, cfg.Blob, cfg.AWSProfile)
	if err != nil {
		return err
	}
	scoring, err := loader.NewLoader(c, conditions.DefaultCatalog()).Load(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", src, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	submissionStore, err := duckdbsubmission.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create submission store: %w", err)
	}

	logger.Info().Msgf("Configuration `%s` loaded from `%s` with %d records.", scoring.Title, src, len(scoring.Records))

	web := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.Host, cfg.Port),
		Dependencies: server.Dependencies{
			Scoreboard: scoreboard.NewService(scoring, submissionStore, func(ctx context.Context, fn func(ctx context.Context) error) error {
				return duckdb.InTransaction(ctx, db, fn)
			}),
			Logger:     logger,
		},
	})

	return web.Start(ctx)
}
