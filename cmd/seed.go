package cmd

import (
	"context"
	"fmt"

	"asset-forecast/config"
	"asset-forecast/repository"

	"github.com/spf13/cobra"
)

var flagSeedDB string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample twelve month history into the configured SQL store",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&flagSeedDB, "db", "", "SQLite path (overrides config)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	backend := cfg.History.Backend
	if flagSeedDB != "" {
		backend = "sqlite"
		cfg.History.SQLitePath = flagSeedDB
	}

	var writer repository.HistoryWriter
	switch backend {
	case "sqlite":
		repo, err := repository.OpenSQLiteHistory(cfg.History.SQLitePath)
		if err != nil {
			return err
		}
		defer repo.Close()
		writer = repo
	case "postgres":
		repo, err := repository.NewPostgresHistoryRepository(ctx, cfg.History.PostgresDSN)
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		writer = repo
	default:
		return fmt.Errorf("seed needs a sqlite or postgres history backend, got %q", backend)
	}

	n, err := seedHistory(ctx, writer)
	if err != nil {
		return err
	}
	fmt.Printf("  Seeded %d observations into %s history\n", n, backend)
	return nil
}

func seedHistory(ctx context.Context, w repository.HistoryWriter) (int, error) {
	obs := repository.SeedObservations()
	for _, o := range obs {
		if err := w.SaveObservation(ctx, o); err != nil {
			return 0, err
		}
	}
	if err := w.SaveAggregates(ctx, repository.SeedAggregates()); err != nil {
		return 0, err
	}
	return len(obs), nil
}
