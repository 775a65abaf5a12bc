package main

import (
	"fmt"
	"os"

	"user-directory/cmd/api/infrastructure"
	"user-directory/internal/adapter/db/relational"
	"user-directory/internal/config"
	"user-directory/internal/usecase/seed"
	"user-directory/pkg/logger"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the seed command. Database settings come from the same
// configuration as the API server.
func newRootCmd() *cobra.Command {
	var (
		opts      seed.Options
		fakerSeed uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert synthetic users into the database",
		Long: `Generate fake users and insert them in batches inside a single transaction.
Nothing is committed unless every batch succeeds.

Example:
  seed --count 100000 --batch-size 1000
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			configPath := os.Getenv("CONFIG_PATH")
			if configPath == "" {
				configPath = "."
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			// The schema must exist before the first batch.
			cfg.DB.AutoMigrate = true

			log, err := logger.NewWithConfig(logger.Config{
				Level:          cfg.Logger.Level,
				Format:         cfg.Logger.Format,
				OutputPath:     cfg.Logger.OutputPath,
				ServiceName:    cfg.Logger.ServiceName + "-seed",
				ServiceVersion: cfg.Logger.ServiceVersion,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			// Statement logging would dominate the output of a bulk load.
			cfg.Logger.Level = "warn"
			db, err := infrastructure.NewDatabase(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = infrastructure.CloseDatabase(db) }()

			seeder := seed.New(relational.NewUserRepo(db, log), gofakeit.New(fakerSeed), log)
			n, err := seeder.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			log.Info("seed complete", zap.Int("count", n), zap.String("driver", cfg.DB.Driver))
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d users\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", seed.DefaultCount, "number of users to generate")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", seed.DefaultBatchSize, "rows per INSERT statement")
	cmd.Flags().Uint64Var(&fakerSeed, "seed", 0, "faker seed; 0 picks a random one")

	return cmd
}
