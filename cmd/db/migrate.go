package db

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/data/pg"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all migrations which are not yet applied.",
		Long: `Executes all postgres migrations which are not yet applied.
The badger store has no schema and is left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		store, ok := s.Store.(*pg.Service)
		if !ok {
			log.Info().Str("driver", cfg.Store.Driver).Msg("Store has no migrations")
			return nil
		}

		n, err := store.Migrate(ctx)
		if err != nil {
			return err
		}

		log.Info().Int("migrations", n).Msg("Applied migrations")

		return nil
	})
}
