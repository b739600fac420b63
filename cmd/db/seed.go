package db

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/data/fixtures"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/spf13/cobra"
)

func newSeed() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserts or updates fixtures to the store.",
		Long: `Derives the demo wallet accounts and upserts them together with
the fixture settings. Running it twice keeps one record per account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context())
		},
	}
}

func runSeed(ctx context.Context) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, Seed)
}

// Seed upserts the fixtures into the store of s.
func Seed(ctx context.Context, s *api.Server) error {
	f, err := fixtures.Fixtures(ctx, s.Addresses)
	if err != nil {
		return err
	}

	return fixtures.Upsert(ctx, s.Store, f)
}
