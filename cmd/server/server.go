package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamshubha/roy-dex-sub005/cmd/db"
	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/router"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	seedFlag string = "seed"

	shutdownTimeout = 30 * time.Second
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the HTTP server

Requires configuration through ENV
and a reachable store (badger directory or postgres).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := cmd.Flags().GetBool(seedFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to parse %s flag", seedFlag)
			}

			return runServer(cmd.Context(), seed)
		},
	}

	cmd.Flags().BoolP(seedFlag, "s", false, "Seed fixtures into the store before starting the server.")

	return cmd
}

func runServer(ctx context.Context, seed bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	if seed {
		log.Info().Msg("Seeding fixtures")
		if err := db.Seed(ctx, s); err != nil {
			return errors.Wrap(err, "failed to seed fixtures")
		}
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		return errors.New("failed to gracefully shut down server")
	}

	return nil
}
