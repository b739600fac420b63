package cmd

import (
	"fmt"
	"os"

	"github.com/iamshubha/roy-dex-sub005/cmd/db"
	"github.com/iamshubha/roy-dex-sub005/cmd/discover"
	"github.com/iamshubha/roy-dex-sub005/cmd/env"
	"github.com/iamshubha/roy-dex-sub005/cmd/probe"
	"github.com/iamshubha/roy-dex-sub005/cmd/server"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Discovers wallet accounts across networks and correlates batched hardware
wallet responses. Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// a missing .env is fine, values then come from the environment only
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		db.New(),
		discover.New(),
		env.New(),
		probe.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
