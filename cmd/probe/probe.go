package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

func newProbe(use string, short string, path string, timeout func(config.Management) time.Duration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: fmt.Sprintf(`%s

Queries %s of the locally running server and exits with a non-zero
code if it does not answer with 200.`, short, path),
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to parse %s flag", verboseFlag)
			}

			cfg := config.DefaultServiceConfigFromEnv()
			command.SetupLogger(cfg.Logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout(cfg.Management))
			defer cancel()

			body, err := runProbe(ctx, cfg.Echo.ListenAddress, path)
			if verbose && body != "" {
				fmt.Fprint(cmd.OutOrStdout(), body)
			}
			if err != nil {
				return err
			}

			log.Debug().Str("path", path).Msg("Probe succeeded")

			return nil
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func newLiveness() *cobra.Command {
	return newProbe("liveness", "Runs liveness probes", "/-/healthy", func(m config.Management) time.Duration {
		return m.LivenessTimeout
	})
}

func newReadiness() *cobra.Command {
	return newProbe("readiness", "Runs readiness probes", "/-/ready", func(m config.Management) time.Duration {
		return m.ReadinessTimeout
	})
}

func runProbe(ctx context.Context, listenAddress string, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL(listenAddress, path), nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build probe request")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to reach server")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read probe response")
	}

	if res.StatusCode != http.StatusOK {
		return string(body), errors.Errorf("probe %s returned %d", path, res.StatusCode)
	}

	return string(body), nil
}

// probeURL turns a listen address like ":8080" into a loopback URL.
func probeURL(listenAddress string, path string) string {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return "http://" + strings.TrimSuffix(listenAddress, "/") + path
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port) + path
}
