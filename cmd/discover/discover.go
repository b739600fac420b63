package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-openapi/swag"
	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DISCOVER"

	accountIDKey          = "account-id"
	networkIDKey          = "network-id"
	deriveTypeKey         = "derive-type"
	indexedAccountIDKey   = "indexed-account-id"
	enabledOnlyKey        = "enabled-only"
	excludeTestNetworkKey = "exclude-test-network"
	includeMissingKey     = "including-non-existing"
	includeMismatchKey    = "including-not-equal-global-derive-type"
	nftOnlyKey            = "nft-enabled-only"
	defiOnlyKey           = "defi-enabled-only"
	apiAccountsKey        = "api-accounts"
)

func New() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discovers the accounts of a wallet account",
		Long: `Runs account discovery against the configured store and prints the
result as JSON.

Every flag may also be set through ENV, prefixed with DISCOVER_,
e.g. DISCOVER_INDEXED_ACCOUNT_ID=hd-1--0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return errors.Wrap(err, "failed to bind flags")
			}

			params := paramsFromViper(v)
			cfg := config.DefaultServiceConfigFromEnv()

			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				return run(ctx, cmd.OutOrStdout(), s, v, params)
			})
		},
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	flags.String(accountIDKey, "", "Account id, empty for an indexed account")
	flags.String(networkIDKey, network.AllNetworkID, "Network id, the all-networks id discovers every network")
	flags.String(deriveTypeKey, "", "Derive type, required for single network discovery of indexed accounts")
	flags.String(indexedAccountIDKey, "", "Indexed account id (walletId--index)")
	flags.Bool(enabledOnlyKey, false, "Only discover networks enabled in the all-networks state")
	flags.Bool(excludeTestNetworkKey, true, "Leave testnets out")
	flags.Bool(includeMissingKey, false, "Add placeholders for networks without an account")
	flags.Bool(includeMismatchKey, false, "Keep accounts whose derive type differs from the global one")
	flags.Bool(nftOnlyKey, false, "Only discover NFT enabled networks")
	flags.Bool(defiOnlyKey, false, "Only discover DeFi enabled networks")
	flags.Bool(apiAccountsKey, false, "Print the backend API account list instead")

	return cmd
}

func paramsFromViper(v *viper.Viper) allnetwork.Params {
	params := allnetwork.Params{
		AccountID:                                v.GetString(accountIDKey),
		NetworkID:                                v.GetString(networkIDKey),
		DeriveType:                               derive.Type(v.GetString(deriveTypeKey)),
		IndexedAccountID:                         v.GetString(indexedAccountIDKey),
		NFTEnabledOnly:                           v.GetBool(nftOnlyKey),
		DeFiEnabledOnly:                          v.GetBool(defiOnlyKey),
		IncludingNonExistingAccount:              v.GetBool(includeMissingKey),
		IncludingNotEqualGlobalDeriveTypeAccount: v.GetBool(includeMismatchKey),
	}

	// only override the per operation defaults when explicitly set
	if v.IsSet(excludeTestNetworkKey) {
		params.ExcludeTestNetwork = swag.Bool(v.GetBool(excludeTestNetworkKey))
	}

	return params
}

func run(ctx context.Context, out io.Writer, s *api.Server, v *viper.Viper, params allnetwork.Params) error {
	var (
		res any
		err error
	)

	switch {
	case v.GetBool(apiAccountsKey):
		res, err = s.AllNetwork.BuildAPIAccountList(ctx, params)
	case v.GetBool(enabledOnlyKey):
		res, err = s.AllNetwork.DiscoverWithEnabledNetworks(ctx, params)
	default:
		res, err = s.AllNetwork.Discover(ctx, params)
	}
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal discovery result")
	}

	fmt.Fprintln(out, string(b))

	return nil
}
