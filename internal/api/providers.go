package api

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/data/local"
	"github.com/iamshubha/roy-dex-sub005/internal/data/pg"
	"github.com/iamshubha/roy-dex-sub005/internal/i18n"
	"github.com/iamshubha/roy-dex-sub005/internal/metrics"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/address"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	_ Store = (*local.Service)(nil)
	_ Store = (*pg.Service)(nil)
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewStore opens the store selected by config.Store.Driver. Postgres stores are
// migrated before they are returned.
//
//nolint:ireturn
func NewStore(cfg config.Server) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		ctx := context.Background()
		if cfg.Management.ReadinessTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Management.ReadinessTimeout)
			defer cancel()
		}

		db, err := pg.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		store, err := pg.NewService(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		n, err := store.Migrate(ctx)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Debug().Int("migrations", n).Msg("Applied migrations")

		return store, nil
	case config.StoreDriverBadger, "":
		store, err := local.NewService(cfg.Store.BadgerDir)
		if err != nil {
			return nil, err
		}

		return store, nil
	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func NewI18N(cfg config.Server) (*i18n.Service, error) {
	return i18n.New(cfg)
}

func NewMetrics(cfg config.Server) (*metrics.Service, error) {
	return metrics.New(cfg)
}

//nolint:ireturn
func NewNetworkService(cfg config.Server, store Store) (network.Service, error) {
	catalog, err := network.LoadCatalog(cfg.Network.CatalogFile)
	if err != nil {
		return nil, err
	}

	return network.NewService(catalog, store)
}

//nolint:ireturn
func NewAddressService(cfg config.Server) (address.Service, error) {
	return address.NewService(cfg.Discovery.AddressCacheSize)
}

//nolint:ireturn
func NewAccountService(store Store, networks network.Service, addresses address.Service) (account.Service, error) {
	return account.NewService(store, networks, addresses)
}

//nolint:ireturn
func NewAllNetworkService(cfg config.Server, store Store, accounts account.Service, networks network.Service, m *metrics.Service) (allnetwork.Service, error) {
	return allnetwork.NewService(accounts, networks, store, m, cfg.Discovery.NetworkConcurrency)
}

//nolint:ireturn
func NewHardwareTransport() hardware.Transport {
	return hardware.NewBridgeTransport()
}

//nolint:ireturn
func NewHardwareBatchService(cfg config.Server, networks network.Service, accounts account.Service, transport hardware.Transport, m *metrics.Service) (hardware.BatchService, error) {
	return hardware.NewBatchService(networks, accounts, transport, m, cfg.Hardware.BatchTimeout)
}
