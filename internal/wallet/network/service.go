package network

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/pkg/errors"
)

var (
	ErrNetworkNotFound        = errors.New("network not found")
	ErrDeriveTypeNotSupported = errors.New("derive type not supported")
)

const (
	hardwareWalletPrefix = "hw-"
	qrWalletPrefix       = "qr-"
)

type service struct {
	catalog  *Catalog
	networks []*Network
	byID     map[string]*Network
	tables   map[string]derive.Table
	store    GlobalDeriveTypeStore

	// overrides is used when no store is configured
	mu        sync.RWMutex
	overrides map[string]derive.Type
}

// NewService creates a catalog-backed network service. store may be nil, in which
// case global derive types are kept in memory.
//
//nolint:ireturn
func NewService(catalog *Catalog, store GlobalDeriveTypeStore) (Service, error) {
	if catalog == nil {
		return nil, errors.New("network catalog is required")
	}

	s := &service{
		catalog:   catalog,
		networks:  make([]*Network, 0, len(catalog.Networks)),
		byID:      make(map[string]*Network, len(catalog.Networks)),
		tables:    make(map[string]derive.Table, len(catalog.Implementations)),
		store:     store,
		overrides: make(map[string]derive.Type),
	}

	for _, spec := range catalog.Networks {
		n := spec.toNetwork()
		s.networks = append(s.networks, n)
		s.byID[n.ID] = n
	}

	for _, impl := range catalog.Implementations {
		table, _ := catalog.DeriveTable(impl.Impl)
		s.tables[impl.Impl] = table
	}

	return s, nil
}

func (s *service) GetAllNetworks(_ context.Context, excludeTestNetwork bool) ([]*Network, error) {
	res := make([]*Network, 0, len(s.networks))
	for _, n := range s.networks {
		if excludeTestNetwork && n.IsTestnet {
			continue
		}
		c := *n
		res = append(res, &c)
	}

	return res, nil
}

func (s *service) GetNetwork(_ context.Context, networkID string) (*Network, error) {
	n, ok := s.byID[networkID]
	if !ok {
		return nil, errors.Wrapf(ErrNetworkNotFound, "network %q", networkID)
	}
	c := *n

	return &c, nil
}

func (s *service) GetDeriveInfoMapOfNetwork(ctx context.Context, networkID string) (derive.Table, error) {
	n, err := s.GetNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	table, ok := s.tables[n.Impl]
	if !ok {
		return nil, nil
	}

	return slices.Clone(table), nil
}

func (s *service) GetDeriveInfoOfNetwork(ctx context.Context, networkID string, deriveType derive.Type) (*derive.Info, error) {
	table, err := s.GetDeriveInfoMapOfNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	info, ok := table.Get(deriveType)
	if !ok {
		return nil, errors.Wrapf(ErrDeriveTypeNotSupported, "derive type %q on network %q", deriveType, networkID)
	}

	return info, nil
}

func (s *service) GetGlobalDeriveTypeOfNetwork(ctx context.Context, networkID string) (derive.Type, error) {
	n, err := s.GetNetwork(ctx, networkID)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		deriveType, ok, err := s.store.GetGlobalDeriveType(ctx, networkID)
		if err != nil {
			return "", errors.Wrap(err, "failed to get global derive type")
		}
		if ok {
			return deriveType, nil
		}

		return n.DefaultDeriveType, nil
	}

	s.mu.RLock()
	deriveType, ok := s.overrides[networkID]
	s.mu.RUnlock()
	if ok {
		return deriveType, nil
	}

	return n.DefaultDeriveType, nil
}

func (s *service) SetGlobalDeriveType(ctx context.Context, networkID string, deriveType derive.Type) error {
	log := util.LogFromContext(ctx)

	if _, err := s.GetDeriveInfoOfNetwork(ctx, networkID, deriveType); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.SetGlobalDeriveType(ctx, networkID, deriveType); err != nil {
			log.Error().Err(err).Str("networkId", networkID).Msg("Failed to save global derive type")
			return errors.Wrap(err, "failed to set global derive type")
		}
	} else {
		s.mu.Lock()
		s.overrides[networkID] = deriveType
		s.mu.Unlock()
	}

	log.Debug().Str("networkId", networkID).Str("deriveType", string(deriveType)).Msg("Global derive type updated")

	return nil
}

func (s *service) EnabledNFTNetworkIDs() []string {
	res := make([]string, 0)
	for _, n := range s.networks {
		if n.NFTEnabled {
			res = append(res, n.ID)
		}
	}

	return res
}

func (s *service) DefaultDeriveTypeVisibleNetworks() []string {
	return slices.Clone(s.catalog.DefaultDeriveTypeVisibleNetworks)
}

// IsEnabledInAllNetworks treats default-enabled mainnets as opt-out and everything
// else, testnets included, as opt-in.
func (s *service) IsEnabledInAllNetworks(networkID string, isTestnet bool, state AllNetworksState) bool {
	if isTestnet {
		return state.EnabledNetworks[networkID]
	}

	if n, ok := s.byID[networkID]; ok && n.DefaultEnabled {
		return !state.DisabledNetworks[networkID]
	}

	return state.EnabledNetworks[networkID]
}

func (s *service) GetNetworkIDsCompatibleWithWalletID(_ context.Context, walletID string, networkIDs []string) (*Compatibility, error) {
	if walletID == "" {
		return nil, errors.New("walletId is required")
	}

	res := &Compatibility{
		NetworkIDsCompatible:   make([]string, 0, len(networkIDs)),
		NetworkIDsIncompatible: make([]string, 0),
	}

	for _, id := range networkIDs {
		n, ok := s.byID[id]
		compatible := ok
		switch {
		case !ok:
		case strings.HasPrefix(walletID, hardwareWalletPrefix):
			compatible = n.HardwareNetwork != ""
		case strings.HasPrefix(walletID, qrWalletPrefix):
			compatible = n.QRAccountEnabled
		}

		if compatible {
			res.NetworkIDsCompatible = append(res.NetworkIDsCompatible, id)
		} else {
			res.NetworkIDsIncompatible = append(res.NetworkIDsIncompatible, id)
		}
	}

	return res, nil
}
