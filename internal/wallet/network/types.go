package network

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
)

// Network describes one supported blockchain network.
type Network struct {
	ID                string      `json:"id"`
	Impl              string      `json:"impl"`
	Name              string      `json:"name"`
	Symbol            string      `json:"symbol"`
	ChainID           string      `json:"chainId"`
	IsTestnet         bool        `json:"isTestnet"`
	BackendIndex      bool        `json:"backendIndex"`
	HardwareNetwork   string      `json:"hardwareNetwork,omitempty"`
	QRAccountEnabled  bool        `json:"qrAccountEnabled"`
	NFTEnabled        bool        `json:"nftEnabled"`
	DefaultEnabled    bool        `json:"defaultEnabled"`
	DefaultDeriveType derive.Type `json:"defaultDeriveType"`
}

// AllNetworksState holds the user's overrides of which networks take part in the
// all-networks view.
type AllNetworksState struct {
	EnabledNetworks  map[string]bool `json:"enabledNetworks"`
	DisabledNetworks map[string]bool `json:"disabledNetworks"`
}

// GlobalDeriveTypeStore persists the user's preferred derive type per network.
type GlobalDeriveTypeStore interface {
	GetGlobalDeriveType(ctx context.Context, networkID string) (derive.Type, bool, error)
	SetGlobalDeriveType(ctx context.Context, networkID string, deriveType derive.Type) error
}

// Service provides network metadata.
type Service interface {
	// GetAllNetworks lists every supported network, optionally without test networks
	GetAllNetworks(ctx context.Context, excludeTestNetwork bool) ([]*Network, error)

	// GetNetwork returns a single network
	GetNetwork(ctx context.Context, networkID string) (*Network, error)

	// GetDeriveInfoMapOfNetwork returns the derive table of the network's implementation
	GetDeriveInfoMapOfNetwork(ctx context.Context, networkID string) (derive.Table, error)

	// GetDeriveInfoOfNetwork returns one derive scheme of the network's implementation
	GetDeriveInfoOfNetwork(ctx context.Context, networkID string, deriveType derive.Type) (*derive.Info, error)

	// GetGlobalDeriveTypeOfNetwork returns the user's preferred derive type, or the catalog default
	GetGlobalDeriveTypeOfNetwork(ctx context.Context, networkID string) (derive.Type, error)

	// SetGlobalDeriveType stores the user's preferred derive type
	SetGlobalDeriveType(ctx context.Context, networkID string, deriveType derive.Type) error

	// EnabledNFTNetworkIDs lists networks with NFT support
	EnabledNFTNetworkIDs() []string

	// DefaultDeriveTypeVisibleNetworks lists networks whose derive type is shown to users
	DefaultDeriveTypeVisibleNetworks() []string

	// IsEnabledInAllNetworks applies the enabled/disabled overrides to a network
	IsEnabledInAllNetworks(networkID string, isTestnet bool, state AllNetworksState) bool

	// GetNetworkIDsCompatibleWithWalletID splits networkIDs by wallet compatibility
	GetNetworkIDsCompatibleWithWalletID(ctx context.Context, walletID string, networkIDs []string) (*Compatibility, error)
}

// Compatibility is the result of GetNetworkIDsCompatibleWithWalletID.
type Compatibility struct {
	NetworkIDsCompatible   []string `json:"networkIdsCompatible"`
	NetworkIDsIncompatible []string `json:"networkIdsIncompatible"`
}
