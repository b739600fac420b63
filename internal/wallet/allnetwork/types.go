package allnetwork

import (
	"context"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
)

// DefaultNetworkConcurrency is the number of networks processed at once by Discover.
const DefaultNetworkConcurrency = 8

// Params selects the accounts and the views Discover builds. Pointer flags have
// operation specific defaults, see the Service methods.
type Params struct {
	AccountID        string      `json:"accountId"`
	NetworkID        string      `json:"networkId"`
	DeriveType       derive.Type `json:"deriveType,omitempty"`
	IndexedAccountID string      `json:"indexedAccountId,omitempty"`

	NFTEnabledOnly      bool  `json:"nftEnabledOnly,omitempty"`
	DeFiEnabledOnly     bool  `json:"deFiEnabledOnly,omitempty"`
	NetworksEnabledOnly *bool `json:"networksEnabledOnly,omitempty"`
	ExcludeTestNetwork  *bool `json:"excludeTestNetwork,omitempty"`

	IncludingNonExistingAccount                         bool  `json:"includingNonExistingAccount,omitempty"`
	IncludingNotEqualGlobalDeriveTypeAccount            bool  `json:"includingNotEqualGlobalDeriveTypeAccount,omitempty"`
	IncludingDeriveTypeMismatchInDefaultVisibleNetworks *bool `json:"includingDeriveTypeMismatchInDefaultVisibleNetworks,omitempty"`
	FetchAllNetworkAccounts                             bool  `json:"fetchAllNetworkAccounts,omitempty"`

	// only used by BuildAPIAccountList
	ExcludeIncompatibleWithWalletAccounts bool `json:"excludeIncompatibleWithWalletAccounts,omitempty"`
	WithoutAccountID                      bool `json:"withoutAccountId,omitempty"`
}

// AccountInfo is one discovered (network, account) pair. Placeholders for networks
// without a matching account have an empty AccountID and no DBAccount.
type AccountInfo struct {
	NetworkID        string             `json:"networkId"`
	AccountID        string             `json:"accountId"`
	APIAddress       string             `json:"apiAddress"`
	AccountXpub      string             `json:"accountXpub,omitempty"`
	Pub              string             `json:"pub,omitempty"`
	DBAccount        *account.DBAccount `json:"dbAccount,omitempty"`
	IsNFTEnabled     bool               `json:"isNftEnabled"`
	IsBackendIndexed bool               `json:"isBackendIndexed"`
	DeriveType       derive.Type        `json:"deriveType,omitempty"`
	DeriveInfo       *derive.Info       `json:"deriveInfo,omitempty"`
	IsTestnet        bool               `json:"isTestnet"`
}

// IsPlaceholder reports whether the entry stands for a derivable account that does
// not exist yet.
func (i *AccountInfo) IsPlaceholder() bool {
	return i.DBAccount == nil
}

// Result holds the discovery buckets. Bucket order is unspecified.
type Result struct {
	AccountsInfo                  []*AccountInfo `json:"accountsInfo"`
	AllAccountsInfo               []*AccountInfo `json:"allAccountsInfo"`
	AccountsInfoBackendIndexed    []*AccountInfo `json:"accountsInfoBackendIndexed"`
	AccountsInfoBackendNotIndexed []*AccountInfo `json:"accountsInfoBackendNotIndexed"`
}

// APIAccount is the shape backend APIs take an all-networks account in.
type APIAccount struct {
	AccountID      string `json:"accountId,omitempty"`
	NetworkID      string `json:"networkId"`
	AccountAddress string `json:"accountAddress"`
	AccountXpub    string `json:"accountXpub,omitempty"`
}

// APIAccountList is the result of BuildAPIAccountList.
type APIAccountList struct {
	AllNetworkAccounts []*APIAccount `json:"allNetworkAccounts"`
}

// CandidateParams selects the stored accounts discovery starts from.
type CandidateParams struct {
	NetworkID               string      `json:"networkId"`
	DeriveType              derive.Type `json:"deriveType,omitempty"`
	IndexedAccountID        string      `json:"indexedAccountId,omitempty"`
	OthersWalletAccountID   string      `json:"othersWalletAccountId,omitempty"`
	FetchAllNetworkAccounts bool        `json:"fetchAllNetworkAccounts,omitempty"`
}

// StateStore persists the all-networks settings.
type StateStore interface {
	GetAllNetworksState(ctx context.Context) (network.AllNetworksState, error)
	UpdateAllNetworksState(ctx context.Context, update network.AllNetworksState) error
	GetDeFiEnabledNetworksMap(ctx context.Context) (map[string]bool, error)
}

// Observer receives discovery events, e.g. for metrics.
type Observer interface {
	NetworkWorkerStarted()
	NetworkWorkerFinished()
	DiscoveryFinished(duration time.Duration, result *Result, err error)
}

// Service discovers the accounts of a wallet across every supported network.
type Service interface {
	// Discover finds the accounts of params across networks. ExcludeTestNetwork and
	// IncludingDeriveTypeMismatchInDefaultVisibleNetworks default to true,
	// NetworksEnabledOnly to false.
	Discover(ctx context.Context, params Params) (*Result, error)

	// DiscoverWithEnabledNetworks runs Discover restricted to networks enabled in the
	// all-networks state. ExcludeTestNetwork defaults to false.
	DiscoverWithEnabledNetworks(ctx context.Context, params Params) (*Result, error)

	// BuildAPIAccountList maps the accountsInfo bucket to backend API parameters.
	// NetworksEnabledOnly defaults to true, ExcludeTestNetwork to false.
	BuildAPIAccountList(ctx context.Context, params Params) (*APIAccountList, error)

	// LoadCandidateAccounts returns the stored accounts discovery would examine
	LoadCandidateAccounts(ctx context.Context, params CandidateParams) ([]*account.DBAccount, error)

	// GetState returns the enabled/disabled network overrides
	GetState(ctx context.Context) (network.AllNetworksState, error)

	// UpdateState merges network overrides into the stored state
	UpdateState(ctx context.Context, update network.AllNetworksState) error
}
