package allnetwork

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-openapi/swag"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/util/parallel"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type service struct {
	accounts    account.Service
	networks    network.Service
	state       StateStore
	observer    Observer
	concurrency int
}

// NewService creates the discovery service. observer may be nil; a concurrency below
// one falls back to DefaultNetworkConcurrency.
//
//nolint:ireturn
func NewService(accounts account.Service, networks network.Service, state StateStore, observer Observer, concurrency int) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(accounts, "accounts"),
		vala.IsNotNil(networks, "networks"),
		vala.IsNotNil(state, "state"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid all network service arguments")
	}

	if concurrency < 1 {
		concurrency = DefaultNetworkConcurrency
	}

	return &service{
		accounts:    accounts,
		networks:    networks,
		state:       state,
		observer:    observer,
		concurrency: concurrency,
	}, nil
}

func (s *service) Discover(ctx context.Context, params Params) (*Result, error) {
	start := time.Now()
	res, err := s.discover(ctx, params)

	if s.observer != nil {
		s.observer.DiscoveryFinished(time.Since(start), res, err)
	}

	return res, err
}

func (s *service) DiscoverWithEnabledNetworks(ctx context.Context, params Params) (*Result, error) {
	params.NetworksEnabledOnly = swag.Bool(true)
	if params.ExcludeTestNetwork == nil {
		params.ExcludeTestNetwork = swag.Bool(false)
	}

	return s.Discover(ctx, params)
}

func (s *service) BuildAPIAccountList(ctx context.Context, params Params) (*APIAccountList, error) {
	if params.NetworksEnabledOnly == nil {
		params.NetworksEnabledOnly = swag.Bool(true)
	}
	if params.ExcludeTestNetwork == nil {
		params.ExcludeTestNetwork = swag.Bool(false)
	}

	res, err := s.Discover(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]*APIAccount, 0, len(res.AccountsInfo))
	for _, info := range res.AccountsInfo {
		a := &APIAccount{
			NetworkID:      info.NetworkID,
			AccountAddress: info.APIAddress,
			AccountXpub:    info.AccountXpub,
		}
		if !params.WithoutAccountID {
			a.AccountID = info.AccountID
		}
		list = append(list, a)
	}

	if params.ExcludeIncompatibleWithWalletAccounts {
		networkIDs := make([]string, 0, len(list))
		for _, a := range list {
			networkIDs = append(networkIDs, a.NetworkID)
		}

		compatibility, err := s.networks.GetNetworkIDsCompatibleWithWalletID(ctx, account.WalletIDFromAccountID(params.AccountID), networkIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check wallet compatibility")
		}

		incompatible := make(map[string]bool, len(compatibility.NetworkIDsIncompatible))
		for _, id := range compatibility.NetworkIDsIncompatible {
			incompatible[id] = true
		}

		list = slices.DeleteFunc(list, func(a *APIAccount) bool {
			return incompatible[a.NetworkID]
		})
	}

	return &APIAccountList{AllNetworkAccounts: list}, nil
}

func (s *service) LoadCandidateAccounts(ctx context.Context, params CandidateParams) ([]*account.DBAccount, error) {
	isAllNetwork := params.FetchAllNetworkAccounts || network.IsAllNetwork(params.NetworkID)
	isOthersWallet := params.OthersWalletAccountID != "" &&
		params.IndexedAccountID == "" &&
		account.IsOthersAccount(params.OthersWalletAccountID)

	var accounts []*account.DBAccount

	switch {
	case isOthersWallet:
		a, err := s.findDBAccount(ctx, params.OthersWalletAccountID)
		if err != nil {
			return nil, err
		}
		accounts = []*account.DBAccount{a}

	case params.IndexedAccountID == "":
		return nil, required("indexedAccountId")

	case isAllNetwork:
		var err error
		accounts, err = s.accounts.GetAccountsInSameIndexedAccountID(ctx, params.IndexedAccountID)
		if err != nil {
			return nil, err
		}

	default:
		if params.DeriveType == "" {
			return nil, required("deriveType")
		}
		if params.NetworkID == "" {
			return nil, required("networkId")
		}

		accountID, err := s.accounts.GetDBAccountIDFromIndexedAccountID(ctx, params.IndexedAccountID, params.NetworkID, params.DeriveType)
		if err != nil {
			return nil, err
		}

		a, err := s.findDBAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		accounts = []*account.DBAccount{a}
	}

	return slices.DeleteFunc(accounts, func(a *account.DBAccount) bool {
		return a == nil || a.Impl == network.ImplAllNetworks
	}), nil
}

// findDBAccount returns nil without error for accounts that were never created.
func (s *service) findDBAccount(ctx context.Context, accountID string) (*account.DBAccount, error) {
	a, err := s.accounts.GetDBAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (s *service) GetState(ctx context.Context) (network.AllNetworksState, error) {
	return s.state.GetAllNetworksState(ctx)
}

func (s *service) UpdateState(ctx context.Context, update network.AllNetworksState) error {
	return s.state.UpdateAllNetworksState(ctx, update)
}

// discovery is the state shared by the workers of one Discover call.
type discovery struct {
	s      *service
	params Params

	isAllNetwork        bool
	candidates          []*account.DBAccount
	nftNetworkIDs       []string
	visibleNetworkIDs   []string
	defiEnabled         map[string]bool
	networksEnabledOnly bool
	state               network.AllNetworksState
	tables              *deriveTableCache

	mu     sync.Mutex
	result *Result
}

func (s *service) discover(ctx context.Context, params Params) (*Result, error) {
	log := util.LogFromContext(ctx).With().
		Str("networkId", params.NetworkID).
		Str("accountId", params.AccountID).
		Str("indexedAccountId", params.IndexedAccountID).
		Logger()

	representative, err := s.accounts.GetAccount(ctx, account.GetAccountParams{
		AccountID:        params.AccountID,
		NetworkID:        params.NetworkID,
		IndexedAccountID: params.IndexedAccountID,
	})
	if err != nil {
		log.Debug().Err(err).Msg("Representative account not resolved")
	}

	indexedAccountID := params.IndexedAccountID
	if indexedAccountID == "" && representative != nil {
		indexedAccountID = representative.IndexedAccountID
	}

	candidates, err := s.LoadCandidateAccounts(ctx, CandidateParams{
		NetworkID:               params.NetworkID,
		DeriveType:              params.DeriveType,
		IndexedAccountID:        indexedAccountID,
		OthersWalletAccountID:   params.AccountID,
		FetchAllNetworkAccounts: params.FetchAllNetworkAccounts,
	})
	if err != nil {
		return nil, err
	}

	d := &discovery{
		s:                   s,
		params:              params,
		isAllNetwork:        params.FetchAllNetworkAccounts || network.IsAllNetwork(params.NetworkID),
		candidates:          candidates,
		nftNetworkIDs:       s.networks.EnabledNFTNetworkIDs(),
		visibleNetworkIDs:   s.networks.DefaultDeriveTypeVisibleNetworks(),
		networksEnabledOnly: util.FalseIfNil(params.NetworksEnabledOnly),
		tables:              newDeriveTableCache(s.networks),
		result: &Result{
			AccountsInfo:                  make([]*AccountInfo, 0),
			AllAccountsInfo:               make([]*AccountInfo, 0),
			AccountsInfoBackendIndexed:    make([]*AccountInfo, 0),
			AccountsInfoBackendNotIndexed: make([]*AccountInfo, 0),
		},
	}

	if params.DeFiEnabledOnly {
		d.defiEnabled, err = s.state.GetDeFiEnabledNetworksMap(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load DeFi enabled networks")
		}
	}

	networks, err := s.networks.GetAllNetworks(ctx, util.TrueIfNil(params.ExcludeTestNetwork))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list networks")
	}

	if d.networksEnabledOnly {
		d.state, err = s.state.GetAllNetworksState(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load all networks state")
		}
	}

	log.Debug().Int("candidates", len(candidates)).Int("networks", len(networks)).Msg("Processing all networks")

	if err := parallel.ForEach(ctx, networks, s.concurrency, func(ctx context.Context, n *network.Network, _ int) error {
		return d.processNetwork(ctx, n)
	}); err != nil {
		return nil, err
	}

	log.Debug().
		Int("accountsInfo", len(d.result.AccountsInfo)).
		Int("allAccountsInfo", len(d.result.AllAccountsInfo)).
		Msg("Processing all networks done")

	return d.result, nil
}

// networkRun holds what the accounts of one network share.
type networkRun struct {
	network                *network.Network
	table                  derive.Table
	isNFTEnabled           bool
	isDeFiEnabled          bool
	filterGlobalDeriveType bool
	globalDeriveType       func() (derive.Type, error)
}

func (d *discovery) processNetwork(ctx context.Context, n *network.Network) error {
	if obs := d.s.observer; obs != nil {
		obs.NetworkWorkerStarted()
		defer obs.NetworkWorkerFinished()
	}

	table, err := d.tables.get(ctx, network.Impl(n.ID), n.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to get derive info of network %q", n.ID)
	}

	run := &networkRun{
		network:       n,
		table:         table,
		isNFTEnabled:  slices.Contains(d.nftNetworkIDs, n.ID),
		isDeFiEnabled: d.defiEnabled[n.ID],
		filterGlobalDeriveType: !d.params.IncludingNotEqualGlobalDeriveTypeAccount &&
			d.isAllNetwork &&
			!(slices.Contains(d.visibleNetworkIDs, n.ID) &&
				util.TrueIfNil(d.params.IncludingDeriveTypeMismatchInDefaultVisibleNetworks)),
		globalDeriveType: sync.OnceValues(func() (derive.Type, error) {
			return d.s.networks.GetGlobalDeriveTypeOfNetwork(ctx, n.ID)
		}),
	}

	var compatibleAccountExists atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range d.candidates {
		g.Go(func() error {
			matched, err := d.processAccount(gctx, run, a)
			if matched {
				compatibleAccountExists.Store(true)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if !compatibleAccountExists.Load() &&
		d.params.IncludingNonExistingAccount &&
		d.isAllNetwork &&
		!network.IsAllNetwork(n.ID) &&
		!account.IsOthersAccount(d.params.AccountID) {
		d.appendAccountInfo(run, &AccountInfo{
			NetworkID:        n.ID,
			IsNFTEnabled:     run.isNFTEnabled,
			IsBackendIndexed: n.BackendIndex,
			IsTestnet:        n.IsTestnet,
		})
	}

	return nil
}

func (d *discovery) processAccount(ctx context.Context, run *networkRun, a *account.DBAccount) (bool, error) {
	n := run.network

	var isMatched bool
	if d.isAllNetwork {
		isMatched = account.IsAccountCompatibleWithNetwork(a, n.ID)
	} else {
		isMatched = d.params.NetworkID == n.ID
	}

	deriveType, deriveInfo := derive.Resolve(a.ID, a.Template, run.table)

	if run.filterGlobalDeriveType && isMatched && a.Template != "" {
		globalDeriveType, err := run.globalDeriveType()
		if err != nil {
			return false, errors.Wrapf(err, "failed to get global derive type of network %q", n.ID)
		}

		if deriveType != globalDeriveType {
			isMatched = false
		}
	}

	if !isMatched {
		return false, nil
	}

	addressInfo, err := d.s.accounts.GetAccountAddressInfoForAPI(ctx, a, n.ID)
	if err != nil {
		return false, err
	}

	xpub, err := d.s.accounts.GetAccountXpub(ctx, a, n.ID)
	if err != nil {
		return false, err
	}

	d.appendAccountInfo(run, &AccountInfo{
		NetworkID:        n.ID,
		AccountID:        a.ID,
		APIAddress:       addressInfo.Address,
		AccountXpub:      xpub,
		Pub:              a.Pub,
		DBAccount:        a,
		IsNFTEnabled:     run.isNFTEnabled,
		IsBackendIndexed: n.BackendIndex,
		DeriveType:       deriveType,
		DeriveInfo:       deriveInfo,
		IsTestnet:        n.IsTestnet,
	})

	d.s.saveAccountAddress(ctx, n.ID, addressInfo.Account)

	return true, nil
}

func (d *discovery) appendAccountInfo(run *networkRun, info *AccountInfo) {
	if d.networksEnabledOnly && !d.s.networks.IsEnabledInAllNetworks(info.NetworkID, info.IsTestnet, d.state) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if (!d.params.NFTEnabledOnly || run.isNFTEnabled) && (!d.params.DeFiEnabledOnly || run.isDeFiEnabled) {
		d.result.AccountsInfo = append(d.result.AccountsInfo, info)
		if info.IsBackendIndexed {
			d.result.AccountsInfoBackendIndexed = append(d.result.AccountsInfoBackendIndexed, info)
		} else {
			d.result.AccountsInfoBackendNotIndexed = append(d.result.AccountsInfoBackendNotIndexed, info)
		}
	}

	d.result.AllAccountsInfo = append(d.result.AllAccountsInfo, info)
}

// saveAccountAddress caches the resolved address in the background; failures are
// logged only.
func (s *service) saveAccountAddress(ctx context.Context, networkID string, a *account.NetworkAccount) {
	ctx = util.DetachContext(ctx)

	go func() {
		if err := s.accounts.SaveAccountAddresses(ctx, networkID, a); err != nil {
			util.LogFromContext(ctx).Error().Err(err).Str("networkId", networkID).Msg("Failed to save account address")
		}
	}()
}

// deriveTableCache loads each implementation's derive table once per Discover call.
type deriveTableCache struct {
	networks network.Service

	mu     sync.Mutex
	byImpl map[string]func() (derive.Table, error)
}

func newDeriveTableCache(networks network.Service) *deriveTableCache {
	return &deriveTableCache{
		networks: networks,
		byImpl:   make(map[string]func() (derive.Table, error)),
	}
}

func (c *deriveTableCache) get(ctx context.Context, impl string, networkID string) (derive.Table, error) {
	c.mu.Lock()
	load, ok := c.byImpl[impl]
	if !ok {
		load = sync.OnceValues(func() (derive.Table, error) {
			return c.networks.GetDeriveInfoMapOfNetwork(ctx, networkID)
		})
		c.byImpl[impl] = load
	}
	c.mu.Unlock()

	return load()
}
